// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rubric_engine

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	rubric := mustRubric(t)

	report, err := rubric.Review(fullDraft)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	md := report.MarkdownReport

	// One section per criterion plus the verdict, in declaration order.
	for _, title := range []string{"## Excellence", "## Impact", "## Implementation", "## Verdict"} {
		if !strings.Contains(md, title) {
			t.Errorf("rendered report is missing section %q", title)
		}
	}
	if strings.Index(md, "## Excellence") > strings.Index(md, "## Impact") {
		t.Error("criterion sections are out of declaration order")
	}

	// Every signal label appears with its found state.
	for _, c := range report.Criteria {
		for _, s := range c.Signals {
			if !strings.Contains(md, "**"+s.Label+"**") {
				t.Errorf("signal %q missing from rendered report", s.SignalID)
			}
		}
	}
}

func TestRenderMarkdownIsPure(t *testing.T) {
	rubric := mustRubric(t)
	report, err := rubric.Review(fullDraft)
	if err != nil {
		t.Fatalf("review: %v", err)
	}

	// Rendering again from the report object alone must reproduce the
	// stored markdown byte for byte.
	if RenderMarkdown(report) != report.MarkdownReport {
		t.Error("re-rendering the report changed its markdown output")
	}
}

func TestRenderMarkdownBlockingGaps(t *testing.T) {
	rubric := mustRubric(t)

	report, err := rubric.Review(emptyDraft)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	md := report.MarkdownReport

	if !strings.Contains(md, "NOT YET PASSING") {
		t.Error("failing draft must render the failing verdict")
	}
	if !strings.Contains(md, "Blocking gaps") {
		t.Error("failing draft with missing required signals must list blocking gaps")
	}
	// Remediation hints surface verbatim for missing signals.
	if !strings.Contains(md, "Number your objectives") {
		t.Error("remediation text for objectives_listed not rendered")
	}
}
