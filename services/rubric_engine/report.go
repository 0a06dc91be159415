// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rubric_engine

import (
	"fmt"
	"strings"
)

// RenderMarkdown turns a ReviewerReport into its stable markdown form.
//
// Rendering is a pure function of the report object: no re-evaluation and
// no access to the original document, so a report downloaded later
// reproduces exactly what was shown on screen.
func RenderMarkdown(report *ReviewerReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Reviewer Report — %s (rubric v%s)\n\n", report.Scheme, report.RubricVersion)
	fmt.Fprintf(&b, "**Overall: %.1f / %.1f — %s**\n\n", report.OverallScore, report.MaxPossibleScore,
		verdict(report.OverallPassed))
	fmt.Fprintf(&b, "Draft: %d words, %d sections.\n", report.DraftWordCount, report.DraftSectionCount)

	for _, c := range report.Criteria {
		fmt.Fprintf(&b, "\n## %s — %.1f / %.1f %s\n\n", c.CriterionTitle, c.Score, c.MaxScore, scoreBadge(c))

		for _, s := range c.Signals {
			fmt.Fprintf(&b, "- %s **%s** (weight %.2f, confidence %.2f)%s\n",
				foundMark(s.Found), s.Label, s.Weight, s.Confidence, requiredMark(s))
			fmt.Fprintf(&b, "  %s\n", s.Detail)
			for _, ev := range s.Evidence {
				fmt.Fprintf(&b, "  > %s\n", ev)
			}
			if !s.Found {
				fmt.Fprintf(&b, "  Fix: %s (%s, ~%d min)\n", s.Remediation, s.SectionHint, s.FixMinutes)
			}
		}
	}

	b.WriteString("\n## Verdict\n\n")
	if report.OverallPassed {
		b.WriteString("Every criterion meets its threshold and the overall minimum is reached. ")
		b.WriteString("The draft is ready for a human polish pass.\n")
	} else {
		fmt.Fprintf(&b, "The draft does not yet pass. Each criterion must reach its threshold and the total must reach %.1f points.\n",
			report.PassMinimum)
		renderBlocking(&b, report)
	}

	return b.String()
}

// renderBlocking lists every missing required signal across all criteria,
// with its remediation and fix estimate. Required signals never gate the
// numeric score; the report just puts them first in line.
func renderBlocking(b *strings.Builder, report *ReviewerReport) {
	var missing []SignalResult
	for _, c := range report.Criteria {
		for _, s := range c.Signals {
			if s.Required && !s.Found {
				missing = append(missing, s)
			}
		}
	}
	if len(missing) == 0 {
		return
	}

	b.WriteString("\nBlocking gaps (rubric-required elements with no evidence):\n\n")
	for _, s := range missing {
		fmt.Fprintf(b, "- **%s** — %s (%s, ~%d min)\n", s.Label, s.Remediation, s.SectionHint, s.FixMinutes)
	}
}

func verdict(passed bool) string {
	if passed {
		return "PASS"
	}
	return "NOT YET PASSING"
}

func scoreBadge(c CriterionResult) string {
	if c.Passed {
		return "✅"
	}
	return "❌"
}

func foundMark(found bool) string {
	if found {
		return "[x]"
	}
	return "[ ]"
}

func requiredMark(s SignalResult) string {
	if s.Required {
		return " — required"
	}
	return ""
}
