// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rubric_engine

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

// fullDraft exercises most signals of the reference rubric.
const fullDraft = `# Project ACUITY

## 1. Excellence

Our objectives are SMART:

O1: To develop a new sensor with 30% lower power draw.
O2: To validate at 3 pilot sites.

The project advances the state-of-the-art in distributed sensing and
closes the technology gap in low-power field calibration, moving from
TRL 3 to TRL 6. The methodology follows a staged research design; the
overall approach combines lab validation with field trials. This is a
novel, first-of-its-kind calibration scheme. Success criteria: reduce
drift by 25%. Alternative approaches and their trade-offs are discussed.

## 2. Impact

Expected outcomes directly address the call topic. Wider impacts include
lower maintenance cost for end-users and industry partners. Stakeholders
are named per target group.

| Indicator | Baseline | Target |
|-----------|----------|--------|
| Drift     | 4%       | 1%     |

KPIs are reviewed quarterly. The exploitation plan covers the route to
market and intellectual property. Dissemination: peer-reviewed
publications, conferences and workshops, all open access. A data
management plan (DMP) is delivered in month 6.

## 3. Implementation

The work plan has four work packages. WP1 covers coordination; WP2 the
sensor; WP3 validation; WP4 dissemination. Milestones MS1 and MS2 gate
the pilots. Deliverables D1.1 and D2.1 are due early. The Gantt chart
spans M1-M36.

| Risk            | Likelihood | Mitigation          |
|-----------------|-----------|----------------------|
| Sensor drift    | Medium    | Recalibration cycle  |

Risks carry mitigation and contingency measures. The consortium has
five partners with complementary skills. The budget is justified in
person-months and EUR 2.4M total. The management structure names a
coordinator and a steering committee.
`

// emptyDraft contains none of the tracked rubric concepts.
const emptyDraft = `The quick brown fox jumps over a sleeping dog.
It then wanders away through tall grass and thinks about dinner.
Nothing in this text resembles a funding proposal in any way.`

func mustRubric(t testing.TB) *Rubric {
	t.Helper()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	rubric, err := registry.Rubric("horizon-ri-2025")
	if err != nil {
		t.Fatalf("rubric: %v", err)
	}
	return rubric
}

func TestReviewDeterminism(t *testing.T) {
	rubric := mustRubric(t)

	first, err := rubric.Review(fullDraft)
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	second, err := rubric.Review(fullDraft)
	if err != nil {
		t.Fatalf("second review: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same draft produced two different reports")
	}
	if first.MarkdownReport != second.MarkdownReport {
		t.Error("same draft produced two different markdown renderings")
	}
}

func TestReviewScoreBounds(t *testing.T) {
	rubric := mustRubric(t)

	for _, doc := range []string{fullDraft, emptyDraft, "milestone"} {
		report, err := rubric.Review(doc)
		if err != nil {
			t.Fatalf("review: %v", err)
		}
		total := 0.0
		for _, c := range report.Criteria {
			if c.Score < 0 || c.Score > c.MaxScore {
				t.Errorf("criterion %s score %v out of [0,%v]", c.CriterionID, c.Score, c.MaxScore)
			}
			if r := math.Mod(c.Score*2, 1); r != 0 {
				t.Errorf("criterion %s score %v is not a 0.5 multiple", c.CriterionID, c.Score)
			}
			for _, s := range c.Signals {
				if s.Confidence < 0 || s.Confidence > 1 {
					t.Errorf("signal %s confidence %v out of [0,1]", s.SignalID, s.Confidence)
				}
				if len(s.Evidence) > maxEvidenceSnippets {
					t.Errorf("signal %s has %d evidence snippets", s.SignalID, len(s.Evidence))
				}
			}
			total += c.Score
		}
		if total != report.OverallScore {
			t.Errorf("overall score %v != criterion sum %v", report.OverallScore, total)
		}
		if report.OverallScore < 0 || report.OverallScore > report.MaxPossibleScore {
			t.Errorf("overall score %v out of [0,%v]", report.OverallScore, report.MaxPossibleScore)
		}
	}
}

func TestReviewEmptyCoverage(t *testing.T) {
	rubric := mustRubric(t)

	report, err := rubric.Review(emptyDraft)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if report.OverallPassed {
		t.Error("a draft with no rubric concepts must not pass")
	}
	for _, c := range report.Criteria {
		if c.Score != 0.0 {
			t.Errorf("criterion %s: expected 0.0 for empty coverage, got %v", c.CriterionID, c.Score)
		}
		if c.Passed {
			t.Errorf("criterion %s must not pass at score 0", c.CriterionID)
		}
	}
}

// TestRequiredSignalsCarryThreshold validates the rubric's design intent:
// the required signals of every criterion carry enough weight that full
// confidence on them alone reaches the pass threshold.
func TestRequiredSignalsCarryThreshold(t *testing.T) {
	rubric := mustRubric(t)

	for _, rc := range rubric.Criteria {
		requiredWeight := 0.0
		for _, s := range rc.Signals {
			if s.Required {
				requiredWeight += s.Weight
			}
		}
		score := scaleScore(requiredWeight, rubric.MaxScore)
		if score < rubric.Threshold {
			t.Errorf("criterion %s: required signals reach only %.1f, below threshold %.1f",
				rc.ID, score, rubric.Threshold)
		}
	}
}

func TestObjectivesSignalScenario(t *testing.T) {
	rubric := mustRubric(t)
	signal, err := rubric.SignalByID("objectives_listed")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	doc := "O1: To develop a new sensor\nO2: To validate at 3 pilot sites\n"
	result, err := signal.Check(doc)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Found {
		t.Error("expected objectives_listed to detect enumerated objectives")
	}
	if result.Confidence <= 0 {
		t.Errorf("expected positive confidence, got %v", result.Confidence)
	}
	if len(result.Evidence) == 0 {
		t.Error("expected evidence snippets for matched objectives")
	}
}

func TestKPITableBonusScenario(t *testing.T) {
	rubric := mustRubric(t)
	signal, err := rubric.SignalByID("kpi_table")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	bare := "We track one KPI for adoption.\n"
	withTable := bare + "| Indicator | Baseline | Target |\n|---|---|---|\n"

	bareResult, err := signal.Check(bare)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	tableResult, err := signal.Check(withTable)
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if tableResult.Confidence <= bareResult.Confidence {
		t.Errorf("table variant (%v) must score strictly above bare variant (%v)",
			tableResult.Confidence, bareResult.Confidence)
	}
	// The increment is exactly the structural bonus: the added table row
	// contains no base-pattern matches of its own.
	if diff := tableResult.Confidence - bareResult.Confidence; math.Abs(diff-0.3) > 1e-9 {
		t.Errorf("expected the full 0.3 bonus, got increment %v", diff)
	}
}

func TestTRLProgressionBonus(t *testing.T) {
	rubric := mustRubric(t)
	signal, err := rubric.SignalByID("trl_progression")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	single, err := signal.Check("The prototype sits at TRL 4 today.")
	if err != nil {
		t.Fatal(err)
	}
	progression, err := signal.Check("We move from TRL 4 to TRL 7 over three years.")
	if err != nil {
		t.Fatal(err)
	}
	if progression.Confidence <= single.Confidence {
		t.Errorf("a TRL progression (%v) must outscore a single TRL mention (%v)",
			progression.Confidence, single.Confidence)
	}
}

func TestReviewCounts(t *testing.T) {
	rubric := mustRubric(t)

	report, err := rubric.Review("# Title\n\nfour words right here\n\n## Sub\n")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if report.DraftSectionCount != 2 {
		t.Errorf("expected 2 sections, got %d", report.DraftSectionCount)
	}
	// strings.Fields counts the heading markers as tokens too.
	if report.DraftWordCount != 8 {
		t.Errorf("expected 8 words, got %d", report.DraftWordCount)
	}
}

func TestScaleScore(t *testing.T) {
	tests := []struct {
		fraction float64
		want     float64
	}{
		{0.0, 0.0},
		{0.05, 0.5},  // 0.25 rounds half up
		{0.04, 0.0},  // 0.20 rounds down
		{0.6, 3.0},   // exact threshold
		{0.64, 3.0},  // 3.2 rounds down
		{0.65, 3.5},  // 3.25 rounds half up
		{1.0, 5.0},
		{1.2, 5.0},   // clamped
	}
	for _, tc := range tests {
		if got := scaleScore(tc.fraction, 5.0); got != tc.want {
			t.Errorf("scaleScore(%v) = %v, want %v", tc.fraction, got, tc.want)
		}
	}
}

func TestFullDraftPasses(t *testing.T) {
	rubric := mustRubric(t)

	report, err := rubric.Review(fullDraft)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	for _, c := range report.Criteria {
		if !c.Passed {
			t.Errorf("criterion %s scored %.1f, below threshold %.1f", c.CriterionID, c.Score, c.Threshold)
		}
	}
	if !report.OverallPassed {
		t.Errorf("full draft should pass overall, scored %.1f of %.1f (minimum %.1f)",
			report.OverallScore, report.MaxPossibleScore, report.PassMinimum)
	}
	if !strings.Contains(report.MarkdownReport, "PASS") {
		t.Error("markdown report should carry the PASS verdict")
	}
}

func BenchmarkReview(b *testing.B) {
	rubric := mustRubric(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rubric.Review(fullDraft); err != nil {
			b.Fatal(err)
		}
	}
}
