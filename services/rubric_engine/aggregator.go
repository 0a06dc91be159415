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
	"math"
	"regexp"
	"strings"
)

var headingLine = regexp.MustCompile(`(?m)^#{1,6}\s`)

// Review scores a document against the rubric and returns the complete
// ReviewerReport, markdown rendering included.
//
// The whole computation is pure: no I/O, no clock, no randomness. Scoring
// the same document twice yields byte-identical reports, which is the
// guarantee the product makes to its users.
//
// Minimum-length enforcement is the caller's job; Review itself scores
// whatever it is given. A signal check error is a registry defect and
// fails the whole evaluation: a silently skipped signal would shift the
// weighted average's effective denominator with no visible sign.
func (rb *Rubric) Review(doc string) (*ReviewerReport, error) {
	report := &ReviewerReport{
		Scheme:           rb.Scheme,
		RubricVersion:    rb.Version,
		MaxPossibleScore: rb.MaxScore * float64(len(rb.Criteria)),
		PassMinimum:      rb.MinTotal,
	}

	allPassed := true
	for _, rc := range rb.Criteria {
		cr, err := rb.scoreCriterion(rc, doc)
		if err != nil {
			return nil, fmt.Errorf("criterion %q: %w", rc.ID, err)
		}
		report.Criteria = append(report.Criteria, cr)
		report.OverallScore += cr.Score
		if !cr.Passed {
			allPassed = false
		}
	}

	report.OverallPassed = allPassed && report.OverallScore >= rb.MinTotal
	report.DraftWordCount = len(strings.Fields(strings.TrimSpace(doc)))
	report.DraftSectionCount = len(headingLine.FindAllString(doc, -1))
	report.MarkdownReport = RenderMarkdown(report)
	return report, nil
}

// scoreCriterion runs every signal of one criterion and folds the results
// into a CriterionResult. Signal order follows declaration order; the
// weighted sum itself is order-independent.
func (rb *Rubric) scoreCriterion(rc RubricCriterion, doc string) (CriterionResult, error) {
	result := CriterionResult{
		CriterionID:    rc.ID,
		CriterionTitle: rc.Title,
		Threshold:      rb.Threshold,
		MaxScore:       rb.MaxScore,
	}

	raw := 0.0
	for _, signal := range rc.Signals {
		check, err := signal.Check(doc)
		if err != nil {
			return CriterionResult{}, fmt.Errorf("signal %q: %w", signal.ID, err)
		}
		raw += signal.Weight * check.Confidence
		result.Signals = append(result.Signals, SignalResult{
			SignalID:    signal.ID,
			Label:       signal.Label,
			Weight:      signal.Weight,
			Required:    signal.Required,
			Found:       check.Found,
			Confidence:  check.Confidence,
			Evidence:    check.Evidence,
			Detail:      check.Detail,
			SectionHint: signal.SectionHint,
			Remediation: signal.Remediation,
			FixMinutes:  signal.FixMinutes,
		})
	}

	result.Score = scaleScore(raw, rb.MaxScore)
	result.Passed = result.Score >= rb.Threshold
	return result, nil
}

// scaleScore maps a weighted fraction in [0, 1] to the 0-maxScore scale in
// half-point increments, rounding half up. 0.65 -> 3.5 on a 5-point
// scale; 0.64 -> 3.0. Clamped to [0, maxScore].
func scaleScore(fraction, maxScore float64) float64 {
	score := math.Floor(fraction*maxScore*2+0.5) / 2
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
