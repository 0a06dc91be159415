// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// This file holds the detection and scoring arithmetic shared by every
// signal: the saturation function, match counting across pattern families,
// and bounded evidence extraction.

package rubric_engine

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// maxEvidenceSnippets caps the evidence list of a single signal.
	maxEvidenceSnippets = 3

	// maxSnippetRunes caps the length of one evidence snippet, counting a
	// trailing ellipsis when the source line had to be cut.
	maxSnippetRunes = 120
)

// saturate maps a raw match count to a confidence in [0, 1].
//
// Confidence grows linearly with evidence volume up to the signal's
// saturation point, then caps. A document that repeats one keyword many
// times never earns more than a document that reaches the saturation
// point once.
//
// saturate(n, s) == 0 for n <= 0, and saturate(n, s) == 1 for all n >= s.
func saturate(matchCount, saturationPoint int) float64 {
	if matchCount <= 0 {
		return 0
	}
	if saturationPoint <= 0 {
		saturationPoint = 1
	}
	c := float64(matchCount) / float64(saturationPoint)
	if c > 1.0 {
		return 1.0
	}
	return c
}

// clamp01 bounds a confidence value to [0, 1] after bonus adjustments.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Check runs the signal against the document text and returns a fresh
// RawCheckResult. The receiver is read-only; Check is safe to call from
// any number of goroutines at once.
//
// Match counts of the signal's pattern families are summed independently;
// overlaps between different families count separately because families
// are designed to be complementary, not mutually exclusive.
func (s *Signal) Check(doc string) (RawCheckResult, error) {
	if len(s.compiled) == 0 {
		// A signal without compiled patterns is a registry defect, never a
		// data-driven condition. Fail the whole evaluation loudly.
		return RawCheckResult{}, fmt.Errorf("signal %q has no compiled patterns", s.ID)
	}

	total := 0
	for _, re := range s.compiled {
		total += len(re.FindAllStringIndex(doc, -1))
	}

	confidence := saturate(total, s.Saturation)
	detail := fmt.Sprintf("No mention of %s detected.", strings.ToLower(s.Label))
	if total > 0 {
		detail = fmt.Sprintf("Detected %d supporting mention(s) of %s.", total, strings.ToLower(s.Label))
	}

	if s.bonus != nil && total > 0 {
		if amount, ok := s.bonus.apply(doc); ok {
			confidence += amount
			detail += " " + s.bonus.detail
		}
	}

	return RawCheckResult{
		Found:      total > 0,
		Confidence: clamp01(confidence),
		Evidence:   collectEvidence(doc, s.compiled),
		Detail:     detail,
	}, nil
}

// collectEvidence scans the pattern families in declared order and returns
// up to maxEvidenceSnippets unique snippets, one per matched line. The
// scan stops early once the cap is reached so evidence stays reproducible
// and bounded regardless of document size.
func collectEvidence(doc string, patterns []*regexp.Regexp) []string {
	evidence := make([]string, 0, maxEvidenceSnippets)
	seen := make(map[string]struct{}, maxEvidenceSnippets)

	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(doc, -1) {
			snippet := snippetAt(doc, loc[0])
			if snippet == "" {
				continue
			}
			if _, dup := seen[snippet]; dup {
				continue
			}
			seen[snippet] = struct{}{}
			evidence = append(evidence, snippet)
			if len(evidence) == maxEvidenceSnippets {
				return evidence
			}
		}
	}
	return evidence
}

// snippetAt extracts the full line containing the byte offset, trims it,
// strips leading markdown structure markers (heading, quote, bullet,
// table pipe) and truncates to maxSnippetRunes with a trailing ellipsis.
func snippetAt(doc string, offset int) string {
	start := strings.LastIndexByte(doc[:offset], '\n') + 1
	end := strings.IndexByte(doc[offset:], '\n')
	if end < 0 {
		end = len(doc)
	} else {
		end += offset
	}

	line := strings.TrimSpace(doc[start:end])
	line = strings.TrimLeft(line, "#>-*| \t")
	line = strings.TrimSpace(line)
	return truncateRunes(line, maxSnippetRunes)
}

// truncateRunes cuts s to at most limit runes. When the line is longer it
// keeps limit-1 runes and appends an ellipsis so the result stays within
// the limit.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
