// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Structural bonuses reward well-supported presence over bare mention of a
// concept: a TRL progression between two levels beats a single TRL number,
// a KPI table with Baseline and Target columns beats the word "KPI".

package rubric_engine

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	bonusKindDistinctValues = "distinct_values"
	bonusKindTableColumns   = "table_columns"
)

// structuralBonus is the resolved, runtime form of a BonusDef. The check
// function is pure and depends only on the document text.
type structuralBonus struct {
	amount float64
	detail string
	check  func(doc string) bool
}

// apply returns the bonus amount and whether it was granted.
func (b *structuralBonus) apply(doc string) (float64, bool) {
	if b.check(doc) {
		return b.amount, true
	}
	return 0, false
}

// newStructuralBonus resolves a BonusDef into an executable bonus rule.
// An unknown kind or a malformed definition is a rubric misconfiguration
// and fails registry construction; nothing is resolved lazily at request
// time.
func newStructuralBonus(signalID string, def *BonusDef) (*structuralBonus, error) {
	if def.Amount <= 0 || def.Amount > 1 {
		return nil, fmt.Errorf("signal %q: bonus amount %v out of (0,1]", signalID, def.Amount)
	}

	switch def.Kind {
	case bonusKindDistinctValues:
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("signal %q: bad bonus pattern: %w", signalID, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("signal %q: distinct_values bonus pattern needs a capture group", signalID)
		}
		return &structuralBonus{
			amount: def.Amount,
			detail: def.Detail,
			check:  func(doc string) bool { return hasDistinctCaptures(re, doc) },
		}, nil

	case bonusKindTableColumns:
		if len(def.Columns) < 2 {
			return nil, fmt.Errorf("signal %q: table_columns bonus needs at least two column names", signalID)
		}
		columns := make([]string, len(def.Columns))
		for i, c := range def.Columns {
			columns[i] = strings.ToLower(c)
		}
		return &structuralBonus{
			amount: def.Amount,
			detail: def.Detail,
			check:  func(doc string) bool { return hasTableWithColumns(doc, columns) },
		}, nil

	default:
		return nil, fmt.Errorf("signal %q: unknown bonus kind %q", signalID, def.Kind)
	}
}

// hasDistinctCaptures reports whether the pattern's first capture group
// takes at least two distinct values across the document, e.g. "TRL 3"
// and "TRL 6" marking a progression rather than a single mention.
func hasDistinctCaptures(re *regexp.Regexp, doc string) bool {
	matches := re.FindAllStringSubmatch(doc, -1)
	seen := make(map[string]struct{}, 2)
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		seen[strings.ToLower(strings.TrimSpace(m[1]))] = struct{}{}
		if len(seen) >= 2 {
			return true
		}
	}
	return false
}

// hasTableWithColumns reports whether any single markdown table row
// carries every required column header. Matching is case-insensitive and
// restricted to lines that start with a pipe, so prose mentioning the
// header words does not qualify.
func hasTableWithColumns(doc string, lowerColumns []string) bool {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		lower := strings.ToLower(trimmed)
		all := true
		for _, col := range lowerColumns {
			if !strings.Contains(lower, col) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
