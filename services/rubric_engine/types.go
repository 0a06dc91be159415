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
	"regexp"

	"gopkg.in/yaml.v3"
)

// Criterion is one top-level evaluation axis of a funding rubric.
// The set of criteria is fixed per rubric version.
type Criterion string

const (
	CriterionExcellence     Criterion = "excellence"
	CriterionImpact         Criterion = "impact"
	CriterionImplementation Criterion = "implementation"
)

func (c *Criterion) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	incoming := Criterion(s)
	switch incoming {
	case CriterionExcellence, CriterionImpact, CriterionImplementation:
		*c = incoming
		return nil
	default:
		return fmt.Errorf("invalid value for Criterion: %q", incoming)
	}
}

// RubricFile is the top-level structure of an embedded rubric YAML file.
// One file declares one scheme.
type RubricFile struct {
	Scheme    string         `yaml:"scheme"`
	Title     string         `yaml:"title"`
	Version   string         `yaml:"version"`
	MaxScore  float64        `yaml:"max_score"`
	Threshold float64        `yaml:"threshold"`
	MinTotal  float64        `yaml:"min_total"`
	Criteria  []CriterionDef `yaml:"criteria"`
}

// CriterionDef declares one criterion and its signals in rendering order.
type CriterionDef struct {
	ID      Criterion   `yaml:"id"`
	Title   string      `yaml:"title"`
	Signals []SignalDef `yaml:"signals"`
}

// SignalDef is the declarative half of a signal: everything about the
// check that can be expressed as data. The registry turns each SignalDef
// into a runtime Signal with compiled patterns and a resolved bonus rule.
type SignalDef struct {
	ID          string       `yaml:"id"`
	Label       string       `yaml:"label"`
	Description string       `yaml:"description"`
	Weight      float64      `yaml:"weight"`
	Required    bool         `yaml:"required"`
	SectionHint string       `yaml:"section_hint"`
	Remediation string       `yaml:"remediation"`
	FixMinutes  int          `yaml:"fix_minutes"`
	Saturation  int          `yaml:"saturation"`
	Patterns    []PatternDef `yaml:"patterns"`
	Bonus       *BonusDef    `yaml:"bonus,omitempty"`
}

// PatternDef declares one pattern family. Families of the same signal are
// intentionally complementary; their match counts are summed, never merged.
type PatternDef struct {
	ID    string `yaml:"id"`
	Regex string `yaml:"regex"`
}

// BonusDef declares a structural bonus: a fixed confidence increment that
// is granted when a stronger form of the concept is present in addition to
// the base patterns. The combined confidence is clamped to [0, 1].
type BonusDef struct {
	// Kind selects the bonus rule. Supported kinds:
	//   - "distinct_values": Pattern must carry one capture group; the bonus
	//     is granted when two or more distinct captured values appear
	//     (e.g. a TRL progression between two levels).
	//   - "table_columns": the bonus is granted when a single markdown
	//     table row contains every header named in Columns
	//     (e.g. a KPI table with both a Baseline and a Target column).
	Kind    string   `yaml:"kind"`
	Amount  float64  `yaml:"amount"`
	Pattern string   `yaml:"pattern,omitempty"`
	Columns []string `yaml:"columns,omitempty"`
	Detail  string   `yaml:"detail,omitempty"`
}

// Signal is a named, weighted, pure check that detects one rubric concept
// in a document. Signals are built once by the registry and never mutated
// afterwards, so they are safe to share across concurrent evaluations.
type Signal struct {
	SignalDef
	Criterion Criterion

	compiled []*regexp.Regexp
	bonus    *structuralBonus
}

// RawCheckResult is the per-document output of a single signal check.
// A fresh value is produced on every evaluation; nothing is cached.
type RawCheckResult struct {
	Found      bool     `json:"found"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
	Detail     string   `json:"detail"`
}

// SignalResult pairs a signal's static metadata with its check outcome so
// the report renderer never needs to reach back into the registry.
type SignalResult struct {
	SignalID    string   `json:"signal_id"`
	Label       string   `json:"label"`
	Weight      float64  `json:"weight"`
	Required    bool     `json:"required"`
	Found       bool     `json:"found"`
	Confidence  float64  `json:"confidence"`
	Evidence    []string `json:"evidence"`
	Detail      string   `json:"detail"`
	SectionHint string   `json:"section_hint"`
	Remediation string   `json:"remediation"`
	FixMinutes  int      `json:"fix_minutes"`
}

// CriterionResult is the aggregated outcome for one criterion.
type CriterionResult struct {
	CriterionID    Criterion      `json:"criterion_id"`
	CriterionTitle string         `json:"criterion_title"`
	Score          float64        `json:"score"`
	Threshold      float64        `json:"threshold"`
	MaxScore       float64        `json:"max_score"`
	Passed         bool           `json:"passed"`
	Signals        []SignalResult `json:"signals"`
}

// ReviewerReport is the top-level output of one scoring request. It is
// immutable once returned and owned by the caller; the engine keeps no
// reference to it.
type ReviewerReport struct {
	Scheme            string            `json:"scheme"`
	RubricVersion     string            `json:"rubric_version"`
	OverallScore      float64           `json:"overall_score"`
	MaxPossibleScore  float64           `json:"max_possible_score"`
	PassMinimum       float64           `json:"pass_minimum"`
	OverallPassed     bool              `json:"overall_passed"`
	Criteria          []CriterionResult `json:"criteria"`
	DraftWordCount    int               `json:"draft_word_count"`
	DraftSectionCount int               `json:"draft_section_count"`
	MarkdownReport    string            `json:"markdown_report"`
}
