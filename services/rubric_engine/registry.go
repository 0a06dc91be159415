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

	"github.com/AleutianAI/GrantPilot/services/rubric_engine/enforcement"
	"gopkg.in/yaml.v3"
)

// weightTolerance is how far a criterion's signal weights may drift from
// 1.0 before registry construction fails. A misweighted rubric must never
// produce a plausible-looking but wrong score.
const weightTolerance = 0.01

// defaultSaturation is used when a signal omits its saturation point.
const defaultSaturation = 3

// Registry owns every loaded rubric, keyed by scheme id. It is built once
// at startup, read many times, and never mutated after construction, so it
// is safe for concurrent use without locking.
type Registry struct {
	rubrics map[string]*Rubric
	order   []string
}

// Rubric is the complete, validated rule set for one funding scheme.
type Rubric struct {
	Scheme    string
	Title     string
	Version   string
	MaxScore  float64
	Threshold float64
	MinTotal  float64

	// Criteria preserves declaration order, which fixes report ordering.
	Criteria []RubricCriterion

	byID map[string]*Signal
}

// RubricCriterion groups one criterion's signals in declaration order.
type RubricCriterion struct {
	ID      Criterion
	Title   string
	Signals []*Signal
}

// NewRegistry builds the registry from the rubric definitions embedded in
// the binary via the enforcement package.
//
// It performs the following operations per scheme:
//  1. Unmarshals the embedded YAML data.
//  2. Compiles all pattern regexes and resolves bonus rules.
//  3. Validates that each criterion's signal weights sum to 1.0.
//
// Any violation is a build-time defect: the error must abort startup, not
// be logged and forgotten.
func NewRegistry() (*Registry, error) {
	r := &Registry{rubrics: make(map[string]*Rubric)}
	for _, raw := range enforcement.Rubrics {
		rubric, err := buildRubric(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := r.rubrics[rubric.Scheme]; dup {
			return nil, fmt.Errorf("duplicate scheme id %q in embedded rubrics", rubric.Scheme)
		}
		r.rubrics[rubric.Scheme] = rubric
		r.order = append(r.order, rubric.Scheme)
	}
	if len(r.order) == 0 {
		return nil, fmt.Errorf("no rubric definitions embedded")
	}
	return r, nil
}

// Rubric returns the rule set for a scheme id. An unknown scheme is a
// caller error (bad request), not a registry defect.
func (r *Registry) Rubric(scheme string) (*Rubric, error) {
	rubric, ok := r.rubrics[scheme]
	if !ok {
		return nil, fmt.Errorf("unknown scheme %q", scheme)
	}
	return rubric, nil
}

// Schemes lists the loaded scheme ids in registration order.
func (r *Registry) Schemes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SignalsForCriterion returns the criterion's signals in declaration
// order. The returned slice is shared and must not be modified.
func (rb *Rubric) SignalsForCriterion(c Criterion) []*Signal {
	for _, rc := range rb.Criteria {
		if rc.ID == c {
			return rc.Signals
		}
	}
	return nil
}

// SignalByID looks up a signal by its stable id. A miss is a programming
// error: ids are compile-time constants of the embedded rubric, never
// user input.
func (rb *Rubric) SignalByID(id string) (*Signal, error) {
	s, ok := rb.byID[id]
	if !ok {
		return nil, fmt.Errorf("signal not found: %q", id)
	}
	return s, nil
}

func buildRubric(raw []byte) (*Rubric, error) {
	var file RubricFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedded rubric: %w", err)
	}
	if file.Scheme == "" {
		return nil, fmt.Errorf("embedded rubric is missing a scheme id")
	}
	if len(file.Criteria) == 0 {
		return nil, fmt.Errorf("scheme %q declares no criteria", file.Scheme)
	}

	rubric := &Rubric{
		Scheme:    file.Scheme,
		Title:     file.Title,
		Version:   file.Version,
		MaxScore:  file.MaxScore,
		Threshold: file.Threshold,
		MinTotal:  file.MinTotal,
		byID:      make(map[string]*Signal),
	}

	for _, cd := range file.Criteria {
		rc := RubricCriterion{ID: cd.ID, Title: cd.Title}
		weightSum := 0.0

		for i := range cd.Signals {
			signal, err := buildSignal(cd.ID, cd.Signals[i])
			if err != nil {
				return nil, fmt.Errorf("scheme %q: %w", file.Scheme, err)
			}
			if _, dup := rubric.byID[signal.ID]; dup {
				return nil, fmt.Errorf("scheme %q: duplicate signal id %q", file.Scheme, signal.ID)
			}
			rubric.byID[signal.ID] = signal
			rc.Signals = append(rc.Signals, signal)
			weightSum += signal.Weight
		}

		if math.Abs(weightSum-1.0) > weightTolerance {
			return nil, fmt.Errorf("scheme %q: criterion %q signal weights sum to %.4f, want 1.0 ± %.2f",
				file.Scheme, cd.ID, weightSum, weightTolerance)
		}
		rubric.Criteria = append(rubric.Criteria, rc)
	}

	return rubric, nil
}

func buildSignal(criterion Criterion, def SignalDef) (*Signal, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("criterion %q declares a signal without an id", criterion)
	}
	if def.Weight <= 0 || def.Weight > 1 {
		return nil, fmt.Errorf("signal %q: weight %v out of (0,1]", def.ID, def.Weight)
	}
	if len(def.Patterns) == 0 {
		return nil, fmt.Errorf("signal %q declares no patterns", def.ID)
	}
	if def.Saturation <= 0 {
		def.Saturation = defaultSaturation
	}

	signal := &Signal{SignalDef: def, Criterion: criterion}
	for _, p := range def.Patterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("signal %q: failed to compile pattern %s: %w", def.ID, p.ID, err)
		}
		signal.compiled = append(signal.compiled, re)
	}

	if def.Bonus != nil {
		bonus, err := newStructuralBonus(def.ID, def.Bonus)
		if err != nil {
			return nil, err
		}
		signal.bonus = bonus
	}

	return signal, nil
}
