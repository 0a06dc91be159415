// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/GrantPilot/pkg/validation"
	"github.com/AleutianAI/GrantPilot/services/rubric_engine"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	reviewScheme string
	reviewJSON   bool
)

// defaultScheme is used when neither --scheme nor config.yaml names one.
const defaultScheme = "horizon-ri-2025"

// resolveScheme applies precedence: --scheme flag, config.yaml, built-in.
func resolveScheme(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return defaultScheme
}

// fileReport pairs one input file with its scored report.
type fileReport struct {
	File   string                        `json:"file"`
	Report *rubric_engine.ReviewerReport `json:"report"`
}

// =============================================================================
// REVIEW COMMAND
// =============================================================================

// runReviewCommand is the CLI handler for "grantpilot review [files...]".
//
// Each file is read, validated, and scored against the selected scheme's
// rubric. Files are scored in parallel; output preserves the argument
// order so reports are stable across runs.
//
// # Exit Codes
//
//   - 0: All drafts pass the rubric's bar
//   - 1: At least one draft is below the bar
//   - 2: Error (unreadable file, unknown scheme, draft too short)
func runReviewCommand(cmd *cobra.Command, args []string) {
	scheme := resolveScheme(reviewScheme, config.DefaultScheme)
	if err := validation.ValidateSchemeID(scheme); err != nil {
		OutputError(reviewJSON, "Invalid scheme id", err)
		exit(CLIExitError)
	}

	registry, err := rubric_engine.NewRegistry()
	if err != nil {
		OutputError(reviewJSON, "Failed to load embedded rubrics", err)
		exit(CLIExitError)
	}
	rubric, err := registry.Rubric(scheme)
	if err != nil {
		OutputError(reviewJSON, "Unknown scheme", err)
		exit(CLIExitError)
	}

	reports := make([]fileReport, len(args))
	var g errgroup.Group
	g.SetLimit(4)
	for i, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			doc := string(data)
			if err := validation.ValidateDocument(doc); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			cliLogger.Debug("scoring draft", "file", path, "scheme", scheme)
			report, err := rubric.Review(doc)
			if err != nil {
				return fmt.Errorf("scoring %s: %w", path, err)
			}
			cliLogger.Info("review complete",
				"file", path,
				"overall_score", report.OverallScore,
				"passed", report.OverallPassed)
			reports[i] = fileReport{File: path, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		OutputError(reviewJSON, "Review failed", err)
		exit(CLIExitError)
	}

	if reviewJSON {
		if err := OutputJSON(reports, false); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			exit(CLIExitError)
		}
	} else {
		for _, fr := range reports {
			if len(reports) > 1 {
				fmt.Printf("===== %s =====\n\n", fr.File)
			}
			fmt.Println(fr.Report.MarkdownReport)
		}
	}

	for _, fr := range reports {
		if !fr.Report.OverallPassed {
			exit(CLIExitFindings)
		}
	}
	exit(CLIExitSuccess)
}
