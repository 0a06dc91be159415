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
	"github.com/spf13/cobra"

	"github.com/AleutianAI/GrantPilot/pkg/logging"
)

// Config holds optional overrides loaded from config.yaml.
type Config struct {
	// DefaultScheme is used when --scheme is not passed.
	DefaultScheme string `yaml:"default_scheme"`

	// LogDir enables file logging for CLI runs.
	LogDir string `yaml:"log_dir"`
}

// cliLogger is initialized in PersistentPreRun, before any Run handler.
// Silent on stderr unless --verbose; writes to config.LogDir when set.
var cliLogger = logging.New(logging.Config{Quiet: true})

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "grantpilot",
		Short: "A CLI to score grant proposal drafts against funding-scheme rubrics",
		Long: `GrantPilot scores proposal drafts the way an evaluator reads them:
per criterion, per signal, with evidence and concrete remediation steps.
All scoring runs locally against rubrics embedded in the binary.`,
	}

	reviewCmd = &cobra.Command{
		Use:   "review [files...]",
		Short: "Score one or more proposal drafts and print reviewer reports",
		Long: `Reads each draft file, scores it against the selected scheme's rubric,
and prints the rendered reviewer report. Multiple files are scored in
parallel. The exit code is 1 if any draft is below the pass bar.`,
		Args: cobra.MinimumNArgs(1),
		Run:  runReviewCommand,
	}

	rubricCmd = &cobra.Command{
		Use:   "rubric",
		Short: "Inspect the rubrics embedded in this binary",
	}
	rubricVerifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Print the SHA256 fingerprint of the embedded rubric definitions",
		Run:   verifyRubrics,
	}
	rubricDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the embedded rubric YAML",
		Run:   dumpRubrics,
	}
	rubricListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the loaded schemes with their pass thresholds",
		Run:   listRubrics,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log progress to stderr")
	reviewCmd.Flags().StringVar(&reviewScheme, "scheme", "",
		"Funding scheme id (defaults to config default_scheme, then horizon-ri-2025)")
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false,
		"Output the full report as JSON instead of Markdown")
	rootCmd.AddCommand(reviewCmd)

	rubricVerifyCmd.Flags().BoolVar(&rubricVerifyJSON, "json", false,
		"Output verification result as JSON")
	rubricCmd.AddCommand(rubricVerifyCmd)
	rubricCmd.AddCommand(rubricDumpCmd)
	rubricCmd.AddCommand(rubricListCmd)
	rootCmd.AddCommand(rubricCmd)
}
