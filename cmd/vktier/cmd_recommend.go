// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vktier/internal/detect"
)

var recommendFlags probeFlags

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Detect adapters and print the runtime configuration to apply",
	Long: "recommend runs detection and prints which translation-layer tier to\n" +
		"install, which adapter to render on, and environment variables for\n" +
		"hybrid graphics machines.",
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendFlags.register(recommendCmd)
}

type recommendOutput struct {
	Summary        detect.Summary        `json:"summary"`
	Recommendation detect.Recommendation `json:"recommendation"`
	Error          string                `json:"error,omitempty"`
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if err := recommendFlags.apply(cfg); err != nil {
		return err
	}

	d, err := newDetector(cfg)
	if err != nil {
		return err
	}
	summary, detectErr := d.Detect(cmd.Context())
	rec := detect.Recommend(summary)

	out := cmd.OutOrStdout()
	if recommendFlags.json {
		err := writeJSON(out, recommendOutput{
			Summary:        summary,
			Recommendation: rec,
			Error:          errorText(detectErr),
		})
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, renderRecommendation(rec))
	}

	if detectErr != nil {
		return fmt.Errorf("detection failed: %w", detectErr)
	}
	return nil
}
