// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vktier/internal/config"
	"github.com/jeranaias/vktier/internal/detect"
	"github.com/jeranaias/vktier/internal/notice"
	"github.com/jeranaias/vktier/internal/probe"
)

// probeFlags override the probe and notice sections for one run.
type probeFlags struct {
	json   bool
	notice string
	tool   string
}

func (f *probeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.json, "json", false, "print machine-readable JSON")
	fs.StringVar(&f.notice, "notice", "", "how failures are shown: auto, tui, text, none")
	fs.StringVar(&f.tool, "tool", "", "probing tool to run instead of the configured one")
}

// apply writes the overrides into c and revalidates it.
func (f *probeFlags) apply(c *config.Config) error {
	if f.tool != "" {
		c.Probe.Tool = f.tool
	}
	if f.notice != "" {
		c.Notice.Mode = f.notice
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

var detectFlags probeFlags

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Probe every adapter and print the machine summary",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func init() {
	detectFlags.register(detectCmd)
}

// detectOutput is the --json shape of the detect command.
type detectOutput struct {
	*detect.Report
	Error string `json:"error,omitempty"`
}

func runDetect(cmd *cobra.Command, _ []string) error {
	if err := detectFlags.apply(cfg); err != nil {
		return err
	}

	d, err := newDetector(cfg)
	if err != nil {
		return err
	}
	report, detectErr := d.Run(cmd.Context())

	out := cmd.OutOrStdout()
	if detectFlags.json {
		if err := writeJSON(out, detectOutput{Report: report, Error: errorText(detectErr)}); err != nil {
			return err
		}
	} else if detectErr == nil {
		fmt.Fprintln(out, renderReport(report))
	}

	if detectErr != nil {
		return fmt.Errorf("detection failed: %w", detectErr)
	}
	return nil
}

// newDetector wires the exec runner, invoker and enumerator for c. The
// artifact directory doubles as the tool's working directory.
func newDetector(c *config.Config) (*detect.Detector, error) {
	opts := c.ProbeOptions()
	if err := os.MkdirAll(opts.ArtifactDir, 0755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	runner := probe.NewExecRunner(opts.Timeout).WithDir(opts.ArtifactDir)
	inv := probe.NewInvoker(runner, opts)
	source := probe.NewEnumerator(inv, opts.MaxAdapters)
	return detect.NewDetector(source, notice.New(c.Notice.Mode, c.Notice.Wait)), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
