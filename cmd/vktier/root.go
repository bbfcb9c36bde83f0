// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jeranaias/vktier/internal/config"
	"github.com/jeranaias/vktier/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	noColor    bool
}

// cfg is the effective configuration, loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vktier",
	Short: "Detect Vulkan translation-layer support on this machine",
	Long: "vktier probes every graphics adapter with the Vulkan probing tool,\n" +
		"classifies each one as supporting the modern, legacy or no\n" +
		"translation-layer tier, and summarizes the machine for setup tools.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "config file (default ~/.vktier/config.toml)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVar(&rootFlags.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = version
}

// setup loads configuration, applies global flags and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	logging.Setup("info", cmd.ErrOrStderr())

	loaded, err := loadConfig(rootFlags.configPath)
	if err != nil {
		return err
	}
	if rootFlags.logLevel != "" {
		loaded.Log.Level = rootFlags.logLevel
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	logging.Setup(loaded.Log.Level, cmd.ErrOrStderr())
	if rootFlags.noColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg = loaded
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}
