// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/vktier/internal/config"
	"github.com/jeranaias/vktier/internal/logging"
)

var configFlags struct {
	init  bool
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: "config prints the configuration after defaults, the config file and\n" +
		"VKTIER_* environment variables have been applied. With --init it\n" +
		"writes the defaults to the config file instead.",
	Args:              cobra.NoArgs,
	PersistentPreRunE: setupConfig,
	RunE:              runConfig,
}

func init() {
	f := configCmd.Flags()
	f.BoolVar(&configFlags.init, "init", false, "write a default config file")
	f.BoolVar(&configFlags.force, "force", false, "with --init, overwrite an existing file")
}

// setupConfig skips loading for --init so a broken or missing file can be
// replaced.
func setupConfig(cmd *cobra.Command, args []string) error {
	if configFlags.init {
		logging.Setup("info", cmd.ErrOrStderr())
		return nil
	}
	return setup(cmd, args)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if !configFlags.init {
		return cfg.Encode(out)
	}

	path := rootFlags.configPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !configFlags.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check %s: %w", path, err)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
