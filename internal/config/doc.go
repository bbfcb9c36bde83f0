// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and validation for vktier.
//
// # Configuration Precedence
//
// Configuration is resolved from (highest first):
//   - Command-line flags (applied by the CLI)
//   - Environment variables (VKTIER_*)
//   - ~/.vktier/config.toml, or the file passed with --config
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	inv := probe.NewInvoker(runner, cfg.ProbeOptions())
package config
