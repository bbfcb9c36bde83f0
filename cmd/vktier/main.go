// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command vktier checks which Vulkan translation-layer tier each graphics
// adapter supports and prints a machine summary for setup tooling.
//
// Usage:
//
//	vktier detect [--json] [--notice=auto|tui|text|none] [--tool=path]
//	vktier recommend [--json]
//	vktier config [--init [--force]]
//
// detect exits 1 when detection fails; the failure notice has already been
// shown by then.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
