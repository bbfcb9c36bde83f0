// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notice shows blocking, user-facing notices for detection failures.
//
// A fatal detection must be acknowledged by the user before the zero result
// is handed back to the setup tool. Three notifiers are provided:
//
//   - TUI: a bubbletea modal, dismissed with Enter
//   - Text: a styled box on a writer, optionally waiting for Enter
//   - Log: records the notice in the log only (non-interactive runs)
//
// New picks one from the configured mode; "auto" uses the TUI when both
// stdin and stdout are terminals.
package notice
