// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across vktier.
//
//   - AtomicWriteFile: crash-safe file writing with fsync, used to capture
//     probe output and to save configuration
//   - TruncateRunes, TruncateWidth: UTF-8 safe truncation for notices and
//     terminal tables
package util
