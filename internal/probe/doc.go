// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package probe runs the external Vulkan probing tool once per adapter index
// and collects the JSON artifacts it writes.
//
// This is the only package that starts processes or touches artifact files.
// Each adapter index gets its own deterministic artifact name, so probes never
// share a file. Artifacts are removed as soon as they have been read.
//
// # Key Types
//
//   - Runner: starts one process with a bounded wait (ExecRunner in production)
//   - Invoker: probes one adapter index, with a single fallback invocation
//   - Enumerator: probes indices 0, 1, 2, ... until the tool reports no such adapter
//   - Outcome: the result of one probe (artifact, no such adapter, tool unavailable, artifact missing)
//
// # Usage
//
//	inv := probe.NewInvoker(probe.NewExecRunner(opts.Timeout), opts)
//	artifacts, err := probe.NewEnumerator(inv, opts.MaxAdapters).Enumerate(ctx)
//	if errors.Is(err, probe.ErrToolUnavailable) {
//		// drivers or tooling missing
//	}
package probe
