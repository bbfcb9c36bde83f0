// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect decides which translation-layer tier each graphics adapter
// supports and folds the adapters into one machine-wide Summary.
//
// Adapters are enumerated by the probe package. Each artifact is parsed into
// an AdapterRecord (two schema shapes are understood), classified into a
// Tier with vendor flags, and folded into a Summary. Fatal failures are shown
// to the user through a notice.Notifier before the zero Summary is returned.
//
// # Key Types
//
//   - AdapterRecord: normalized adapter properties, independent of schema
//   - Classification: tier (none/legacy/modern) plus discrete/Intel/NVIDIA flags
//   - Summary: per-class best tiers and machine flags handed to the setup tool
//   - Detector: runs enumerate, parse, classify, aggregate
//   - Recommendation: runtime configuration derived from a Summary
//
// # Tiers
//
//   - TierModern: VK_EXT_robustness2 and VK_EXT_transform_feedback present,
//     robustBufferAccess2 and nullDescriptor enabled
//   - TierLegacy: API version 1.1 or 1.2
//   - TierNone: anything else
//
// # Usage
//
//	d := detect.NewDetector(enumerator, notice.New(notice.ModeAuto, true))
//	summary, err := d.Detect(ctx)
//	if err != nil {
//		// the user has already been told; summary is the zero value
//	}
//	rec := detect.Recommend(summary)
package detect
