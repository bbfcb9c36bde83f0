// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"strings"

	"golang.org/x/text/cases"
)

// =============================================================================
// TIERS
// =============================================================================

// Tier is the translation-layer feature level an adapter can run.
type Tier int

const (
	// TierNone means neither translation layer release can run.
	TierNone Tier = iota
	// TierLegacy supports the legacy translation layer (API 1.1 or 1.2).
	TierLegacy
	// TierModern supports the modern translation layer (robustness2 and
	// transform feedback with both robustness2 features enabled).
	TierModern
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierLegacy:
		return "legacy"
	case TierModern:
		return "modern"
	default:
		return "none"
	}
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classification is the tier and vendor verdict for one adapter.
type Classification struct {
	Tier            Tier `json:"tier"`
	Discrete        bool `json:"is_discrete"`
	IntelIntegrated bool `json:"is_intel_integrated"`
	Nvidia          bool `json:"is_nvidia"`
}

// Classify derives the tier and vendor flags for one adapter. The modern
// check runs first and ignores the API version.
func Classify(rec AdapterRecord) Classification {
	return Classification{
		Tier:            tierFor(rec),
		Discrete:        rec.DeviceType == DeviceDiscrete,
		IntelIntegrated: isIntelIntegrated(rec.DeviceName),
		Nvidia:          isNvidia(rec.DeviceName),
	}
}

// PessimisticClassification stands in for an adapter whose artifact could
// not be recognized: an outdated Intel integrated part, legacy tier only.
func PessimisticClassification() Classification {
	return Classification{
		Tier:            TierLegacy,
		IntelIntegrated: true,
	}
}

func tierFor(rec AdapterRecord) Tier {
	if rec.HasRobustness2Ext && rec.HasTransformFeedbackExt &&
		rec.RobustBufferAccess2 && rec.NullDescriptor {
		return TierModern
	}
	if rec.Version.Major == 1 && rec.Version.Minor >= 1 && rec.Version.Minor < 3 {
		return TierLegacy
	}
	return TierNone
}

// isIntelIntegrated matches full-schema names ("Intel(R) UHD Graphics 770")
// and legacy-schema names ("HD Graphics 4600").
func isIntelIntegrated(name string) bool {
	return strings.Contains(name, "Intel") || strings.Contains(name, intelIntegratedMarker)
}

// isNvidia matches "NVIDIA" in any case. A Caser is stateful, so each call
// gets its own.
func isNvidia(name string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(name), fold.String("NVIDIA"))
}
