// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import "sort"

// AdapterClass is the kind of adapter a runtime should be pinned to.
type AdapterClass string

const (
	// ClassNone means no adapter can run either translation layer.
	ClassNone AdapterClass = "none"
	// ClassDiscrete prefers the dedicated GPU.
	ClassDiscrete AdapterClass = "discrete"
	// ClassIntegrated prefers the integrated GPU.
	ClassIntegrated AdapterClass = "integrated"
)

// Recommendation is the runtime configuration the setup tool should apply.
type Recommendation struct {
	// Tier is the translation layer release to install.
	Tier Tier `json:"tier"`
	// Prefer is the adapter class the runtime should render on.
	Prefer AdapterClass `json:"prefer"`
	// Env holds environment variables that steer rendering to Prefer on
	// hybrid machines.
	Env map[string]string `json:"env,omitempty"`
	// Warnings are shown to the user alongside the choice.
	Warnings []string `json:"warnings,omitempty"`
}

// EnvKeys returns the Env keys in sorted order.
func (r Recommendation) EnvKeys() []string {
	keys := make([]string, 0, len(r.Env))
	for k := range r.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Recommend picks the translation tier and adapter class for a summary.
//
// The discrete adapter wins ties: with equal tiers it is the faster part.
// On hybrid machines the returned Env pins rendering to the discrete GPU
// (PRIME render offload for NVIDIA, DRI_PRIME otherwise).
func Recommend(s Summary) Recommendation {
	if s == (Summary{}) || s.BestTier() == TierNone {
		return Recommendation{
			Tier:   TierNone,
			Prefer: ClassNone,
			Warnings: []string{
				"No adapter supports a Vulkan translation layer. Games will fall back to the OpenGL-based renderer.",
			},
		}
	}

	rec := Recommendation{Tier: s.BestTier()}
	if s.DiscreteTier > TierNone && s.DiscreteTier >= s.IntegratedTier {
		rec.Prefer = ClassDiscrete
	} else {
		rec.Prefer = ClassIntegrated
	}

	if rec.Prefer == ClassDiscrete && s.Mixed() {
		if s.HasNvidia {
			rec.Env = map[string]string{
				"__NV_PRIME_RENDER_OFFLOAD": "1",
				"__GLX_VENDOR_LIBRARY_NAME": "nvidia",
				"__VK_LAYER_NV_optimus":     "NVIDIA_only",
			}
		} else {
			rec.Env = map[string]string{"DRI_PRIME": "1"}
		}
	}

	if rec.Prefer == ClassIntegrated && s.HasIntelIntegrated && s.IntegratedTier == TierLegacy {
		rec.Warnings = append(rec.Warnings,
			"Intel integrated graphics with older drivers only supports the legacy translation layer. Newer games may not start.")
	}
	if rec.Tier == TierLegacy {
		rec.Warnings = append(rec.Warnings,
			"Only the legacy translation layer is supported. Updating graphics drivers may enable the modern one.")
	}
	if s.DiscreteTier < s.IntegratedTier && s.Mixed() {
		rec.Warnings = append(rec.Warnings,
			"The integrated GPU supports a newer tier than the discrete GPU. The discrete GPU's drivers are likely outdated.")
	}
	return rec
}
