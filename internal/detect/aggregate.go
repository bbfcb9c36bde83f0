// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

// Summary is the machine-wide verdict handed back to the setup tool. The zero
// value means detection failed or no usable adapter was found.
type Summary struct {
	DiscreteTier       Tier `json:"discrete_tier"`
	IntegratedTier     Tier `json:"integrated_tier"`
	IntegratedOnly     bool `json:"integrated_only"`
	DiscreteOnly       bool `json:"discrete_only"`
	HasIntelIntegrated bool `json:"has_intel_integrated"`
	HasNvidia          bool `json:"has_nvidia"`
}

// NewSummary returns the identity of the fold: no adapters observed yet.
func NewSummary() Summary {
	return Summary{
		IntegratedOnly: true,
		DiscreteOnly:   true,
	}
}

// Add folds one adapter into the summary. Only a strictly higher tier
// replaces the class best, so on a tie the first adapter keeps its vendor
// attribution. Adapters of unknown type count as integrated.
func (s *Summary) Add(c Classification) {
	if c.Discrete {
		if c.Tier > s.DiscreteTier {
			s.DiscreteTier = c.Tier
			s.IntegratedOnly = false
		}
	} else if c.Tier > s.IntegratedTier {
		s.IntegratedTier = c.Tier
		s.DiscreteOnly = false
		if c.IntelIntegrated {
			s.HasIntelIntegrated = true
		}
	}
	s.HasNvidia = s.HasNvidia || c.Nvidia
}

// Aggregate folds classifications left to right starting from NewSummary.
func Aggregate(cs []Classification) Summary {
	s := NewSummary()
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

// BestTier returns the highest tier across both adapter classes.
func (s Summary) BestTier() Tier {
	if s.DiscreteTier > s.IntegratedTier {
		return s.DiscreteTier
	}
	return s.IntegratedTier
}

// Mixed reports whether both a discrete and an integrated adapter contributed.
func (s Summary) Mixed() bool {
	return !s.IntegratedOnly && !s.DiscreteOnly
}
