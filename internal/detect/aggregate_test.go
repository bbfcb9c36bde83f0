// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, NewSummary(), s)
	assert.True(t, s.IntegratedOnly)
	assert.True(t, s.DiscreteOnly)
	assert.Equal(t, TierNone, s.BestTier())
}

func TestAggregate_SingleDiscrete(t *testing.T) {
	s := Aggregate([]Classification{{Tier: TierModern, Discrete: true, Nvidia: true}})
	assert.Equal(t, Summary{
		DiscreteTier: TierModern,
		DiscreteOnly: true,
		HasNvidia:    true,
	}, s)
}

func TestAggregate_SingleIntegrated(t *testing.T) {
	s := Aggregate([]Classification{{Tier: TierLegacy, IntelIntegrated: true}})
	assert.Equal(t, Summary{
		IntegratedTier:     TierLegacy,
		IntegratedOnly:     true,
		HasIntelIntegrated: true,
	}, s)
}

func TestAggregate_Mixed(t *testing.T) {
	s := Aggregate([]Classification{
		{Tier: TierModern, IntelIntegrated: true},
		{Tier: TierModern, Discrete: true, Nvidia: true},
	})
	assert.True(t, s.Mixed())
	assert.Equal(t, TierModern, s.DiscreteTier)
	assert.Equal(t, TierModern, s.IntegratedTier)
	assert.True(t, s.HasIntelIntegrated)
	assert.True(t, s.HasNvidia)
}

func TestAggregate_TierNoneLeavesOnlyFlags(t *testing.T) {
	s := Aggregate([]Classification{{Tier: TierNone, Discrete: true}})
	assert.Equal(t, NewSummary(), s)
}

func TestAggregate_TieKeepsFirstSeenAttribution(t *testing.T) {
	// An equal-tier Intel part after a non-Intel integrated part does not
	// set the Intel flag.
	s := Aggregate([]Classification{
		{Tier: TierLegacy},
		{Tier: TierLegacy, IntelIntegrated: true},
	})
	assert.False(t, s.HasIntelIntegrated)

	s = Aggregate([]Classification{
		{Tier: TierLegacy, IntelIntegrated: true},
		{Tier: TierLegacy},
	})
	assert.True(t, s.HasIntelIntegrated)
}

func TestAggregate_NvidiaIndependentOfTier(t *testing.T) {
	s := Aggregate([]Classification{
		{Tier: TierModern, Discrete: true},
		{Tier: TierNone, Discrete: true, Nvidia: true},
	})
	assert.True(t, s.HasNvidia)
}

func TestAggregate_OrderInsensitiveTiers(t *testing.T) {
	set := []Classification{
		{Tier: TierLegacy, IntelIntegrated: true},
		{Tier: TierModern, Discrete: true, Nvidia: true},
		{Tier: TierNone, Discrete: true},
		{Tier: TierModern},
		{Tier: TierLegacy, Discrete: true},
	}

	want := Aggregate(set)
	permute(set, 0, func(p []Classification) {
		got := Aggregate(p)
		assert.Equal(t, want.DiscreteTier, got.DiscreteTier)
		assert.Equal(t, want.IntegratedTier, got.IntegratedTier)
		assert.Equal(t, want.IntegratedOnly, got.IntegratedOnly)
		assert.Equal(t, want.DiscreteOnly, got.DiscreteOnly)
		assert.Equal(t, want.HasNvidia, got.HasNvidia)
	})
}

// permute calls fn with every ordering of cs, mutating cs in place.
func permute(cs []Classification, k int, fn func([]Classification)) {
	if k == len(cs) {
		fn(cs)
		return
	}
	for i := k; i < len(cs); i++ {
		cs[k], cs[i] = cs[i], cs[k]
		permute(cs, k+1, fn)
		cs[k], cs[i] = cs[i], cs[k]
	}
}

func TestSummary_BestTier(t *testing.T) {
	assert.Equal(t, TierModern, Summary{DiscreteTier: TierModern, IntegratedTier: TierLegacy}.BestTier())
	assert.Equal(t, TierLegacy, Summary{IntegratedTier: TierLegacy}.BestTier())
	assert.Equal(t, TierNone, Summary{}.BestTier())
}
