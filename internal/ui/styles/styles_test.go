// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelColor(t *testing.T) {
	assert.Equal(t, Emerald, LevelColor(2))
	assert.Equal(t, Emerald, LevelColor(3))
	assert.Equal(t, Amber, LevelColor(1))
	assert.Equal(t, Rose, LevelColor(0))
	assert.Equal(t, Rose, LevelColor(-1))
}

func TestLevelIndicator(t *testing.T) {
	assert.Equal(t, "[OK]", LevelIndicator(2))
	assert.Equal(t, "[!]", LevelIndicator(1))
	assert.Equal(t, "[X]", LevelIndicator(0))
}

func TestBadge_KeepsIndicator(t *testing.T) {
	assert.Contains(t, Badge(1, "legacy"), "[!] legacy")
}

func TestIndicatorsDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
	} {
		assert.False(t, seen[s], "duplicate indicator %q", s)
		seen[s] = true
	}
}
