// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func modernRecord(v VulkanVersion) AdapterRecord {
	return AdapterRecord{
		DeviceName:              "GPU",
		Version:                 v,
		HasRobustness2Ext:       true,
		HasTransformFeedbackExt: true,
		RobustBufferAccess2:     true,
		NullDescriptor:          true,
	}
}

func TestClassify_ModernIgnoresVersion(t *testing.T) {
	for _, v := range []VulkanVersion{{1, 0}, {1, 1}, {1, 3}, {2, 0}, {0, 0}} {
		got := Classify(modernRecord(v))
		assert.Equal(t, TierModern, got.Tier, "version %s", v)
	}
}

func TestClassify_ModernNeedsAllFour(t *testing.T) {
	unset := []func(*AdapterRecord){
		func(r *AdapterRecord) { r.HasRobustness2Ext = false },
		func(r *AdapterRecord) { r.HasTransformFeedbackExt = false },
		func(r *AdapterRecord) { r.RobustBufferAccess2 = false },
		func(r *AdapterRecord) { r.NullDescriptor = false },
	}
	for i, fn := range unset {
		rec := modernRecord(VulkanVersion{Major: 1, Minor: 2})
		fn(&rec)
		assert.Equal(t, TierLegacy, Classify(rec).Tier, "case %d", i)

		rec = modernRecord(VulkanVersion{Major: 1, Minor: 3})
		fn(&rec)
		assert.Equal(t, TierNone, Classify(rec).Tier, "case %d", i)
	}
}

func TestClassify_VersionTiers(t *testing.T) {
	tests := []struct {
		v    VulkanVersion
		want Tier
	}{
		{VulkanVersion{1, 0}, TierNone},
		{VulkanVersion{1, 1}, TierLegacy},
		{VulkanVersion{1, 2}, TierLegacy},
		{VulkanVersion{1, 3}, TierNone},
		{VulkanVersion{1, 4}, TierNone},
		{VulkanVersion{2, 1}, TierNone},
		{VulkanVersion{0, 1}, TierNone},
	}
	for _, tc := range tests {
		got := Classify(AdapterRecord{DeviceName: "GPU", Version: tc.v})
		assert.Equal(t, tc.want, got.Tier, "version %s", tc.v)
	}
}

func TestClassify_VendorFlags(t *testing.T) {
	tests := []struct {
		name    string
		devType DeviceType
		want    Classification
	}{
		{"NVIDIA GeForce RTX 4090", DeviceDiscrete, Classification{Discrete: true, Nvidia: true}},
		{"nvidia quadro p2000", DeviceDiscrete, Classification{Discrete: true, Nvidia: true}},
		{"Intel(R) UHD Graphics 770", DeviceIntegrated, Classification{IntelIntegrated: true}},
		{"Intel(R) HD Graphics 630", DeviceIntegrated, Classification{IntelIntegrated: true}},
		{"HD Graphics 4600", DeviceUnknown, Classification{IntelIntegrated: true}},
		{"AMD Radeon RX 6700 XT", DeviceDiscrete, Classification{Discrete: true}},
		{"llvmpipe (LLVM 15.0.7, 256 bits)", DeviceUnknown, Classification{}},
	}
	for _, tc := range tests {
		got := Classify(AdapterRecord{DeviceName: tc.name, DeviceType: tc.devType})
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestPessimisticClassification(t *testing.T) {
	got := PessimisticClassification()
	assert.Equal(t, TierLegacy, got.Tier)
	assert.True(t, got.IntelIntegrated)
	assert.False(t, got.Discrete)
	assert.False(t, got.Nvidia)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "none", TierNone.String())
	assert.Equal(t, "legacy", TierLegacy.String())
	assert.Equal(t, "modern", TierModern.String())
	assert.Equal(t, "none", Tier(9).String())
}
