// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullSpec describes a full-capability artifact for tests.
type fullSpec struct {
	name       string
	apiVersion uint32
	deviceType any
	robust2    bool
	xfb        bool
	rba2       bool
	nullDesc   bool
}

func fullArtifact(t *testing.T, s fullSpec) []byte {
	t.Helper()

	exts := map[string]any{"VK_KHR_swapchain": 70}
	if s.robust2 {
		exts["VK_EXT_robustness2"] = 1
	}
	if s.xfb {
		exts["VK_EXT_transform_feedback"] = 1
	}

	doc := map[string]any{
		"$schema": "https://schema.khronos.org/vulkan/profiles-0.8-latest.json#",
		"capabilities": map[string]any{
			"device": map[string]any{
				"extensions": exts,
				"features": map[string]any{
					"VkPhysicalDeviceRobustness2FeaturesEXT": map[string]any{
						"robustBufferAccess2": s.rba2,
						"robustImageAccess2":  true,
						"nullDescriptor":      s.nullDesc,
					},
				},
				"properties": map[string]any{
					"VkPhysicalDeviceProperties": map[string]any{
						"apiVersion":    s.apiVersion,
						"deviceName":    s.name,
						"deviceType":    s.deviceType,
						"driverVersion": 2227912704,
					},
				},
			},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func legacyArtifact(t *testing.T, name, version string) []byte {
	t.Helper()
	doc := map[string]any{
		"$schema": "https://schema.khronos.org/vulkan/devsim_1_0_0.json#",
		"comments": map[string]any{
			"desc":             "JSON configuration file describing GPU 0.",
			"vulkanApiVersion": version,
		},
		"VkPhysicalDeviceProperties": map[string]any{
			"deviceName": name,
			"deviceID":   22802,
			"vendorID":   32902,
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

const (
	version10 uint32 = 1<<22 | 0<<12
	version11 uint32 = 1<<22 | 1<<12
	version12 uint32 = 1<<22 | 2<<12
	version13 uint32 = 1<<22 | 3<<12 | 231
)
