// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vktier/internal/detect"
)

// hybridTool stands in for vulkaninfo on a laptop with an Intel iGPU at
// index 0 and an NVIDIA dGPU at index 1.
const hybridTool = `#!/bin/sh
index=""
out=""
while [ $# -gt 0 ]; do
	case "$1" in
		--json=*) index="${1#--json=}" ;;
		--output) shift; out="$1" ;;
	esac
	shift
done
case "$index" in
0) printf '%s' '{"capabilities":{"device":{"properties":{"VkPhysicalDeviceProperties":{"deviceName":"Intel(R) UHD Graphics 620","apiVersion":4202496,"deviceType":"VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU"}}}}}' > "$out" ;;
1) printf '%s' '{"capabilities":{"device":{"extensions":{"VK_EXT_robustness2":1,"VK_EXT_transform_feedback":1},"features":{"VkPhysicalDeviceRobustness2FeaturesEXT":{"robustBufferAccess2":true,"nullDescriptor":true}},"properties":{"VkPhysicalDeviceProperties":{"deviceName":"NVIDIA GeForce RTX 3060 Laptop GPU","apiVersion":4206847,"deviceType":"VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU"}}}}}' > "$out" ;;
*) echo "The selected gpu ($index) is not a valid GPU index." >&2; exit 1 ;;
esac
`

func writeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vulkaninfo")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// runCLI executes the root command in an isolated home with notices routed
// to the log.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VKTIER_ARTIFACT_DIR", t.TempDir())
	t.Setenv("VKTIER_NOTICE_MODE", "none")

	rootFlags.configPath, rootFlags.logLevel, rootFlags.noColor = "", "", false
	detectFlags = probeFlags{}
	recommendFlags = probeFlags{}
	configFlags.init, configFlags.force = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_DetectJSON(t *testing.T) {
	tool := writeTool(t, hybridTool)

	out, err := runCLI(t, "detect", "--json", "--tool", tool)

	require.NoError(t, err)
	var got struct {
		RunID    string            `json:"run_id"`
		Summary  detect.Summary    `json:"summary"`
		Adapters []json.RawMessage `json:"adapters"`
		Error    string            `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Empty(t, got.Error)
	require.Len(t, got.Adapters, 2)
	assert.Contains(t, string(got.Adapters[1]), `"shape": "full"`)
	assert.Equal(t, detect.Summary{
		DiscreteTier:       detect.TierModern,
		IntegratedTier:     detect.TierLegacy,
		HasIntelIntegrated: true,
		HasNvidia:          true,
	}, got.Summary)
}

func TestCLI_DetectTable(t *testing.T) {
	tool := writeTool(t, hybridTool)

	out, err := runCLI(t, "detect", "--tool", tool, "--no-color")

	require.NoError(t, err)
	assert.Contains(t, out, "Intel(R) UHD Graphics 620")
	assert.Contains(t, out, "mixed")
}

func TestCLI_DetectToolMissing(t *testing.T) {
	out, err := runCLI(t, "detect", "--json", "--tool", filepath.Join(t.TempDir(), "no-such-tool"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "detection failed")

	var got struct {
		Summary detect.Summary `json:"summary"`
		Error   string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, detect.Summary{}, got.Summary)
	assert.NotEmpty(t, got.Error)
}

func TestCLI_RecommendJSON(t *testing.T) {
	tool := writeTool(t, hybridTool)

	out, err := runCLI(t, "recommend", "--json", "--tool", tool)

	require.NoError(t, err)
	var got struct {
		Recommendation detect.Recommendation `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, detect.ClassDiscrete, got.Recommendation.Prefer)
	assert.Equal(t, "nvidia", got.Recommendation.Env["__GLX_VENDOR_LIBRARY_NAME"])
}

func TestCLI_RejectsBadNoticeMode(t *testing.T) {
	_, err := runCLI(t, "detect", "--notice", "popup")
	assert.ErrorContains(t, err, "notice.mode")
}

func TestCLI_ConfigPrintsTOML(t *testing.T) {
	out, err := runCLI(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "[probe]")
	assert.Contains(t, out, `tool = "vulkaninfo"`)
}

func TestCLI_ConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "vktier.toml")

	out, err := runCLI(t, "--config", path, "config", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = runCLI(t, "--config", path, "config", "--init")
	assert.ErrorContains(t, err, "already exists")

	_, err = runCLI(t, "--config", path, "config", "--init", "--force")
	assert.NoError(t, err)
}
