// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrArtifactUnreadable means the probe artifact is not valid JSON.
	// Fatal for the whole detection.
	ErrArtifactUnreadable = errors.New("probe artifact is not valid JSON")

	// ErrArtifactUnrecognized means the artifact is JSON but matches neither
	// known schema. The adapter falls back to PessimisticClassification.
	ErrArtifactUnrecognized = errors.New("probe artifact has an unrecognized schema")
)

// Extension and feature names that gate the modern tier.
const (
	extRobustness2       = "VK_EXT_robustness2"
	extTransformFeedback = "VK_EXT_transform_feedback"

	featureRobustBufferAccess2 = "robustBufferAccess2"
	featureNullDescriptor      = "nullDescriptor"
)

// intelIntegratedMarker identifies Intel integrated parts by device name.
const intelIntegratedMarker = "HD Graphics"

// Lookup paths into the two schemas the probing tool emits.
const (
	fullPropertiesPath = "capabilities.device.properties.VkPhysicalDeviceProperties"
	fullExtensionsPath = "capabilities.device.extensions"
	fullFeaturesPath   = "capabilities.device.features"

	legacyPropertiesPath = "VkPhysicalDeviceProperties"
)

var (
	robustness2FeatureStructs = []string{
		"VkPhysicalDeviceRobustness2FeaturesEXT",
		"VkPhysicalDeviceRobustness2FeaturesKHR",
	}

	legacyVersionPaths = []string{
		legacyPropertiesPath + ".apiVersion",
		"comments.vulkanApiVersion",
		"vulkanApiVersion",
	}
)

// =============================================================================
// DEVICE TYPE
// =============================================================================

// DeviceType is the physical device class an adapter reports.
type DeviceType int

const (
	// DeviceUnknown covers virtual, CPU and unreported device types.
	DeviceUnknown DeviceType = iota
	// DeviceDiscrete is a dedicated graphics card.
	DeviceDiscrete
	// DeviceIntegrated is a GPU sharing the CPU package.
	DeviceIntegrated
)

// String returns the string representation of the device type.
func (d DeviceType) String() string {
	switch d {
	case DeviceDiscrete:
		return "discrete"
	case DeviceIntegrated:
		return "integrated"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DeviceType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// parseDeviceType accepts the enumerant string or its numeric value.
func parseDeviceType(v gjson.Result) DeviceType {
	switch v.Type {
	case gjson.String:
		switch v.Str {
		case "VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU":
			return DeviceDiscrete
		case "VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU":
			return DeviceIntegrated
		}
	case gjson.Number:
		switch v.Int() {
		case 2:
			return DeviceDiscrete
		case 1:
			return DeviceIntegrated
		}
	}
	return DeviceUnknown
}

// =============================================================================
// SCHEMA SHAPES
// =============================================================================

// Shape identifies which probe schema an artifact matched.
type Shape int

const (
	// ShapeUnrecognized matched neither schema.
	ShapeUnrecognized Shape = iota
	// ShapeFull is the capabilities schema with extension and feature detail.
	ShapeFull
	// ShapeLegacy is the minimal schema older integrated drivers emit.
	ShapeLegacy
)

// String returns the string representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeFull:
		return "full"
	case ShapeLegacy:
		return "legacy"
	default:
		return "unrecognized"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AdapterRecord is the schema-independent view of one adapter.
type AdapterRecord struct {
	DeviceName              string        `json:"device_name"`
	Version                 VulkanVersion `json:"version"`
	DeviceType              DeviceType    `json:"device_type"`
	HasRobustness2Ext       bool          `json:"has_robustness2_ext"`
	HasTransformFeedbackExt bool          `json:"has_transform_feedback_ext"`
	RobustBufferAccess2     bool          `json:"robust_buffer_access2"`
	NullDescriptor          bool          `json:"null_descriptor"`
}

// ParseResult tags a parsed artifact with the shape it matched. Record is
// only meaningful when Shape is ShapeFull or ShapeLegacy.
type ParseResult struct {
	Shape  Shape
	Record AdapterRecord
}

// ParseArtifact decodes one probe artifact. It returns ErrArtifactUnreadable
// for malformed JSON and ErrArtifactUnrecognized, with Shape set to
// ShapeUnrecognized, for JSON that fits neither schema.
func ParseArtifact(data []byte) (ParseResult, error) {
	if !gjson.ValidBytes(data) {
		return ParseResult{}, ErrArtifactUnreadable
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ParseResult{Shape: ShapeUnrecognized}, ErrArtifactUnrecognized
	}

	if caps := root.Get("capabilities"); caps.Exists() {
		rec, ok := parseFull(root)
		if !ok {
			return ParseResult{Shape: ShapeUnrecognized}, ErrArtifactUnrecognized
		}
		return ParseResult{Shape: ShapeFull, Record: rec}, nil
	}

	if rec, ok := parseLegacy(root); ok {
		return ParseResult{Shape: ShapeLegacy, Record: rec}, nil
	}
	return ParseResult{Shape: ShapeUnrecognized}, ErrArtifactUnrecognized
}

func parseFull(root gjson.Result) (AdapterRecord, bool) {
	props := root.Get(fullPropertiesPath)
	if !props.IsObject() {
		return AdapterRecord{}, false
	}
	name := props.Get("deviceName")
	apiVersion := props.Get("apiVersion")
	if name.Type != gjson.String || apiVersion.Type != gjson.Number {
		return AdapterRecord{}, false
	}

	exts := root.Get(fullExtensionsPath)
	features := root.Get(fullFeaturesPath)

	rec := AdapterRecord{
		DeviceName:              strings.TrimSpace(name.Str),
		Version:                 DecodeVersion(uint32(apiVersion.Uint())),
		DeviceType:              parseDeviceType(props.Get("deviceType")),
		HasRobustness2Ext:       exts.Get(extRobustness2).Exists(),
		HasTransformFeedbackExt: exts.Get(extTransformFeedback).Exists(),
	}
	for _, st := range robustness2FeatureStructs {
		f := features.Get(st)
		if !f.IsObject() {
			continue
		}
		rec.RobustBufferAccess2 = f.Get(featureRobustBufferAccess2).Bool()
		rec.NullDescriptor = f.Get(featureNullDescriptor).Bool()
		break
	}
	return rec, true
}

func parseLegacy(root gjson.Result) (AdapterRecord, bool) {
	props := root.Get(legacyPropertiesPath)
	if !props.IsObject() {
		return AdapterRecord{}, false
	}
	name := props.Get("deviceName")
	if name.Type != gjson.String {
		return AdapterRecord{}, false
	}

	var version VulkanVersion
	found := false
	for _, path := range legacyVersionPaths {
		v := root.Get(path)
		if v.Type != gjson.String {
			continue
		}
		major, minor, ok := parseDottedVersion(v.Str)
		if !ok {
			return AdapterRecord{}, false
		}
		version = DecodeVersion(packVersion(major, minor))
		found = true
		break
	}
	if !found {
		return AdapterRecord{}, false
	}

	deviceName := strings.TrimSpace(name.Str)
	deviceType := DeviceUnknown
	if strings.Contains(deviceName, intelIntegratedMarker) {
		deviceType = DeviceIntegrated
	}

	// The legacy schema carries no extension or feature detail.
	return AdapterRecord{
		DeviceName: deviceName,
		Version:    version,
		DeviceType: deviceType,
	}, true
}

// parseDottedVersion reads the first two integer components of "1.1.102".
func parseDottedVersion(s string) (major, minor uint32, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	ma, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 10)
	if err != nil {
		return 0, 0, false
	}
	mi, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 10)
	if err != nil {
		return 0, 0, false
	}
	return uint32(ma), uint32(mi), true
}
