// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import "fmt"

// VulkanVersion is the major/minor API version an adapter reports.
type VulkanVersion struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

// String returns the version as "major.minor".
func (v VulkanVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is major.minor or newer.
func (v VulkanVersion) AtLeast(major, minor uint32) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// DecodeVersion unpacks a packed API version: major lives in bits 31-22,
// minor in bits 21-12. Patch bits are ignored. Every input decodes.
func DecodeVersion(packed uint32) VulkanVersion {
	return VulkanVersion{
		Major: packed >> 22,
		Minor: (packed >> 12) & 0x3ff,
	}
}

// packVersion is the inverse of DecodeVersion for the major/minor fields.
// The legacy schema only carries a dotted string, so it is packed here and
// decoded through the same path as the full schema.
func packVersion(major, minor uint32) uint32 {
	return major<<22 | (minor&0x3ff)<<12
}
