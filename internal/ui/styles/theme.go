// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Level is a three-step support level: 0 none, 1 partial, 2 full. Detection
// tiers map onto it directly.
type Level int

// Theme holds the styles shared by notices and command output.
type Theme struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Hint   lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Style
}

// DefaultTheme returns the theme for the current colour profile.
func DefaultTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(TextSecondary),
		Hint:   lipgloss.NewStyle().Foreground(TextMuted).Italic(true),
		Header: lipgloss.NewStyle().Foreground(Cyan).Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(Overlay),
	}
}

// LevelColor returns the accent for a support level.
func LevelColor(l Level) lipgloss.AdaptiveColor {
	switch {
	case l >= 2:
		return Emerald
	case l == 1:
		return Amber
	default:
		return Rose
	}
}

// LevelIndicator returns the ASCII indicator for a support level.
func LevelIndicator(l Level) string {
	switch {
	case l >= 2:
		return StatusIndicators.Success
	case l == 1:
		return StatusIndicators.Warning
	default:
		return StatusIndicators.Error
	}
}

// Badge renders text in the accent of a support level, prefixed by its
// indicator.
func Badge(l Level, text string) string {
	return lipgloss.NewStyle().
		Foreground(LevelColor(l)).
		Bold(l >= 2).
		Render(LevelIndicator(l) + " " + text)
}
