// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeranaias/vktier/internal/detect"
	"github.com/jeranaias/vktier/internal/ui/styles"
	"github.com/jeranaias/vktier/internal/util"
)

const deviceColumnWidth = 36

func tierBadge(t detect.Tier) string {
	return styles.Badge(styles.Level(t), t.String())
}

// renderReport prints one row per adapter followed by the machine summary.
func renderReport(r *detect.Report) string {
	theme := styles.DefaultTheme()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.Border).
		Headers("#", "DEVICE", "TYPE", "API", "SCHEMA", "TIER").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Header
			}
			return theme.Cell
		})

	for _, a := range r.Adapters {
		device, devType, api := "(unrecognized report)", "assumed integrated", "-"
		if a.Record != nil {
			device = util.TruncateWidth(a.Record.DeviceName, deviceColumnWidth)
			devType = a.Record.DeviceType.String()
			api = a.Record.Version.String()
		}
		t.Row(strconv.Itoa(a.Index), device, devType, api, a.Shape.String(), tierBadge(a.Classification.Tier))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Graphics adapters"))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n\n")
	b.WriteString(renderSummary(r.Summary))
	return b.String()
}

func renderSummary(s detect.Summary) string {
	theme := styles.DefaultTheme()
	label := func(text string) string {
		return theme.Label.Render(fmt.Sprintf("%-20s", text))
	}

	machine := "mixed"
	switch {
	case s.IntegratedOnly && s.DiscreteOnly:
		machine = "no usable adapter"
	case s.IntegratedOnly:
		machine = "integrated only"
	case s.DiscreteOnly:
		machine = "discrete only"
	}

	lines := []string{
		label("Machine") + machine,
		label("Discrete tier") + tierBadge(s.DiscreteTier),
		label("Integrated tier") + tierBadge(s.IntegratedTier),
		label("Intel integrated") + yesNo(s.HasIntelIntegrated),
		label("NVIDIA") + yesNo(s.HasNvidia),
	}
	return strings.Join(lines, "\n")
}

// renderRecommendation prints the tier, adapter preference, environment
// lines in shell syntax and any warnings.
func renderRecommendation(rec detect.Recommendation) string {
	theme := styles.DefaultTheme()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Recommended setup"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s\n", theme.Label.Render(fmt.Sprintf("%-20s", "Translation layer")), tierBadge(rec.Tier))
	fmt.Fprintf(&b, "%s%s\n", theme.Label.Render(fmt.Sprintf("%-20s", "Render on")), rec.Prefer)

	if keys := rec.EnvKeys(); len(keys) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render("Environment:"))
		b.WriteString("\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  export %s=%s\n", k, rec.Env[k])
		}
	}

	for _, w := range rec.Warnings {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Amber).Render(styles.StatusIndicators.Warning + " " + w))
	}
	return strings.TrimRight(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
