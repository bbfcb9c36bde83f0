// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notice

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI shows a notice as a full-screen modal and blocks until dismissed.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a TUI notifier on the given terminal streams.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// Notify runs the modal until the user acknowledges it.
func (t *TUI) Notify(ctx context.Context, n Notice) error {
	logNotice(n)

	p := tea.NewProgram(
		newModal(n),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("show notice: %w", err)
	}
	return nil
}

// =============================================================================
// MODAL MODEL
// =============================================================================

type keyMap struct {
	Dismiss key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Dismiss: key.NewBinding(
		key.WithKeys("enter", " ", "esc"),
		key.WithHelp("enter", "continue"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// modal is the bubbletea model behind TUI.
type modal struct {
	notice       Notice
	width        int
	height       int
	acknowledged bool
}

func newModal(n Notice) *modal {
	return &modal{notice: n}
}

// Init implements tea.Model.
func (m *modal) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *modal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Dismiss) || key.Matches(msg, keys.Quit) {
			m.acknowledged = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View implements tea.Model.
func (m *modal) View() string {
	width := m.width - 16
	if width < 40 {
		width = 40
	}
	if width > 70 {
		width = 70
	}

	var s strings.Builder
	s.WriteString(Render(m.notice, width))
	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render(fmt.Sprintf("  %s: %s", keys.Dismiss.Help().Key, keys.Dismiss.Help().Desc)))

	if m.width == 0 || m.height == 0 {
		return s.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s.String())
}
