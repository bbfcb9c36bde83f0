// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phuslu/log"
	"golang.org/x/term"

	"github.com/jeranaias/vktier/internal/ui/styles"
)

// Level is the severity of a notice.
type Level int

const (
	// LevelWarning is a non-fatal problem; detection continued.
	LevelWarning Level = iota
	// LevelFatal means detection failed and the zero result is returned.
	LevelFatal
)

// String returns the string representation of the level.
func (l Level) String() string {
	if l == LevelFatal {
		return "fatal"
	}
	return "warning"
}

// Notice is one user-facing message.
type Notice struct {
	Level   Level
	Title   string
	Message string
	// Hint suggests what the user can do about it.
	Hint string
}

// Notifier shows a notice and returns once the user has seen it.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Notice modes accepted by New.
const (
	ModeAuto = "auto"
	ModeTUI  = "tui"
	ModeText = "text"
	ModeNone = "none"
)

// Modes lists the valid notice modes.
var Modes = []string{ModeAuto, ModeTUI, ModeText, ModeNone}

// New builds the notifier for a mode. wait controls whether text notices
// block for acknowledgement; TUI notices always do.
func New(mode string, wait bool) Notifier {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	switch strings.ToLower(mode) {
	case ModeNone:
		return Log{}
	case ModeTUI:
		return NewTUI(os.Stdin, os.Stdout)
	case ModeText:
		return NewText(os.Stderr, waitReader(wait, interactive))
	default:
		if interactive && wait {
			return NewTUI(os.Stdin, os.Stdout)
		}
		return NewText(os.Stderr, waitReader(wait, interactive))
	}
}

func waitReader(wait, interactive bool) io.Reader {
	if wait && interactive {
		return os.Stdin
	}
	return nil
}

// =============================================================================
// STYLES
// =============================================================================

var hintStyle = styles.DefaultTheme().Hint

func accent(l Level) lipgloss.AdaptiveColor {
	if l == LevelFatal {
		return styles.Rose
	}
	return styles.Amber
}

// Render formats a notice as a bordered box.
func Render(n Notice, width int) string {
	indicator := styles.StatusIndicators.Warning
	if n.Level == LevelFatal {
		indicator = styles.StatusIndicators.Error
	}
	title := lipgloss.NewStyle().
		Foreground(accent(n.Level)).
		Bold(true).
		Render(indicator + " " + n.Title)

	var body strings.Builder
	body.WriteString(title)
	body.WriteString("\n\n")
	body.WriteString(n.Message)
	if n.Hint != "" {
		body.WriteString("\n\n")
		body.WriteString(hintStyle.Render(n.Hint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent(n.Level)).
		Padding(1, 2)
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(body.String())
}

// =============================================================================
// TEXT NOTIFIER
// =============================================================================

// Text writes notices to a writer. With a non-nil input it blocks until a
// line is read.
type Text struct {
	out io.Writer
	in  *bufio.Reader
}

// NewText creates a text notifier. in may be nil for no acknowledgement.
func NewText(out io.Writer, in io.Reader) *Text {
	t := &Text{out: out}
	if in != nil {
		t.in = bufio.NewReader(in)
	}
	return t
}

// Notify writes the notice and waits for Enter when input is attached.
func (t *Text) Notify(ctx context.Context, n Notice) error {
	logNotice(n)

	if _, err := fmt.Fprintf(t.out, "\n%s\n", Render(n, 64)); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	if t.in == nil {
		return nil
	}

	fmt.Fprint(t.out, "Press Enter to continue: ")
	done := make(chan error, 1)
	go func() {
		_, err := t.in.ReadString('\n')
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read acknowledgement: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// LOG NOTIFIER
// =============================================================================

// Log records notices in the log only.
type Log struct{}

// Notify logs the notice.
func (Log) Notify(_ context.Context, n Notice) error {
	logNotice(n)
	return nil
}

func logNotice(n Notice) {
	entry := log.Warn()
	if n.Level == LevelFatal {
		entry = log.Error()
	}
	entry.Str("level", n.Level.String()).Str("title", n.Title).Str("hint", n.Hint).Msg(n.Message)
}
