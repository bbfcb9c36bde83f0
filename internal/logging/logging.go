// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide structured logger.
//
// All packages log through the global github.com/phuslu/log logger. Output
// goes to stderr so stdout stays reserved for command results.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
	"golang.org/x/term"
)

// Setup installs the global logger at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info. Colour is enabled only
// when w is a terminal.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	log.DefaultLogger = log.Logger{
		Level:      ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: isTerminal(w),
		},
	}
}

// ParseLevel maps a config level name to a log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
