// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/jeranaias/vktier/internal/util"
)

var (
	// ErrToolUnavailable means the probing tool could not be started. Not retried.
	ErrToolUnavailable = errors.New("probing tool unavailable")

	// ErrArtifactMissing means neither invocation left an artifact file.
	ErrArtifactMissing = errors.New("probe artifact missing")
)

// Placeholders expanded in argument templates.
const (
	IndexPlaceholder = "{index}"
	FilePlaceholder  = "{file}"
)

// Options configures how the probing tool is invoked.
type Options struct {
	// Tool is the probing tool binary, looked up in PATH when not absolute.
	Tool string
	// Args is the first invocation. Must reference {index} and {file}.
	Args []string
	// FallbackArgs is the retry invocation. Its stdout is captured into the
	// artifact file when the tool does not write the file itself.
	FallbackArgs []string
	// ArtifactDir holds the per-index artifact files.
	ArtifactDir string
	// ArtifactName is the file name template, keyed by {index}.
	ArtifactName string
	// Timeout bounds each invocation.
	Timeout time.Duration
	// NoSuchAdapterMarker is the tool's message for an out-of-range index.
	NoSuchAdapterMarker string
	// MaxAdapters caps enumeration.
	MaxAdapters int
}

// DefaultOptions returns options for vulkaninfo.
func DefaultOptions() Options {
	return Options{
		Tool:                "vulkaninfo",
		Args:                []string{"--json=" + IndexPlaceholder, "--output", FilePlaceholder},
		FallbackArgs:        []string{"--json=" + IndexPlaceholder},
		ArtifactDir:         ".",
		ArtifactName:        "vktier-adapter-" + IndexPlaceholder + ".json",
		Timeout:             defaultRunTimeout,
		NoSuchAdapterMarker: "not a valid GPU index",
		MaxAdapters:         16,
	}
}

// =============================================================================
// OUTCOMES
// =============================================================================

// OutcomeKind classifies the result of probing one adapter index.
type OutcomeKind int

const (
	// OutcomeArtifact means an artifact file was produced and read.
	OutcomeArtifact OutcomeKind = iota
	// OutcomeNoSuchAdapter means the index is past the last adapter.
	OutcomeNoSuchAdapter
	// OutcomeToolUnavailable means the tool could not be started.
	OutcomeToolUnavailable
	// OutcomeArtifactMissing means both invocations left no artifact.
	OutcomeArtifactMissing
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeArtifact:
		return "artifact"
	case OutcomeNoSuchAdapter:
		return "no_such_adapter"
	case OutcomeToolUnavailable:
		return "tool_unavailable"
	case OutcomeArtifactMissing:
		return "artifact_missing"
	default:
		return "unknown"
	}
}

// Artifact is the raw probe output for one adapter index.
type Artifact struct {
	Index int
	Path  string
	Data  []byte
}

// Outcome is the result of one Probe call. Artifact is set for
// OutcomeArtifact; Err is set for the two failure kinds.
type Outcome struct {
	Kind     OutcomeKind
	Artifact Artifact
	Err      error
}

// =============================================================================
// INVOKER
// =============================================================================

// Invoker probes a single adapter index.
type Invoker struct {
	runner Runner
	opts   Options
	dir    string
}

// NewInvoker creates an invoker. Relative artifact directories are resolved
// against the current working directory so the tool gets an absolute path.
func NewInvoker(runner Runner, opts Options) *Invoker {
	dir := opts.ArtifactDir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Invoker{runner: runner, opts: opts, dir: dir}
}

// ArtifactPath returns the artifact file for an adapter index.
func (inv *Invoker) ArtifactPath(index int) string {
	name := strings.ReplaceAll(inv.opts.ArtifactName, IndexPlaceholder, strconv.Itoa(index))
	return filepath.Join(inv.dir, name)
}

// Probe runs the tool for one adapter index. A non-zero exit status is not
// a failure by itself: any artifact file present afterwards is used.
// CANCELLATION: Context enables timeout and cancellation
func (inv *Invoker) Probe(ctx context.Context, index int) Outcome {
	path := inv.ArtifactPath(index)

	// A file left by an earlier run must not pass for fresh output.
	removeArtifact(path)

	res, err := inv.runner.Run(ctx, inv.opts.Tool, expandArgs(inv.opts.Args, index, path)...)
	if err != nil {
		return Outcome{
			Kind: OutcomeToolUnavailable,
			Err:  fmt.Errorf("%w: %s: %v", ErrToolUnavailable, inv.opts.Tool, err),
		}
	}
	if inv.noSuchAdapter(res) {
		return Outcome{Kind: OutcomeNoSuchAdapter}
	}
	if res.TimedOut {
		log.Warn().Int("index", index).Dur("timeout", inv.opts.Timeout).Msg("Probe timed out, discarding output")
		removeArtifact(path)
	} else if data, ok := readArtifact(path); ok {
		return artifactOutcome(index, path, data)
	}

	log.Debug().Int("index", index).Int("exit_code", res.ExitCode).Msg("No artifact after first probe, retrying with fallback invocation")

	res, err = inv.runner.Run(ctx, inv.opts.Tool, expandArgs(inv.opts.FallbackArgs, index, path)...)
	if err != nil {
		return Outcome{
			Kind: OutcomeArtifactMissing,
			Err:  fmt.Errorf("%w: adapter %d: fallback invocation: %v", ErrArtifactMissing, index, err),
		}
	}
	if inv.noSuchAdapter(res) {
		return Outcome{Kind: OutcomeNoSuchAdapter}
	}
	if !res.TimedOut {
		if data, ok := readArtifact(path); ok {
			return artifactOutcome(index, path, data)
		}
		if payload := jsonPayload(res.Stdout); payload != nil {
			if err := util.AtomicWriteFile(path, payload, 0644); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Could not capture fallback output")
			} else if data, ok := readArtifact(path); ok {
				return artifactOutcome(index, path, data)
			}
		}
	} else {
		removeArtifact(path)
	}

	return Outcome{
		Kind: OutcomeArtifactMissing,
		Err:  fmt.Errorf("%w: adapter %d (exit code %d)", ErrArtifactMissing, index, res.ExitCode),
	}
}

// noSuchAdapter requires both a non-zero exit and the tool's own message.
func (inv *Invoker) noSuchAdapter(res RunResult) bool {
	if res.TimedOut || res.ExitCode == 0 || inv.opts.NoSuchAdapterMarker == "" {
		return false
	}
	return strings.Contains(res.Output(), inv.opts.NoSuchAdapterMarker)
}

func artifactOutcome(index int, path string, data []byte) Outcome {
	return Outcome{
		Kind:     OutcomeArtifact,
		Artifact: Artifact{Index: index, Path: path, Data: data},
	}
}

func expandArgs(tmpl []string, index int, path string) []string {
	idx := strconv.Itoa(index)
	args := make([]string, len(tmpl))
	for i, a := range tmpl {
		a = strings.ReplaceAll(a, IndexPlaceholder, idx)
		args[i] = strings.ReplaceAll(a, FilePlaceholder, path)
	}
	return args
}

func readArtifact(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("Artifact present but unreadable")
		}
		return nil, false
	}
	return data, true
}

func removeArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("Could not remove artifact")
	}
}

// jsonPayload extracts the JSON document from captured stdout. The tool may
// print loader warnings around it.
func jsonPayload(stdout string) []byte {
	start := strings.IndexByte(stdout, '{')
	end := strings.LastIndexByte(stdout, '}')
	if start < 0 || end < start {
		return nil
	}
	return []byte(stdout[start : end+1])
}
