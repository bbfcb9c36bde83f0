// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// defaultRunTimeout bounds a single tool invocation when none is configured.
const defaultRunTimeout = 10 * time.Second

// RunResult is what one tool invocation produced.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// TimedOut is set when the bounded wait expired. Output is then unusable.
	TimedOut bool
}

// Output returns stdout and stderr together, for message matching.
func (r RunResult) Output() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// Runner starts an external process and waits for it. Run returns an error
// only when the process could not be started at all; a non-zero exit or a
// timeout is reported through RunResult.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	timeout time.Duration
	dir     string
}

// NewExecRunner creates a runner that waits at most timeout per invocation.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	return &ExecRunner{timeout: timeout}
}

// WithDir sets the working directory for started processes.
func (r *ExecRunner) WithDir(dir string) *ExecRunner {
	r.dir = dir
	return r
}

// Run executes name with args.
// CANCELLATION: Context enables timeout and cancellation
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = r.dir
	// Children that inherit the pipes must not hold Wait past the deadline.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.ExitCode = -1
		result.TimedOut = true
		return result, nil
	}

	if errors.Is(err, exec.ErrWaitDelay) {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, fmt.Errorf("start %s: %w", name, err)
}
