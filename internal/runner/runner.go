// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package runner locates and runs sibling executables: programs that live in
// the same directory as the shell binary and implement one command each. The
// convention is the whole plugin model; there is no registration step.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"time"
)

// Status classifies how an invocation ended.
type Status int

const (
	// Success means the executable exited with status 0.
	Success Status = iota
	// NonZeroExit means the executable ran and exited with a non-zero status.
	NonZeroExit
	// NotFound means no executable file exists at the candidate path.
	NotFound
	// LaunchFailed means the OS refused to start the executable.
	LaunchFailed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case NonZeroExit:
		return "non-zero exit"
	case NotFound:
		return "not found"
	case LaunchFailed:
		return "launch failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes one invocation.
type Result struct {
	Status Status
	// Code is the exit code for Success and NonZeroExit; -1 otherwise.
	Code int
	// Path is the candidate executable path.
	Path string
	// Err carries the launch error for LaunchFailed.
	Err error
	// Elapsed covers process start to process exit; zero when nothing was spawned.
	Elapsed time.Duration
}

// IOBindings are the streams handed to the child process.
type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner runs commands as sibling executables.
type Runner struct {
	dir string
	io  IOBindings
}

// New returns a runner that resolves executables inside dir.
func New(dir string, bindings IOBindings) *Runner {
	return &Runner{dir: dir, io: bindings}
}

// SiblingDir returns the directory containing the running executable.
func SiblingDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating own executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Dir returns the directory executables are resolved in.
func (r *Runner) Dir() string { return r.dir }

// Lookup returns the candidate path for name and whether a regular file exists there.
func (r *Runner) Lookup(name string) (string, bool) {
	path := filepath.Join(r.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return path, false
	}
	return path, true
}

// Run executes the sibling executable for name with args and blocks until it
// exits. args must not include the command name. The child's argv[0] is the
// full candidate path.
func (r *Runner) Run(ctx context.Context, name string, args []string) Result {
	path, ok := r.Lookup(name)
	if !ok {
		return Result{Status: NotFound, Code: -1, Path: path}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = r.io.Stdin
	cmd.Stdout = r.io.Stdout
	cmd.Stderr = r.io.Stderr

	// The child shares the terminal's process group and receives Ctrl-C
	// itself; the shell must survive it.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{Status: LaunchFailed, Code: -1, Path: path, Err: err}
	}
	err := cmd.Wait()
	elapsed := time.Since(start)

	if err == nil {
		return Result{Status: Success, Code: 0, Path: path, Elapsed: elapsed}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Status: NonZeroExit, Code: exitErr.ExitCode(), Path: path, Err: err, Elapsed: elapsed}
	}
	return Result{Status: LaunchFailed, Code: -1, Path: path, Err: err, Elapsed: elapsed}
}
