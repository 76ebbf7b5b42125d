// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package shell implements the interactive session: it reads a line, resolves
// the leading token against the command registry, runs a built-in or hands the
// line to a sibling executable, and reports the outcome. One line is processed
// at a time; a running sibling blocks the loop until it exits.
package shell

import (
	"context"
	"errors"
	"io"
	"time"

	perrors "pebbleshell/cli/internal/errors"
	"pebbleshell/cli/internal/history"
	"pebbleshell/cli/internal/linesource"
	"pebbleshell/cli/internal/logging"
	"pebbleshell/cli/internal/render"
)

// ExitReason is the terminal state of a session.
type ExitReason int

const (
	ExitedByUser ExitReason = iota
	ExitedByInterrupt
	ExitedByEndOfInput
	ExitedByFatalIOError
)

func (r ExitReason) String() string {
	switch r {
	case ExitedByUser:
		return "exit"
	case ExitedByInterrupt:
		return "interrupt"
	case ExitedByEndOfInput:
		return "end of input"
	case ExitedByFatalIOError:
		return "fatal i/o error"
	default:
		return "unknown"
	}
}

// Options configures a Shell. Source, Dispatcher, Renderer and State are required.
type Options struct {
	Source      linesource.Source
	Dispatcher  *Dispatcher
	Renderer    *render.Renderer
	State       *State
	HistoryPath string
	TimeFormat  string
	// Width reports the terminal width for prompt layout; nil means unknown.
	Width func() int
	// AfterRun is called after every external command, e.g. to restore the cursor.
	AfterRun func()
	// Now defaults to time.Now.
	Now func() time.Time
}

// Shell is the session loop.
type Shell struct {
	opts Options
}

// New creates a session loop.
func New(opts Options) *Shell {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}
	return &Shell{opts: opts}
}

// Run loops until the user exits, interrupts, input ends, or input breaks.
// History is saved on the way out in every case. The returned error is
// non-nil for a fatal input error or a failed save; both have already been
// reported to the user.
func (s *Shell) Run(ctx context.Context) (ExitReason, error) {
	for {
		s.opts.Source.SetPrompt(s.prompt())

		line, err := s.opts.Source.Next()
		if err != nil {
			switch {
			case errors.Is(err, linesource.ErrInterrupted):
				return s.shutdown(ExitedByInterrupt, nil)
			case errors.Is(err, io.EOF):
				return s.shutdown(ExitedByEndOfInput, nil)
			default:
				fatal := perrors.Wrap(perrors.FatalIO, "reading input", err)
				s.opts.Renderer.Error(logging.PresentError("", fatal))
				return s.shutdown(ExitedByFatalIOError, fatal)
			}
		}

		o := s.opts.Dispatcher.Dispatch(ctx, line)
		s.opts.Dispatcher.Report(o)
		if o.Action == ActionRun && s.opts.AfterRun != nil {
			s.opts.AfterRun()
		}
		if o.Action == ActionExit {
			return s.shutdown(ExitedByUser, nil)
		}
	}
}

func (s *Shell) prompt() string {
	width := 0
	if s.opts.Width != nil {
		width = s.opts.Width()
	}
	st := s.opts.State
	return render.Prompt(render.PromptInfo{
		Now:        s.opts.Now(),
		TimeFormat: s.opts.TimeFormat,
		User:       st.User,
		Database:   st.Database,
		WorkDir:    st.WorkDir,
		Width:      width,
	})
}

func (s *Shell) shutdown(reason ExitReason, cause error) (ExitReason, error) {
	logging.Debugf("session %s ended by %s", s.opts.State.ID, reason)
	if s.opts.HistoryPath != "" {
		if err := history.Save(s.opts.HistoryPath, s.opts.State.History.Entries()); err != nil {
			perr := perrors.Wrap(perrors.Persistence, "could not save history", err)
			s.opts.Renderer.Error(logging.PresentError("", perr))
			if cause == nil {
				cause = perr
			}
		}
	}
	s.opts.Renderer.Goodbye()
	return reason, cause
}
