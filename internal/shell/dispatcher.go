// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	perrors "pebbleshell/cli/internal/errors"
	"pebbleshell/cli/internal/logging"
	"pebbleshell/cli/internal/registry"
	"pebbleshell/cli/internal/render"
	"pebbleshell/cli/internal/runner"
)

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, name string, args []string) runner.Result
	Dir() string
}

// Action says what a dispatched line turned into.
type Action int

const (
	// ActionNone is an empty line.
	ActionNone Action = iota
	ActionUnknown
	ActionExit
	ActionHelp
	ActionUseDb
	ActionHistory
	ActionStatus
	// ActionRun means an external command was handed to the runner.
	ActionRun
	// ActionRejected means an external command failed its argument schema.
	ActionRejected
)

// Outcome is the result of dispatching one line.
type Outcome struct {
	Action  Action
	Command string
	// Result is set for ActionRun.
	Result runner.Result
	// Err is a *errors.E describing anything the user must be told about.
	Err error
}

// Dispatcher resolves input lines against the registry and carries them out.
type Dispatcher struct {
	registry *registry.Registry
	runner   Runner
	render   *render.Renderer
	state    *State
}

// NewDispatcher wires a dispatcher.
func NewDispatcher(reg *registry.Registry, r Runner, rnd *render.Renderer, st *State) *Dispatcher {
	return &Dispatcher{registry: reg, runner: r, render: rnd, state: st}
}

// Dispatch tokenizes line and dispatches it.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) Outcome {
	return d.DispatchTokens(ctx, Tokenize(line))
}

// DispatchTokens dispatches a pre-split command line. tokens[0] is the command name.
func (d *Dispatcher) DispatchTokens(ctx context.Context, tokens []string) Outcome {
	if len(tokens) == 0 {
		return Outcome{Action: ActionNone}
	}
	name, args := tokens[0], tokens[1:]

	entry, ok := d.registry.Resolve(name)
	if !ok {
		return Outcome{
			Action:  ActionUnknown,
			Command: name,
			Err:     perrors.New(perrors.UnknownCommand, fmt.Sprintf("unknown command: %s (type 'help' to list commands)", name)),
		}
	}

	switch entry.Kind {
	case registry.BuiltinExit:
		return Outcome{Action: ActionExit, Command: name}
	case registry.BuiltinHelp:
		o := Outcome{Action: ActionHelp, Command: name}
		if err := d.render.Help(d.registry.Entries()); err != nil {
			o.Err = perrors.Wrap(perrors.FatalIO, "rendering help", err)
		}
		return o
	case registry.BuiltinUseDb:
		return d.useDb(entry, args)
	case registry.BuiltinHistory:
		return d.history(entry, args)
	case registry.BuiltinStatus:
		d.render.Status(render.StatusInfo{
			SessionID:  d.state.ID,
			User:       d.state.User,
			Database:   d.state.Database,
			WorkDir:    d.state.WorkDir,
			Started:    d.state.Started,
			Dispatches: d.state.Dispatches,
			History:    d.state.History.Len(),
			PluginDir:  d.runner.Dir(),
		})
		return Outcome{Action: ActionStatus, Command: name}
	default:
		return d.external(ctx, entry, args)
	}
}

func (d *Dispatcher) useDb(entry registry.Entry, args []string) Outcome {
	o := Outcome{Action: ActionUseDb, Command: entry.Name}
	if len(args) != 1 {
		o.Err = perrors.New(perrors.UserInput, fmt.Sprintf("use_db requires exactly one argument, got %d (usage: %s)", len(args), entry.Usage))
		return o
	}
	d.state.Database = args[0]
	d.render.Success("Using database %s", args[0])
	return o
}

func (d *Dispatcher) history(entry registry.Entry, args []string) Outcome {
	o := Outcome{Action: ActionHistory, Command: entry.Name}
	limit := -1
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			o.Err = perrors.New(perrors.UserInput, fmt.Sprintf("history: %q is not a non-negative number (usage: %s)", args[0], entry.Usage))
			return o
		}
		limit = n
	default:
		o.Err = perrors.New(perrors.UserInput, fmt.Sprintf("history takes at most one argument (usage: %s)", entry.Usage))
		return o
	}
	d.render.Lines(d.state.History.Head(limit))
	return o
}

func (d *Dispatcher) external(ctx context.Context, entry registry.Entry, args []string) Outcome {
	forward, err := entry.Shape(args)
	if err != nil {
		var argErr *registry.ArgError
		msg := err.Error()
		if errors.As(err, &argErr) {
			msg = fmt.Sprintf("%s: missing arguments (usage: %s)", argErr.Name, argErr.Usage)
		}
		return Outcome{Action: ActionRejected, Command: entry.Name, Err: perrors.New(perrors.UserInput, msg)}
	}

	logging.Debugf("dispatch %s [%s] in %s", entry.Name, logging.MaskArgs(forward), d.runner.Dir())
	res := d.runner.Run(ctx, entry.Name, forward)
	d.state.Dispatches++
	logging.Debugf("%s finished: %s (code %d) after %v", entry.Name, res.Status, res.Code, res.Elapsed)

	o := Outcome{Action: ActionRun, Command: entry.Name, Result: res}
	switch res.Status {
	case runner.NotFound:
		o.Err = perrors.New(perrors.CommandNotFound, fmt.Sprintf("%s: executable not found at %s", entry.Name, res.Path))
	case runner.LaunchFailed:
		o.Err = perrors.Wrap(perrors.LaunchFailure, fmt.Sprintf("%s: could not start %s", entry.Name, res.Path), res.Err)
	case runner.NonZeroExit:
		o.Err = perrors.New(perrors.NonZeroExit, fmt.Sprintf("%s exited with code %d", entry.Name, res.Code))
	}
	return o
}

// Report prints the outcome's error, if any, and the elapsed time of external runs.
func (d *Dispatcher) Report(o Outcome) {
	if o.Err != nil {
		d.render.Error(logging.PresentError("", o.Err))
	}
	if o.Action == ActionRun {
		d.render.Elapsed(o.Result.Elapsed)
	}
}
