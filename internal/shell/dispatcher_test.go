// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	perrors "pebbleshell/cli/internal/errors"
	"pebbleshell/cli/internal/registry"
	"pebbleshell/cli/internal/runner"
)

func TestDispatchEmptyLine(t *testing.T) {
	f := newFixture(t)
	for _, line := range []string{"", "   ", "\t"} {
		o := f.d.Dispatch(context.Background(), line)
		if o.Action != ActionNone || o.Err != nil {
			t.Errorf("Dispatch(%q) = %+v, want a no-op", line, o)
		}
	}
	if len(f.runner.calls) != 0 {
		t.Errorf("runner called for empty lines: %v", f.runner.calls)
	}
	if f.out.Len() != 0 || f.errw.Len() != 0 {
		t.Errorf("empty lines produced output: %q %q", f.out.String(), f.errw.String())
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	for _, name := range []string{"drop_db", "EXIT", "Help", "print", "add", "use-db"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			before := *f.state

			o := f.d.Dispatch(context.Background(), name+" mydb k1")
			if o.Action != ActionUnknown {
				t.Errorf("Action = %v, want ActionUnknown", o.Action)
			}
			if k := perrors.KindOf(o.Err); k != perrors.UnknownCommand {
				t.Errorf("error kind = %q, want %q", k, perrors.UnknownCommand)
			}
			if len(f.runner.calls) != 0 {
				t.Errorf("runner was called for an unknown command")
			}
			if f.state.Database != before.Database || f.state.Dispatches != before.Dispatches {
				t.Errorf("state changed: %+v -> %+v", before, *f.state)
			}

			f.d.Report(o)
			if !strings.Contains(f.errw.String(), "unknown command: "+name) {
				t.Errorf("report = %q, want unknown command message", f.errw.String())
			}
			if strings.Contains(f.out.String(), "Executed in") {
				t.Errorf("unknown command must not be timed")
			}
		})
	}
}

func TestDispatchKnownNamesNeverUnknown(t *testing.T) {
	for _, name := range registry.Default().Names() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			o := f.d.Dispatch(context.Background(), name+" a")
			if o.Action == ActionUnknown || perrors.KindOf(o.Err) == perrors.UnknownCommand {
				t.Errorf("known command %q resolved as unknown", name)
			}
		})
	}
}

func TestDispatchUseDb(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr bool
	}{
		{name: "no argument", line: "use_db", want: "default", wantErr: true},
		{name: "one argument", line: "use_db mydb", want: "mydb"},
		{name: "too many arguments", line: "use_db a b", want: "default", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			o := f.d.Dispatch(context.Background(), tt.line)
			if o.Action != ActionUseDb {
				t.Fatalf("Action = %v, want ActionUseDb", o.Action)
			}
			if f.state.Database != tt.want {
				t.Errorf("Database = %q, want %q", f.state.Database, tt.want)
			}
			if tt.wantErr {
				if k := perrors.KindOf(o.Err); k != perrors.UserInput {
					t.Errorf("error kind = %q, want %q", k, perrors.UserInput)
				}
			} else if o.Err != nil {
				t.Errorf("unexpected error: %v", o.Err)
			}
			if len(f.runner.calls) != 0 {
				t.Errorf("use_db must not spawn a process")
			}
		})
	}
}

func TestDispatchExitAndHelp(t *testing.T) {
	f := newFixture(t)
	if o := f.d.Dispatch(context.Background(), "exit"); o.Action != ActionExit {
		t.Errorf("exit Action = %v", o.Action)
	}
	o := f.d.Dispatch(context.Background(), "help")
	if o.Action != ActionHelp || o.Err != nil {
		t.Fatalf("help outcome = %+v", o)
	}
	for _, name := range registry.Default().Names() {
		if !strings.Contains(f.out.String(), name) {
			t.Errorf("help output is missing %q", name)
		}
	}
	if len(f.runner.calls) != 0 {
		t.Errorf("help must not spawn a process")
	}
}

func TestDispatchHistory(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "all", line: "history", want: []string{"1  use_db mydb", "2  greet", "3  history"}},
		{name: "limited", line: "history 1", want: []string{"1  use_db mydb"}},
		{name: "not a number", line: "history ten", wantErr: true},
		{name: "negative", line: "history -2", wantErr: true},
		{name: "too many", line: "history 1 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.state.History.Append("use_db mydb")
			f.state.History.Append("greet")
			f.state.History.Append("history")

			o := f.d.Dispatch(context.Background(), tt.line)
			if tt.wantErr {
				if k := perrors.KindOf(o.Err); k != perrors.UserInput {
					t.Errorf("error kind = %q, want %q", k, perrors.UserInput)
				}
				return
			}
			if o.Err != nil {
				t.Fatalf("unexpected error: %v", o.Err)
			}
			got := strings.Split(strings.TrimSuffix(f.out.String(), "\n"), "\n")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("history output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDispatchStatus(t *testing.T) {
	f := newFixture(t)
	f.state.Started = time.Now()
	o := f.d.Dispatch(context.Background(), "status")
	if o.Action != ActionStatus || o.Err != nil {
		t.Fatalf("status outcome = %+v", o)
	}
	for _, want := range []string{"test-session", "ada", "default", "/plugins"} {
		if !strings.Contains(f.out.String(), want) {
			t.Errorf("status output is missing %q", want)
		}
	}
}

func TestDispatchExternalForwardsArguments(t *testing.T) {
	tests := []struct {
		name string
		line string
		want call
	}{
		{name: "no args", line: "create_db", want: call{name: "create_db", args: []string{}}},
		{name: "positional", line: "get_object mydb k1", want: call{name: "get_object", args: []string{"mydb", "k1"}}},
		{name: "rejoined value", line: "set_object  mydb k1 hello    big world", want: call{name: "set_object", args: []string{"mydb", "k1", "hello big world"}}},
		{name: "extras forwarded", line: "greet Ada Lovelace", want: call{name: "greet", args: []string{"Ada", "Lovelace"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			o := f.d.Dispatch(context.Background(), tt.line)
			if o.Action != ActionRun || o.Err != nil {
				t.Fatalf("outcome = %+v", o)
			}
			if len(f.runner.calls) != 1 {
				t.Fatalf("runner calls = %d, want 1", len(f.runner.calls))
			}
			if !reflect.DeepEqual(f.runner.calls[0], tt.want) {
				t.Errorf("runner call = %+v, want %+v", f.runner.calls[0], tt.want)
			}
			if f.state.Dispatches != 1 {
				t.Errorf("Dispatches = %d, want 1", f.state.Dispatches)
			}
		})
	}
}

func TestDispatchExternalRejectsMissingArguments(t *testing.T) {
	f := newFixture(t)
	o := f.d.Dispatch(context.Background(), "set_object mydb k1")
	if o.Action != ActionRejected {
		t.Fatalf("Action = %v, want ActionRejected", o.Action)
	}
	if k := perrors.KindOf(o.Err); k != perrors.UserInput {
		t.Errorf("error kind = %q, want %q", k, perrors.UserInput)
	}
	if len(f.runner.calls) != 0 {
		t.Errorf("runner must not be called when arguments are missing")
	}
	f.d.Report(o)
	if !strings.Contains(f.errw.String(), "set_object <db> <key> <value...>") {
		t.Errorf("report %q does not show usage", f.errw.String())
	}
}

func TestDispatchExternalOutcomes(t *testing.T) {
	launchErr := errors.New("exec format error")
	tests := []struct {
		name     string
		result   runner.Result
		wantKind perrors.Kind
		wantMsg  string
	}{
		{name: "success", result: runner.Result{Status: runner.Success, Elapsed: 3 * time.Millisecond}, wantMsg: "Executed in: 3ms"},
		{name: "not found", result: runner.Result{Status: runner.NotFound, Code: -1, Path: "/plugins/greet"}, wantKind: perrors.CommandNotFound, wantMsg: "executable not found at /plugins/greet"},
		{name: "launch failed", result: runner.Result{Status: runner.LaunchFailed, Code: -1, Path: "/plugins/greet", Err: launchErr}, wantKind: perrors.LaunchFailure, wantMsg: "exec format error"},
		{name: "non-zero exit", result: runner.Result{Status: runner.NonZeroExit, Code: 7, Elapsed: time.Millisecond}, wantKind: perrors.NonZeroExit, wantMsg: "greet exited with code 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.runner.results["greet"] = tt.result

			o := f.d.Dispatch(context.Background(), "greet")
			if o.Action != ActionRun {
				t.Fatalf("Action = %v, want ActionRun", o.Action)
			}
			if k := perrors.KindOf(o.Err); k != tt.wantKind {
				t.Errorf("error kind = %q, want %q", k, tt.wantKind)
			}

			f.d.Report(o)
			all := f.out.String() + f.errw.String()
			if !strings.Contains(all, tt.wantMsg) {
				t.Errorf("report %q is missing %q", all, tt.wantMsg)
			}
			if !strings.Contains(f.out.String(), "Executed in:") {
				t.Errorf("elapsed time must be reported for every external dispatch")
			}
		})
	}
}

func TestDispatchTokensKeepsEmbeddedSpaces(t *testing.T) {
	f := newFixture(t)
	o := f.d.DispatchTokens(context.Background(), []string{"get_object", "my db", "k 1"})
	if o.Err != nil {
		t.Fatalf("unexpected error: %v", o.Err)
	}
	if want := []string{"my db", "k 1"}; !reflect.DeepEqual(f.runner.calls[0].args, want) {
		t.Errorf("args = %q, want %q", f.runner.calls[0].args, want)
	}
}
