// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package registry holds the fixed table of commands the shell understands.
// Each entry is tagged with an invocation Kind: built-ins mutate or inspect
// the session in-process, everything else is dispatched to a sibling
// executable of the same name. The table is built once and never mutated.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags how a command is invoked.
type Kind int

const (
	// External commands run as a sibling executable.
	External Kind = iota
	// BuiltinUseDb switches the session's current database label.
	BuiltinUseDb
	// BuiltinHelp lists the registry.
	BuiltinHelp
	// BuiltinExit ends the session.
	BuiltinExit
	// BuiltinHistory prints the session transcript.
	BuiltinHistory
	// BuiltinStatus prints session details.
	BuiltinStatus
)

func (k Kind) String() string {
	switch k {
	case External:
		return "external"
	case BuiltinUseDb, BuiltinHelp, BuiltinExit, BuiltinHistory, BuiltinStatus:
		return "builtin"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Schema declares how the arguments of an external command are shaped.
type Schema struct {
	// Positional is the number of leading arguments that are required.
	Positional int
	// RestAsText rejoins everything past Positional with single spaces into
	// one trailing argument, which is then also required.
	RestAsText bool
}

// Entry is one row of the command table.
type Entry struct {
	Name        string
	Kind        Kind
	Schema      Schema
	Usage       string
	Description string
}

// ArgError reports arguments that do not satisfy an entry's schema.
type ArgError struct {
	Name  string
	Usage string
	Got   int
	Want  int
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s expects at least %d argument(s), got %d (usage: %s)", e.Name, e.Want, e.Got, e.Usage)
}

// Shape applies the entry's schema to args and returns the argument vector to
// forward. args must not include the command name.
func (e Entry) Shape(args []string) ([]string, error) {
	want := e.Schema.Positional
	if e.Schema.RestAsText {
		want++
	}
	if len(args) < want {
		return nil, &ArgError{Name: e.Name, Usage: e.Usage, Got: len(args), Want: want}
	}
	if !e.Schema.RestAsText {
		out := make([]string, len(args))
		copy(out, args)
		return out, nil
	}
	out := make([]string, 0, want)
	out = append(out, args[:e.Schema.Positional]...)
	out = append(out, strings.Join(args[e.Schema.Positional:], " "))
	return out, nil
}

// Registry maps command names to entries.
type Registry struct {
	entries map[string]Entry
}

// New builds a registry from entries. Duplicate names are a programming error.
func New(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := r.entries[e.Name]; dup {
			panic("registry: duplicate command " + e.Name)
		}
		r.entries[e.Name] = e
	}
	return r
}

// Default returns the shell's built-in command table.
func Default() *Registry {
	return New(
		Entry{Name: "exit", Kind: BuiltinExit, Usage: "exit", Description: "Leave the shell"},
		Entry{Name: "help", Kind: BuiltinHelp, Usage: "help", Description: "List available commands"},
		Entry{Name: "use_db", Kind: BuiltinUseDb, Usage: "use_db <name>", Description: "Switch the current database label"},
		Entry{Name: "history", Kind: BuiltinHistory, Usage: "history [N]", Description: "Show entered lines, optionally only the first N"},
		Entry{Name: "status", Kind: BuiltinStatus, Usage: "status", Description: "Show session details"},
		Entry{Name: "create_db", Kind: External, Usage: "create_db", Description: "Create a database"},
		Entry{Name: "close_db", Kind: External, Usage: "close_db [name]", Description: "Close a database"},
		Entry{Name: "greet", Kind: External, Usage: "greet [name]", Description: "Print a greeting"},
		Entry{
			Name: "get_object", Kind: External, Schema: Schema{Positional: 2},
			Usage: "get_object <db> <key>", Description: "Read an object by key",
		},
		Entry{
			Name: "set_object", Kind: External, Schema: Schema{Positional: 2, RestAsText: true},
			Usage: "set_object <db> <key> <value...>", Description: "Store an object; the value may contain spaces",
		},
	)
}

// Resolve looks up name.
func (r *Registry) Resolve(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Entries returns all entries sorted with built-ins first, then by name.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := out[i].Kind != External, out[j].Kind != External
		if bi != bj {
			return bi
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
