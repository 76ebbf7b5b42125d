// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the shell can hit while reading, dispatching or persisting maps
// to one Kind.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// so callers can use the standard errors.Is / errors.As helpers on the wrapped cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// UserInput indicates malformed or missing arguments to a command.
	UserInput Kind = "user_input"
	// UnknownCommand indicates a name that is not in the command registry.
	UnknownCommand Kind = "unknown_command"
	// CommandNotFound indicates the sibling executable for a registered command is absent.
	CommandNotFound Kind = "command_not_found"
	// LaunchFailure indicates the OS refused to start the sibling executable.
	LaunchFailure Kind = "launch_failure"
	// NonZeroExit indicates the sibling executable ran and reported failure.
	NonZeroExit Kind = "non_zero_exit"
	// FatalIO indicates the input stream itself is broken.
	FatalIO Kind = "fatal_io"
	// Persistence indicates the history file could not be written.
	Persistence Kind = "persistence"
	// Config indicates the configuration file could not be loaded.
	Config Kind = "config"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
