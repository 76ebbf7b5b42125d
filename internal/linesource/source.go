// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package linesource acquires input lines for the session loop. Every source
// records non-empty lines in the session's history log before returning them,
// so the log always mirrors what the user actually typed.
package linesource

import (
	"errors"
)

// ErrInterrupted is returned by Next when the user sent a break (Ctrl-C).
// End of input is reported as io.EOF.
var ErrInterrupted = errors.New("interrupted")

// Source yields one line per call to Next with the trailing newline stripped.
type Source interface {
	Next() (string, error)
	SetPrompt(prompt string)
	Close() error
}
