// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"

	"github.com/pterm/pterm"
)

// SetVerbose toggles pterm debug output for the whole process.
func SetVerbose(on bool) {
	if on {
		pterm.EnableDebugMessages()
		return
	}
	pterm.DisableDebugMessages()
}

// SetOutput routes debug lines to w. Used by tests and by the session when
// stdout is redirected.
func SetOutput(w io.Writer) {
	pterm.Debug = *pterm.Debug.WithWriter(w)
}

// Debugf prints a debug line when verbose mode is enabled.
func Debugf(format string, args ...any) {
	pterm.Debug.Printfln(format, args...)
}
