// Package terminal provides small helpers around the controlling terminal:
// deciding whether input is interactive and putting the terminal back into a
// sane state after a child process had control of it.
package terminal

import (
	"os"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// IsInteractive reports whether both f and stdout are attached to a terminal.
// Line editing and history navigation are only offered when this is true.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// PlainUnlessTerminal switches pterm to raw, uncolored output when out is not
// a terminal, so piped transcripts carry no escape sequences. It reports
// whether styling was disabled.
func PlainUnlessTerminal(out *os.File) bool {
	if out != nil && term.IsTerminal(int(out.Fd())) {
		return false
	}
	pterm.DisableStyling()
	return true
}

// Width returns the terminal width of stdout, or 80 when it cannot be determined.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Restore makes the cursor visible again. Sibling executables inherit the
// terminal and may exit while the cursor is hidden.
func Restore() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	cursor.Show()
}
