// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package linesource

import (
	"errors"
	"io"
	"os"

	"pebbleshell/cli/internal/history"

	"github.com/chzyer/readline"
)

// editor is the part of *readline.Instance the source drives.
type editor interface {
	Readline() (string, error)
	SaveHistory(content string) error
	Close() error
}

// Readline is an interactive source with line editing, arrow-key history
// navigation and command-name completion.
//
// A line editor only exists while Next is waiting for input. It is closed
// before the line is handed back, so a command started for that line gets
// the terminal in cooked mode and no reader competes with it for stdin.
type Readline struct {
	log    *history.Log
	prompt string
	open   func(prompt string) (editor, error)
}

// NewReadline returns a source whose editors are seeded with the entries in
// log. commands feeds tab completion. navLimit bounds the navigation buffer only.
func NewReadline(log *history.Log, commands []string, navLimit int) (*Readline, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		items = append(items, readline.PcItem(c))
	}
	completer := readline.NewPrefixCompleter(items...)

	open := func(prompt string) (editor, error) {
		return readline.NewEx(&readline.Config{
			Prompt:                 prompt,
			InterruptPrompt:        "^C",
			EOFPrompt:              "exit",
			HistoryLimit:           navLimit,
			HistorySearchFold:      true,
			DisableAutoSaveHistory: true,
			AutoComplete:           completer,
			Stdin:                  readline.NewCancelableStdin(os.Stdin),
		})
	}

	// Fail at startup rather than on the first prompt.
	ed, err := open("> ")
	if err != nil {
		return nil, err
	}
	if err := ed.Close(); err != nil {
		return nil, err
	}
	return newReadline(log, open), nil
}

func newReadline(log *history.Log, open func(prompt string) (editor, error)) *Readline {
	return &Readline{log: log, prompt: "> ", open: open}
}

// Next opens an editor, reads one edited line and closes the editor again.
func (r *Readline) Next() (string, error) {
	ed, err := r.open(r.prompt)
	if err != nil {
		return "", err
	}
	for _, line := range r.log.Entries() {
		_ = ed.SaveHistory(line)
	}

	line, err := ed.Readline()
	if cerr := ed.Close(); cerr != nil && err == nil {
		err = cerr
	}
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case errors.Is(err, io.EOF):
		return "", io.EOF
	case err != nil:
		return "", err
	}
	r.log.Append(line)
	return line, nil
}

// SetPrompt replaces the prompt shown for the next read.
func (r *Readline) SetPrompt(prompt string) { r.prompt = prompt }

// Close is a no-op; editors are closed after every read.
func (r *Readline) Close() error { return nil }
