// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package linesource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"pebbleshell/cli/internal/history"
)

// Reader is a non-interactive source over any io.Reader, used when stdin is
// piped. It still writes the prompt so transcripts stay readable.
type Reader struct {
	in         *bufio.Reader
	out        io.Writer
	log        *history.Log
	prompt     string
	done       bool
	interrupts <-chan os.Signal
	pending    chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewReader wraps in. Prompts go to out; a nil out suppresses them.
func NewReader(in io.Reader, out io.Writer, log *history.Log) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out, log: log, prompt: "> "}
}

// WatchInterrupts makes Next return ErrInterrupted when a signal arrives on
// ch while it is waiting for input. Signals delivered between reads, such as
// a Ctrl-C aimed at a running command, are discarded.
func (r *Reader) WatchInterrupts(ch <-chan os.Signal) { r.interrupts = ch }

// Next reads up to the next newline. A final line without a newline is
// returned before io.EOF.
func (r *Reader) Next() (string, error) {
	if r.done {
		return "", io.EOF
	}
	r.drainInterrupts()
	if r.out != nil {
		fmt.Fprint(r.out, r.prompt)
	}

	// An interrupted read stays pending and is picked up by the next call.
	if r.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := r.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		r.pending = ch
	}

	select {
	case res := <-r.pending:
		r.pending = nil
		return r.finish(res.line, res.err)
	case <-r.interrupts:
		return "", ErrInterrupted
	}
}

func (r *Reader) finish(line string, err error) (string, error) {
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		r.done = true
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	r.log.Append(line)
	return line, nil
}

func (r *Reader) drainInterrupts() {
	for {
		select {
		case <-r.interrupts:
		default:
			return
		}
	}
}

// SetPrompt replaces the prompt written before the next read.
func (r *Reader) SetPrompt(prompt string) { r.prompt = prompt }

// Close is a no-op; the underlying reader belongs to the caller.
func (r *Reader) Close() error { return nil }
