// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package history

import "strings"

// Log is the in-memory transcript of a session, oldest entry first.
type Log struct {
	entries []string
}

// NewLog returns a log seeded with previously persisted entries.
func NewLog(seed []string) *Log {
	l := &Log{}
	l.entries = append(l.entries, seed...)
	return l
}

// Append records line if it contains anything besides whitespace.
// It reports whether the line was recorded.
func (l *Log) Append(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	l.entries = append(l.entries, line)
	return true
}

// Entries returns a copy of the transcript.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Head returns at most n entries from the start of the transcript.
// A negative n returns everything.
func (l *Log) Head(n int) []string {
	if n < 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]string, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int { return len(l.entries) }
