// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package history implements the shell's line transcript: an ordered, in-memory
// log of entered lines plus loading and saving it as a plain text file with one
// entry per line. Entries are never deduplicated or capped.
//
// Two shells sharing one history file will overwrite each other's transcript on
// exit; the last one to save wins.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// maxLineSize bounds a single transcript line when loading.
const maxLineSize = 1 << 20

// Load reads the transcript at path in chronological order.
// A missing file is not an error: it returns ok == false and no entries.
func Load(path string) (entries []string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := sc.Err(); err != nil {
		return entries, true, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, true, nil
}

// Save overwrites path with entries, one per line, each newline-terminated.
func Save(path string, entries []string) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
