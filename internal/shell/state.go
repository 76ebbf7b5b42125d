// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"os"
	"time"

	"pebbleshell/cli/internal/history"

	"github.com/google/uuid"
)

// State is the shell's own context. It is distinct from whatever the storage
// engine tracks: changing Database only changes the label shown in the prompt
// and reported by status.
type State struct {
	ID       string
	User     string
	WorkDir  string
	Database string
	Started  time.Time
	History  *history.Log
	// Dispatches counts external commands handed to the runner.
	Dispatches int
}

// NewState captures the environment of the current process.
func NewState(database string, log *history.Log) *State {
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "?"
	}
	if log == nil {
		log = history.NewLog(nil)
	}
	return &State{
		ID:       uuid.NewString(),
		User:     user,
		WorkDir:  wd,
		Database: database,
		Started:  time.Now(),
		History:  log,
	}
}
