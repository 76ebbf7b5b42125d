// Package xdg provides helpers to resolve XDG Base Directory paths for pebbleshell.
// It falls back to the traditional ~/.config location when XDG_CONFIG_HOME is
// not set.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directory.
const AppName = "pebbleshell"

// ConfigDir returns the XDG config directory for pebbleshell.
// The directory is not created; the shell only ever reads from it.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}
