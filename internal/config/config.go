// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads shell configuration from the XDG config dir.
// Precedence, lowest first: built-in defaults, config.yml, environment
// (optionally seeded from a .env file), command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pebbleshell/cli/internal/xdg"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the XDG config dir.
const FileName = "config.yml"

// Environment variables that override the config file.
const (
	EnvHistoryFile = "PEBBLESHELL_HISTORY_FILE"
	EnvPluginDir   = "PEBBLESHELL_PLUGIN_DIR"
	EnvDatabase    = "PEBBLESHELL_DATABASE"
	EnvVerbose     = "PEBBLESHELL_VERBOSE"
)

// Config holds shell settings.
type Config struct {
	// HistoryFile is the transcript path, relative to the working directory unless absolute.
	HistoryFile string `yaml:"history_file"`
	// PluginDir overrides the directory searched for sibling executables.
	// Empty means the directory of the running executable.
	PluginDir string `yaml:"plugin_dir,omitempty"`
	// DefaultDatabase is the database label a session starts with.
	DefaultDatabase string `yaml:"default_database"`
	// TimeFormat is the Go time layout used in the prompt.
	TimeFormat string `yaml:"time_format"`
	// NavHistoryLimit bounds the readline navigation buffer only.
	NavHistoryLimit int  `yaml:"nav_history_limit"`
	Verbose         bool `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HistoryFile:     "history.txt",
		DefaultDatabase: "default",
		TimeFormat:      "15:04:05",
		NavHistoryLimit: 1000,
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load resolves configuration from the default config path and the environment.
// A .env file in the working directory is read first; a missing .env is ignored.
func Load() (Config, error) {
	_ = godotenv.Load()

	p, err := Path()
	if err != nil {
		c := Default()
		applyEnv(&c)
		return c, nil
	}
	return LoadFile(p)
}

// LoadFile reads configuration from path and applies environment overrides.
// A missing file returns defaults.
func LoadFile(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("reading %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Default(), fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	applyEnv(&c)
	c.fill()
	return c, nil
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvHistoryFile)); v != "" {
		c.HistoryFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPluginDir)); v != "" {
		c.PluginDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		c.DefaultDatabase = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvVerbose)); err == nil && v {
		c.Verbose = true
	}
}

// fill restores defaults for keys a config file blanked out.
func (c *Config) fill() {
	d := Default()
	if c.HistoryFile == "" {
		c.HistoryFile = d.HistoryFile
	}
	if c.DefaultDatabase == "" {
		c.DefaultDatabase = d.DefaultDatabase
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.NavHistoryLimit <= 0 {
		c.NavHistoryLimit = d.NavHistoryLimit
	}
}
