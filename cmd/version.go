// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version holds the shell version, set at build time with
	// -ldflags "-X pebbleshell/cli/cmd.Version=...".
	Version = "0.0.0-dev"
)
