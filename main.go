// Package main is the entry point for pebbleshell, an interactive command
// shell that dispatches database commands to executables installed beside it.
package main

import (
	"pebbleshell/cli/cmd"
)

func main() {
	cmd.Execute()
}
