// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render formats everything the shell prints on its own behalf: the
// prompt, per-command timing, the help table, the status box and the one-line
// notices for each failure kind. Output of sibling executables never passes
// through here; they write straight to the inherited streams.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pebbleshell/cli/internal/registry"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// Renderer writes styled shell output to Out and failures to Err.
type Renderer struct {
	Out io.Writer
	Err io.Writer
}

// New creates a renderer instance.
func New(out, errw io.Writer) *Renderer { return &Renderer{Out: out, Err: errw} }

// PromptInfo is the presentational context of one prompt.
type PromptInfo struct {
	Now        time.Time
	TimeFormat string
	User       string
	Database   string
	WorkDir    string
	Width      int
}

// Prompt renders "[time] user@db dir > ". The directory is shortened from the
// left when it would take more than half of the terminal width.
func Prompt(p PromptInfo) string {
	dir := p.WorkDir
	if limit := p.Width / 2; limit > 4 {
		if r := []rune(dir); len(r) > limit {
			dir = "…" + string(r[len(r)-limit+1:])
		}
	}
	return pterm.NewStyle(pterm.FgGray).Sprint("["+p.Now.Format(p.TimeFormat)+"]") + " " +
		pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint(p.User) +
		pterm.NewStyle(pterm.FgGray).Sprint("@") +
		pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(p.Database) + " " +
		pterm.NewStyle(pterm.FgLightBlue).Sprint(dir) + " " +
		pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("> ")
}

// Welcome prints the one-line greeting shown when an interactive session starts.
func (r *Renderer) Welcome() {
	pterm.Fprintln(r.Out, pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("✨ Welcome to pebbleshell. Type 'help' to list commands."))
}

// Goodbye prints the farewell line.
func (r *Renderer) Goodbye() {
	pterm.Fprintln(r.Out, "Goodbye! 👋")
}

// Elapsed prints how long a dispatched command took.
func (r *Renderer) Elapsed(d time.Duration) {
	pterm.Fprintln(r.Out, pterm.NewStyle(pterm.FgMagenta, pterm.Bold).Sprint(fmt.Sprintf("⏱️ Executed in: %v", d)))
}

// Info prints a neutral notice.
func (r *Renderer) Info(format string, args ...any) {
	pterm.Info.WithWriter(r.Out).Printfln(format, args...)
}

// Success prints a confirmation.
func (r *Renderer) Success(format string, args ...any) {
	pterm.Success.WithWriter(r.Out).Printfln(format, args...)
}

// Warning prints a recoverable problem.
func (r *Renderer) Warning(msg string) {
	pterm.Warning.WithWriter(r.Err).Println(msg)
}

// Error prints a failure.
func (r *Renderer) Error(msg string) {
	pterm.Error.WithWriter(r.Err).Println(msg)
}

// Help prints the command table.
func (r *Renderer) Help(entries []registry.Entry) error {
	data := pterm.TableData{{"Command", "Kind", "Usage", "Description"}}
	for _, e := range entries {
		data = append(data, []string{e.Name, e.Kind.String(), e.Usage, e.Description})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(r.Out).Render()
}

// Lines prints numbered transcript entries, numbering from 1. Entries are
// user text and are written raw so pterm color tags are not interpreted.
func (r *Renderer) Lines(lines []string) {
	width := len(fmt.Sprint(len(lines)))
	for i, l := range lines {
		fmt.Fprintf(r.Out, "%*d  %s\n", width, i+1, l)
	}
}

// StatusInfo describes the session for the status command.
type StatusInfo struct {
	SessionID  string
	User       string
	Database   string
	WorkDir    string
	Started    time.Time
	Dispatches int
	History    int
	PluginDir  string
}

// Status prints a boxed summary of the session.
func (r *Renderer) Status(s StatusInfo) {
	var b strings.Builder
	row := func(k, v string) {
		b.WriteString(pterm.NewStyle(pterm.FgLightCyan).Sprint(fmt.Sprintf("%-11s", k)))
		b.WriteString(v)
		b.WriteString("\n")
	}
	row("Session", s.SessionID)
	row("User", s.User)
	row("Database", s.Database)
	row("Directory", s.WorkDir)
	row("Plugins", s.PluginDir)
	row("Started", humanize.Time(s.Started))
	row("Dispatched", humanize.Comma(int64(s.Dispatches)))
	row("History", humanize.Comma(int64(s.History)))

	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Session")).
		WithLeftPadding(1).
		WithRightPadding(1).
		WithWriter(r.Out).
		Println(strings.TrimSuffix(b.String(), "\n"))
}
