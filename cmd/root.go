// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for pebbleshell. Without
// arguments it starts the interactive session; with arguments it dispatches
// them once as a single command and exits.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"pebbleshell/cli/internal/config"
	perrors "pebbleshell/cli/internal/errors"
	"pebbleshell/cli/internal/history"
	"pebbleshell/cli/internal/linesource"
	"pebbleshell/cli/internal/logging"
	"pebbleshell/cli/internal/registry"
	"pebbleshell/cli/internal/render"
	"pebbleshell/cli/internal/runner"
	"pebbleshell/cli/internal/shell"
	"pebbleshell/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	historyPath  string
	pluginDirArg string
)

// rootCmd is the only command. Flag parsing stops at the first positional
// argument so everything after the command name is forwarded untouched.
var rootCmd = &cobra.Command{
	Use:   "pebbleshell [command [args...]]",
	Short: "Interactive shell for PebbleVault databases",
	Long: `pebbleshell reads commands, resolves them against a fixed command table and
runs each one either in-process (use_db, help, history, status, exit) or as an
executable of the same name installed next to the pebbleshell binary.

Run without arguments for an interactive session with line editing and a
history kept in history.txt. Pass a command to run it once and exit:

  pebbleshell set_object mydb greeting hello world`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logging.SetOutput(os.Stderr)
		logging.SetVerbose(cfg.Verbose)
		terminal.PlainUnlessTerminal(os.Stdout)

		if len(args) > 0 {
			return runBatch(cmd.Context(), cfg, args)
		}
		return runInteractive(cmd.Context(), cfg)
	},
}

// exitCodeError carries a process exit status for a failure that has already
// been reported.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}
		pterm.Error.WithWriter(os.Stderr).Println(logging.PresentError("", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
	rootCmd.Flags().StringVar(&historyPath, "history", "", "History file (default history.txt in the working directory)")
	rootCmd.Flags().StringVar(&pluginDirArg, "plugin-dir", "", "Directory holding command executables (default: next to this binary)")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, perrors.Wrap(perrors.Config, "loading configuration", err)
	}
	if historyPath != "" {
		cfg.HistoryFile = historyPath
	}
	if pluginDirArg != "" {
		cfg.PluginDir = pluginDirArg
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func resolvePluginDir(cfg config.Config) (string, error) {
	if cfg.PluginDir != "" {
		return cfg.PluginDir, nil
	}
	dir, err := runner.SiblingDir()
	if err != nil {
		return "", perrors.Wrap(perrors.Config, "locating command executables", err)
	}
	return dir, nil
}

// newDispatcher wires the registry, runner and renderer around st.
func newDispatcher(cfg config.Config, rnd *render.Renderer, st *shell.State) (*shell.Dispatcher, error) {
	dir, err := resolvePluginDir(cfg)
	if err != nil {
		return nil, err
	}
	logging.Debugf("resolving commands in %s", dir)
	run := runner.New(dir, runner.IOBindings{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	return shell.NewDispatcher(registry.Default(), run, rnd, st), nil
}

func runInteractive(ctx context.Context, cfg config.Config) error {
	rnd := render.New(os.Stdout, os.Stderr)

	entries, found, err := history.Load(cfg.HistoryFile)
	switch {
	case err != nil:
		rnd.Warning(logging.PresentError("history", err))
	case !found:
		rnd.Info("No history at %s yet; it will be created on exit", cfg.HistoryFile)
	}
	log := history.NewLog(entries)
	st := shell.NewState(cfg.DefaultDatabase, log)

	d, err := newDispatcher(cfg, rnd, st)
	if err != nil {
		return err
	}

	var src linesource.Source
	if terminal.IsInteractive(os.Stdin) {
		rl, err := linesource.NewReadline(log, registry.Default().Names(), cfg.NavHistoryLimit)
		if err != nil {
			return perrors.Wrap(perrors.FatalIO, "starting line editor", err)
		}
		src = rl
	} else {
		// Without a line editor Ctrl-C would kill the process before history is saved.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		r := linesource.NewReader(os.Stdin, os.Stdout, log)
		r.WatchInterrupts(sig)
		src = r
	}
	defer src.Close()

	rnd.Welcome()
	sh := shell.New(shell.Options{
		Source:      src,
		Dispatcher:  d,
		Renderer:    rnd,
		State:       st,
		HistoryPath: cfg.HistoryFile,
		TimeFormat:  cfg.TimeFormat,
		Width:       terminal.Width,
		AfterRun:    terminal.Restore,
	})
	reason, err := sh.Run(ctx)
	if reason == shell.ExitedByInterrupt {
		terminal.Restore()
	}
	if err != nil {
		return &exitCodeError{code: 1}
	}
	return nil
}

// runBatch dispatches args once. The history file is read so `history` works,
// but never written.
func runBatch(ctx context.Context, cfg config.Config, args []string) error {
	rnd := render.New(os.Stdout, os.Stderr)

	entries, _, err := history.Load(cfg.HistoryFile)
	if err != nil {
		logging.Debugf("history unavailable: %v", err)
	}
	st := shell.NewState(cfg.DefaultDatabase, history.NewLog(entries))

	d, err := newDispatcher(cfg, rnd, st)
	if err != nil {
		return err
	}
	o := d.DispatchTokens(ctx, args)
	d.Report(o)
	return exitFor(o)
}

// exitFor maps a batch outcome to the process exit status: 0 on success, the
// child's own code when it exited non-zero, 1 for everything else.
func exitFor(o shell.Outcome) error {
	if o.Err == nil {
		return nil
	}
	if o.Action == shell.ActionRun && o.Result.Status == runner.NonZeroExit && o.Result.Code > 0 {
		return &exitCodeError{code: o.Result.Code}
	}
	return &exitCodeError{code: 1}
}
