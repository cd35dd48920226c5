// Package main implements the mdtoken CLI, a pre-commit gate that keeps
// markdown files within their token budgets.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mdtoken/report"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitError ends a command with a specific exit code. A nil err means the
// command already told the user what went wrong.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return report.ExitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		if exit.err != nil {
			fmt.Fprintln(stderr, exit.err)
		}
		return exit.code
	}

	// Anything cobra rejects before a command runs is a usage error.
	fmt.Fprintf(stderr, "error: %v\n", err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.CommandPath())
	return report.ExitUsage
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "mdtoken",
		Short: "Enforce token limits on markdown files",
		Long: `mdtoken keeps markdown documentation within token budgets so it stays
cheap to load into an AI context window.

Limits are read from .mdtokenrc.yaml (or a .toml file given with --config).
Use 'mdtoken check' as a pre-commit hook, or 'mdtoken watch' while editing.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output to stderr")

	root.AddCommand(newCheckCmd(), newWatchCmd(), newSchemaCmd())
	return root
}
