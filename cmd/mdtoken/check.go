package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/randalmurphal/mdtoken/config"
	"github.com/randalmurphal/mdtoken/enforcer"
	"github.com/randalmurphal/mdtoken/report"
	"github.com/randalmurphal/mdtoken/tokens"
)

// checkOptions holds the flags shared by check and watch.
type checkOptions struct {
	configPath string
	dryRun     bool
	verbose    bool
	encoding   string
	root       string
	patterns   []string
	workers    int
	color      string
}

func (o *checkOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", config.DefaultFileName, "path to configuration file")
	fs.BoolVar(&o.dryRun, "dry-run", false, "report violations without failing")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "show suggestions for each violation")
	fs.StringVar(&o.encoding, "encoding", tokens.DefaultEncoding, `tokenizer encoding, or "estimate" for a character heuristic`)
	fs.StringVar(&o.root, "root", "", "directory to scan when no files are given (default: working directory)")
	fs.StringArrayVar(&o.patterns, "pattern", nil, "glob to scan, relative to the root (repeatable; default **/*.md)")
	fs.IntVar(&o.workers, "workers", 1, "files to count concurrently")
	fs.StringVar(&o.color, "color", "auto", "color output: auto, always or never")
}

// session is everything a check needs, built once per command.
type session struct {
	cfg      *config.Config
	enforcer *enforcer.Enforcer
	reporter *report.Reporter
	verbose  bool
}

// newSession loads the configuration and the tokenizer. Failures carry
// their exit code.
func (o *checkOptions) newSession(cmd *cobra.Command) (*session, error) {
	mode, err := report.ParseColorMode(o.color)
	if err != nil {
		return nil, &exitError{code: report.ExitUsage, err: fmt.Errorf("error: %w", err)}
	}

	// Without an explicit --config, the config file sits in the scanned root.
	path := o.configPath
	if !cmd.Flags().Changed("config") && o.root != "" {
		path = filepath.Join(o.root, config.DefaultFileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &exitError{code: report.ExitFail, err: fmt.Errorf("configuration error: %w", err)}
	}
	if o.dryRun {
		cfg = cfg.WithFailOnExceed(false)
	}

	enf, err := enforcer.NewDefault(cfg, o.encoding, o.root,
		enforcer.WithPatterns(o.patterns...),
		enforcer.WithWorkers(o.workers),
	)
	if err != nil {
		return nil, &exitError{code: report.ExitFail, err: fmt.Errorf("error: %w", err)}
	}

	return &session{
		cfg:      cfg,
		enforcer: enf,
		reporter: report.New(cmd.OutOrStdout(), report.WithColor(mode), report.WithSuggester(enf)),
		verbose:  o.verbose,
	}, nil
}

// check runs one enforcement pass and prints the report.
func (s *session) check(files ...string) (*enforcer.Result, error) {
	result := s.enforcer.Check(files...)
	if err := s.reporter.Report(result, s.verbose); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return result, nil
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check markdown files against token limits",
		Long: `Check markdown files against their token limits.

With no files, every markdown file under the root is checked, minus the
configured exclusions. Exits 1 when a file or the total is over its limit,
unless fail_on_exceed is false or --dry-run is set.

Examples:
  # Check the staged files, as a pre-commit hook does
  mdtoken check README.md docs/guide.md

  # Check everything under docs/ with suggestions
  mdtoken check --pattern 'docs/**/*.md' -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range args {
				if _, err := os.Stat(f); err != nil {
					return &exitError{code: report.ExitUsage, err: fmt.Errorf("error: path %q does not exist", f)}
				}
			}

			s, err := opts.newSession(cmd)
			if err != nil {
				return err
			}
			result, err := s.check(args...)
			if err != nil {
				return &exitError{code: report.ExitFail, err: fmt.Errorf("error: %w", err)}
			}
			if code := report.ExitCode(result, s.cfg.FailOnExceed); code != report.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}
