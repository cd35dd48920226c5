package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mdtoken/report"
	"github.com/randalmurphal/mdtoken/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		opts     checkOptions
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-check markdown files whenever they change",
		Long: `Check every markdown file under the root, then check again each time a
markdown file is created, written, renamed or removed. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := s.check(); err != nil {
				return &exitError{code: report.ExitFail, err: fmt.Errorf("error: %w", err)}
			}

			w := watch.New(s.enforcer.Matcher(), watch.WithDebounce(debounce))
			err = w.Run(cmd.Context(), func(paths []string) {
				fmt.Fprintf(out, "\n%d file(s) changed, re-checking\n\n", len(paths))
				result, err := s.check()
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
					return
				}
				fmt.Fprintln(out, report.SummaryLine(result))
			})
			if err != nil {
				return &exitError{code: report.ExitFail, err: fmt.Errorf("error: %w", err)}
			}
			return nil
		},
	}
	opts.addFlags(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-checking")
	return cmd
}
