package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mdtoken/config"
	"github.com/randalmurphal/mdtoken/report"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Long: `Print the JSON schema of .mdtokenrc.yaml. Editors with YAML language
support can use it for completion and validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return &exitError{code: report.ExitFail, err: fmt.Errorf("error: %w", err)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
