// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <sql>",
		Short: "Run SQL through the translation service",
		Long: `The run command sends SQL to the service's execution endpoint and shows the
rows it returns. It requires a session from 'pgassist connect'.

Pass "-" to read the SQL from standard input.`,
		Example: `  pgassist run "SELECT count(*) FROM orders"
  cat report.sql | pgassist run -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			sql := strings.Join(args, " ")
			if sql == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				sql = string(b)
			}
			return runAndShow(cmd.Context(), a, sql)
		},
	}
	return cmd
}
