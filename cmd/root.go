// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for pgassist.
// Commands connect to a data source through the translation service, ask
// questions in natural language, run the generated SQL and manage the saved
// connection defaults. The package handles flag parsing and presentation;
// all decisions live in internal/assistant.
package cmd

import (
	"fmt"
	"os"

	apperr "pgassist/cli/internal/errors"
	"pgassist/cli/internal/httperrors"
	"pgassist/cli/internal/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   "pgassist",
		Short: "Ask a Postgres database questions in plain language",
		Long: `pgassist sends natural-language questions to a translation service that turns
them into SQL for your Postgres database, then shows the query and its results.

Run 'pgassist connect' once to open a session; later questions reuse it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return runVersion(cmd)
			}
			return cmd.Help()
		},
	}

	root.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and service status")

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/pgassist/config.yaml)")
	pf.String("base-url", "", "Translation service URL (default http://127.0.0.1:8000)")
	pf.StringP("output", "o", "", "Output format: table, csv, markdown, json, yaml")
	pf.Duration("timeout", 0, "Per-request timeout, 0 for none")
	pf.String("keyring", "", "Credential store: auto or file")
	pf.BoolP("verbose", "v", false, "Enable verbose debug output")

	root.AddCommand(
		newConnectCmd(),
		newDisconnectCmd(),
		newAskCmd(),
		newRunCmd(),
		newDefaultsCmd(),
		newStatusCmd(),
		newShellCmd(),
	)
	return root
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if apperr.KindOf(err) == "" {
			fmt.Fprintln(os.Stderr, logging.PresentError("Error", err))
			os.Exit(1)
		}
		httperrors.Present(os.Stderr, err, "talking to the translation service", lastBaseURL)
		fmt.Fprintln(os.Stderr, logging.FormatFailure(err))
		os.Exit(1)
	}
}
