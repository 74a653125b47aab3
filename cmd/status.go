// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"pgassist/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var ping bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the connection profile, session and service",
		Long: `The status command shows the connection profile in use (password masked),
whether a session token is stored and which service the CLI talks to.
With --ping it also checks that the service answers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			session := "none, questions carry the connection profile"
			if a.svc.HasSession() {
				session = "active"
			}
			cfgFile := a.cfg.FileUsed
			if cfgFile == "" {
				cfgFile = "(none)"
			}

			data := [][]string{
				{"Profile", a.svc.State().Profile.String()},
				{"Session", session},
				{"Service", a.cfg.BaseURL},
				{"Config", cfgFile},
			}
			if ping {
				msg, err := a.svc.Ping(cmd.Context())
				if err != nil {
					msg = logging.PresentError("unreachable", err)
				}
				data = append(data, []string{"Ping", msg})
			}

			out, err := pterm.DefaultTable.WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ping, "ping", false, "Check that the service answers")
	return cmd
}
