// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"pgassist/cli/internal/backend"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newConnectCmd() *cobra.Command {
	var (
		conn connFlags
		save bool
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open a session with the translation service for a database",
		Long: `The connect command registers a Postgres connection with the translation
service and stores the session token it returns in the OS keychain. Later
questions are sent with that token instead of the database credentials.

Fields not given as flags come from the saved defaults.`,
		Example: `  pgassist connect --host db.internal --user analyst --database shop
  pgassist connect --dsn postgres://analyst@db.internal:5432/shop --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			p, err := conn.resolve(cmd, a.svc.State().Profile, true)
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return err
			}

			if save {
				if err := a.svc.SaveDefaults(p); err != nil {
					return err
				}
			}

			res, err := withSpinner(a.err, "connecting to "+p.Address(), func() (backend.ConnectResponse, error) {
				return a.svc.Connect(cmd.Context(), p)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, pterm.Success.Sprint("Connected to "+p.String()))
			if res.ExpiresIn > 0 {
				fmt.Fprintf(a.out, "   Session expires in %s\n", time.Duration(res.ExpiresIn)*time.Second)
			}
			if save {
				fmt.Fprintln(a.out, "   Saved as default connection")
			}
			return nil
		},
	}

	conn.bind(cmd.Flags())
	cmd.Flags().BoolVar(&save, "save", false, "Also save this connection as the default")
	return cmd
}
