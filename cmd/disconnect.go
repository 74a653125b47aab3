// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDisconnectCmd() *cobra.Command {
	var forgetDefaults bool

	cmd := &cobra.Command{
		Use:     "disconnect",
		Aliases: []string{"logout"},
		Short:   "Forget the session token",
		Long: `The disconnect command removes the session token from the OS keychain and
returns to the built-in connection profile. Nothing is sent to the service.
Saved defaults are kept unless --forget-defaults is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			if err := a.svc.Disconnect(); err != nil {
				return err
			}
			if forgetDefaults {
				if err := a.keys.ClearDefaults(); err != nil {
					return err
				}
			}
			fmt.Fprintln(a.out, pterm.Success.Sprint("Disconnected"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&forgetDefaults, "forget-defaults", false, "Also remove the saved connection defaults")
	return cmd
}
