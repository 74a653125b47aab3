// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	"pgassist/cli/internal/profile"
	"pgassist/cli/internal/render"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDefaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show or change the saved connection defaults",
		Long: `Saved defaults pre-fill the connection profile for connect, ask and shell.
They are stored in the OS keychain. Saving defaults never opens a session.`,
	}
	cmd.AddCommand(newDefaultsShowCmd(), newDefaultsSetCmd(), newDefaultsClearCmd())
	return cmd
}

// maskedProfile is the printable form of a profile.
type maskedProfile struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
}

func mask(p profile.Profile) maskedProfile {
	m := maskedProfile{Host: p.Host, Port: p.Port, User: p.User, Database: p.Database}
	if p.Password != "" {
		m.Password = "***"
	}
	return m
}

func newDefaultsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved defaults with the password masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			m := mask(a.svc.State().Profile)
			switch a.cfg.Output {
			case render.JSON:
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			case render.YAML:
				return yaml.NewEncoder(a.out).Encode(m)
			}
			box := pterm.DefaultBox.
				WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Connection Defaults")).
				WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
				Sprint(a.svc.State().Profile.String())
			fmt.Fprintln(a.out, box)
			return nil
		},
	}
}

func newDefaultsSetCmd() *cobra.Command {
	var conn connFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save connection defaults",
		Long: `The set command merges the given flags over the current defaults and saves
the result. Any session marker for the current process is dropped; run
'pgassist connect' to open a new session.`,
		Example: `  pgassist defaults set --host db.internal --database shop
  pgassist defaults set --dsn postgres://analyst:pw@db.internal/shop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			p, err := conn.resolve(cmd, a.svc.State().Profile, false)
			if err != nil {
				return err
			}
			if err := a.svc.SaveDefaults(p); err != nil {
				return err
			}
			fmt.Fprintln(a.out, pterm.Success.Sprint("Saved defaults "+p.String()))
			return nil
		},
	}
	conn.bind(cmd.Flags())
	return cmd
}

func newDefaultsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the saved defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			if err := a.keys.ClearDefaults(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Saved defaults removed")
			return nil
		},
	}
}
