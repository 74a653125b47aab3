// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

// runVersion prints the CLI version and whether the service answers.
func runVersion(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	service := "unreachable"
	if msg, err := a.svc.Ping(cmd.Context()); err == nil {
		service = msg
	} else {
		a.log.Debug("ping failed", a.log.Args("error", err))
	}
	fmt.Fprintf(a.out, "pgassist %s\nservice %s (%s)\n", Version, a.cfg.BaseURL, service)
	return nil
}
