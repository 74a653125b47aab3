// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pgassist/cli/internal/assistant"
	"pgassist/cli/internal/normalize"
	"pgassist/cli/internal/render"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var (
		conn   connFlags
		legacy bool
		run    bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Translate a question into SQL",
		Long: `The ask command sends a natural-language question to the translation service.

With a session from 'pgassist connect' only the question is sent and the
service answers with SQL. Without a session the connection profile is sent
along with the question and the service may also return result rows.`,
		Example: `  pgassist ask "how many orders were placed last week?"
  pgassist ask --run "top 5 customers by revenue"
  pgassist ask --legacy --dsn postgres://analyst:pw@db/shop "list tables"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			if run && legacy {
				return errors.New("--run needs a session and cannot be combined with --legacy")
			}
			if legacy {
				if err := a.svc.ForgetSession(); err != nil {
					return err
				}
			}

			fallback, err := conn.resolve(cmd, a.svc.State().Profile, !a.svc.HasSession())
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			tr, err := withSpinner(a.err, "translating", func() (assistant.Translation, error) {
				return a.svc.Translate(cmd.Context(), question, &fallback)
			})
			if err != nil {
				return err
			}
			a.log.Debug("translated", a.log.Args("flow", string(tr.Flow)))

			if !run {
				return showResult(a.out, tr.Result, a.cfg.Output)
			}
			return runAndShow(cmd.Context(), a, tr.Query)
		},
	}

	conn.bind(cmd.Flags())
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Forget the session and send the connection profile with the question")
	cmd.Flags().BoolVar(&run, "run", false, "Run the generated SQL and show its results")
	return cmd
}

// showResult prints a result in the configured format. Table formats show
// the SQL in a box and then the rows, if any.
func showResult(w io.Writer, res normalize.Result, format string) error {
	switch format {
	case render.JSON, render.YAML:
		return render.Result(w, res, format)
	}
	if res.Query != "" {
		render.Query(w, res.Query)
	}
	if res.Empty() {
		return nil
	}
	return render.Result(w, res, format)
}

func runAndShow(ctx context.Context, a *app, sql string) error {
	ex, err := withSpinner(a.err, "running", func() (assistant.Execution, error) {
		return a.svc.Execute(ctx, sql)
	})
	if err != nil {
		return err
	}
	if ex.Status != "success" {
		fmt.Fprintf(a.err, "status: %s\n", ex.Status)
	}
	if err := showResult(a.out, ex.Result, a.cfg.Output); err != nil {
		return err
	}
	if ex.Empty() && (a.cfg.Output == render.Table || a.cfg.Output == "") {
		fmt.Fprintln(a.out, "No rows returned")
	}
	return nil
}
