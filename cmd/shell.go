// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pgassist/cli/internal/assistant"
	"pgassist/cli/internal/logging"
	"pgassist/cli/internal/xdg"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const shellPrompt = "pgassist> "

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Ask questions interactively",
		Long: `The shell command starts an interactive session. Each line is sent as a
question; lines starting with a dot are commands. Type .help for the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), a)
		},
	}
}

// shell holds one interactive session.
type shell struct {
	a *app
	// readSecret prompts for a password without echo.
	readSecret func(prompt string) (string, error)
}

func runShell(ctx context.Context, a *app) error {
	history := ""
	if dir, err := xdg.StateDir(); err == nil {
		history = filepath.Join(dir, "shell_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     history,
		AutoComplete:    shellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          a.out,
		Stderr:          a.err,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sh := &shell{
		a: a,
		readSecret: func(prompt string) (string, error) {
			b, err := rl.ReadPassword(prompt)
			return string(b), err
		},
	}

	fmt.Fprintf(a.out, "pgassist %s (service: %s)\n", Version, a.cfg.BaseURL)
	fmt.Fprintln(a.out, "Type a question, .help for commands, .quit to exit")
	fmt.Fprintln(a.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if sh.handle(ctx, line) {
			return nil
		}
	}
}

// handle processes one input line and reports whether the shell should exit.
// Failures are printed and the session continues.
func (s *shell) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	var err error
	if strings.HasPrefix(line, ".") {
		var quit bool
		quit, err = s.dot(ctx, line)
		if quit {
			return true
		}
	} else {
		err = s.ask(ctx, line)
	}
	if err != nil {
		fmt.Fprintln(s.a.err, logging.FormatFailure(err))
	}
	fmt.Fprintln(s.a.out)
	return false
}

func (s *shell) ask(ctx context.Context, question string) error {
	if !s.a.svc.State().Connected && !s.a.svc.HasSession() {
		fmt.Fprintln(s.a.err, "Please connect to the database first (.connect)")
		return nil
	}
	fallback := s.a.svc.State().Profile
	tr, err := withSpinner(s.a.err, "translating", func() (assistant.Translation, error) {
		return s.a.svc.Translate(ctx, question, &fallback)
	})
	if err != nil {
		return err
	}
	return showResult(s.a.out, tr.Result, s.a.cfg.Output)
}

func (s *shell) dot(ctx context.Context, line string) (bool, error) {
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true, nil

	case ".help":
		printShellHelp(s.a.out)

	case ".connect":
		p := s.a.svc.State().Profile
		if p.Password == "" {
			pw, err := s.readSecret("Password for " + p.User + "@" + p.Host + ": ")
			if err != nil {
				return false, err
			}
			p.Password = pw
		}
		if _, err := s.a.svc.Connect(ctx, p); err != nil {
			return false, err
		}
		fmt.Fprintln(s.a.out, pterm.Success.Sprint("Connected to "+p.String()))

	case ".disconnect":
		if err := s.a.svc.Disconnect(); err != nil {
			return false, err
		}
		fmt.Fprintln(s.a.out, "Disconnected")

	case ".legacy":
		if err := s.a.svc.ForgetSession(); err != nil {
			return false, err
		}
		fmt.Fprintln(s.a.out, "Session forgotten, questions now carry the connection profile")

	case ".run":
		if rest == "" {
			fmt.Fprintln(s.a.err, "Usage: .run <sql>")
			return false, nil
		}
		return false, runAndShow(ctx, s.a, rest)

	case ".status":
		cur := s.a.svc.State()
		fmt.Fprintf(s.a.out, "profile:   %s\nconnected: %t\nsession:   %t\n", cur.Profile.String(), cur.Connected, s.a.svc.HasSession())

	default:
		fmt.Fprintf(s.a.err, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false, nil
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .connect        Open a session using the saved defaults
  .disconnect     Forget the session and reset the profile
  .legacy         Forget the session but keep the profile
  .run <sql>      Run SQL through the service
  .status         Show the profile and session
  .help           Show this help message
  .quit / .exit   Leave the shell

Anything else is sent as a question.
`
	fmt.Fprintln(w, help)
}

func shellCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".connect"),
		readline.PcItem(".disconnect"),
		readline.PcItem(".legacy"),
		readline.PcItem(".run"),
		readline.PcItem(".status"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
