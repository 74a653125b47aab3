// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"

	"pgassist/cli/internal/assistant"
	"pgassist/cli/internal/backend"
	"pgassist/cli/internal/config"
	"pgassist/cli/internal/keychain"
	"pgassist/cli/internal/logging"
	"pgassist/cli/internal/session"
	"pgassist/cli/internal/state"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg  *config.Config
	log  *pterm.Logger
	keys *keychain.Manager
	svc  *assistant.Service
	out  io.Writer
	err  io.Writer
}

// openApp builds the app for cmd. Tests replace it to inject an in-memory
// keyring and a fake service.
var openApp = newApp

// lastBaseURL is the service address of the most recent invocation, used to
// explain transport failures after the command returns.
var lastBaseURL string

func newApp(cmd *cobra.Command) (*app, error) {
	global := cmd.Root().PersistentFlags()
	cfgFile, _ := global.GetString("config")
	cfg, err := config.Load(cfgFile, global)
	if err != nil {
		return nil, err
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.FileUsed != "" {
		log.Debug("config loaded", log.Args("file", cfg.FileUsed))
	}

	kopts := cfg.KeychainOptions()
	kopts.Logger = log
	keys, err := keychain.Open(kopts)
	if err != nil {
		return nil, err
	}
	return buildApp(cmd, cfg, keys, log), nil
}

// buildApp wires the core around an opened credential store.
func buildApp(cmd *cobra.Command, cfg *config.Config, keys *keychain.Manager, log *pterm.Logger) *app {
	tokens := session.NewHolder(keys, log)
	st := state.New(keys, tokens, log)
	api := backend.New(backend.Options{
		BaseURL:   cfg.BaseURL,
		Endpoints: cfg.Endpoints.Backend(),
		Tokens:    tokens,
		Logger:    log,
		Timeout:   cfg.Timeout,
	})
	lastBaseURL = cfg.BaseURL

	return &app{
		cfg:  cfg,
		log:  log,
		keys: keys,
		svc:  assistant.New(api, tokens, st, log),
		out:  cmd.OutOrStdout(),
		err:  cmd.ErrOrStderr(),
	}
}
