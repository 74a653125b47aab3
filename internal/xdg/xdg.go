// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves XDG Base Directory paths for pgassist: the config
// directory holds config.yaml and the file keyring, the state directory holds
// the shell history.
package xdg

import (
	"os"
	"path/filepath"
)

// App is the directory name used under each XDG base.
const App = "pgassist"

// ConfigDir returns $XDG_CONFIG_HOME/pgassist, falling back to
// ~/.config/pgassist. The directory is created with 0700 if missing.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/pgassist, falling back to
// ~/.local/state/pgassist. The directory is created with 0700 if missing.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func resolve(envVar, homeRel string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, App)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
