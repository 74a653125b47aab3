// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads CLI settings from defaults, the config file, PGASSIST_
// environment variables and command-line flags, in increasing precedence.
// Connection credentials are not configuration; they live in the keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pgassist/cli/internal/backend"
	"pgassist/cli/internal/keychain"
	"pgassist/cli/internal/xdg"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// descends into a section: PGASSIST_ENDPOINTS__TRANSLATE.
const EnvPrefix = "PGASSIST_"

// FileName is the config file looked up in the XDG config dir.
const FileName = "config.yaml"

// Output formats accepted by the output setting.
var Outputs = []string{"table", "csv", "markdown", "json", "yaml"}

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL         string        `koanf:"base_url"`
	Timeout         time.Duration `koanf:"timeout"`
	Output          string        `koanf:"output"`
	Verbose         bool          `koanf:"verbose"`
	Keyring         string        `koanf:"keyring"`
	KeyringPassword string        `koanf:"keyring_password"`
	Endpoints       Endpoints     `koanf:"endpoints"`

	// FileUsed is the config file that was read, empty when none was.
	FileUsed string `koanf:"-"`
	// Dir is the pgassist config directory.
	Dir string `koanf:"-"`
}

// Endpoints overrides the service paths.
type Endpoints struct {
	Connect   string `koanf:"connect"`
	Translate string `koanf:"translate"`
	Execute   string `koanf:"execute"`
	Ping      string `koanf:"ping"`
}

// Backend converts the endpoint settings for the backend package.
func (e Endpoints) Backend() backend.Endpoints {
	return backend.Endpoints{Connect: e.Connect, Translate: e.Translate, Execute: e.Execute, Ping: e.Ping}
}

// KeychainOptions returns the keychain settings.
func (c *Config) KeychainOptions() keychain.Options {
	return keychain.Options{
		Backend:  keychain.Backend(c.Keyring),
		Dir:      c.Dir,
		Password: c.KeyringPassword,
	}
}

func defaults() map[string]any {
	eps := backend.DefaultEndpoints()
	return map[string]any{
		"base_url":            "http://127.0.0.1:8000",
		"timeout":             "0s",
		"output":              "table",
		"verbose":             false,
		"keyring":             string(keychain.BackendAuto),
		"keyring_password":    keychain.DefaultFilePassword,
		"endpoints.connect":   eps.Connect,
		"endpoints.translate": eps.Translate,
		"endpoints.execute":   eps.Execute,
		"endpoints.ping":      eps.Ping,
	}
}

// Load reads configuration. cfgFile overrides the default config file
// location; a missing default file is not an error, a missing explicit one is.
// Only flags the user changed override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	dir, err := xdg.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	used := cfgFile
	if used == "" {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			used = candidate
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// PGASSIST_BASE_URL -> base_url, PGASSIST_ENDPOINTS__PING -> endpoints.ping
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "config":
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	cfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if !validOutput(c.Output) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Output, strings.Join(Outputs, ", "))
	}
	switch keychain.Backend(c.Keyring) {
	case keychain.BackendAuto, keychain.BackendFile:
	default:
		return fmt.Errorf("unknown keyring backend %q (want auto or file)", c.Keyring)
	}
	return nil
}

func validOutput(o string) bool {
	for _, v := range Outputs {
		if v == o {
			return true
		}
	}
	return false
}
