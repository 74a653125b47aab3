// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	for _, k := range []string{"PGASSIST_BASE_URL", "PGASSIST_OUTPUT", "PGASSIST_TIMEOUT", "PGASSIST_ENDPOINTS__TRANSLATE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return filepath.Join(base, "pgassist")
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("base-url", "", "")
	fs.StringP("output", "o", "", "")
	fs.Duration("timeout", 0, "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", testFlags())
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "auto", cfg.Keyring)
	assert.Equal(t, "/api/nl2sql", cfg.Endpoints.Translate)
	assert.Equal(t, "/api/run-sql", cfg.Endpoints.Execute)
	assert.Empty(t, cfg.FileUsed)
	assert.Equal(t, dir, cfg.Dir)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(
		"base_url: http://file:9000\noutput: csv\ntimeout: 15s\nendpoints:\n  translate: /v2/translate\n"), 0o600))

	t.Setenv("PGASSIST_OUTPUT", "json")
	t.Setenv("PGASSIST_ENDPOINTS__TRANSLATE", "/env/translate")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--base-url", "http://flag:7000"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:7000", cfg.BaseURL, "flag beats file")
	assert.Equal(t, "json", cfg.Output, "env beats file")
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "/env/translate", cfg.Endpoints.Translate)
	assert.Equal(t, "/api/connect", cfg.Endpoints.Connect)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.FileUsed)
}

func TestLoad_TimeoutFlag(t *testing.T) {
	isolate(t)
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--timeout", "3s", "-v"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_InvalidOutput(t *testing.T) {
	isolate(t)
	t.Setenv("PGASSIST_OUTPUT", "xml")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestKeychainOptions(t *testing.T) {
	cfg := &Config{Keyring: "file", KeyringPassword: "pw", Dir: "/tmp/x"}
	opts := cfg.KeychainOptions()
	assert.Equal(t, "file", string(opts.Backend))
	assert.Equal(t, "/tmp/x", opts.Dir)
	assert.Equal(t, "pw", opts.Password)
}
