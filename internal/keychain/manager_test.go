// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"bytes"
	"errors"
	"testing"

	"pgassist/cli/internal/logging"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(keyring.NewArrayKeyring(nil))
}

func TestManager_Token(t *testing.T) {
	m := newTestManager()

	_, err := m.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SaveToken("abc123"))
	tok, err := m.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	require.NoError(t, m.ClearToken())
	require.NoError(t, m.ClearToken(), "clearing twice must succeed")
	_, err = m.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_EmptyTokenIsAbsent(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.SaveToken(""))
	_, err := m.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Defaults(t *testing.T) {
	m := newTestManager()

	data, err := m.LoadDefaults()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, m.SaveDefaults([]byte(`{"host":"db"}`)))
	data, err = m.LoadDefaults()
	require.NoError(t, err)
	assert.JSONEq(t, `{"host":"db"}`, string(data))
}

func TestManager_ClearAll(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.SaveToken("t"))
	require.NoError(t, m.SaveDefaults([]byte(`{}`)))

	require.NoError(t, m.ClearAll())

	_, err := m.LoadToken()
	assert.True(t, errors.Is(err, ErrNotFound))
	data, err := m.LoadDefaults()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestAllowedBackends_FileForced(t *testing.T) {
	assert.Equal(t, []keyring.BackendType{keyring.FileBackend}, allowedBackends(BackendFile))
	auto := allowedBackends(BackendAuto)
	assert.Equal(t, keyring.FileBackend, auto[len(auto)-1], "file store is always the last resort")
}

func TestFilePassword_WarnsOnBuiltInPassword(t *testing.T) {
	for _, pw := range []string{"", DefaultFilePassword} {
		var buf bytes.Buffer
		got, err := filePassword(Options{Password: pw, Dir: "/tmp/pga", Logger: logging.New(&buf, false)})("")
		require.NoError(t, err)
		assert.Equal(t, DefaultFilePassword, got)
		assert.Contains(t, buf.String(), "PGASSIST_KEYRING_PASSWORD", "password %q", pw)
	}
}

func TestFilePassword_CustomPasswordIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	got, err := filePassword(Options{Password: "correct horse", Logger: logging.New(&buf, false)})("")
	require.NoError(t, err)
	assert.Equal(t, "correct horse", got)
	assert.Empty(t, buf.String())
}
