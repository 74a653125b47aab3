// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package state

import (
	"errors"
	"testing"

	"pgassist/cli/internal/keychain"
	"pgassist/cli/internal/profile"
	"pgassist/cli/internal/session"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	keys   *keychain.Manager
	tokens *session.Holder
}

func newFixture() fixture {
	keys := keychain.NewManager(keyring.NewArrayKeyring(nil))
	return fixture{keys: keys, tokens: session.NewHolder(keys, nil)}
}

func (f fixture) store() *Store { return New(f.keys, f.tokens, nil) }

func shop() profile.Profile {
	return profile.Profile{Host: "db.internal", Port: 6543, User: "analyst", Password: "pw", Database: "shop"}
}

func TestNew_StartsFromDefaults(t *testing.T) {
	s := newFixture().store()
	assert.Equal(t, Connection{Profile: profile.Default()}, s.Current())
}

func TestNew_OverlaysPersistedDefaults(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.keys.SaveDefaults([]byte(`{"host":"10.1.1.1","database":"sales","connected":true}`)))

	cur := f.store().Current()
	assert.Equal(t, "10.1.1.1", cur.Host)
	assert.Equal(t, "sales", cur.Database)
	assert.Equal(t, 5432, cur.Port, "unsaved fields keep the built-in value")
	assert.False(t, cur.Connected)
}

func TestNew_IgnoresMalformedDefaults(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.keys.SaveDefaults([]byte(`not json`)))
	assert.Equal(t, profile.Default(), f.store().Current().Profile)
}

func TestUpdate_PartialMerge(t *testing.T) {
	s := newFixture().store()
	host := "replica"
	got := s.Update(Patch{Host: &host}.WithConnected(true))

	assert.Equal(t, "replica", got.Host)
	assert.Equal(t, "postgres", got.User)
	assert.True(t, got.Connected)
	assert.Equal(t, got, s.Current())
}

func TestSetDefaults_DropsConnection(t *testing.T) {
	f := newFixture()
	s := f.store()
	s.Update(PatchOf(shop()).WithConnected(true))

	require.NoError(t, s.SetDefaults(shop()))
	cur := s.Current()
	assert.False(t, cur.Connected, "identical profile still disconnects")
	assert.Equal(t, shop(), cur.Profile)
}

func TestSetDefaults_RoundTrip(t *testing.T) {
	f := newFixture()
	s := f.store()
	s.Update(Patch{}.WithConnected(true))
	require.NoError(t, s.SetDefaults(shop()))

	fresh := f.store().Current()
	assert.Equal(t, shop(), fresh.Profile)
	assert.False(t, fresh.Connected)
}

type failingDefaults struct{}

func (failingDefaults) SaveDefaults([]byte) error     { return errors.New("disk full") }
func (failingDefaults) LoadDefaults() ([]byte, error) { return nil, errors.New("locked") }

func TestSetDefaults_PersistFailureLeavesState(t *testing.T) {
	f := newFixture()
	s := New(failingDefaults{}, f.tokens, nil)
	s.Update(Patch{}.WithConnected(true))

	err := s.SetDefaults(shop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, s.Current().Connected)
	assert.Equal(t, profile.Default(), s.Current().Profile)
}

func TestReset_Idempotent(t *testing.T) {
	f := newFixture()
	s := f.store()
	require.NoError(t, f.tokens.Set("tok"))
	s.Update(PatchOf(shop()).WithConnected(true))

	require.NoError(t, s.Reset())
	once := s.Current()
	require.NoError(t, s.Reset())

	assert.Equal(t, once, s.Current())
	assert.Equal(t, Connection{Profile: profile.Default()}, once)
	_, ok := f.tokens.Get()
	assert.False(t, ok)
}
