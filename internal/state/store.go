// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package state tracks the current data-source connection for the lifetime of
// the process. Connected is only ever true after a successful connect
// acknowledgment; reset and saving defaults both drop it.
package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"pgassist/cli/internal/logging"
	"pgassist/cli/internal/profile"

	"github.com/pterm/pterm"
)

// Connection is a profile plus the connected marker.
type Connection struct {
	profile.Profile
	Connected bool `json:"connected"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Host      *string `json:"host,omitempty"`
	Port      *int    `json:"port,omitempty"`
	User      *string `json:"user,omitempty"`
	Password  *string `json:"password,omitempty"`
	Database  *string `json:"database,omitempty"`
	Connected *bool   `json:"-"`
}

// PatchOf returns a patch setting every profile field to p's values.
func PatchOf(p profile.Profile) Patch {
	return Patch{
		Host:     &p.Host,
		Port:     &p.Port,
		User:     &p.User,
		Password: &p.Password,
		Database: &p.Database,
	}
}

// WithConnected returns a copy of the patch that also sets the marker.
func (pt Patch) WithConnected(v bool) Patch {
	pt.Connected = &v
	return pt
}

func (pt Patch) apply(c *Connection) {
	if pt.Host != nil {
		c.Host = *pt.Host
	}
	if pt.Port != nil {
		c.Port = *pt.Port
	}
	if pt.User != nil {
		c.User = *pt.User
	}
	if pt.Password != nil {
		c.Password = *pt.Password
	}
	if pt.Database != nil {
		c.Database = *pt.Database
	}
	if pt.Connected != nil {
		c.Connected = *pt.Connected
	}
}

// DefaultsStore persists the serialized connection defaults.
type DefaultsStore interface {
	SaveDefaults(data []byte) error
	LoadDefaults() ([]byte, error)
}

// TokenClearer drops the session token on reset.
type TokenClearer interface {
	Clear() error
}

// Store owns the current Connection.
type Store struct {
	mu       sync.RWMutex
	cur      Connection
	defaults DefaultsStore
	tokens   TokenClearer
	log      *pterm.Logger
}

// New builds the store from the built-in defaults overlaid with any persisted
// defaults. The result is always disconnected. Unreadable persisted defaults
// are logged and ignored.
func New(defaults DefaultsStore, tokens TokenClearer, log *pterm.Logger) *Store {
	s := &Store{
		cur:      Connection{Profile: profile.Default()},
		defaults: defaults,
		tokens:   tokens,
		log:      logging.OrDiscard(log),
	}

	data, err := defaults.LoadDefaults()
	if err != nil {
		s.log.Warn("could not read saved defaults", s.log.Args("error", err))
		return s
	}
	if len(data) == 0 {
		return s
	}
	var pt Patch
	if err := json.Unmarshal(data, &pt); err != nil {
		s.log.Warn("ignoring malformed saved defaults", s.log.Args("error", err))
		return s
	}
	pt.apply(&s.cur)
	s.log.Debug("loaded saved defaults", s.log.Args("profile", s.cur.Profile.String()))
	return s
}

// Current returns a snapshot of the connection.
func (s *Store) Current() Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update merges pt into the current state without validation.
func (s *Store) Update(pt Patch) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt.apply(&s.cur)
	return s.cur
}

// SetDefaults persists p, merges it into the current state and marks the
// connection as disconnected, even when p equals the current profile.
func (s *Store) SetDefaults(p profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.defaults.SaveDefaults(data); err != nil {
		return fmt.Errorf("save defaults: %w", err)
	}
	PatchOf(p).WithConnected(false).apply(&s.cur)
	s.log.Debug("defaults saved", s.log.Args("profile", p.String()))
	return nil
}

// Reset restores the built-in profile, disconnects and clears the session
// token. Saved defaults are kept.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.cur = Connection{Profile: profile.Default()}
	s.mu.Unlock()

	return s.tokens.Clear()
}
