// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the opaque bearer token issued by the translation
// service. Presence of the token, not its content, decides which request
// flow the assistant uses.
package session

import (
	"errors"

	"pgassist/cli/internal/keychain"
	"pgassist/cli/internal/logging"

	"github.com/pterm/pterm"
)

// TokenStore is the durable backing for the token.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error
}

// Holder is the single point of truth for the session token.
type Holder struct {
	store TokenStore
	log   *pterm.Logger
}

// NewHolder returns a Holder persisting through store.
func NewHolder(store TokenStore, log *pterm.Logger) *Holder {
	return &Holder{store: store, log: logging.OrDiscard(log)}
}

// Set stores token as-is. The shape is never checked.
func (h *Holder) Set(token string) error {
	if err := h.store.SaveToken(token); err != nil {
		return err
	}
	h.log.Debug("session token stored")
	return nil
}

// Get returns the stored token and whether one exists. A store read failure
// is logged and reported as absence.
func (h *Holder) Get() (string, bool) {
	token, err := h.store.LoadToken()
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			h.log.Debug("session token unreadable", h.log.Args("error", err))
		}
		return "", false
	}
	return token, token != ""
}

// Clear removes the token. Clearing an absent token succeeds.
func (h *Holder) Clear() error {
	if err := h.store.ClearToken(); err != nil && !errors.Is(err, keychain.ErrNotFound) {
		return err
	}
	h.log.Debug("session token cleared")
	return nil
}
