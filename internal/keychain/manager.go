// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides the durable key/value store for pgassist.
// It keeps the two values that must survive a restart: the saved connection
// defaults and the session bearer token. Values live in the OS credential store
// (macOS Keychain, Windows Credential Manager, Secret Service, KWallet, pass)
// with an encrypted file fallback for headless machines.
//
// A Manager is an explicit object handed to the stores that need it; there is
// no package-level instance.
package keychain

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"

	"pgassist/cli/internal/logging"

	"github.com/99designs/keyring"
	"github.com/pterm/pterm"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "pgassist"

// Keys used for storing values in the credential store.
const (
	KeyDefaults     = "db_defaults"
	KeySessionToken = "pg_token"
)

// DefaultFilePassword encrypts the file backend when no password is
// configured. It is public, so items written with it are not protected.
const DefaultFilePassword = ServiceName

// ErrNotFound is returned when a key has never been stored or was removed.
var ErrNotFound = errors.New("keychain: item not found")

// Backend selects which credential stores Open may use.
type Backend string

const (
	// BackendAuto prefers the native OS store and falls back to the file store.
	BackendAuto Backend = "auto"
	// BackendFile forces the encrypted file store.
	BackendFile Backend = "file"
)

// Options configures Open.
type Options struct {
	Backend Backend
	// Dir is where the file backend keeps its items.
	Dir string
	// Password encrypts the file backend.
	Password string
	// Logger receives a warning when the file backend opens with
	// DefaultFilePassword.
	Logger *pterm.Logger
}

// Manager provides thread-safe access to the credential store.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager wraps an already opened keyring.
func NewManager(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// Open opens the credential store described by opts.
func Open(opts Options) (*Manager, error) {
	cfg := keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  allowedBackends(opts.Backend),
		PassPrefix:       ServiceName,
		FileDir:          filepath.Join(opts.Dir, "keyring"),
		FilePasswordFunc: filePassword(opts),
	}

	// Hint prefixes where supported to minimize namespace collisions
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, err
	}
	return NewManager(ring), nil
}

// filePassword is only called when the file backend is actually opened, so
// the warning never fires for native credential stores.
func filePassword(opts Options) keyring.PromptFunc {
	log := logging.OrDiscard(opts.Logger)
	return func(string) (string, error) {
		pw := opts.Password
		if pw == "" {
			pw = DefaultFilePassword
		}
		if pw == DefaultFilePassword {
			log.Warn("file keyring is using the built-in password; set PGASSIST_KEYRING_PASSWORD to encrypt the stored token and defaults",
				log.Args("dir", filepath.Join(opts.Dir, "keyring")))
		}
		return pw, nil
	}
}

func allowedBackends(b Backend) []keyring.BackendType {
	if b == BackendFile {
		return []keyring.BackendType{keyring.FileBackend}
	}
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		return []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}
}

func (m *Manager) get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it.Data, nil
}

func (m *Manager) set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{Key: key, Data: data, Label: ServiceName + " " + key})
}

func (m *Manager) remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// SaveToken stores the session bearer token.
func (m *Manager) SaveToken(token string) error {
	return m.set(KeySessionToken, []byte(token))
}

// LoadToken retrieves the session bearer token. A missing or empty token
// yields ErrNotFound.
func (m *Manager) LoadToken() (string, error) {
	data, err := m.get(KeySessionToken)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNotFound
	}
	return string(data), nil
}

// ClearToken removes the session bearer token. Removing a missing token succeeds.
func (m *Manager) ClearToken() error {
	return m.remove(KeySessionToken)
}

// SaveDefaults stores the serialized connection defaults.
func (m *Manager) SaveDefaults(data []byte) error {
	return m.set(KeyDefaults, data)
}

// LoadDefaults retrieves the serialized connection defaults.
// Missing defaults yield (nil, nil).
func (m *Manager) LoadDefaults() ([]byte, error) {
	data, err := m.get(KeyDefaults)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return data, err
}

// ClearDefaults removes the saved connection defaults.
func (m *Manager) ClearDefaults() error {
	return m.remove(KeyDefaults)
}

// ClearAll removes every value pgassist stores.
func (m *Manager) ClearAll() error {
	if err := m.ClearToken(); err != nil {
		return err
	}
	return m.ClearDefaults()
}
