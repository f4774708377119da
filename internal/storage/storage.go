// Package storage provides the two client-side key-value scopes: a durable
// file-backed store that survives restarts and a transient in-process store
// that lives for one run. One file per key under the data directory, the same
// scheme the config-dir token file uses elsewhere in the ecosystem.
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// Keys owned by this client.
const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyFavorites = "favorites"
)

// DefaultDir returns the per-user data directory.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tripmap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tripmap")
}

// Durable is a cross-session key-value store backed by one file per key.
// Reads of missing keys report absence, never an error.
type Durable struct {
	dir string
}

// NewDurable opens a durable store rooted at dir (created lazily on first
// write).
func NewDurable(dir string) *Durable {
	return &Durable{dir: dir}
}

func (d *Durable) path(key string) string {
	return filepath.Join(d.dir, key)
}

// Get reads the value stored under key. The second result is false when the
// key is absent or unreadable.
func (d *Durable) Get(key string) (string, bool) {
	b, err := os.ReadFile(d.path(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Set writes the value under key, creating the directory if needed.
func (d *Durable) Set(key, value string) error {
	if err := os.MkdirAll(d.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(d.path(key), []byte(value), 0o600)
}

// Delete removes key. Deleting an absent key is a no-op.
func (d *Durable) Delete(key string) error {
	err := os.Remove(d.path(key))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Transient is session-scoped storage: an in-memory map cleared wholesale on
// logout and discarded when the process exits.
type Transient struct {
	mu sync.Mutex
	m  map[string]string
}

func NewTransient() *Transient {
	return &Transient{m: make(map[string]string)}
}

func (t *Transient) Get(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.m[key]
	return v, ok
}

func (t *Transient) Set(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[key] = value
}

// Clear drops every key.
func (t *Transient) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m = make(map[string]string)
}

// Len reports the number of live keys.
func (t *Transient) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}
