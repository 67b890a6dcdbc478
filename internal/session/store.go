// Package session owns the gateway's single authenticated identity: the
// bearer token and user record obtained from the upstream API, persisted
// across restarts in a durable key-value store.
package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned by Store.Load when no session is persisted.
var ErrNoSession = errors.New("no persisted session")

// Store persists the session's two entries: the raw token and the
// serialized user record. They are written and deleted together; a store
// must never expose one without the other.
type Store interface {
	// Load returns the persisted token and serialized user record, or
	// ErrNoSession when either entry is missing.
	Load(ctx context.Context) (token string, user []byte, err error)
	// Save replaces both entries atomically.
	Save(ctx context.Context, token string, user []byte) error
	// Clear deletes both entries.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process Store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  []byte
	saved bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return "", nil, ErrNoSession
	}
	user := make([]byte, len(s.user))
	copy(user, s.user)
	return s.token, user, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, token string, user []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = make([]byte, len(user))
	copy(s.user, user)
	s.saved = true
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.saved = false
	return nil
}
