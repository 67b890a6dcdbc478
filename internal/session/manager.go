package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/edupanel/examboard/internal/model"
	"github.com/edupanel/examboard/internal/upstream"
	"github.com/rs/zerolog"
)

// ErrSessionExpired is returned by Do when the upstream rejects the
// stored token. The session has already been cleared when the caller
// sees this error.
var ErrSessionExpired = errors.New("session expired")

// Manager holds the process-wide session. All mutation goes through
// Login, Logout, Refresh and the 401 path of Do; the mutex makes those
// operations mutually exclusive so concurrent calls cannot interleave
// writes against the persisted store.
//
// State machine: uninitialized → loading → {empty | authenticated};
// authenticated → empty only on Logout or an upstream 401;
// empty → authenticated only through a successful Login.
type Manager struct {
	api   *upstream.Client
	store Store
	log   zerolog.Logger

	mu      sync.Mutex
	user    *model.UserRecord
	token   string
	loading bool
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	User    *model.UserRecord
	Token   string
	Loading bool
}

// NewManager creates a Manager in the loading state. Call Restore once
// before serving traffic.
func NewManager(api *upstream.Client, store Store, log zerolog.Logger) *Manager {
	return &Manager{api: api, store: store, log: log, loading: true}
}

// Restore loads a previously persisted session, if any. It runs once at
// startup and never fails: a missing session leaves the manager empty,
// and a malformed persisted record is dropped from the store and treated
// the same as a missing one. The loading flag is cleared regardless of
// outcome.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	token, raw, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.Warn().Err(err).Msg("Session restore failed, starting unauthenticated")
		}
		return
	}

	var user model.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		m.log.Warn().Err(err).Msg("Discarding malformed persisted session")
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.Error().Err(clearErr).Msg("Failed to clear malformed session")
		}
		return
	}

	m.token = token
	m.user = &user
	m.log.Info().Str("username", user.Username).Msg("Session restored")
}

// Login exchanges credentials for a new session, replacing any existing
// one wholesale. Rejected credentials surface as
// upstream.ErrBadCredentials; transport failures are returned wrapped.
// On any failure the current session state is left untouched.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, raw, err := m.api.Login(ctx, email, password)
	if err != nil {
		if !errors.Is(err, upstream.ErrBadCredentials) {
			m.log.Error().Err(err).Msg("Login request failed")
		}
		return err
	}

	var user model.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		return errors.New("login: malformed user record in response")
	}

	m.token = token
	m.user = &user
	if err := m.store.Save(ctx, token, raw); err != nil {
		// The in-memory session stays valid; it just won't survive a restart.
		m.log.Error().Err(err).Msg("Failed to persist session")
	}

	m.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("Login successful")
	return nil
}

// Logout notifies the upstream best-effort, then unconditionally clears
// the session state and the persisted entries. Local logout always
// succeeds even when the remote call fails.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(ctx, true)
}

// clearLocked wipes session state and storage. When notify is set and a
// token is present, the upstream is told first; its failure only logs.
// Callers must hold m.mu.
func (m *Manager) clearLocked(ctx context.Context, notify bool) {
	defer func() {
		m.user = nil
		m.token = ""
		if err := m.store.Clear(ctx); err != nil {
			m.log.Error().Err(err).Msg("Failed to clear persisted session")
		}
	}()

	if notify && m.token != "" {
		if err := m.api.Logout(ctx, m.token); err != nil {
			m.log.Warn().Err(err).Msg("Upstream logout failed")
		}
	}
}

// Refresh re-fetches the user record with the stored token and persists
// the update, leaving the token untouched. It is a no-op without a
// session, and every failure is swallowed: the previous user record
// remains authoritative.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return
	}

	raw, err := m.api.FetchUser(ctx, m.token)
	if err != nil {
		m.log.Warn().Err(err).Msg("User refresh failed")
		return
	}

	var user model.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		m.log.Warn().Err(err).Msg("User refresh returned malformed record")
		return
	}

	m.user = &user
	if err := m.store.Save(ctx, m.token, raw); err != nil {
		m.log.Error().Err(err).Msg("Failed to persist refreshed session")
	}
}

// Do performs an authenticated request against the upstream, attaching
// the stored token. A 401 response is the single enforcement point that
// keeps this session consistent with server-side invalidation: the
// session is cleared (memory and store) and ErrSessionExpired is
// returned instead of the response. The caller owns the response body on
// success.
func (m *Manager) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token == "" {
		return nil, ErrSessionExpired
	}

	resp, err := m.api.Do(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		m.mu.Lock()
		// No upstream notify: the token is already dead server-side.
		m.clearLocked(ctx, false)
		m.mu.Unlock()
		m.log.Info().Str("path", path).Msg("Upstream rejected token, session cleared")
		return nil, ErrSessionExpired
	}

	return resp, nil
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{Token: m.token, Loading: m.loading}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// IsAuthenticated reports whether a user record is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsAdmin reports whether the session user holds the admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.IsAdmin()
}

// IsModerator reports whether the session user holds at least moderator
// privileges.
func (m *Manager) IsModerator() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.IsModerator()
}
