// Package session manages the client's authenticated identity.
// The Manager is the single injected session context: login and signup
// establish it, logout clears it, and every authenticated request reads
// the credential through it.
package session

import (
	"log/slog"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	"github.com/logiksutra/bookshelf-cli/internal/state"
)

// Manager coordinates session reads and writes against the state store.
//
// When the state store could not be opened the manager runs without one
// and behaves as permanently logged out: reads report no session and
// writes fail. Storage problems never crash the client.
type Manager struct {
	store  *state.Store // nil when storage is unavailable
	logger *slog.Logger
}

// NewManager creates a session manager backed by the given store.
// A nil store is allowed and produces the logged-out fallback mode.
func NewManager(store *state.Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Current returns the persisted session, or the zero value when absent.
// Every call re-reads the store; callers must not cache the token across
// an in-flight request boundary, since logout may happen in between.
func (m *Manager) Current() domain.Session {
	if m.store == nil {
		return domain.Session{}
	}

	sess, err := m.store.Session()
	if err != nil {
		// Fail closed: an unreadable session is no session.
		if m.logger != nil {
			m.logger.Warn("failed to read session, treating as logged out", "error", err)
		}
		return domain.Session{}
	}
	if sess == nil {
		return domain.Session{}
	}
	return *sess
}

// IsAuthenticated reports whether a full session (token and user id)
// is present.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// Establish persists a new session, replacing any prior one.
func (m *Manager) Establish(token string, user domain.User) error {
	if m.store == nil {
		return errStorageUnavailable
	}
	return m.store.SaveSession(&domain.Session{Token: token, User: user})
}

// Clear removes the session. Idempotent; safe to call while logged out.
func (m *Manager) Clear() error {
	if m.store == nil {
		return nil
	}
	return m.store.ClearSession()
}

// Token returns the current bearer credential, or "" when logged out.
// Implements the gateway's TokenSource.
func (m *Manager) Token() string {
	return m.Current().Token
}
