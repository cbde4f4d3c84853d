// Package state persists the client's local state in a Badger database.
// It is the Go counterpart of the browser's durable key-value storage:
// the session record survives across runs and is the only persisted
// client state besides the client identity.
package state

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	"github.com/logiksutra/bookshelf-cli/internal/id"
)

const (
	sessionKey  = "session"
	clientIDKey = "client_id"
)

// Store wraps a Badger database instance holding client state.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens the state database under the given directory.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(filepath.Join(path, "state.db"))
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // The session record must survive an immediate crash

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Debug("state database opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession persists the session. Token and user are written as a
// single record in one transaction, so no reader can observe one
// without the other.
func (s *Store) SaveSession(session *domain.Session) error {
	if session == nil || !session.IsAuthenticated() {
		return errors.New("refusing to save a partial session")
	}
	if err := s.set([]byte(sessionKey), session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Session returns the persisted session, or nil when none exists.
// A stored record missing either the token or the user id is treated
// as absent rather than returned half-populated.
func (s *Store) Session() (*domain.Session, error) {
	var session domain.Session
	if err := s.get([]byte(sessionKey), &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if !session.IsAuthenticated() {
		return nil, nil
	}
	return &session, nil
}

// ClearSession removes the persisted session. Idempotent.
func (s *Store) ClearSession() error {
	if err := s.delete([]byte(sessionKey)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ClientID returns the stable identifier for this client install,
// generating and persisting one on first use.
func (s *Store) ClientID() (string, error) {
	var clientID string
	err := s.get([]byte(clientIDKey), &clientID)
	if err == nil {
		return clientID, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return "", fmt.Errorf("get client id: %w", err)
	}

	clientID, err = id.Generate("cli")
	if err != nil {
		return "", err
	}
	if err := s.set([]byte(clientIDKey), clientID); err != nil {
		return "", fmt.Errorf("save client id: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("generated client id", "client_id", clientID)
	}
	return clientID, nil
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}
