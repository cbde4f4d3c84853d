package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	"github.com/logiksutra/bookshelf-cli/internal/state"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()

	store, err := state.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewManager(store, nil)
}

func TestManager_LoggedOutByDefault(t *testing.T) {
	m := setupManager(t)

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())
	assert.Equal(t, domain.Session{}, m.Current())
}

func TestManager_EstablishAndRead(t *testing.T) {
	m := setupManager(t)

	err := m.Establish("t1", domain.User{ID: "u1", Name: "A", Email: "a@b.com"})
	require.NoError(t, err)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "t1", m.Token())

	current := m.Current()
	assert.Equal(t, "u1", current.User.ID)
	assert.Equal(t, "A", current.User.Name)
}

func TestManager_EstablishOverwrites(t *testing.T) {
	m := setupManager(t)

	require.NoError(t, m.Establish("t1", domain.User{ID: "u1", Name: "A"}))
	require.NoError(t, m.Establish("t2", domain.User{ID: "u2", Name: "B"}))

	current := m.Current()
	assert.Equal(t, "t2", current.Token)
	assert.Equal(t, "u2", current.User.ID)
}

func TestManager_Clear(t *testing.T) {
	m := setupManager(t)

	require.NoError(t, m.Establish("t1", domain.User{ID: "u1"}))
	require.NoError(t, m.Clear())

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())

	// Idempotent.
	require.NoError(t, m.Clear())
}

func TestManager_RejectsPartialSession(t *testing.T) {
	m := setupManager(t)

	assert.Error(t, m.Establish("", domain.User{ID: "u1"}))
	assert.Error(t, m.Establish("t1", domain.User{}))
	assert.False(t, m.IsAuthenticated())
}

func TestManager_NoStoreFailsClosed(t *testing.T) {
	m := NewManager(nil, nil)

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())
	assert.Error(t, m.Establish("t1", domain.User{ID: "u1"}))
	// Clear is still a no-op success so logout never errors visibly.
	assert.NoError(t, m.Clear())
}

func TestManager_TokenReReadsStore(t *testing.T) {
	store, err := state.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := NewManager(store, nil)
	require.NoError(t, m.Establish("t1", domain.User{ID: "u1"}))
	assert.Equal(t, "t1", m.Token())

	// A logout between two reads within one logical operation must be
	// visible to the second read.
	require.NoError(t, store.ClearSession())
	assert.Empty(t, m.Token())
}
