package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_DeliversResultWhileAlive(t *testing.T) {
	s := NewScope(context.Background())

	var got atomic.Value
	s.Go(
		func(context.Context) error { return errors.New("boom") },
		func(err error) { got.Store(err.Error()) },
	)
	s.Wait()

	assert.Equal(t, "boom", got.Load())
}

func TestScope_DiscardsResultAfterDispose(t *testing.T) {
	s := NewScope(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	var delivered atomic.Bool

	s.Go(
		func(context.Context) error {
			close(started)
			<-release
			return nil
		},
		func(error) { delivered.Store(true) },
	)

	<-started
	s.Dispose()
	close(release)
	s.Wait()

	assert.False(t, delivered.Load(), "a late result must be discarded after disposal")
}

func TestScope_DisposeCancelsContext(t *testing.T) {
	s := NewScope(context.Background())

	s.Dispose()

	select {
	case <-s.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled by Dispose")
	}
	assert.True(t, s.Disposed())
}

func TestScope_DisposeIsIdempotent(t *testing.T) {
	s := NewScope(context.Background())

	require.NotPanics(t, func() {
		s.Dispose()
		s.Dispose()
	})
}

func TestScope_InheritsParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewScope(parent)

	cancel()

	select {
	case <-s.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("scope context not canceled with parent")
	}
}
