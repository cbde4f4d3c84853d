// Package task ties in-flight work to the lifetime of the view that
// started it. Requests are not aborted retroactively on navigation, but
// a response arriving after the view is gone must never update state;
// the scope discards it.
package task

import (
	"context"
	"sync"
)

// Scope is a cancellable lifetime for one view's background work.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	disposed bool
	wg       sync.WaitGroup
}

// NewScope creates a scope derived from parent.
func NewScope(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the scope's context. It is canceled on Dispose.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Dispose ends the scope: the context is canceled and any completion
// that has not yet been delivered is dropped. Idempotent.
func (s *Scope) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.cancel()
}

// Disposed reports whether the scope has been disposed.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Go runs fn on its own goroutine and hands its result to complete —
// unless the scope was disposed first, in which case the result is
// discarded. complete never runs once the scope is disposed, so a late
// response cannot touch dead view state.
func (s *Scope) Go(fn func(ctx context.Context) error, complete func(error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := fn(s.ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.disposed {
			return
		}
		if complete != nil {
			complete(err)
		}
	}()
}

// Wait blocks until all work started with Go has finished, delivered
// or discarded.
func (s *Scope) Wait() {
	s.wg.Wait()
}
