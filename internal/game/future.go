package game

import (
	"context"
	"sync"
)

// ModelHandle is an opaque reference to an uploaded visual. The simulation
// never looks inside it.
type ModelHandle uint32

// NoModel marks an entity whose visual failed to load; it is simulated but
// not drawn.
const NoModel ModelHandle = 0

// Future is a value that becomes available exactly once. Readers only see
// the final value or error, never partial state.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v)
	return f
}

// Resolve completes the future with v. Later calls are ignored and
// return false.
func (f *Future[T]) Resolve(v T) bool {
	ok := false
	f.once.Do(func() {
		f.val = v
		close(f.done)
		ok = true
	})
	return ok
}

// Fail completes the future with err.
func (f *Future[T]) Fail(err error) bool {
	ok := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		ok = true
	})
	return ok
}

func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Ready reports whether the future has completed, without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the future completes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
