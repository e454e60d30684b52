// Package future adapts the teacher runtime's single-value Future into a
// generic form used to type the Runtime Front-End's Execute/Render return
// values.
package future

import (
	"context"
	"fmt"
	"sync"
)

// Future resolves once the goroutine started by New finishes.
type Future[T any] struct {
	value T
	err   error
	ready chan struct{}
	once  sync.Once
}

// New starts fn in its own goroutine and returns a Future that resolves to
// its result.
func New[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{ready: make(chan struct{})}

	go func() {
		f.value, f.err = fn()
		f.once.Do(func() {
			close(f.ready)
		})
	}()

	return f
}

// Get blocks until the future resolves.
func (f *Future[T]) Get() (T, error) {
	<-f.ready
	return f.value, f.err
}

// GetContext blocks until the future resolves or ctx is done, whichever
// comes first. If ctx is done first, the future keeps running in the
// background -- abandoning the wait never cancels the underlying script,
// matching the runtime's no-in-band-cancellation model.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.ready:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// MustGet panics if the future resolved to an error.
func (f *Future[T]) MustGet() T {
	val, err := f.Get()
	if err != nil {
		panic(fmt.Sprintf("future failed: %v", err))
	}
	return val
}
