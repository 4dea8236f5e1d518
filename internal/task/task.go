// Package task runs a single catalog operation in the background and hands its result back
// through a Future.
//
// A Future completes exactly once. Callbacks registered with Then run on a goroutine owned by
// the Future, never on the goroutine that registered them, so callers that need a specific
// context (a UI loop, a request handler) must hand the result over themselves.
package task

import (
	"context"
	"sync"
)

// Future is the pending result of a function started with Go.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once

	value T
	err   error
}

// Go starts fn on a new goroutine. The work is cancelled when ctx is done or Cancel is called.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	runCtx, cancel := context.WithCancel(ctx)
	f := &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		value, err := fn(runCtx)
		f.complete(value, err)
	}()
	return f
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel cancels the context passed to the running function. The Future still completes, with
// whatever the function returns after observing cancellation.
func (f *Future[T]) Cancel() {
	f.cancel()
}

// Await blocks until the result is ready or ctx is done. Giving up on ctx does not cancel the
// underlying work.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then registers fn to be called exactly once with the result.
func (f *Future[T]) Then(fn func(T, error)) {
	go func() {
		<-f.done
		fn(f.value, f.err)
	}()
}
