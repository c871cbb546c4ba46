package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/panjf2000/ants/v2"
)

var (
	// ErrPanic is returned by Do when the function panicked
	ErrPanic = errors.New("worker function panicked")
	// ErrClosed is returned by Do after the pool is closed
	ErrClosed = errors.New("worker pool closed")
)

// Pool runs functions on a bounded set of goroutines.
// At most Size functions run at any one time. Callers
// wait for a free slot until their context is done.
type Pool struct {
	pool  *ants.Pool
	slots chan struct{}
}

// New creates a pool with size workers
func New(size int) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}

	pool, err := ants.NewPool(size, ants.WithPreAlloc(true))

	if err != nil {
		return nil, fmt.Errorf("could not create worker pool: %w", err)
	}

	return &Pool{pool: pool, slots: make(chan struct{}, size)}, nil
}

// Size returns the number of workers
func (pool *Pool) Size() int {
	return pool.pool.Cap()
}

// Running returns the number of live worker goroutines.
// An idle worker counts until it expires.
func (pool *Pool) Running() int {
	return pool.pool.Running()
}

// Do runs fn on a worker and waits for it to return.
// If ctx is done first, whether fn is still waiting for
// a slot or already running, Do returns ctx.Err() without
// waiting. A running fn still runs to completion in that
// case so it must not share unsynchronized state with the
// caller after Do returns.
func (pool *Pool) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// ants.Pool.Submit blocks without regard for ctx while every
	// worker is busy. A slot is only free once a function has
	// returned so Submit waits at most for its worker to go idle.
	select {
	case pool.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan error, 1)

	err := pool.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v", ErrPanic, r)
			}

			close(done)
			<-pool.slots
		}()

		fn()
	})

	if err != nil {
		<-pool.slots

		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrClosed
		}

		return fmt.Errorf("could not submit to worker pool: %w", err)
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the pool. Functions already running
// are allowed to finish.
func (pool *Pool) Close() {
	pool.pool.Release()
}
