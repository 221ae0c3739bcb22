// Package workerpool bounds the number of RPCs a bank or gateway process
// services concurrently, per spec.md §5's scheduling model: "each bank
// and the gateway run a bounded worker pool that services one RPC per
// worker; workers run in parallel." Acquire blocks once Size in-flight
// calls are outstanding, backpressuring the caller instead of letting an
// unbounded number of goroutines pile up against the bank's single mutex.
package workerpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is a fixed-size concurrency limiter.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// New builds a Pool that admits at most size concurrent callers.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Acquire blocks until a worker slot is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release frees the worker slot acquired by a prior successful Acquire.
func (p *Pool) Release() {
	p.sem.Release(1)
}

// Size returns the pool's configured worker count.
func (p *Pool) Size() int {
	return int(p.size)
}
