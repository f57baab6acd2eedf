// Package workers contains the bounded download worker pool
package workers

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of simultaneous downloads. Callers suspend on
// acquire, so the update dispatcher stays responsive while long downloads
// run, and each caller resumes in place once its own download finishes —
// status edits keep their original request order.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool with the given number of slots
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Do runs fn once a slot is available and returns its result.
// Returns the context error when cancelled while waiting.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)

	return fn()
}
