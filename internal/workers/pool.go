// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool is a [Runner] backed by a weighted semaphore.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool running at most size jobs at once.
// A non-positive size is treated as 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the maximal number of concurrently running jobs.
func (p *Pool) Size() int {
	return p.size
}

// Do implements [Runner].
func (p *Pool) Do(ctx context.Context, job func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for a free worker: %w", err)
	}
	defer p.sem.Release(1)

	job()
	return nil
}
