// Copyright 2025 The go-vector Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for processing
// buffers in disjoint segments. A Pool is created once and reused across
// many calls, so no goroutines are spawned per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	// Segments of [0, n) whose boundaries are multiples of 8
//	err := pool.ParallelForAligned(n, 8, func(start, end int) error {
//	    return process(buf[start:end])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of workers fed through a shared channel.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New starts a pool of numWorkers workers. If numWorkers <= 0 it uses
// GOMAXPROCS. Workers run until Close is called.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers once pending work completes. It is safe to call
// Close more than once; calls made after Close run sequentially on the
// caller's goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// run hands count copies of fn to the workers and waits for all of them.
func (p *Pool) run(count int, fn func()) {
	var wg sync.WaitGroup
	wg.Add(count)
	for range count {
		p.workC <- workItem{fn: fn, barrier: &wg}
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into one contiguous range per worker and
// calls fn(start, end) for each. It blocks until all ranges are done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var next atomic.Int64
	p.run(workers, func() {
		start := int(next.Add(1)-1) * chunk
		if start < n {
			fn(start, min(start+chunk, n))
		}
	})
}

// ParallelForAtomic calls fn(i) for every i in [0, n), with workers taking
// the next index as they become free. Use it when the cost per index
// varies.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}
	var next atomic.Int64
	p.run(workers, func() {
		for {
			i := int(next.Add(1) - 1)
			if i >= n {
				return
			}
			fn(i)
		}
	})
}

// ParallelForAligned splits [0, n) into segments whose start offsets are
// multiples of align and calls fn(start, end) for each. Only the last
// segment may be shorter than align. Workers take segments as they become
// free; once fn fails no new segment is started. It returns the first
// error.
func (p *Pool) ParallelForAligned(n, align int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}
	// Aim for several segments per worker so uneven segments balance out.
	units := (n + align - 1) / align
	perSegment := max(1, units/(p.numWorkers*4))
	size := perSegment * align
	segments := (n + size - 1) / size

	var (
		next     atomic.Int64
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
	)
	work := func() {
		for !failed.Load() {
			seg := int(next.Add(1) - 1)
			if seg >= segments {
				return
			}
			start := seg * size
			if err := fn(start, min(start+size, n)); err != nil {
				errOnce.Do(func() { firstErr = err })
				failed.Store(true)
			}
		}
	}

	workers := min(p.numWorkers, segments)
	if workers == 1 || p.closed.Load() {
		work()
		return firstErr
	}
	p.run(workers, work)
	return firstErr
}
