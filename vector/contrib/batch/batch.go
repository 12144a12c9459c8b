// Copyright 2025 The go-vector Authors. SPDX-License-Identifier: Apache-2.0

// Package batch applies vector kernels to whole buffers. Buffers are split
// into disjoint segments aligned to the species lane count, so segments can
// run on separate workers without synchronization. The final partial
// vector of a buffer is loaded and stored through an IndexInRange mask.
//
// Usage:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	err := batch.Map(pool, vector.Int32_256, src, dst,
//	    func(x vector.Vector, active vector.Mask) (vector.Vector, error) {
//	        return x.PopCount()
//	    })
package batch

import (
	"fmt"

	"github.com/ajroetker/go-vector/vector"
	"github.com/ajroetker/go-vector/vector/contrib/workerpool"
)

// Kernel transforms one vector. active has every lane set except in the
// final partial vector of a buffer, where lanes past the end are unset and
// hold zero.
type Kernel func(x vector.Vector, active vector.Mask) (vector.Vector, error)

// Kernel2 is a Kernel over two inputs.
type Kernel2 func(x, y vector.Vector, active vector.Mask) (vector.Vector, error)

// Map computes dst[i] = fn(src)[i] for every element of src, one vector of
// species s at a time. dst must be at least as long as src. If pool is nil
// the buffer is processed on the calling goroutine. The first error stops
// further segments from starting and is returned.
func Map[T vector.Lanes](pool *workerpool.Pool, s vector.Species, src, dst []T, fn Kernel) error {
	if len(dst) < len(src) {
		return &vector.Error{Op: "batch.Map", Kind: vector.KindOutOfBounds, Detail: fmt.Sprintf("dst length %d < src length %d", len(dst), len(src))}
	}
	return forSegments(pool, s, len(src), func(off int, m vector.Mask, full bool) error {
		x, err := load(s, src, off, m, full)
		if err != nil {
			return err
		}
		r, err := fn(x, m)
		if err != nil {
			return err
		}
		return store(s, r, dst, off, m, full)
	})
}

// Zip computes dst[i] = fn(a, b)[i] for every element of a and b, which
// must have the same length.
func Zip[T vector.Lanes](pool *workerpool.Pool, s vector.Species, a, b, dst []T, fn Kernel2) error {
	if len(a) != len(b) {
		return &vector.Error{Op: "batch.Zip", Kind: vector.KindSpeciesMismatch, Detail: fmt.Sprintf("input lengths %d and %d differ", len(a), len(b))}
	}
	if len(dst) < len(a) {
		return &vector.Error{Op: "batch.Zip", Kind: vector.KindOutOfBounds, Detail: fmt.Sprintf("dst length %d < input length %d", len(dst), len(a))}
	}
	return forSegments(pool, s, len(a), func(off int, m vector.Mask, full bool) error {
		x, err := load(s, a, off, m, full)
		if err != nil {
			return err
		}
		y, err := load(s, b, off, m, full)
		if err != nil {
			return err
		}
		r, err := fn(x, y, m)
		if err != nil {
			return err
		}
		return store(s, r, dst, off, m, full)
	})
}

// forSegments calls step once per vector of [0, n). full reports whether
// the vector lies entirely inside the buffer.
func forSegments(pool *workerpool.Pool, s vector.Species, n int, step func(off int, m vector.Mask, full bool) error) error {
	lanes := s.LaneCount()
	if lanes == 0 {
		return &vector.Error{Op: "batch", Kind: vector.KindShapeMismatch, Detail: fmt.Sprintf("%s has no lanes", s)}
	}
	all := vector.AllTrueMask(s)
	segment := func(start, end int) error {
		for off := start; off < end; off += lanes {
			var err error
			if off+lanes <= n {
				err = step(off, all, true)
			} else {
				err = step(off, vector.IndexInRange(s, off, n), false)
			}
			if err != nil {
				return fmt.Errorf("batch: vector at %d: %w", off, err)
			}
		}
		return nil
	}
	if pool == nil {
		return segment(0, n)
	}
	return pool.ParallelForAligned(n, lanes, segment)
}

func load[T vector.Lanes](s vector.Species, buf []T, off int, m vector.Mask, full bool) (vector.Vector, error) {
	if full {
		return vector.Load(s, buf, off)
	}
	return vector.LoadMasked(s, buf, off, m)
}

func store[T vector.Lanes](s vector.Species, r vector.Vector, buf []T, off int, m vector.Mask, full bool) error {
	if r.ElementType() != s.ElementType() || r.LaneCount() != s.LaneCount() {
		return &vector.Error{Op: "batch", Kind: vector.KindSpeciesMismatch, Detail: fmt.Sprintf("kernel returned %s for %s", r.Species(), s)}
	}
	if full {
		return vector.Store(r, buf, off)
	}
	return vector.StoreMasked(r, buf, off, m)
}
