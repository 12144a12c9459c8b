// Copyright 2025 The go-vector Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, n := range []int{1, 3, 4, 100, 101} {
		results := make([]int, n)
		var calls atomic.Int32
		pool.ParallelFor(n, func(start, end int) {
			calls.Add(1)
			for i := start; i < end; i++ {
				results[i] += i * 2
			}
		})
		for i := range n {
			if results[i] != i*2 {
				t.Errorf("n=%d: results[%d] = %d, want %d", n, i, results[i], i*2)
			}
		}
		if got := int(calls.Load()); got > min(n, 4) {
			t.Errorf("n=%d: %d ranges for 4 workers", n, got)
		}
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})
	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAligned(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, tc := range []struct{ n, align int }{{100, 8}, {7, 8}, {64, 16}, {1000, 3}, {5, 0}} {
		covered := make([]int32, tc.n)
		err := pool.ParallelForAligned(tc.n, tc.align, func(start, end int) error {
			if tc.align > 0 && start%tc.align != 0 {
				t.Errorf("n=%d align=%d: segment starts at %d", tc.n, tc.align, start)
			}
			for i := start; i < end; i++ {
				atomic.AddInt32(&covered[i], 1)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("ParallelForAligned: %v", err)
		}
		for i, c := range covered {
			if c != 1 {
				t.Errorf("n=%d align=%d: index %d covered %d times", tc.n, tc.align, i, c)
			}
		}
	}
}

func TestParallelForAlignedError(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	boom := errors.New("boom")
	err := pool.ParallelForAligned(1<<12, 8, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) { called = true })
	pool.ParallelForAtomic(0, func(i int) { called = true })
	if err := pool.ParallelForAligned(0, 4, func(start, end int) error { called = true; return nil }); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("n=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	err := pool.ParallelForAligned(n, 8, func(start, end int) error {
		for i := start; i < end; i++ {
			results[i]++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := range n {
		if results[i] != i*2+1 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2+1)
		}
	}
}

func BenchmarkParallelForAligned(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1 << 16
	data := make([]float32, n)
	for b.Loop() {
		_ = pool.ParallelForAligned(n, 16, func(start, end int) error {
			for j := start; j < end; j++ {
				data[j] += 1
			}
			return nil
		})
	}
}
