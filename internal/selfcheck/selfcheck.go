// Copyright 2025 go-vector Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package selfcheck runs the differential checks behind cmd/vectorcheck.
// Every suite compares the vector package against independent scalar
// code and reports the mismatches it found.
package selfcheck

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/ajroetker/go-vector/vector/contrib/workerpool"
)

// maxFailures bounds the number of failure messages a Report keeps.
const maxFailures = 32

// Options configures a suite run.
type Options struct {
	// Seed makes the random inputs reproducible.
	Seed uint64
	// Workers is the size of the worker pool; 0 means GOMAXPROCS.
	Workers int
	// Logger receives progress and failures. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) rand(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(o.Seed, stream))
}

// Report is the outcome of one suite.
type Report struct {
	Name     string   `json:"name"`
	Checked  int      `json:"checked"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

// Passed reports whether the suite found no mismatch.
func (r Report) Passed() bool {
	return r.Failed == 0
}

// recorder accumulates a Report from concurrent workers.
type recorder struct {
	mu     sync.Mutex
	report Report
	log    *zap.Logger
}

func newRecorder(name string, log *zap.Logger) *recorder {
	return &recorder{report: Report{Name: name}, log: log.With(zap.String("suite", name))}
}

func (r *recorder) pass(n int) {
	r.mu.Lock()
	r.report.Checked += n
	r.mu.Unlock()
}

func (r *recorder) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.report.Checked++
	r.report.Failed++
	if len(r.report.Failures) < maxFailures {
		r.report.Failures = append(r.report.Failures, msg)
	}
	r.mu.Unlock()
	r.log.Debug("check failed", zap.String("detail", msg))
}

func (r *recorder) done(ctx context.Context) (Report, error) {
	r.mu.Lock()
	rep := r.report
	r.mu.Unlock()
	r.log.Info("suite finished",
		zap.Int("checked", rep.Checked),
		zap.Int("failed", rep.Failed))
	return rep, ctx.Err()
}

// parallel runs fn(i) for i in [0, n) on a fresh pool, skipping the
// remaining indices once ctx is done.
func parallel(ctx context.Context, workers, n int, fn func(i int)) {
	pool := workerpool.New(workers)
	defer pool.Close()
	pool.ParallelForAtomic(n, func(i int) {
		if ctx.Err() != nil {
			return
		}
		fn(i)
	})
}

// Suite is a named check.
type Suite struct {
	Name string
	Run  func(ctx context.Context, opts Options) (Report, error)
}

// Suites returns every suite in a fixed order.
func Suites() []Suite {
	return []Suite{
		{"convert", ConversionMatrix},
		{"macrologic", MacroLogic},
		{"popcount", PopCount},
		{"roundtrip", RoundTrip},
	}
}
