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

package selfcheck

import (
	"context"
	"math/bits"

	"github.com/ajroetker/go-vector/vector"
)

// PopCount checks the documented scenarios, int32 lanes of 7 giving 3 and
// int64 lanes of -63 giving 59, and then random lanes of every integer
// species against math/bits.
func PopCount(ctx context.Context, opts Options) (Report, error) {
	rec := newRecorder("popcount", opts.logger())

	scenarios := []struct {
		species vector.Species
		value   uint64
		want    uint64
	}{
		{vector.Int32_256, 7, 3},
		{vector.Int64_256, uint64(0xFFFF_FFFF_FFFF_FFC1), 59},
	}
	for _, sc := range scenarios {
		in := make([]uint64, sc.species.LaneCount())
		for i := range in {
			in[i] = sc.value
		}
		v, err := vector.FromLaneBits(sc.species, in)
		if err != nil {
			rec.fail("%s: %v", sc.species, err)
			continue
		}
		checkPopCount(rec, v, func(uint64) uint64 { return sc.want })
	}

	var species []vector.Species
	for _, s := range vector.AllSpecies() {
		if !s.ElementType().IsFloat() {
			species = append(species, s)
		}
	}
	parallel(ctx, opts.Workers, len(species), func(i int) {
		s := species[i]
		r := opts.rand(uint64(i))
		for range 16 {
			checkPopCount(rec, randomVector(r, s), func(x uint64) uint64 {
				w := s.ElementBits()
				if w < 64 {
					x &= 1<<w - 1
				}
				return uint64(bits.OnesCount64(x))
			})
		}
	})
	return rec.done(ctx)
}

func checkPopCount(rec *recorder, v vector.Vector, want func(uint64) uint64) {
	p, err := v.PopCount()
	if err != nil {
		rec.fail("%s: %v", v.Species(), err)
		return
	}
	if p.Species() != v.Species() {
		rec.fail("%s: popcount changed species to %s", v.Species(), p.Species())
		return
	}
	for i := range v.LaneCount() {
		if w := want(v.LaneBits(i)); p.LaneBits(i) != w {
			rec.fail("%s lane %d: popcount(%#x) = %d, want %d", v.Species(), i, v.LaneBits(i), p.LaneBits(i), w)
			return
		}
	}
	rec.pass(1)
}
