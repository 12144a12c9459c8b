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
	"bytes"
	"context"

	"github.com/samber/lo"

	"github.com/ajroetker/go-vector/vector"
)

type conversion struct {
	name    string
	numeric bool
	apply   func(v vector.Vector, dst vector.Species, part int) (vector.Vector, error)
}

var conversions = []conversion{
	{"CONVERT", true, func(v vector.Vector, dst vector.Species, part int) (vector.Vector, error) {
		if part != 0 {
			return v.ConvertShape(dst, part)
		}
		return v.Convert(dst)
	}},
	{"CONVERTSHAPE", true, vector.Vector.ConvertShape},
	{"CASTSHAPE", true, vector.Vector.CastShape},
	{"REINTERPRET", false, vector.Vector.ReinterpretShape},
}

type speciesPair struct {
	src, dst vector.Species
}

// ConversionMatrix converts random vectors between every pair of species
// with every conversion operator and every valid part, and compares each
// result with a scalar reference.
func ConversionMatrix(ctx context.Context, opts Options) (Report, error) {
	rec := newRecorder("convert", opts.logger())
	all := vector.AllSpecies()
	pairs := lo.FlatMap(all, func(src vector.Species, _ int) []speciesPair {
		return lo.Map(all, func(dst vector.Species, _ int) speciesPair {
			return speciesPair{src: src, dst: dst}
		})
	})
	parallel(ctx, opts.Workers, len(pairs), func(i int) {
		p := pairs[i]
		v := randomVector(opts.rand(uint64(i)), p.src)
		for _, c := range conversions {
			checkConversion(rec, c, v, p.dst)
		}
	})
	return rec.done(ctx)
}

func checkConversion(rec *recorder, c conversion, v vector.Vector, dst vector.Species) {
	src := v.Species()
	n, m := src.LaneCount(), dst.LaneCount()
	if !c.numeric {
		n, m = src.ByteSize(), dst.ByteSize()
	}
	for _, part := range parts(n, m) {
		got, err := c.apply(v, dst, part)
		if err != nil {
			rec.fail("%s %s -> %s part %d: %v", c.name, src, dst, part, err)
			continue
		}
		if got.Species() != dst {
			rec.fail("%s %s -> %s part %d: result species %s", c.name, src, dst, part, got.Species())
			continue
		}
		srcStart, dstStart, count := blockFor(n, m, part)
		if !c.numeric {
			want := make([]byte, m)
			copy(want[dstStart:], image(v)[srcStart:srcStart+count])
			if !bytes.Equal(want, image(got)) {
				rec.fail("%s %s -> %s part %d: bytes %x, want %x", c.name, src, dst, part, image(got), want)
				continue
			}
			rec.pass(1)
			continue
		}
		ok := true
		for j := range m {
			var want uint64
			if j >= dstStart && j < dstStart+count {
				want = convertBits(v.LaneBits(srcStart+j-dstStart), src.ElementType(), dst.ElementType())
			}
			if g := got.LaneBits(j); !sameBits(g, want, dst.ElementType()) {
				rec.fail("%s %s -> %s part %d lane %d: got %#x, want %#x", c.name, src, dst, part, j, g, want)
				ok = false
				break
			}
		}
		if ok {
			rec.pass(1)
		}
	}
}
