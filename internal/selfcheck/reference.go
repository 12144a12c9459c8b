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
	"math"
	"math/rand/v2"

	"github.com/ajroetker/go-vector/vector"
)

// specialFloats are lane values conversions tend to get wrong.
var specialFloats = []float64{
	0, math.Copysign(0, -1), 0.5, -0.5, -1.5, 2.5, 127.5, -128.5, 32767.9, -32768.9,
	1 << 31, -(1 << 31) - 1, 1 << 63, -(1 << 63), 1e300, -1e300,
	math.Inf(1), math.Inf(-1), math.NaN(), math.MaxFloat32,
}

// randomLanes returns raw lane bits for s: uniform bits for integers and a
// mix of edge values and values over a wide exponent range for floats.
func randomLanes(r *rand.Rand, s vector.Species) []uint64 {
	out := make([]uint64, s.LaneCount())
	e := s.ElementType()
	for i := range out {
		if !e.IsFloat() {
			out[i] = r.Uint64()
			continue
		}
		f := (r.Float64() - 0.5) * math.Ldexp(1, r.IntN(90))
		if r.IntN(4) == 0 {
			f = specialFloats[r.IntN(len(specialFloats))]
		}
		if e == vector.Float32 {
			out[i] = uint64(math.Float32bits(float32(f)))
		} else {
			out[i] = math.Float64bits(f)
		}
	}
	return out
}

func randomVector(r *rand.Rand, s vector.Species) vector.Vector {
	v, err := vector.FromLaneBits(s, randomLanes(r, s))
	if err != nil {
		panic(err)
	}
	return v
}

// convertBits converts one lane given as raw bits. It decodes the source
// to an int64 or float64, which hold every source value exactly.
func convertBits(bits uint64, from, to vector.ElementType) uint64 {
	w := from.Bits()
	var (
		iv      int64
		fv      float64
		isFloat = from.IsFloat()
	)
	switch {
	case from == vector.Float32:
		fv = float64(math.Float32frombits(uint32(bits)))
	case from == vector.Float64:
		fv = math.Float64frombits(bits)
	default:
		iv = int64(bits<<(64-w)) >> (64 - w)
	}

	switch to {
	case vector.Float32:
		if isFloat {
			return uint64(math.Float32bits(float32(fv)))
		}
		return uint64(math.Float32bits(float32(iv)))
	case vector.Float64:
		if isFloat {
			return math.Float64bits(fv)
		}
		return math.Float64bits(float64(iv))
	}

	dw := to.Bits()
	if isFloat {
		limit := math.Ldexp(1, dw-1)
		switch {
		case math.IsNaN(fv):
			iv = 0
		case fv >= limit:
			iv = int64(uint64(1)<<(dw-1) - 1)
		case fv < -limit:
			iv = -1 << (dw - 1)
		default:
			iv = int64(math.Trunc(fv))
		}
	}
	if dw == 64 {
		return uint64(iv)
	}
	return uint64(iv) & (1<<dw - 1)
}

// image returns the little-endian byte image of v.
func image(v vector.Vector) []byte {
	size := v.ElementType().Bytes()
	out := make([]byte, 0, v.Species().ByteSize())
	for i := range v.LaneCount() {
		bits := v.LaneBits(i)
		for k := range size {
			out = append(out, byte(bits>>(8*k)))
		}
	}
	return out
}

// sameBits compares two lanes, treating any two NaNs as equal.
func sameBits(x, y uint64, e vector.ElementType) bool {
	if x == y {
		return true
	}
	switch e {
	case vector.Float32:
		return math.IsNaN(float64(math.Float32frombits(uint32(x)))) && math.IsNaN(float64(math.Float32frombits(uint32(y))))
	case vector.Float64:
		return math.IsNaN(math.Float64frombits(x)) && math.IsNaN(math.Float64frombits(y))
	}
	return false
}

// parts lists every block selector accepted for n source and m
// destination units.
func parts(n, m int) []int {
	var out []int
	switch {
	case n > m:
		for p := 0; p*m < n; p++ {
			out = append(out, p)
		}
	case n < m:
		for p := 0; -p*n < m; p-- {
			out = append(out, p)
		}
	default:
		out = []int{0}
	}
	return out
}

// blockFor returns the source start, destination start and length of the
// units moved by part.
func blockFor(n, m, part int) (srcStart, dstStart, count int) {
	if n > m {
		srcStart = part * m
	} else {
		dstStart = -part * n
	}
	return srcStart, dstStart, min(n-srcStart, m-dstStart)
}
