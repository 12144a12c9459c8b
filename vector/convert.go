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

package vector

import (
	"encoding/binary"
	"math"
)

// This file provides conversions between species.
//
// Convert, ConvertShape and CastShape change lane values numerically:
//   - int -> int: narrowing keeps the low-order bits, widening sign-extends.
//   - int -> float: rounds to the nearest representable value.
//   - float -> int: truncates toward zero; NaN becomes 0 and values outside
//     the destination range saturate to its minimum or maximum.
//   - float -> float: widening is exact, narrowing rounds to nearest even.
//
// Reinterpret copies raw bits through the vector's little-endian byte image
// and performs no numeric conversion.
//
// When the source has n lanes and the destination m, part selects a block:
//   - n > m: part in [0, n/m) converts source lanes [part*m, part*m+m).
//   - n < m: part in (-m/n, 0] writes the n converted lanes to destination
//     lanes [-part*n, -part*n+n); the remaining lanes are zero.
//   - n == m: part must be 0.
//
// With part 0 this is: the first min(n, m) lanes are converted and any
// extra destination lanes are zero. Reinterpret applies the same rule to
// bytes instead of lanes.

// block maps a run of source units (lanes or bytes) to destination units.
type block struct {
	srcStart int
	dstStart int
	count    int
}

// reconcile computes the block selected by part for n source units and m
// destination units.
func reconcile(op string, n, m, part int) (block, error) {
	if n == 0 || m == 0 {
		return block{}, newError(op, KindShapeMismatch, "cannot convert between %d and %d lanes", n, m)
	}
	switch {
	case n > m:
		parts := (n + m - 1) / m
		if part < 0 || part >= parts {
			return block{}, newError(op, KindOutOfBounds, "part %d outside [0, %d)", part, parts)
		}
		start := part * m
		return block{srcStart: start, count: min(m, n-start)}, nil
	case n < m:
		parts := (m + n - 1) / n
		if part > 0 || part <= -parts {
			return block{}, newError(op, KindOutOfBounds, "part %d outside (-%d, 0]", part, parts)
		}
		start := -part * n
		return block{dstStart: start, count: min(n, m-start)}, nil
	default:
		if part != 0 {
			return block{}, newError(op, KindOutOfBounds, "part %d must be 0 for equal lane counts", part)
		}
		return block{count: n}, nil
	}
}

// Convert converts v to species dst. It is ConvertShape with part 0: the
// destination species is always explicit.
func (v Vector) Convert(dst Species) (Vector, error) {
	return v.convert("Convert", dst, 0)
}

// ConvertElement converts v to element type e, keeping v's shape.
func (v Vector) ConvertElement(e ElementType) (Vector, error) {
	dst, err := v.species.WithElementType(e)
	if err != nil {
		return Vector{}, err
	}
	return v.convert("ConvertElement", dst, 0)
}

// ConvertShape converts the lanes selected by part to species dst.
func (v Vector) ConvertShape(dst Species, part int) (Vector, error) {
	return v.convert("ConvertShape", dst, part)
}

// CastShape converts v to species dst lane by lane, addressing source lanes
// positionally. It converts values exactly like ConvertShape.
func (v Vector) CastShape(dst Species, part int) (Vector, error) {
	return v.convert("CastShape", dst, part)
}

func (v Vector) convert(op string, dst Species, part int) (Vector, error) {
	b, err := reconcile(op, v.species.lanes, dst.lanes, part)
	if err != nil {
		return Vector{}, err
	}
	var data any
	switch src := v.data.(type) {
	case []int8:
		data = convertFrom(src, dst, b)
	case []int16:
		data = convertFrom(src, dst, b)
	case []int32:
		data = convertFrom(src, dst, b)
	case []int64:
		data = convertFrom(src, dst, b)
	case []float32:
		data = convertFrom(src, dst, b)
	case []float64:
		data = convertFrom(src, dst, b)
	}
	return Vector{species: dst, data: data}, nil
}

func convertFrom[S Lanes](src []S, dst Species, b block) any {
	switch dst.elem {
	case Int8:
		return convertLanes[S, int8](src, dst.lanes, b)
	case Int16:
		return convertLanes[S, int16](src, dst.lanes, b)
	case Int32:
		return convertLanes[S, int32](src, dst.lanes, b)
	case Int64:
		return convertLanes[S, int64](src, dst.lanes, b)
	case Float32:
		return convertLanes[S, float32](src, dst.lanes, b)
	default:
		return convertLanes[S, float64](src, dst.lanes, b)
	}
}

func convertLanes[S, D Lanes](src []S, m int, b block) []D {
	out := make([]D, m)
	conv := laneConverter[S, D]()
	for k := range b.count {
		out[b.dstStart+k] = conv(src[b.srcStart+k])
	}
	return out
}

// laneConverter returns the scalar conversion from S to D.
func laneConverter[S, D Lanes]() func(S) D {
	if isFloatLane[S]() && !isFloatLane[D]() {
		lo, hi := intRange(elementTypeOf[D]())
		return func(x S) D {
			return saturateToInt[D](float64(x), lo, hi)
		}
	}
	return func(x S) D { return D(x) }
}

// ConvertValue converts a single value with the same rules as Convert.
func ConvertValue[S, D Lanes](x S) D {
	return laneConverter[S, D]()(x)
}

func saturateToInt[D Lanes](f float64, lo, hi int64) D {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= float64(lo):
		return D(lo)
	case f >= float64(hi):
		return D(hi)
	default:
		return D(int64(f))
	}
}

// intRange returns the representable range of an integer element type.
func intRange(e ElementType) (lo, hi int64) {
	switch e {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// Reinterpret views the bits of v as species dst. It copies
// min(v.ByteSize, dst.ByteSize) bytes of the little-endian byte image and
// zero-fills the rest.
func (v Vector) Reinterpret(dst Species) (Vector, error) {
	return v.reinterpret("Reinterpret", dst, 0)
}

// ReinterpretShape is Reinterpret with a part selector over bytes.
func (v Vector) ReinterpretShape(dst Species, part int) (Vector, error) {
	return v.reinterpret("ReinterpretShape", dst, part)
}

func (v Vector) reinterpret(op string, dst Species, part int) (Vector, error) {
	if v.species.lanes == 0 || dst.lanes == 0 {
		return Vector{}, newError(op, KindShapeMismatch, "cannot reinterpret between %d and %d lanes", v.species.lanes, dst.lanes)
	}
	b, err := reconcile(op, v.species.ByteSize(), dst.ByteSize(), part)
	if err != nil {
		return Vector{}, err
	}
	src := make([]byte, v.species.ByteSize())
	if err := StoreBytes(v, src, 0, binary.LittleEndian); err != nil {
		return Vector{}, err
	}
	img := make([]byte, dst.ByteSize())
	copy(img[b.dstStart:], src[b.srcStart:b.srcStart+b.count])
	return LoadBytes(dst, img, 0, binary.LittleEndian)
}
