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
	"fmt"
	"math"
	"strings"
)

// Vector is an immutable, species-tagged sequence of lanes.
//
// The lanes are stored as exactly one of []int8, []int16, []int32, []int64,
// []float32 or []float64, matching the species element type. Kernels are
// generic functions instantiated per lane type; the type switch on data is
// the only dispatch.
//
// Vector instances should not be created directly; use Load, Zero,
// Broadcast or the result of another operation.
type Vector struct {
	species Species
	data    any
}

// makeLanes allocates a zeroed lane slice for e.
func makeLanes(e ElementType, n int) any {
	switch e {
	case Int8:
		return make([]int8, n)
	case Int16:
		return make([]int16, n)
	case Int32:
		return make([]int32, n)
	case Int64:
		return make([]int64, n)
	case Float32:
		return make([]float32, n)
	case Float64:
		return make([]float64, n)
	default:
		return nil
	}
}

// Zero returns a vector of species s with every lane zero.
func Zero(s Species) Vector {
	return Vector{species: s, data: makeLanes(s.elem, s.lanes)}
}

// Broadcast returns a vector of species s with every lane set to value.
func Broadcast[T Lanes](s Species, value T) (Vector, error) {
	if err := checkLaneType[T]("Broadcast", s); err != nil {
		return Vector{}, err
	}
	data := make([]T, s.lanes)
	for i := range data {
		data[i] = value
	}
	return Vector{species: s, data: data}, nil
}

// FromValues returns a vector of species s holding the first LaneCount()
// values. It fails with ErrOutOfBounds when too few values are given.
func FromValues[T Lanes](s Species, values ...T) (Vector, error) {
	return Load(s, values, 0)
}

// Iota returns a vector of species s whose lane i holds i, wrapping for
// narrow integer lanes.
func Iota(s Species) Vector {
	v := Zero(s)
	switch d := v.data.(type) {
	case []int8:
		fillIota(d)
	case []int16:
		fillIota(d)
	case []int32:
		fillIota(d)
	case []int64:
		fillIota(d)
	case []float32:
		fillIota(d)
	case []float64:
		fillIota(d)
	}
	return v
}

func fillIota[T Lanes](d []T) {
	for i := range d {
		d[i] = fromInt64[T](int64(i))
	}
}

// FromLaneBits builds a vector of species s from raw lane bit patterns,
// as returned by LaneBits. Bits above the lane width are ignored.
func FromLaneBits(s Species, bits []uint64) (Vector, error) {
	if len(bits) != s.lanes {
		return Vector{}, newError("FromLaneBits", KindSpeciesMismatch, "%d lanes given for %s", len(bits), s)
	}
	v := Zero(s)
	for i, b := range bits {
		v.setLaneBits(i, b)
	}
	return v, nil
}

// Species returns the vector's species.
func (v Vector) Species() Species {
	return v.species
}

// LaneCount returns the number of lanes.
func (v Vector) LaneCount() int {
	return v.species.lanes
}

// ElementType returns the lane type.
func (v Vector) ElementType() ElementType {
	return v.species.elem
}

// Elements returns a copy of the lanes as a []T. It fails with
// ErrSpeciesMismatch when T is not the vector's lane type.
func Elements[T Lanes](v Vector) ([]T, error) {
	if err := checkLaneType[T]("Elements", v.species); err != nil {
		return nil, err
	}
	src := v.data.([]T)
	out := make([]T, len(src))
	copy(out, src)
	return out, nil
}

// LaneBits returns the raw bit pattern of lane i, zero-extended to 64 bits.
// It returns 0 for an out-of-range lane.
func (v Vector) LaneBits(i int) uint64 {
	if i < 0 || i >= v.species.lanes {
		return 0
	}
	switch d := v.data.(type) {
	case []int8:
		return toBits(d[i])
	case []int16:
		return toBits(d[i])
	case []int32:
		return toBits(d[i])
	case []int64:
		return toBits(d[i])
	case []float32:
		return toBits(d[i])
	case []float64:
		return toBits(d[i])
	default:
		return 0
	}
}

// Equal reports whether v and o have the same species and bit-identical
// lanes. NaN lanes compare equal to NaN lanes with the same payload.
func (v Vector) Equal(o Vector) bool {
	if v.species != o.species {
		return false
	}
	for i := range v.species.lanes {
		if v.LaneBits(i) != o.LaneBits(i) {
			return false
		}
	}
	return true
}

// String renders the lanes, e.g. "[1 2 3 4]".
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	switch d := v.data.(type) {
	case []int8:
		writeLanes(&b, d)
	case []int16:
		writeLanes(&b, d)
	case []int32:
		writeLanes(&b, d)
	case []int64:
		writeLanes(&b, d)
	case []float32:
		writeLanes(&b, d)
	case []float64:
		writeLanes(&b, d)
	}
	b.WriteByte(']')
	return b.String()
}

func writeLanes[T Lanes](b *strings.Builder, d []T) {
	for i, x := range d {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(b, x)
	}
}

// checkLaneType verifies that T is the lane type of s.
func checkLaneType[T Lanes](op string, s Species) error {
	if e := elementTypeOf[T](); e != s.elem {
		return newError(op, KindSpeciesMismatch, "%s lanes requested for %s", e, s)
	}
	return nil
}

// checkSameLanes verifies that two species have the same lane count.
func checkSameLanes(op string, a, b Species) error {
	if a.lanes != b.lanes {
		return speciesMismatch(op, a, b)
	}
	return nil
}

// checkSameSpecies verifies that two vectors can be combined lane by lane.
// Both the lane count and the element type must agree.
func checkSameSpecies(op string, a, b Species) error {
	if a.lanes != b.lanes || a.elem != b.elem {
		return speciesMismatch(op, a, b)
	}
	return nil
}

// toBits returns the raw bit pattern of x, zero-extended to 64 bits.
func toBits[T Lanes](x T) uint64 {
	switch v := any(x).(type) {
	case int8:
		return uint64(uint8(v))
	case int16:
		return uint64(uint16(v))
	case int32:
		return uint64(uint32(v))
	case int64:
		return uint64(v)
	case float32:
		return uint64(math.Float32bits(v))
	case float64:
		return math.Float64bits(v)
	default:
		return 0
	}
}

// fromBits builds a lane value from the low bits of b.
func fromBits[T Lanes](b uint64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(b)).(T)
	case int16:
		return any(int16(b)).(T)
	case int32:
		return any(int32(b)).(T)
	case int64:
		return any(int64(b)).(T)
	case float32:
		return any(math.Float32frombits(uint32(b))).(T)
	case float64:
		return any(math.Float64frombits(b)).(T)
	default:
		return zero
	}
}

// fromInt64 converts an integer to a lane value with Go conversion rules.
func fromInt64[T Lanes](x int64) T {
	return T(x)
}

// isFloatLane reports whether T is a floating-point lane type.
func isFloatLane[T Lanes]() bool {
	return elementTypeOf[T]().IsFloat()
}
