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

	"github.com/samber/lo"
)

// Species is the pair (ElementType, Shape). It fixes how many lanes a
// vector has: LaneCount() == Shape.Bits() / ElementType.Bits().
//
// The zero Species has no lanes; conversions reject it with
// ErrShapeMismatch.
type Species struct {
	elem  ElementType
	shape Shape
	lanes int
}

// Of returns the species for the given element type and shape.
// It fails with ErrInvalidSpecies when the element type is invalid or the
// shape width is not a multiple of the element width.
func Of(e ElementType, s Shape) (Species, error) {
	if !e.Valid() {
		return Species{}, newError("Of", KindInvalidSpecies, "unknown element type %d", uint8(e))
	}
	if s.bits <= 0 {
		return Species{}, newError("Of", KindInvalidSpecies, "shape %s has no bits", s)
	}
	if s.bits%e.Bits() != 0 {
		return Species{}, newError("Of", KindInvalidSpecies, "%s is not a multiple of %d-bit %s lanes", s, e.Bits(), e)
	}
	return Species{elem: e, shape: s, lanes: s.bits / e.Bits()}, nil
}

// MustOf is like Of but panics on error. It is meant for package-level
// species values.
func MustOf(e ElementType, s Shape) Species {
	sp, err := Of(e, s)
	if err != nil {
		panic(err)
	}
	return sp
}

// Standard species, built once during package initialization.
var (
	Int8_64   = MustOf(Int8, Shape64)
	Int8_128  = MustOf(Int8, Shape128)
	Int8_256  = MustOf(Int8, Shape256)
	Int8_512  = MustOf(Int8, Shape512)
	Int8_Max  = MustOf(Int8, ShapeMax)
	Int16_64  = MustOf(Int16, Shape64)
	Int16_128 = MustOf(Int16, Shape128)
	Int16_256 = MustOf(Int16, Shape256)
	Int16_512 = MustOf(Int16, Shape512)
	Int16_Max = MustOf(Int16, ShapeMax)
	Int32_64  = MustOf(Int32, Shape64)
	Int32_128 = MustOf(Int32, Shape128)
	Int32_256 = MustOf(Int32, Shape256)
	Int32_512 = MustOf(Int32, Shape512)
	Int32_Max = MustOf(Int32, ShapeMax)
	Int64_64  = MustOf(Int64, Shape64)
	Int64_128 = MustOf(Int64, Shape128)
	Int64_256 = MustOf(Int64, Shape256)
	Int64_512 = MustOf(Int64, Shape512)
	Int64_Max = MustOf(Int64, ShapeMax)

	Float32_64  = MustOf(Float32, Shape64)
	Float32_128 = MustOf(Float32, Shape128)
	Float32_256 = MustOf(Float32, Shape256)
	Float32_512 = MustOf(Float32, Shape512)
	Float32_Max = MustOf(Float32, ShapeMax)
	Float64_64  = MustOf(Float64, Shape64)
	Float64_128 = MustOf(Float64, Shape128)
	Float64_256 = MustOf(Float64, Shape256)
	Float64_512 = MustOf(Float64, Shape512)
	Float64_Max = MustOf(Float64, ShapeMax)
)

// AllSpecies returns every standard species, ordered by element type and
// then by shape.
func AllSpecies() []Species {
	return lo.FlatMap(ElementTypes(), func(e ElementType, _ int) []Species {
		return lo.Map(StandardShapes(), func(s Shape, _ int) Species {
			return MustOf(e, s)
		})
	})
}

// SpeciesForLaneCount returns the narrowest standard species of element
// type e with exactly lanes lanes.
func SpeciesForLaneCount(e ElementType, lanes int) (Species, error) {
	for _, s := range StandardShapes() {
		sp, err := Of(e, s)
		if err == nil && sp.lanes == lanes {
			return sp, nil
		}
	}
	return Species{}, newError("SpeciesForLaneCount", KindInvalidSpecies, "no standard shape holds %d %s lanes", lanes, e)
}

// ElementType returns the lane type.
func (s Species) ElementType() ElementType {
	return s.elem
}

// Shape returns the vector shape.
func (s Species) Shape() Shape {
	return s.shape
}

// LaneCount returns the number of lanes.
func (s Species) LaneCount() int {
	return s.lanes
}

// ElementBits returns the width of one lane in bits.
func (s Species) ElementBits() int {
	return s.elem.Bits()
}

// TotalBits returns the width of the whole vector in bits.
func (s Species) TotalBits() int {
	return s.shape.bits
}

// ByteSize returns the width of the whole vector in bytes.
func (s Species) ByteSize() int {
	return s.shape.bits / 8
}

// WithShape returns the species with the same element type and shape sh.
func (s Species) WithShape(sh Shape) (Species, error) {
	return Of(s.elem, sh)
}

// WithElementType returns the species with the same shape and element type e.
func (s Species) WithElementType(e ElementType) (Species, error) {
	return Of(e, s.shape)
}

// LaneCompatible reports whether s and o have the same number of lanes,
// regardless of element type.
func (s Species) LaneCompatible(o Species) bool {
	return s.lanes == o.lanes
}

// LoopBound returns the largest multiple of LaneCount() that is <= n.
func (s Species) LoopBound(n int) int {
	if s.lanes == 0 {
		return 0
	}
	return n - n%s.lanes
}

// IsZero reports whether s is the zero Species.
func (s Species) IsZero() bool {
	return s.lanes == 0
}

// String returns names such as "Species[int32, 8, S_256_BIT]".
func (s Species) String() string {
	return fmt.Sprintf("Species[%s, %d, %s]", s.elem, s.lanes, s.shape)
}
