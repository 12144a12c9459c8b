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

// Package vector provides portable, species-tagged SIMD vectors.
//
// A Species pairs an ElementType with a Shape (the total bit width of a
// vector) and fixes the number of lanes. Vectors and masks are immutable
// values tagged with their species; every operation returns a new value.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-vector/vector"
//
//	// Load eight int32 lanes from a buffer
//	a, err := vector.Load(vector.Int32_256, data, 0)
//
//	// Lane-wise operation, optionally masked
//	sum, err := a.LanewiseMasked(vector.Add, b, mask)
//
//	// Change element type and shape
//	wide, err := sum.ConvertShape(vector.Int64_512, 0)
//
//	// Store the result
//	err = vector.Store(wide, out, 0)
//
// Conversions come in three tiers: Convert/ConvertShape/CastShape change
// lane values numerically, Reinterpret copies raw bits.
package vector

// Floats is a constraint for floating-point lane types.
type Floats interface {
	float32 | float64
}

// SignedInts is a constraint for signed integer lane types.
//
// All integer lanes are signed; unsigned views are obtained by
// reinterpreting bits where needed.
type SignedInts interface {
	int8 | int16 | int32 | int64
}

// Lanes is a constraint for all types that can be stored in vector lanes.
// The set is closed: a Vector stores exactly one of these slice types.
type Lanes interface {
	Floats | SignedInts
}

// ElementType identifies the primitive kind stored in each lane.
type ElementType uint8

const (
	// Int8 lanes are 8-bit two's complement integers.
	Int8 ElementType = iota + 1
	// Int16 lanes are 16-bit two's complement integers.
	Int16
	// Int32 lanes are 32-bit two's complement integers.
	Int32
	// Int64 lanes are 64-bit two's complement integers.
	Int64
	// Float32 lanes are IEEE 754 binary32 values.
	Float32
	// Float64 lanes are IEEE 754 binary64 values.
	Float64
)

// ElementTypes returns all valid element types, narrowest integer first.
func ElementTypes() []ElementType {
	return []ElementType{Int8, Int16, Int32, Int64, Float32, Float64}
}

// Valid reports whether e is one of the defined element types.
func (e ElementType) Valid() bool {
	return e >= Int8 && e <= Float64
}

// Bits returns the lane width in bits, or 0 for an invalid element type.
func (e ElementType) Bits() int {
	switch e {
	case Int8:
		return 8
	case Int16:
		return 16
	case Int32, Float32:
		return 32
	case Int64, Float64:
		return 64
	default:
		return 0
	}
}

// Bytes returns the lane width in bytes.
func (e ElementType) Bytes() int {
	return e.Bits() / 8
}

// IsFloat reports whether lanes hold IEEE floating-point values.
func (e ElementType) IsFloat() bool {
	return e == Float32 || e == Float64
}

// String returns the Go name of the lane type.
func (e ElementType) String() string {
	switch e {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// elementTypeOf maps a lane type parameter to its ElementType.
func elementTypeOf[T Lanes]() ElementType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	default:
		return Float64
	}
}
