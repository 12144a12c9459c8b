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

import "fmt"

// Shape is the total bit width of a vector.
//
// The standard shapes are Shape64, Shape128, Shape256, Shape512 and
// ShapeMax. ShapeMax is as wide as the widest register on the running
// platform, but never narrower than 512 bits. It is a distinct shape from
// Shape512 even when both have the same width.
type Shape struct {
	bits int
	max  bool
}

var (
	// Shape64 is a 64-bit vector.
	Shape64 = Shape{bits: 64}

	// Shape128 is a 128-bit vector (SSE, NEON).
	Shape128 = Shape{bits: 128}

	// Shape256 is a 256-bit vector (AVX2).
	Shape256 = Shape{bits: 256}

	// Shape512 is a 512-bit vector (AVX-512).
	Shape512 = Shape{bits: 512}

	// ShapeMax is the platform's maximum vector width, resolved once at
	// process start.
	ShapeMax = Shape{bits: maxBits, max: true}
)

// StandardShapes returns the five standard shapes, narrowest first.
func StandardShapes() []Shape {
	return []Shape{Shape64, Shape128, Shape256, Shape512, ShapeMax}
}

// ShapeForBitSize returns the standard shape with the given width, or a
// custom shape when no standard one exists. Custom shapes model platforms
// with uncommon register widths; bits must be a positive multiple of 8.
func ShapeForBitSize(bits int) (Shape, error) {
	switch bits {
	case 64:
		return Shape64, nil
	case 128:
		return Shape128, nil
	case 256:
		return Shape256, nil
	case 512:
		return Shape512, nil
	}
	if bits <= 0 || bits%8 != 0 {
		return Shape{}, newError("ShapeForBitSize", KindInvalidSpecies, "%d bits is not a whole number of bytes", bits)
	}
	return Shape{bits: bits}, nil
}

// Bits returns the width in bits.
func (s Shape) Bits() int {
	return s.bits
}

// Bytes returns the width in bytes.
func (s Shape) Bytes() int {
	return s.bits / 8
}

// IsMax reports whether s is ShapeMax.
func (s Shape) IsMax() bool {
	return s.max
}

// String returns names such as "S_128_BIT" or "S_Max_BIT".
func (s Shape) String() string {
	if s.max {
		return "S_Max_BIT"
	}
	return fmt.Sprintf("S_%d_BIT", s.bits)
}
