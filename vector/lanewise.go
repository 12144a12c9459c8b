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

import "math"

// This file provides the lane-wise operators. Masked variants compute
// lane i as op(v[i], o[i]) where the mask is set and keep v[i] unchanged
// where it is not: the first operand passes through, never a zero or an
// identity element.

// Lanewise applies op to every pair of lanes of v and o.
func (v Vector) Lanewise(op BinaryOp, o Vector) (Vector, error) {
	return v.lanewise("Lanewise", op, o, nil)
}

// LanewiseMasked applies op where m is set and keeps v's lane elsewhere.
func (v Vector) LanewiseMasked(op BinaryOp, o Vector, m Mask) (Vector, error) {
	return v.lanewise("LanewiseMasked", op, o, &m)
}

// Unary applies op to every lane of v.
func (v Vector) Unary(op UnaryOp) (Vector, error) {
	return v.unary("Unary", op, nil)
}

// UnaryMasked applies op where m is set and keeps v's lane elsewhere.
func (v Vector) UnaryMasked(op UnaryOp, m Mask) (Vector, error) {
	return v.unary("UnaryMasked", op, &m)
}

// PopCount returns the population count of each lane's raw bits, in the
// same element type.
func (v Vector) PopCount() (Vector, error) {
	return v.Unary(BitCount)
}

func (v Vector) lanewise(name string, op BinaryOp, o Vector, m *Mask) (Vector, error) {
	if err := checkSameSpecies(name, v.species, o.species); err != nil {
		return Vector{}, err
	}
	active, err := m.activeFor(name, v.species)
	if err != nil {
		return Vector{}, err
	}
	if !op.Supports(v.species.elem) {
		return Vector{}, unsupported(name, op, v.species.elem)
	}
	var data any
	switch x := v.data.(type) {
	case []int8:
		data, err = intBinary(name, op, x, o.data.([]int8), active)
	case []int16:
		data, err = intBinary(name, op, x, o.data.([]int16), active)
	case []int32:
		data, err = intBinary(name, op, x, o.data.([]int32), active)
	case []int64:
		data, err = intBinary(name, op, x, o.data.([]int64), active)
	case []float32:
		data = floatBinary(op, x, o.data.([]float32), active)
	case []float64:
		data = floatBinary(op, x, o.data.([]float64), active)
	}
	if err != nil {
		return Vector{}, err
	}
	return Vector{species: v.species, data: data}, nil
}

func (v Vector) unary(name string, op UnaryOp, m *Mask) (Vector, error) {
	active, err := m.activeFor(name, v.species)
	if err != nil {
		return Vector{}, err
	}
	if !op.Supports(v.species.elem) {
		return Vector{}, unsupported(name, op, v.species.elem)
	}
	var data any
	switch x := v.data.(type) {
	case []int8:
		data = applyUnary(x, intUnaryFunc[int8](op), active)
	case []int16:
		data = applyUnary(x, intUnaryFunc[int16](op), active)
	case []int32:
		data = applyUnary(x, intUnaryFunc[int32](op), active)
	case []int64:
		data = applyUnary(x, intUnaryFunc[int64](op), active)
	case []float32:
		data = applyUnary(x, floatUnaryFunc[float32](op), active)
	case []float64:
		data = applyUnary(x, floatUnaryFunc[float64](op), active)
	}
	return Vector{species: v.species, data: data}, nil
}

func intBinary[T SignedInts](name string, op BinaryOp, x, y []T, active []bool) ([]T, error) {
	if op == Div {
		for i, d := range y {
			if d == 0 && isActive(active, i) {
				return nil, newError(name, KindArithmetic, "integer division by zero in lane %d", i)
			}
		}
	}
	return applyBinary(x, y, intBinaryFunc[T](op), active), nil
}

func floatBinary[T Floats](op BinaryOp, x, y []T, active []bool) []T {
	return applyBinary(x, y, floatBinaryFunc[T](op), active)
}

func applyBinary[T Lanes](x, y []T, fn func(a, b T) T, active []bool) []T {
	out := make([]T, len(x))
	for i := range x {
		if isActive(active, i) {
			out[i] = fn(x[i], y[i])
		} else {
			out[i] = x[i]
		}
	}
	return out
}

func applyUnary[T Lanes](x []T, fn func(a T) T, active []bool) []T {
	out := make([]T, len(x))
	for i := range x {
		if isActive(active, i) {
			out[i] = fn(x[i])
		} else {
			out[i] = x[i]
		}
	}
	return out
}

// intBinaryFunc returns the scalar kernel for op on integer lanes. Results
// wrap with two's complement overflow.
func intBinaryFunc[T SignedInts](op BinaryOp) func(a, b T) T {
	switch op {
	case Add:
		return func(a, b T) T { return a + b }
	case Sub:
		return func(a, b T) T { return a - b }
	case Mul:
		return func(a, b T) T { return a * b }
	case Div:
		// The most negative value divided by -1 wraps to itself.
		return func(a, b T) T { return a / b }
	case Min:
		return func(a, b T) T { return min(a, b) }
	case Max:
		return func(a, b T) T { return max(a, b) }
	case And:
		return func(a, b T) T { return a & b }
	case Or:
		return func(a, b T) T { return a | b }
	case Xor:
		return func(a, b T) T { return a ^ b }
	case AndNot:
		return func(a, b T) T { return a &^ b }
	case ShiftLeft:
		return func(a, b T) T { return a << shiftCount(b) }
	case ShiftRightArith:
		return func(a, b T) T { return a >> shiftCount(b) }
	case ShiftRightLogical:
		return shiftRightLogical[T]
	case RotateLeft:
		return rotateLeft[T]
	case RotateRight:
		return rotateRight[T]
	case CompressBits:
		return compressBits[T]
	case ExpandBits:
		return expandBits[T]
	default:
		return func(a, _ T) T { return a }
	}
}

// floatBinaryFunc returns the scalar kernel for op on IEEE lanes. Min and
// Max propagate NaN and order -0 below +0.
func floatBinaryFunc[T Floats](op BinaryOp) func(a, b T) T {
	switch op {
	case Add:
		return func(a, b T) T { return a + b }
	case Sub:
		return func(a, b T) T { return a - b }
	case Mul:
		return func(a, b T) T { return a * b }
	case Div:
		return func(a, b T) T { return a / b }
	case Min:
		return func(a, b T) T { return min(a, b) }
	case Max:
		return func(a, b T) T { return max(a, b) }
	default:
		return func(a, _ T) T { return a }
	}
}

func intUnaryFunc[T SignedInts](op UnaryOp) func(a T) T {
	switch op {
	case Neg:
		return func(a T) T { return -a }
	case Abs:
		// The most negative value stays negative, as with two's complement
		// negation.
		return func(a T) T {
			if a < 0 {
				return -a
			}
			return a
		}
	case Not:
		return func(a T) T { return ^a }
	case BitCount:
		return popCount[T]
	case LeadingZerosCount:
		return leadingZeroCount[T]
	case TrailingZerosCount:
		return trailingZeroCount[T]
	case Reverse:
		return reverseBits[T]
	case ReverseBytes:
		return reverseBytes[T]
	default:
		return func(a T) T { return a }
	}
}

func floatUnaryFunc[T Floats](op UnaryOp) func(a T) T {
	switch op {
	case Neg:
		return func(a T) T { return -a }
	case Abs:
		// Clearing the sign bit keeps NaN payloads intact.
		return func(a T) T {
			sign := uint64(1) << (laneWidth[T]() - 1)
			return fromBits[T](toBits(a) &^ sign)
		}
	case Sqrt:
		return func(a T) T { return T(math.Sqrt(float64(a))) }
	default:
		return func(a T) T { return a }
	}
}
