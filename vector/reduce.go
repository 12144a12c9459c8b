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

// Reduce folds the lanes of v with op in lane order and returns the result
// as a T. Only Add, Mul, Min, Max, And, Or and Xor reduce; the bitwise ones
// are limited to integer lanes.
func Reduce[T Lanes](v Vector, op BinaryOp) (T, error) {
	return reduce[T]("Reduce", v, op, nil)
}

// ReduceMasked is Reduce over the lanes selected by m. Unselected lanes
// contribute the identity of op, so an empty mask yields the identity.
func ReduceMasked[T Lanes](v Vector, op BinaryOp, m Mask) (T, error) {
	return reduce[T]("ReduceMasked", v, op, &m)
}

// ReduceLanesToBits is Reduce for callers that do not know the lane type:
// it returns the raw bits of the result, zero-extended to 64 bits.
func (v Vector) ReduceLanesToBits(op BinaryOp) (uint64, error) {
	return v.reduceToBits("ReduceLanesToBits", op, nil)
}

// ReduceLanesToBitsMasked is ReduceLanesToBits over the lanes selected by m.
func (v Vector) ReduceLanesToBitsMasked(op BinaryOp, m Mask) (uint64, error) {
	return v.reduceToBits("ReduceLanesToBitsMasked", op, &m)
}

func (v Vector) reduceToBits(name string, op BinaryOp, m *Mask) (uint64, error) {
	switch v.species.elem {
	case Int8:
		return reduceBits[int8](name, v, op, m)
	case Int16:
		return reduceBits[int16](name, v, op, m)
	case Int32:
		return reduceBits[int32](name, v, op, m)
	case Int64:
		return reduceBits[int64](name, v, op, m)
	case Float32:
		return reduceBits[float32](name, v, op, m)
	default:
		return reduceBits[float64](name, v, op, m)
	}
}

func reduceBits[T Lanes](name string, v Vector, op BinaryOp, m *Mask) (uint64, error) {
	r, err := reduce[T](name, v, op, m)
	return toBits(r), err
}

func reduce[T Lanes](name string, v Vector, op BinaryOp, m *Mask) (T, error) {
	var zero T
	if err := checkLaneType[T](name, v.species); err != nil {
		return zero, err
	}
	active, err := m.activeFor(name, v.species)
	if err != nil {
		return zero, err
	}
	switch op {
	case Add, Mul, Min, Max, And, Or, Xor:
	default:
		return zero, unsupported(name, op, v.species.elem)
	}
	if !op.Supports(v.species.elem) {
		return zero, unsupported(name, op, v.species.elem)
	}
	fn := binaryFunc[T](op)
	acc := reduceIdentity[T](op)
	for i, x := range v.data.([]T) {
		if isActive(active, i) {
			acc = fn(acc, x)
		}
	}
	return acc, nil
}

// binaryFunc returns the scalar kernel for op on any lane type.
func binaryFunc[T Lanes](op BinaryOp) func(a, b T) T {
	var fn any
	switch any(*new(T)).(type) {
	case int8:
		fn = intBinaryFunc[int8](op)
	case int16:
		fn = intBinaryFunc[int16](op)
	case int32:
		fn = intBinaryFunc[int32](op)
	case int64:
		fn = intBinaryFunc[int64](op)
	case float32:
		fn = floatBinaryFunc[float32](op)
	case float64:
		fn = floatBinaryFunc[float64](op)
	}
	return fn.(func(a, b T) T)
}

// reduceIdentity returns the value x such that op(x, y) == y for all y.
func reduceIdentity[T Lanes](op BinaryOp) T {
	switch op {
	case Mul:
		return 1
	case Min:
		return maxValue[T]()
	case Max:
		return minValue[T]()
	case And:
		return fromBits[T](^uint64(0))
	default:
		return 0
	}
}

func maxValue[T Lanes]() T {
	e := elementTypeOf[T]()
	if e.IsFloat() {
		return T(math.Inf(1))
	}
	_, hi := intRange(e)
	return T(hi)
}

func minValue[T Lanes]() T {
	e := elementTypeOf[T]()
	if e.IsFloat() {
		return T(math.Inf(-1))
	}
	lo, _ := intRange(e)
	return T(lo)
}
