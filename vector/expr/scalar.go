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

package expr

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/ajroetker/go-vector/vector"
)

// The scalar evaluator works on one lane's raw bits, zero-extended to 64
// bits. Integer lanes are sign-extended, computed in int64 and truncated
// back to the lane width, which yields the same two's complement
// wraparound as native arithmetic of that width.

func signExtend(x uint64, w int) int64 {
	return int64(x<<(64-w)) >> (64 - w)
}

func truncate(x uint64, w int) uint64 {
	if w == 64 {
		return x
	}
	return x & (1<<w - 1)
}

func scalarBinary(e vector.ElementType, op vector.BinaryOp, x, y uint64) (uint64, error) {
	switch e {
	case vector.Float32:
		a, b := math.Float32frombits(uint32(x)), math.Float32frombits(uint32(y))
		return uint64(math.Float32bits(floatBinary(op, a, b))), nil
	case vector.Float64:
		a, b := math.Float64frombits(x), math.Float64frombits(y)
		return math.Float64bits(floatBinary(op, a, b)), nil
	}

	w := e.Bits()
	a, b := signExtend(x, w), signExtend(y, w)
	ua, ub := truncate(x, w), truncate(y, w)
	s := uint(ub) & uint(w-1)
	var r uint64
	switch op {
	case vector.Add:
		r = uint64(a + b)
	case vector.Sub:
		r = uint64(a - b)
	case vector.Mul:
		r = uint64(a * b)
	case vector.Div:
		if b == 0 {
			return 0, &vector.Error{Op: "expr.EvalLane", Kind: vector.KindArithmetic, Detail: "integer division by zero"}
		}
		r = uint64(a / b)
	case vector.Min:
		r = uint64(min(a, b))
	case vector.Max:
		r = uint64(max(a, b))
	case vector.And:
		r = ua & ub
	case vector.Or:
		r = ua | ub
	case vector.Xor:
		r = ua ^ ub
	case vector.AndNot:
		r = ua &^ ub
	case vector.ShiftLeft:
		r = ua << s
	case vector.ShiftRightArith:
		r = uint64(a >> s)
	case vector.ShiftRightLogical:
		r = ua >> s
	case vector.RotateLeft:
		r = ua<<s | ua>>(uint(w)-s)
	case vector.RotateRight:
		r = ua>>s | ua<<(uint(w)-s)
	case vector.CompressBits:
		r = compress(ua, ub, w)
	case vector.ExpandBits:
		r = expand(ua, ub, w)
	default:
		return 0, fmt.Errorf("expr: no scalar form for %s", op)
	}
	return truncate(r, w), nil
}

func floatBinary[T float32 | float64](op vector.BinaryOp, a, b T) T {
	switch op {
	case vector.Add:
		return a + b
	case vector.Sub:
		return a - b
	case vector.Mul:
		return a * b
	case vector.Div:
		return a / b
	case vector.Min:
		return min(a, b)
	case vector.Max:
		return max(a, b)
	default:
		return a
	}
}

func scalarUnary(e vector.ElementType, op vector.UnaryOp, x uint64) uint64 {
	if op == vector.Abs && e.IsFloat() {
		return x &^ (1 << (e.Bits() - 1))
	}
	switch e {
	case vector.Float32:
		return uint64(math.Float32bits(floatUnary(op, math.Float32frombits(uint32(x)))))
	case vector.Float64:
		return math.Float64bits(floatUnary(op, math.Float64frombits(x)))
	}

	w := e.Bits()
	a := signExtend(x, w)
	u := truncate(x, w)
	var r uint64
	switch op {
	case vector.Neg:
		r = uint64(-a)
	case vector.Abs:
		if a < 0 {
			a = -a
		}
		r = uint64(a)
	case vector.Not:
		r = ^u
	case vector.BitCount:
		r = uint64(bits.OnesCount64(u))
	case vector.LeadingZerosCount:
		r = uint64(bits.LeadingZeros64(u) - (64 - w))
	case vector.TrailingZerosCount:
		r = uint64(min(bits.TrailingZeros64(u), w))
	case vector.Reverse:
		r = bits.Reverse64(u) >> (64 - w)
	case vector.ReverseBytes:
		r = bits.ReverseBytes64(u) >> (64 - w)
	default:
		r = u
	}
	return truncate(r, w)
}

func floatUnary[T float32 | float64](op vector.UnaryOp, a T) T {
	switch op {
	case vector.Neg:
		return -a
	case vector.Sqrt:
		return T(math.Sqrt(float64(a)))
	default:
		return a
	}
}

// compress walks the mask one bit at a time.
func compress(x, m uint64, w int) uint64 {
	var r uint64
	k := 0
	for i := range w {
		if m>>i&1 == 1 {
			r |= (x >> i & 1) << k
			k++
		}
	}
	return r
}

func expand(x, m uint64, w int) uint64 {
	var r uint64
	k := 0
	for i := range w {
		if m>>i&1 == 1 {
			r |= (x >> k & 1) << i
			k++
		}
	}
	return r
}
