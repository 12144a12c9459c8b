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

import "math/bits"

// This file provides bit manipulation on single integer lanes. All of them
// operate on the raw two's complement bits, so a negative lane is treated
// as its unsigned bit pattern.

// laneWidth returns the number of bits in T.
func laneWidth[T Lanes]() uint {
	return uint(elementTypeOf[T]().Bits())
}

// widthMask returns a mask covering the low w bits.
func widthMask(w uint) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return 1<<w - 1
}

// popCount counts set bits for a single value.
func popCount[T SignedInts](val T) T {
	return T(bits.OnesCount64(toBits(val)))
}

// leadingZeroCount counts leading zeros within the lane width.
func leadingZeroCount[T SignedInts](val T) T {
	w := laneWidth[T]()
	return T(bits.LeadingZeros64(toBits(val)) - int(64-w))
}

// trailingZeroCount counts trailing zeros; a zero lane yields its width.
func trailingZeroCount[T SignedInts](val T) T {
	u := toBits(val)
	if u == 0 {
		return T(laneWidth[T]())
	}
	return T(bits.TrailingZeros64(u))
}

// reverseBits reverses the bit order within the lane width.
func reverseBits[T SignedInts](val T) T {
	w := laneWidth[T]()
	return fromBits[T](bits.Reverse64(toBits(val)) >> (64 - w))
}

// reverseBytes reverses the byte order within the lane width.
func reverseBytes[T SignedInts](val T) T {
	w := laneWidth[T]()
	return fromBits[T](bits.ReverseBytes64(toBits(val)) >> (64 - w))
}

// shiftCount masks a shift amount to the lane width.
func shiftCount[T SignedInts](n T) uint {
	return uint(toBits(n)) & (laneWidth[T]() - 1)
}

func shiftRightLogical[T SignedInts](val, n T) T {
	return fromBits[T](toBits(val) >> shiftCount(n))
}

func rotateLeft[T SignedInts](val, n T) T {
	w := laneWidth[T]()
	s := shiftCount(n)
	u := toBits(val)
	return fromBits[T]((u<<s | u>>(w-s)) & widthMask(w))
}

func rotateRight[T SignedInts](val, n T) T {
	w := laneWidth[T]()
	s := shiftCount(n)
	u := toBits(val)
	return fromBits[T]((u>>s | u<<(w-s)) & widthMask(w))
}

// compressBits packs the bits of val selected by mask into the low-order
// bits of the result, preserving their order.
func compressBits[T SignedInts](val, mask T) T {
	u, m := toBits(val), toBits(mask)
	var out uint64
	k := uint(0)
	for m != 0 {
		low := m & -m
		if u&low != 0 {
			out |= 1 << k
		}
		k++
		m &^= low
	}
	return fromBits[T](out)
}

// expandBits deposits the low-order bits of val at the positions selected
// by mask; it is the inverse of compressBits on those positions.
func expandBits[T SignedInts](val, mask T) T {
	u, m := toBits(val), toBits(mask)
	var out uint64
	k := uint(0)
	for m != 0 {
		low := m & -m
		if u&(1<<k) != 0 {
			out |= low
		}
		k++
		m &^= low
	}
	return fromBits[T](out)
}
