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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	a := mustFrom[float32](t, Float32_128, 1, 2, float32(math.NaN()), 4)
	b := mustFrom[float32](t, Float32_128, 1, 3, 0, 2)
	tests := []struct {
		op   CompareOp
		want string
	}{
		{Eq, "1000"},
		{Ne, "0111"},
		{Lt, "0100"},
		{Le, "1100"},
		{Gt, "0001"},
		{Ge, "1001"},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			m, err := a.Compare(tt.op, b)
			require.NoError(t, err)
			if m.String() != tt.want {
				t.Errorf("%s = %s, want %s", tt.op, m, tt.want)
			}
			if m.Species() != Float32_128 {
				t.Errorf("mask species = %s", m.Species())
			}
		})
	}

	m, err := a.CompareMasked(Ne, b, MaskFromBits(Float32_128, 0b0011))
	require.NoError(t, err)
	if m.String() != "0100" {
		t.Errorf("masked ne = %s, want 0100", m)
	}
	_, err = a.Compare(Eq, Zero(Int32_128))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
	_, err = a.Compare(CompareOp(0), b)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestBlend(t *testing.T) {
	a := Iota(Int16_64)
	b := mustFrom[int16](t, Int16_64, -1, -2, -3, -4)
	r, err := a.Blend(b, MaskFromBits(Int16_64, 0b1010))
	require.NoError(t, err)
	if diff := cmp.Diff([]int16{0, -2, 2, -4}, lanesOf[int16](t, r)); diff != "" {
		t.Errorf("blend (-want +got):\n%s", diff)
	}
	_, err = a.Blend(b, MaskAll(Int16_128, true))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
}

func TestReduce(t *testing.T) {
	v := mustFrom[int32](t, Int32_256, 3, -1, 4, 1, -5, 9, 2, 6)
	tests := []struct {
		op   BinaryOp
		want int32
	}{
		{Add, 19},
		{Mul, 3 * -1 * 4 * 1 * -5 * 9 * 2 * 6},
		{Min, -5},
		{Max, 9},
		{And, 3 & -1 & 4 & 1 & -5 & 9 & 2 & 6},
		{Or, 3 | -1 | 4 | 1 | -5 | 9 | 2 | 6},
		{Xor, 3 ^ -1 ^ 4 ^ 1 ^ -5 ^ 9 ^ 2 ^ 6},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, err := Reduce[int32](v, tt.op)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("Reduce(%s) = %d, want %d", tt.op, got, tt.want)
			}
			raw, err := v.ReduceLanesToBits(tt.op)
			require.NoError(t, err)
			if raw != uint64(uint32(tt.want)) {
				t.Errorf("ReduceLanesToBits(%s) = %#x", tt.op, raw)
			}
		})
	}

	// Masked-off lanes contribute the identity.
	none := MaskAll(Int32_256, false)
	identities := map[BinaryOp]int32{Add: 0, Mul: 1, Min: math.MaxInt32, Max: math.MinInt32, And: -1, Or: 0, Xor: 0}
	for op, want := range identities {
		got, err := ReduceMasked[int32](v, op, none)
		require.NoError(t, err)
		if got != want {
			t.Errorf("empty ReduceMasked(%s) = %d, want %d", op, got, want)
		}
	}
	got, err := ReduceMasked[int32](v, Add, MaskFromBits(Int32_256, 0b1010_0000))
	require.NoError(t, err)
	if got != 15 {
		t.Errorf("ReduceMasked(ADD) = %d, want 15", got)
	}
	raw, err := v.ReduceLanesToBitsMasked(Max, MaskFromBits(Int32_256, 0b0000_0011))
	require.NoError(t, err)
	if raw != 3 {
		t.Errorf("ReduceLanesToBitsMasked(MAX) = %d, want 3", raw)
	}

	f := mustFrom[float64](t, Float64_256, 1, 2, 3, 4)
	sum, err := Reduce[float64](f, Add)
	require.NoError(t, err)
	if sum != 10 {
		t.Errorf("float sum = %v", sum)
	}
	lo, err := ReduceMasked[float64](f, Min, MaskAll(Float64_256, false))
	require.NoError(t, err)
	if !math.IsInf(lo, 1) {
		t.Errorf("empty float min = %v, want +Inf", lo)
	}

	_, err = Reduce[float64](f, And)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
	_, err = Reduce[int32](v, Sub)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
	_, err = Reduce[int64](v, Add)
	require.ErrorIs(t, err, ErrSpeciesMismatch)
}

func TestCompressExpand(t *testing.T) {
	tests := []struct {
		name     string
		mask     uint64
		wantData []float32
		wantCnt  int
	}{
		{"all true", 0b1111_1111, []float32{1, 2, 3, 4, 5, 6, 7, 8}, 8},
		{"all false", 0, []float32{0, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"alternating true first", 0b0101_0101, []float32{1, 3, 5, 7, 0, 0, 0, 0}, 4},
		{"alternating false first", 0b1010_1010, []float32{2, 4, 6, 8, 0, 0, 0, 0}, 4},
		{"single true", 0b0000_1000, []float32{4, 0, 0, 0, 0, 0, 0, 0}, 1},
		{"random pattern", 0b0100_1101, []float32{1, 3, 4, 7, 0, 0, 0, 0}, 4},
	}
	v := mustFrom[float32](t, Float32_256, 1, 2, 3, 4, 5, 6, 7, 8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MaskFromBits(Float32_256, tt.mask)
			c, count, err := v.Compress(m)
			require.NoError(t, err)
			if count != tt.wantCnt {
				t.Errorf("count = %d, want %d", count, tt.wantCnt)
			}
			if diff := cmp.Diff(tt.wantData, lanesOf[float32](t, c)); diff != "" {
				t.Errorf("compress (-want +got):\n%s", diff)
			}

			// Expand undoes Compress on the selected lanes.
			e, err := c.Expand(m)
			require.NoError(t, err)
			for i := range v.LaneCount() {
				want := uint64(0)
				if m.IsSet(i) {
					want = v.LaneBits(i)
				}
				if e.LaneBits(i) != want {
					t.Errorf("lane %d: expand = %#x, want %#x", i, e.LaneBits(i), want)
				}
			}

			dst := make([]float32, 10)
			n, err := CompressStore(v, m, dst, 2)
			require.NoError(t, err)
			if n != tt.wantCnt {
				t.Errorf("CompressStore wrote %d", n)
			}
			if diff := cmp.Diff(tt.wantData[:n], dst[2:2+n]); diff != "" {
				t.Errorf("CompressStore (-want +got):\n%s", diff)
			}
		})
	}

	_, _, err := v.Compress(MaskAll(Float32_128, true))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
	_, err = CompressStore(v, AllTrueMask(Float32_256), make([]float32, 7), 0)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestRearrangeSlice(t *testing.T) {
	v := Iota(Int64_256)
	r, err := v.Rearrange([]int{3, 3, 0, 1})
	require.NoError(t, err)
	if diff := cmp.Diff([]int64{3, 3, 0, 1}, lanesOf[int64](t, r)); diff != "" {
		t.Errorf("rearrange (-want +got):\n%s", diff)
	}
	_, err = v.Rearrange([]int{0, 1, 2, 4})
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.Rearrange([]int{0, 1})
	require.ErrorIs(t, err, ErrSpeciesMismatch)

	o := mustFrom[int64](t, Int64_256, 10, 11, 12, 13)
	s, err := v.Slice(1, o)
	require.NoError(t, err)
	if diff := cmp.Diff([]int64{1, 2, 3, 10}, lanesOf[int64](t, s)); diff != "" {
		t.Errorf("slice (-want +got):\n%s", diff)
	}
	s, err = v.Slice(4, o)
	require.NoError(t, err)
	if !s.Equal(o) {
		t.Errorf("Slice(4) = %v, want %v", s, o)
	}
	_, err = v.Slice(5, o)
	require.ErrorIs(t, err, ErrOutOfBounds)

	w, err := WithLane(v, 2, int64(-7))
	require.NoError(t, err)
	if diff := cmp.Diff([]int64{0, 1, -7, 3}, lanesOf[int64](t, w)); diff != "" {
		t.Errorf("WithLane (-want +got):\n%s", diff)
	}
	if x, _ := Lane[int64](v, 2); x != 2 {
		t.Errorf("WithLane modified its input: %d", x)
	}
	_, err = Lane[int64](v, 4)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestVectorBasics(t *testing.T) {
	v := Iota(Float32_128)
	if v.String() != "[0 1 2 3]" {
		t.Errorf("String() = %q", v.String())
	}
	b, err := Broadcast(Float32_128, float32(2.5))
	require.NoError(t, err)
	if b.String() != "[2.5 2.5 2.5 2.5]" {
		t.Errorf("Broadcast = %v", b)
	}
	_, err = Broadcast(Float32_128, 2.5)
	require.ErrorIs(t, err, ErrSpeciesMismatch)
	if !Zero(Int8_128).Equal(Zero(Int8_128)) || Zero(Int8_128).Equal(Zero(Int16_128)) {
		t.Error("Equal must compare species and lanes")
	}
	n1 := mustFrom[float64](t, Float64_64, math.NaN())
	n2 := mustFrom[float64](t, Float64_64, math.NaN())
	if !n1.Equal(n2) {
		t.Error("identical NaN lanes must be Equal")
	}
	if v.LaneBits(-1) != 0 || v.LaneBits(4) != 0 {
		t.Error("LaneBits outside the lanes must be 0")
	}
}
