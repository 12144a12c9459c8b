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

func mustFrom[T Lanes](t *testing.T, s Species, values ...T) Vector {
	t.Helper()
	v, err := FromValues(s, values...)
	require.NoError(t, err)
	return v
}

func lanesOf[T Lanes](t *testing.T, v Vector) []T {
	t.Helper()
	got, err := Elements[T](v)
	require.NoError(t, err)
	return got
}

func TestLanewiseInt(t *testing.T) {
	a := mustFrom[int32](t, Int32_128, 10, -20, 30, math.MaxInt32)
	b := mustFrom[int32](t, Int32_128, 3, 4, -5, 1)
	tests := []struct {
		op   BinaryOp
		want []int32
	}{
		{Add, []int32{13, -16, 25, math.MinInt32}},
		{Sub, []int32{7, -24, 35, math.MaxInt32 - 1}},
		{Mul, []int32{30, -80, -150, math.MaxInt32}},
		{Div, []int32{3, -5, -6, math.MaxInt32}},
		{Min, []int32{3, -20, -5, 1}},
		{Max, []int32{10, 4, 30, math.MaxInt32}},
		{And, []int32{10 & 3, -20 & 4, 30 & -5, 1}},
		{Or, []int32{10 | 3, -20 | 4, 30 | -5, math.MaxInt32}},
		{Xor, []int32{10 ^ 3, -20 ^ 4, 30 ^ -5, math.MaxInt32 - 1}},
		{AndNot, []int32{10 &^ 3, -20 &^ 4, 30 &^ -5, math.MaxInt32 - 1}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			r, err := a.Lanewise(tt.op, b)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, lanesOf[int32](t, r)); diff != "" {
				t.Errorf("%s (-want +got):\n%s", tt.op, diff)
			}
		})
	}
}

func TestLanewiseMasked(t *testing.T) {
	a := mustFrom[int64](t, Int64_256, 1, 2, 3, 4)
	b := mustFrom[int64](t, Int64_256, 10, 20, 30, 40)
	m := MaskFromBits(Int64_256, 0b0101)
	r, err := a.LanewiseMasked(Add, b, m)
	require.NoError(t, err)
	// Masked-off lanes keep the first operand.
	if diff := cmp.Diff([]int64{11, 2, 33, 4}, lanesOf[int64](t, r)); diff != "" {
		t.Errorf("masked add (-want +got):\n%s", diff)
	}

	_, err = a.LanewiseMasked(Add, b, MaskAll(Int64_128, true))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
	if a.Species() != Int64_256 || lanesOf[int64](t, a)[0] != 1 {
		t.Error("operands changed")
	}
}

func TestLanewiseErrors(t *testing.T) {
	a := mustFrom[int32](t, Int32_128, 1, 2, 3, 4)
	z := mustFrom[int32](t, Int32_128, 1, 0, 1, 1)

	_, err := a.Lanewise(Div, z)
	require.ErrorIs(t, err, ErrArithmetic)

	r, err := a.LanewiseMasked(Div, z, MaskFromBits(Int32_128, 0b1101))
	require.NoError(t, err)
	if diff := cmp.Diff([]int32{1, 2, 3, 4}, lanesOf[int32](t, r)); diff != "" {
		t.Errorf("masked div (-want +got):\n%s", diff)
	}

	_, err = a.Lanewise(Add, Zero(Float32_128))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
	_, err = a.Lanewise(Add, Zero(Int32_256))
	require.ErrorIs(t, err, ErrSpeciesMismatch)

	f := Zero(Float64_256)
	for _, op := range []BinaryOp{And, Or, Xor, AndNot, ShiftLeft, RotateRight, CompressBits} {
		_, err = f.Lanewise(op, f)
		require.ErrorIs(t, err, ErrUnsupportedOperator, op.String())
	}
	_, err = a.Lanewise(BinaryOp(99), a)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestLanewiseWraps(t *testing.T) {
	a := mustFrom[int8](t, Int8_64, 127, -128, 100, -100, 0, 1, 2, 3)
	b := mustFrom[int8](t, Int8_64, 1, -1, 100, -100, 0, 1, 2, 3)
	r, err := a.Lanewise(Add, b)
	require.NoError(t, err)
	if diff := cmp.Diff([]int8{-128, 127, -56, 56, 0, 2, 4, 6}, lanesOf[int8](t, r)); diff != "" {
		t.Errorf("int8 add (-want +got):\n%s", diff)
	}
	minus := mustFrom[int8](t, Int8_64, -1, -1, -1, -1, -1, -1, -1, -1)
	r, err = a.Lanewise(Div, minus)
	require.NoError(t, err)
	if got := lanesOf[int8](t, r)[1]; got != -128 {
		t.Errorf("-128 / -1 = %d, want -128", got)
	}
}

func TestLanewiseFloat(t *testing.T) {
	nan := math.NaN()
	a := mustFrom[float64](t, Float64_256, 1.5, nan, math.Copysign(0, -1), 8)
	b := mustFrom[float64](t, Float64_256, 2, 1, 0, 0)

	r, err := a.Lanewise(Min, b)
	require.NoError(t, err)
	got := lanesOf[float64](t, r)
	if got[0] != 1.5 || !math.IsNaN(got[1]) || !math.Signbit(got[2]) {
		t.Errorf("min = %v", got)
	}
	r, err = a.Lanewise(Max, b)
	require.NoError(t, err)
	got = lanesOf[float64](t, r)
	if got[0] != 2 || !math.IsNaN(got[1]) || math.Signbit(got[2]) {
		t.Errorf("max = %v", got)
	}
	r, err = a.Lanewise(Div, b)
	require.NoError(t, err)
	if got := lanesOf[float64](t, r)[3]; !math.IsInf(got, 1) {
		t.Errorf("8 / 0 = %v, want +Inf", got)
	}
}

func TestUnary(t *testing.T) {
	i := mustFrom[int16](t, Int16_64, -128, math.MinInt16, 5, 0)
	tests := []struct {
		op   UnaryOp
		want []int16
	}{
		{Neg, []int16{128, math.MinInt16, -5, 0}},
		{Abs, []int16{128, math.MinInt16, 5, 0}},
		{Not, []int16{127, math.MaxInt16, -6, -1}},
		{BitCount, []int16{9, 1, 2, 0}},
		{LeadingZerosCount, []int16{0, 0, 13, 16}},
		{TrailingZerosCount, []int16{7, 15, 0, 16}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			r, err := i.Unary(tt.op)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, lanesOf[int16](t, r)); diff != "" {
				t.Errorf("%s (-want +got):\n%s", tt.op, diff)
			}
		})
	}

	r, err := i.UnaryMasked(Neg, MaskFromBits(Int16_64, 0b0100))
	require.NoError(t, err)
	if diff := cmp.Diff([]int16{-128, math.MinInt16, -5, 0}, lanesOf[int16](t, r)); diff != "" {
		t.Errorf("masked neg (-want +got):\n%s", diff)
	}

	f := mustFrom[float32](t, Float32_128, -4, float32(math.Copysign(0, -1)), 9, 2)
	r, err = f.Unary(Abs)
	require.NoError(t, err)
	gotF := lanesOf[float32](t, r)
	if gotF[0] != 4 || math.Signbit(float64(gotF[1])) {
		t.Errorf("abs = %v", gotF)
	}
	r, err = f.UnaryMasked(Sqrt, MaskFromBits(Float32_128, 0b0100))
	require.NoError(t, err)
	if diff := cmp.Diff([]float32{-4, float32(math.Copysign(0, -1)), 3, 2}, lanesOf[float32](t, r)); diff != "" {
		t.Errorf("masked sqrt (-want +got):\n%s", diff)
	}

	_, err = i.Unary(Sqrt)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
	_, err = f.Unary(Not)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
	_, err = f.UnaryMasked(Neg, MaskAll(Float32_256, true))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
}
