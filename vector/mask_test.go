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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMaskFromArray(t *testing.T) {
	src := []bool{false, true, true, false, true, false, false, true, true}
	m, err := MaskFromArray(Int32_256, src, 1)
	require.NoError(t, err)
	if got := m.String(); got != "11010011" {
		t.Errorf("String() = %q, want %q", got, "11010011")
	}
	for i := range m.LaneCount() {
		if m.IsSet(i) != src[1+i] {
			t.Errorf("IsSet(%d) = %v, want %v", i, m.IsSet(i), src[1+i])
		}
	}

	dst := make([]bool, 10)
	require.NoError(t, m.IntoArray(dst, 2))
	if diff := cmp.Diff(src[1:9], dst[2:10]); diff != "" {
		t.Errorf("IntoArray mismatch (-want +got):\n%s", diff)
	}

	_, err = MaskFromArray(Int32_256, src, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = MaskFromArray(Int32_256, src, -1)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.ErrorIs(t, m.IntoArray(dst, 3), ErrOutOfBounds)
}

func TestMaskBits(t *testing.T) {
	m := MaskFromBits(Int32_256, 0b1010_0101)
	if got := m.String(); got != "10100101" {
		t.Errorf("String() = %q", got)
	}
	bits, err := m.ToBits()
	require.NoError(t, err)
	if bits != 0b1010_0101 {
		t.Errorf("ToBits() = %#b", bits)
	}
	if m.TrueCount() != 4 || m.FirstTrue() != 0 || m.LastTrue() != 7 {
		t.Errorf("TrueCount/FirstTrue/LastTrue = %d/%d/%d", m.TrueCount(), m.FirstTrue(), m.LastTrue())
	}

	for _, s := range AllSpecies() {
		if s.LaneCount() > 64 {
			continue
		}
		want := uint64(0x5555_5555_5555_5555) & widthMask(uint(s.LaneCount()))
		got, err := MaskFromBits(s, want).ToBits()
		require.NoError(t, err)
		if got != want {
			t.Errorf("%s: ToBits(FromBits(%#x)) = %#x", s, want, got)
		}
	}

	wide, err := ShapeForBitSize(1024)
	require.NoError(t, err)
	_, err = MaskAll(MustOf(Int8, wide), true).ToBits()
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestMaskLogic(t *testing.T) {
	a := MaskFromBits(Int32_128, 0b0011)
	b := MaskFromBits(Float32_128, 0b0101)
	tests := []struct {
		name string
		fn   func(Mask) (Mask, error)
		want string
	}{
		{"and", a.And, "1000"},
		{"or", a.Or, "1110"},
		{"xor", a.Xor, "0110"},
		{"andnot", a.AndNot, "0100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(b)
			require.NoError(t, err)
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if got.Species() != Int32_128 {
				t.Errorf("result species %s, want receiver species", got.Species())
			}
		})
	}
	if got := a.Not().String(); got != "0011" {
		t.Errorf("Not() = %s", got)
	}

	_, err := a.And(MaskAll(Int32_256, true))
	require.ErrorIs(t, err, ErrSpeciesMismatch)
}

func TestMaskQueries(t *testing.T) {
	none := MaskAll(Int64_256, false)
	if none.FirstTrue() != -1 || none.LastTrue() != -1 || none.AnyTrue() || none.AllTrue() {
		t.Errorf("queries on empty mask: %d %d %v %v", none.FirstTrue(), none.LastTrue(), none.AnyTrue(), none.AllTrue())
	}
	all := AllTrueMask(Int64_256)
	if !all.AllTrue() || all.TrueCount() != 4 {
		t.Errorf("AllTrueMask: %s", all)
	}
	if got := IndexInRange(Int32_128, 6, 8).String(); got != "1100" {
		t.Errorf("IndexInRange(6, 8) = %s, want 1100", got)
	}
	if got := IndexInRange(Int32_128, 0, 8).String(); got != "1111" {
		t.Errorf("IndexInRange(0, 8) = %s, want 1111", got)
	}
	cast, err := MaskFromBits(Int32_128, 0b1001).Cast(Float32_128)
	require.NoError(t, err)
	if cast.Species() != Float32_128 || cast.String() != "1001" {
		t.Errorf("Cast = %s %s", cast.Species(), cast)
	}
	_, err = all.Cast(Int32_256)
	require.ErrorIs(t, err, ErrSpeciesMismatch)
	if !cast.Equal(MaskFromBits(Float32_128, 0b1001)) || cast.Equal(MaskFromBits(Int32_128, 0b1001)) {
		t.Error("Equal must compare species and lanes")
	}
	if cast.IsSet(-1) || cast.IsSet(4) {
		t.Error("IsSet outside the lanes must be false")
	}
}
