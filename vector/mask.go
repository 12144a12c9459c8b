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

import "strings"

// Mask is an immutable, species-tagged sequence of lane flags. It selects
// which lanes an operation applies to and combines only with vectors and
// masks that have the same lane count.
type Mask struct {
	species Species
	bits    []bool
}

// MaskFromArray reads LaneCount() flags from src starting at offset.
// It fails with ErrOutOfBounds if offset+LaneCount() > len(src).
func MaskFromArray(s Species, src []bool, offset int) (Mask, error) {
	if !inBounds(offset, s.lanes, len(src)) {
		return Mask{}, outOfBounds("MaskFromArray", offset, s.lanes, len(src))
	}
	bits := make([]bool, s.lanes)
	copy(bits, src[offset:offset+s.lanes])
	return Mask{species: s, bits: bits}, nil
}

// MaskFromBits sets lane i when bit i of b is set. Lanes at index 64 and
// above are unset.
func MaskFromBits(s Species, b uint64) Mask {
	bits := make([]bool, s.lanes)
	for i := range min(s.lanes, 64) {
		bits[i] = b&(1<<uint(i)) != 0
	}
	return Mask{species: s, bits: bits}
}

// MaskAll returns a mask with every lane set to bit.
func MaskAll(s Species, bit bool) Mask {
	bits := make([]bool, s.lanes)
	if bit {
		for i := range bits {
			bits[i] = true
		}
	}
	return Mask{species: s, bits: bits}
}

// IndexInRange returns a mask whose lane i is set iff offset+i lies in
// [0, limit). This is useful for the tail of a buffer whose length is not
// a multiple of the lane count:
//
//	for i := 0; i < len(data); i += s.LaneCount() {
//	    m := vector.IndexInRange(s, i, len(data))
//	    v, _ := vector.LoadMasked(s, data, i, m)
//	    ...
//	}
func IndexInRange(s Species, offset, limit int) Mask {
	bits := make([]bool, s.lanes)
	for i := range bits {
		bits[i] = offset >= -i && offset < limit-i
	}
	return Mask{species: s, bits: bits}
}

// Species returns the mask's species.
func (m Mask) Species() Species {
	return m.species
}

// LaneCount returns the number of lanes.
func (m Mask) LaneCount() int {
	return m.species.lanes
}

// IsSet returns whether lane i is set. Out-of-range lanes are unset.
func (m Mask) IsSet(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}

// IntoArray writes the flags to dst starting at offset, all or nothing.
func (m Mask) IntoArray(dst []bool, offset int) error {
	if !inBounds(offset, len(m.bits), len(dst)) {
		return outOfBounds("Mask.IntoArray", offset, len(m.bits), len(dst))
	}
	copy(dst[offset:], m.bits)
	return nil
}

// ToBits packs the flags into a uint64, lane i in bit i. It fails with
// ErrUnsupportedOperator when the mask has more than 64 lanes.
func (m Mask) ToBits() (uint64, error) {
	if len(m.bits) > 64 {
		return 0, newError("Mask.ToBits", KindUnsupportedOperator, "%d lanes do not fit in 64 bits", len(m.bits))
	}
	var out uint64
	for i, bit := range m.bits {
		if bit {
			out |= 1 << uint(i)
		}
	}
	return out, nil
}

// And returns the lane-wise conjunction of m and o.
func (m Mask) And(o Mask) (Mask, error) {
	return m.combine("Mask.And", o, func(a, b bool) bool { return a && b })
}

// Or returns the lane-wise disjunction of m and o.
func (m Mask) Or(o Mask) (Mask, error) {
	return m.combine("Mask.Or", o, func(a, b bool) bool { return a || b })
}

// Xor returns the lane-wise exclusive or of m and o.
func (m Mask) Xor(o Mask) (Mask, error) {
	return m.combine("Mask.Xor", o, func(a, b bool) bool { return a != b })
}

// AndNot returns m & ^o lane by lane.
func (m Mask) AndNot(o Mask) (Mask, error) {
	return m.combine("Mask.AndNot", o, func(a, b bool) bool { return a && !b })
}

// Not returns the lane-wise complement of m.
func (m Mask) Not() Mask {
	bits := make([]bool, len(m.bits))
	for i, bit := range m.bits {
		bits[i] = !bit
	}
	return Mask{species: m.species, bits: bits}
}

func (m Mask) combine(op string, o Mask, fn func(a, b bool) bool) (Mask, error) {
	if err := checkSameLanes(op, m.species, o.species); err != nil {
		return Mask{}, err
	}
	bits := make([]bool, len(m.bits))
	for i := range bits {
		bits[i] = fn(m.bits[i], o.bits[i])
	}
	return Mask{species: m.species, bits: bits}, nil
}

// Cast returns the same flags tagged with species s, which must have the
// same lane count.
func (m Mask) Cast(s Species) (Mask, error) {
	if err := checkSameLanes("Mask.Cast", m.species, s); err != nil {
		return Mask{}, err
	}
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	return Mask{species: s, bits: bits}, nil
}

// TrueCount returns the number of set lanes.
func (m Mask) TrueCount() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// FirstTrue returns the index of the first set lane, or -1 if none.
func (m Mask) FirstTrue() int {
	for i, bit := range m.bits {
		if bit {
			return i
		}
	}
	return -1
}

// LastTrue returns the index of the last set lane, or -1 if none.
func (m Mask) LastTrue() int {
	for i := len(m.bits) - 1; i >= 0; i-- {
		if m.bits[i] {
			return i
		}
	}
	return -1
}

// AllTrue reports whether every lane is set.
func (m Mask) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue reports whether at least one lane is set.
func (m Mask) AnyTrue() bool {
	return m.FirstTrue() >= 0
}

// Equal reports whether m and o have the same species and flags.
func (m Mask) Equal(o Mask) bool {
	if m.species != o.species {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// String renders the flags as a string of 1s and 0s, lane 0 first.
func (m Mask) String() string {
	var b strings.Builder
	for _, bit := range m.bits {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// activeFor returns the flags of m after checking m can be applied to
// vectors of species s. A nil result means every lane is active.
func (m *Mask) activeFor(op string, s Species) ([]bool, error) {
	if m == nil {
		return nil, nil
	}
	if err := checkSameLanes(op, s, m.species); err != nil {
		return nil, err
	}
	return m.bits, nil
}

// isActive reports whether lane i is selected by active.
func isActive(active []bool, i int) bool {
	return active == nil || active[i]
}

// AllTrueMask returns the mask of s with every lane set.
func AllTrueMask(s Species) Mask {
	return MaskAll(s, true)
}
