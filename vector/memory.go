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
	"encoding/binary"
	"math"
)

// This file provides the flat-buffer I/O contract: typed slices, byte
// slices with an explicit byte order, masked variants and index-mapped
// gather/scatter. Every operation checks bounds before touching a lane,
// so a failed store leaves the destination unchanged.

// Load reads LaneCount() contiguous elements of src starting at offset.
// It fails with ErrOutOfBounds if offset+LaneCount() > len(src), and with
// ErrSpeciesMismatch if T is not the species element type.
func Load[T Lanes](s Species, src []T, offset int) (Vector, error) {
	if err := checkLaneType[T]("Load", s); err != nil {
		return Vector{}, err
	}
	if !inBounds(offset, s.lanes, len(src)) {
		return Vector{}, outOfBounds("Load", offset, s.lanes, len(src))
	}
	data := make([]T, s.lanes)
	copy(data, src[offset:offset+s.lanes])
	return Vector{species: s, data: data}, nil
}

// Store writes the lanes of v to dst starting at offset. Bounds are the
// same as Load; on error dst is not modified.
func Store[T Lanes](v Vector, dst []T, offset int) error {
	if err := checkLaneType[T]("Store", v.species); err != nil {
		return err
	}
	n := v.species.lanes
	if !inBounds(offset, n, len(dst)) {
		return outOfBounds("Store", offset, n, len(dst))
	}
	copy(dst[offset:offset+n], v.data.([]T))
	return nil
}

// LoadMasked reads the lanes selected by m; unselected lanes are zero.
// Unselected lanes may lie outside src. It fails with ErrOutOfBounds if
// any selected lane is outside src.
func LoadMasked[T Lanes](s Species, src []T, offset int, m Mask) (Vector, error) {
	if err := checkLaneType[T]("LoadMasked", s); err != nil {
		return Vector{}, err
	}
	active, err := m.activeFor("LoadMasked", s)
	if err != nil {
		return Vector{}, err
	}
	if err := checkActiveBounds("LoadMasked", active, offset, len(src)); err != nil {
		return Vector{}, err
	}
	data := make([]T, s.lanes)
	for i := range data {
		if active[i] {
			data[i] = src[offset+i]
		}
	}
	return Vector{species: s, data: data}, nil
}

// StoreMasked writes the lanes of v selected by m and leaves the other
// elements of dst unchanged. Bounds are the same as LoadMasked.
func StoreMasked[T Lanes](v Vector, dst []T, offset int, m Mask) error {
	if err := checkLaneType[T]("StoreMasked", v.species); err != nil {
		return err
	}
	active, err := m.activeFor("StoreMasked", v.species)
	if err != nil {
		return err
	}
	if err := checkActiveBounds("StoreMasked", active, offset, len(dst)); err != nil {
		return err
	}
	for i, x := range v.data.([]T) {
		if active[i] {
			dst[offset+i] = x
		}
	}
	return nil
}

// inBounds reports whether [offset, offset+n) lies inside a buffer of the
// given length, without overflowing for large offsets.
func inBounds(offset, n, length int) bool {
	return offset >= 0 && n <= length && offset <= length-n
}

func checkActiveBounds(op string, active []bool, offset, length int) error {
	for i, on := range active {
		if on && (offset < -i || offset >= length-i) {
			return newError(op, KindOutOfBounds, "lane %d at index %d outside length %d", i, offset+i, length)
		}
	}
	return nil
}

// LoadBytes decodes LaneCount() lanes from buf starting at byte offset,
// using order for multi-byte lanes. Float lanes are decoded from their
// IEEE bit patterns.
func LoadBytes(s Species, buf []byte, offset int, order binary.ByteOrder) (Vector, error) {
	size := s.elem.Bytes()
	if !inBounds(offset, s.ByteSize(), len(buf)) {
		return Vector{}, newError("LoadBytes", KindOutOfBounds, "offset %d + %d bytes exceeds length %d", offset, s.ByteSize(), len(buf))
	}
	v := Zero(s)
	for i := range s.lanes {
		v.setLaneBits(i, decodeLane(buf[offset+i*size:], size, order))
	}
	return v, nil
}

// StoreBytes encodes the lanes of v into buf starting at byte offset.
// On error buf is not modified.
func StoreBytes(v Vector, buf []byte, offset int, order binary.ByteOrder) error {
	size := v.species.elem.Bytes()
	if !inBounds(offset, v.species.ByteSize(), len(buf)) {
		return newError("StoreBytes", KindOutOfBounds, "offset %d + %d bytes exceeds length %d", offset, v.species.ByteSize(), len(buf))
	}
	for i := range v.species.lanes {
		encodeLane(buf[offset+i*size:], size, order, v.LaneBits(i))
	}
	return nil
}

func decodeLane(b []byte, size int, order binary.ByteOrder) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	default:
		return order.Uint64(b)
	}
}

func encodeLane(b []byte, size int, order binary.ByteOrder, bits uint64) {
	switch size {
	case 1:
		b[0] = byte(bits)
	case 2:
		order.PutUint16(b, uint16(bits))
	case 4:
		order.PutUint32(b, uint32(bits))
	default:
		order.PutUint64(b, bits)
	}
}

// setLaneBits overwrites lane i of a freshly allocated vector. It is only
// used while building a result, never on a vector that escaped.
func (v Vector) setLaneBits(i int, bits uint64) {
	switch d := v.data.(type) {
	case []int8:
		d[i] = fromBits[int8](bits)
	case []int16:
		d[i] = fromBits[int16](bits)
	case []int32:
		d[i] = fromBits[int32](bits)
	case []int64:
		d[i] = fromBits[int64](bits)
	case []float32:
		d[i] = fromBits[float32](bits)
	case []float64:
		d[i] = fromBits[float64](bits)
	}
}

// Gather loads lane i from src[offset+indexMap[mapOffset+i]].
func Gather[T Lanes](s Species, src []T, offset int, indexMap []int, mapOffset int) (Vector, error) {
	return GatherMasked(s, src, offset, indexMap, mapOffset, MaskAll(s, true))
}

// GatherMasked is Gather restricted to the lanes selected by m; the other
// lanes are zero and their index map entries are not read.
func GatherMasked[T Lanes](s Species, src []T, offset int, indexMap []int, mapOffset int, m Mask) (Vector, error) {
	if err := checkLaneType[T]("Gather", s); err != nil {
		return Vector{}, err
	}
	active, err := m.activeFor("Gather", s)
	if err != nil {
		return Vector{}, err
	}
	idx, err := gatherIndices("Gather", active, offset, indexMap, mapOffset, len(src))
	if err != nil {
		return Vector{}, err
	}
	data := make([]T, s.lanes)
	for i, j := range idx {
		if active[i] {
			data[i] = src[j]
		}
	}
	return Vector{species: s, data: data}, nil
}

// Scatter stores lane i of v to dst[offset+indexMap[mapOffset+i]]. When
// two lanes map to the same index, the higher lane wins.
func Scatter[T Lanes](v Vector, dst []T, offset int, indexMap []int, mapOffset int) error {
	return ScatterMasked(v, dst, offset, indexMap, mapOffset, MaskAll(v.species, true))
}

// ScatterMasked is Scatter restricted to the lanes selected by m.
func ScatterMasked[T Lanes](v Vector, dst []T, offset int, indexMap []int, mapOffset int, m Mask) error {
	if err := checkLaneType[T]("Scatter", v.species); err != nil {
		return err
	}
	active, err := m.activeFor("Scatter", v.species)
	if err != nil {
		return err
	}
	idx, err := gatherIndices("Scatter", active, offset, indexMap, mapOffset, len(dst))
	if err != nil {
		return err
	}
	for i, x := range v.data.([]T) {
		if active[i] {
			dst[idx[i]] = x
		}
	}
	return nil
}

// gatherIndices resolves and bounds-checks every active lane's index.
func gatherIndices(op string, active []bool, offset int, indexMap []int, mapOffset, length int) ([]int, error) {
	idx := make([]int, len(active))
	for i, on := range active {
		if !on {
			continue
		}
		k := mapOffset + i
		if k < 0 || k >= len(indexMap) {
			return nil, newError(op, KindOutOfBounds, "index map position %d outside length %d", k, len(indexMap))
		}
		j, ok := indexIn(offset, indexMap[k], length)
		if !ok {
			return nil, newError(op, KindOutOfBounds, "lane %d maps to index %d%+d outside length %d", i, offset, indexMap[k], length)
		}
		idx[i] = j
	}
	return idx, nil
}

// indexIn returns offset+x if it lies in [0, length).
func indexIn(offset, x, length int) (int, bool) {
	if (x > 0 && offset > math.MaxInt-x) || (x < 0 && offset < math.MinInt-x) {
		return 0, false
	}
	j := offset + x
	return j, j >= 0 && j < length
}
