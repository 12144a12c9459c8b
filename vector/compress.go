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

// This file provides compress and expand for vectors.
// Compress packs the lanes selected by a mask to the front.
// Expand unpacks leading lanes into the positions selected by a mask.

// Compress packs the lanes of v where m is set to the front of the result
// and zero-fills the rest. It also returns the number of packed lanes.
// For example: v=[1,2,3,4], m=1010 -> [1,3,0,0], 2.
func (v Vector) Compress(m Mask) (Vector, int, error) {
	active, err := m.activeFor("Compress", v.species)
	if err != nil {
		return Vector{}, 0, err
	}
	out := Zero(v.species)
	count := 0
	for i, on := range active {
		if on {
			out.setLaneBits(count, v.LaneBits(i))
			count++
		}
	}
	return out, count, nil
}

// Expand places the leading lanes of v, in order, at the positions where m
// is set; the other lanes are zero. It is the inverse of Compress on the
// selected lanes. For example: v=[1,2,0,0], m=1010 -> [1,0,2,0].
func (v Vector) Expand(m Mask) (Vector, error) {
	active, err := m.activeFor("Expand", v.species)
	if err != nil {
		return Vector{}, err
	}
	out := Zero(v.species)
	next := 0
	for i, on := range active {
		if on {
			out.setLaneBits(i, v.LaneBits(next))
			next++
		}
	}
	return out, nil
}

// CompressStore compresses v by m and stores the packed lanes to dst at
// offset. It returns the number of lanes written; dst must have room for
// all of them.
func CompressStore[T Lanes](v Vector, m Mask, dst []T, offset int) (int, error) {
	if err := checkLaneType[T]("CompressStore", v.species); err != nil {
		return 0, err
	}
	packed, count, err := v.Compress(m)
	if err != nil {
		return 0, err
	}
	if !inBounds(offset, count, len(dst)) {
		return 0, outOfBounds("CompressStore", offset, count, len(dst))
	}
	copy(dst[offset:offset+count], packed.data.([]T)[:count])
	return count, nil
}
