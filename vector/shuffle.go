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

// Rearrange returns a vector whose lane i is v[indices[i]]. Every index
// must address a lane of v.
func (v Vector) Rearrange(indices []int) (Vector, error) {
	if len(indices) != v.species.lanes {
		return Vector{}, newError("Rearrange", KindSpeciesMismatch, "%d indices for %d lanes", len(indices), v.species.lanes)
	}
	for i, j := range indices {
		if j < 0 || j >= v.species.lanes {
			return Vector{}, newError("Rearrange", KindOutOfBounds, "lane %d selects %d outside %d lanes", i, j, v.species.lanes)
		}
	}
	out := Zero(v.species)
	for i, j := range indices {
		out.setLaneBits(i, v.LaneBits(j))
	}
	return out, nil
}

// Slice concatenates v and o and returns LaneCount() lanes starting at
// origin, so lane i is v[origin+i] while origin+i < LaneCount() and
// o[origin+i-LaneCount()] after that.
func (v Vector) Slice(origin int, o Vector) (Vector, error) {
	if err := checkSameSpecies("Slice", v.species, o.species); err != nil {
		return Vector{}, err
	}
	n := v.species.lanes
	if origin < 0 || origin > n {
		return Vector{}, newError("Slice", KindOutOfBounds, "origin %d outside [0, %d]", origin, n)
	}
	out := Zero(v.species)
	for i := range n {
		if k := origin + i; k < n {
			out.setLaneBits(i, v.LaneBits(k))
		} else {
			out.setLaneBits(i, o.LaneBits(k-n))
		}
	}
	return out, nil
}

// Lane returns lane i of v as a T.
func Lane[T Lanes](v Vector, i int) (T, error) {
	var zero T
	if err := checkLaneType[T]("Lane", v.species); err != nil {
		return zero, err
	}
	if i < 0 || i >= v.species.lanes {
		return zero, newError("Lane", KindOutOfBounds, "lane %d outside %d lanes", i, v.species.lanes)
	}
	return v.data.([]T)[i], nil
}

// WithLane returns a copy of v with lane i replaced by x.
func WithLane[T Lanes](v Vector, i int, x T) (Vector, error) {
	if err := checkLaneType[T]("WithLane", v.species); err != nil {
		return Vector{}, err
	}
	if i < 0 || i >= v.species.lanes {
		return Vector{}, newError("WithLane", KindOutOfBounds, "lane %d outside %d lanes", i, v.species.lanes)
	}
	data := make([]T, v.species.lanes)
	copy(data, v.data.([]T))
	data[i] = x
	return Vector{species: v.species, data: data}, nil
}
