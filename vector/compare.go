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

// Compare tests every pair of lanes of v and o and returns the mask of
// lanes where the comparison holds. Comparisons involving NaN are false,
// except Ne which is true.
func (v Vector) Compare(op CompareOp, o Vector) (Mask, error) {
	return v.compare("Compare", op, o, nil)
}

// CompareMasked is Compare restricted to the lanes selected by m; the other
// lanes of the result are unset.
func (v Vector) CompareMasked(op CompareOp, o Vector, m Mask) (Mask, error) {
	return v.compare("CompareMasked", op, o, &m)
}

func (v Vector) compare(name string, op CompareOp, o Vector, m *Mask) (Mask, error) {
	if err := checkSameSpecies(name, v.species, o.species); err != nil {
		return Mask{}, err
	}
	active, err := m.activeFor(name, v.species)
	if err != nil {
		return Mask{}, err
	}
	if _, ok := compareOpNames[op]; !ok {
		return Mask{}, newError(name, KindUnsupportedOperator, "unknown comparison %d", uint8(op))
	}
	var bits []bool
	switch x := v.data.(type) {
	case []int8:
		bits = compareLanes(op, x, o.data.([]int8), active)
	case []int16:
		bits = compareLanes(op, x, o.data.([]int16), active)
	case []int32:
		bits = compareLanes(op, x, o.data.([]int32), active)
	case []int64:
		bits = compareLanes(op, x, o.data.([]int64), active)
	case []float32:
		bits = compareLanes(op, x, o.data.([]float32), active)
	case []float64:
		bits = compareLanes(op, x, o.data.([]float64), active)
	}
	return Mask{species: v.species, bits: bits}, nil
}

func compareLanes[T Lanes](op CompareOp, x, y []T, active []bool) []bool {
	out := make([]bool, len(x))
	for i := range x {
		if !isActive(active, i) {
			continue
		}
		a, b := x[i], y[i]
		switch op {
		case Eq:
			out[i] = a == b
		case Ne:
			out[i] = a != b
		case Lt:
			out[i] = a < b
		case Le:
			out[i] = a <= b
		case Gt:
			out[i] = a > b
		case Ge:
			out[i] = a >= b
		}
	}
	return out
}

// Blend returns a vector whose lane i is o[i] where m is set and v[i]
// elsewhere.
func (v Vector) Blend(o Vector, m Mask) (Vector, error) {
	if err := checkSameSpecies("Blend", v.species, o.species); err != nil {
		return Vector{}, err
	}
	active, err := m.activeFor("Blend", v.species)
	if err != nil {
		return Vector{}, err
	}
	var data any
	switch x := v.data.(type) {
	case []int8:
		data = blendLanes(x, o.data.([]int8), active)
	case []int16:
		data = blendLanes(x, o.data.([]int16), active)
	case []int32:
		data = blendLanes(x, o.data.([]int32), active)
	case []int64:
		data = blendLanes(x, o.data.([]int64), active)
	case []float32:
		data = blendLanes(x, o.data.([]float32), active)
	case []float64:
		data = blendLanes(x, o.data.([]float64), active)
	}
	return Vector{species: v.species, data: data}, nil
}

func blendLanes[T Lanes](x, y []T, active []bool) []T {
	out := make([]T, len(x))
	for i := range x {
		if active[i] {
			out[i] = y[i]
		} else {
			out[i] = x[i]
		}
	}
	return out
}
