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

package selfcheck

import (
	"context"

	"github.com/ajroetker/go-vector/vector"
	"github.com/ajroetker/go-vector/vector/expr"
)

// macroSize is the number of elements each input buffer holds.
const macroSize = 512

type placement struct {
	name    string
	tree    expr.Node
	formula func(a, b, c int32, m bool) int32
}

func choose(m bool, x, y int32) int32 {
	if m {
		return x
	}
	return y
}

// placements are the eight ways of masking (a & b) ^ (a & c). A masked
// node yields its left operand where the mask is unset.
func placements() []placement {
	a, b, c := expr.Var("a"), expr.Var("b"), expr.Var("c")
	m := expr.MaskVar("m")
	and := func(x, y expr.Node) expr.Node { return expr.Binary(vector.And, x, y) }
	andM := func(x, y expr.Node) expr.Node { return expr.BinaryMasked(vector.And, x, y, m) }
	xor := func(x, y expr.Node) expr.Node { return expr.Binary(vector.Xor, x, y) }
	xorM := func(x, y expr.Node) expr.Node { return expr.BinaryMasked(vector.Xor, x, y, m) }
	return []placement{
		{"case1", xor(and(a, b), and(a, c)),
			func(a, b, c int32, _ bool) int32 { return (a & b) ^ (a & c) }},
		{"case2", xor(and(a, b), andM(a, c)),
			func(a, b, c int32, m bool) int32 { return (a & b) ^ choose(m, a&c, a) }},
		{"case3", xor(andM(a, b), and(a, c)),
			func(a, b, c int32, m bool) int32 { return choose(m, a&b, a) ^ (a & c) }},
		{"case4", xor(andM(b, a), andM(c, a)),
			func(a, b, c int32, m bool) int32 { return choose(m, b&a, b) ^ choose(m, c&a, c) }},
		{"case5", xorM(and(a, b), and(a, c)),
			func(a, b, c int32, m bool) int32 { return choose(m, (a&b)^(a&c), a&b) }},
		{"case6", xorM(and(a, b), andM(a, c)),
			func(a, b, c int32, m bool) int32 { return choose(m, (a&b)^choose(m, a&c, a), a&b) }},
		{"case7", xorM(andM(a, b), and(a, c)),
			func(a, b, c int32, m bool) int32 { return choose(m, choose(m, a&b, a)^(a&c), a) }},
		{"case8", xorM(andM(b, a), andM(c, a)),
			func(a, b, c int32, m bool) int32 { return choose(m, choose(m, b&a, b)^choose(m, c&a, c), b) }},
	}
}

// MacroLogic evaluates the eight masking placements of
// (a & b) ^ (a & c) over random int32 buffers with every int32 species,
// and checks Eval, EvalLane and the fused truth table against the scalar
// formula for every lane.
func MacroLogic(ctx context.Context, opts Options) (Report, error) {
	rec := newRecorder("macrologic", opts.logger())
	var species []vector.Species
	for _, s := range vector.AllSpecies() {
		if s.ElementType() == vector.Int32 {
			species = append(species, s)
		}
	}
	cases := placements()
	parallel(ctx, opts.Workers, len(species)*len(cases), func(i int) {
		s, p := species[i/len(cases)], cases[i%len(cases)]
		checkPlacement(rec, opts, uint64(i), s, p)
	})
	return rec.done(ctx)
}

func checkPlacement(rec *recorder, opts Options, stream uint64, s vector.Species, p placement) {
	env := expr.Env{
		Vars:  map[string]vector.Species{"a": s, "b": s, "c": s},
		Masks: map[string]vector.Species{"m": s},
	}
	prog, err := expr.Compile(p.tree, env)
	if err != nil {
		rec.fail("%s %s: compile: %v", p.name, s, err)
		return
	}
	fused, ok := prog.Fuse()
	if !ok {
		rec.fail("%s %s: %s did not fuse", p.name, s, prog)
		return
	}

	r := opts.rand(stream)
	var data [3][macroSize]int32
	var mask [macroSize]bool
	for k := range data {
		for i := range macroSize {
			data[k][i] = int32(r.Uint32())
		}
	}
	for i := range mask {
		mask[i] = r.IntN(2) == 1
	}

	lanes := s.LaneCount()
	for off := 0; off+lanes <= macroSize; off += lanes {
		bind := expr.Bindings{Vars: map[string]vector.Vector{}, Masks: map[string]vector.Mask{}}
		for k, name := range []string{"a", "b", "c"} {
			v, err := vector.Load(s, data[k][:], off)
			if err != nil {
				rec.fail("%s %s: load: %v", p.name, s, err)
				return
			}
			bind.Vars[name] = v
		}
		m, err := vector.MaskFromArray(s, mask[:], off)
		if err != nil {
			rec.fail("%s %s: mask: %v", p.name, s, err)
			return
		}
		bind.Masks["m"] = m

		got, err := prog.Eval(bind)
		if err != nil {
			rec.fail("%s %s: eval: %v", p.name, s, err)
			return
		}
		fusedGot, err := fused.Eval(bind)
		if err != nil {
			rec.fail("%s %s: fused eval: %v", p.name, s, err)
			return
		}
		for i := range lanes {
			j := off + i
			want := uint64(uint32(p.formula(data[0][j], data[1][j], data[2][j], mask[j])))
			lane, err := prog.EvalLane(bind, i)
			switch {
			case err != nil:
				rec.fail("%s %s lane %d: EvalLane: %v", p.name, s, j, err)
			case got.LaneBits(i) != want:
				rec.fail("%s %s lane %d: Eval %#x, want %#x", p.name, s, j, got.LaneBits(i), want)
			case lane != want:
				rec.fail("%s %s lane %d: EvalLane %#x, want %#x", p.name, s, j, lane, want)
			case fusedGot.LaneBits(i) != want:
				rec.fail("%s %s lane %d: fused %#x, want %#x", p.name, s, j, fusedGot.LaneBits(i), want)
			default:
				rec.pass(1)
			}
		}
	}
}
