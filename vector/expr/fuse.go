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

package expr

import (
	"fmt"
	"strings"

	"github.com/ajroetker/go-vector/vector"
)

// Fused is a bitwise program collapsed into a single truth table over the
// mask bit and up to three operand bits.
//
// Bit k of the table is the result for the inputs m = k>>3&1, a = k>>2&1,
// b = k>>1&1 and c = k&1, where a, b and c are the program variables in
// order of first appearance. Without a mask both halves of the table are
// equal.
type Fused struct {
	prog  *Program
	table uint16
}

// fusedOp reports whether in can take part in a truth table.
func fusedOp(in instr) bool {
	switch in.code {
	case opVar:
		return true
	case opBinary:
		return in.binary.IsBitwise()
	case opUnary:
		return in.unary == vector.Not
	default:
		return false
	}
}

// Fuse collapses p into a truth table. It returns false if p uses an
// operator other than AND, OR, XOR, AND_NOT and NOT, uses constants, has
// float lanes, refers to more than three variables or to more than one
// mask.
func (p *Program) Fuse() (*Fused, bool) {
	if p.species.ElementType().IsFloat() || len(p.vars) > 3 || len(p.masks) > 1 {
		return nil, false
	}
	for _, in := range p.instrs {
		if !fusedOp(in) {
			return nil, false
		}
	}
	pos := make(map[string]int, len(p.vars))
	for i, name := range p.vars {
		pos[name] = i
	}
	var table uint16
	regs := make([]uint8, len(p.instrs))
	for k := range 16 {
		maskBit := k >> 3 & 1
		for i, in := range p.instrs {
			switch in.code {
			case opVar:
				regs[i] = uint8(k >> (2 - pos[in.name]) & 1)
			case opBinary:
				if in.mask >= 0 && maskBit == 0 {
					regs[i] = regs[in.a]
					continue
				}
				x, y := regs[in.a], regs[in.b]
				switch in.binary {
				case vector.And:
					regs[i] = x & y
				case vector.Or:
					regs[i] = x | y
				case vector.Xor:
					regs[i] = x ^ y
				case vector.AndNot:
					regs[i] = x &^ y & 1
				}
			case opUnary:
				if in.mask >= 0 && maskBit == 0 {
					regs[i] = regs[in.a]
					continue
				}
				regs[i] = regs[in.a] ^ 1
			}
		}
		table |= uint16(regs[len(regs)-1]) << k
	}
	return &Fused{prog: p, table: table}, true
}

// Table returns the 16-entry truth table.
func (f *Fused) Table() uint16 {
	return f.table
}

// Ternary returns the 8-bit ternary logic immediate for lanes where the
// mask is set, indexed by a<<2 | b<<1 | c.
func (f *Fused) Ternary() uint8 {
	return uint8(f.table >> 8)
}

// Vars returns the variables bound to a, b and c, in that order.
func (f *Fused) Vars() []string {
	return f.prog.Vars()
}

func (f *Fused) String() string {
	return fmt.Sprintf("fused[%#04x](%s)%s", f.table, strings.Join(f.prog.vars, ", "), f.maskSuffix())
}

func (f *Fused) maskSuffix() string {
	if len(f.prog.masks) == 0 {
		return ""
	}
	return maskSuffix(f.prog.masks[0])
}

// Eval evaluates the truth table lane by lane, 64 bit positions at a time.
func (f *Fused) Eval(b Bindings) (vector.Vector, error) {
	masks, err := f.prog.resolve("expr.Fused.Eval", b)
	if err != nil {
		return vector.Vector{}, err
	}
	s := f.prog.species
	out := make([]uint64, s.LaneCount())
	var in [3]uint64
	for lane := range out {
		in = [3]uint64{}
		for k, name := range f.prog.vars {
			in[k] = b.Vars[name].LaneBits(lane)
		}
		half := 8
		if len(masks) > 0 && !masks[0].IsSet(lane) {
			half = 0
		}
		var r uint64
		for k := range 8 {
			if f.table>>(half+k)&1 == 0 {
				continue
			}
			r |= pick(in[0], k&4 != 0) & pick(in[1], k&2 != 0) & pick(in[2], k&1 != 0)
		}
		out[lane] = r
	}
	return vector.FromLaneBits(s, out)
}

func pick(x uint64, set bool) uint64 {
	if set {
		return x
	}
	return ^x
}
