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
	"errors"
	"fmt"

	"github.com/ajroetker/go-vector/vector"
)

// ErrUnbound is returned when a tree or a binding set does not provide a
// variable or mask that the program refers to.
var ErrUnbound = errors.New("expr: unbound name")

// Env declares the species of every variable and mask a tree may use.
type Env struct {
	Vars  map[string]vector.Species
	Masks map[string]vector.Species
}

// Bindings supplies the values of variables and masks for one evaluation.
type Bindings struct {
	Vars  map[string]vector.Vector
	Masks map[string]vector.Mask
}

type opcode uint8

const (
	opVar opcode = iota
	opConst
	opBinary
	opUnary
)

// instr is one step of a compiled program. Operands refer to the results
// of earlier steps; the last step produces the program result.
type instr struct {
	code   opcode
	elem   vector.ElementType
	name   string
	value  vector.Vector
	binary vector.BinaryOp
	unary  vector.UnaryOp
	a, b   int
	mask   int // index into Program.masks, -1 when unmasked
}

// Program is a type-checked expression tree ready for evaluation. A
// Program is immutable and safe for concurrent use.
type Program struct {
	root    Node
	instrs  []instr
	masks   []MaskRef
	vars    []string
	species vector.Species
	env     Env
}

// Compile type-checks root against env. Operands of every node must have
// the same species, every mask must have the node's lane
// count and every operator must be defined for the node's element type.
func Compile(root Node, env Env) (*Program, error) {
	if root == nil {
		return nil, fmt.Errorf("expr: compile: nil tree")
	}
	c := &compiler{
		p:         &Program{root: root, env: env},
		maskIndex: make(map[string]int),
		varSeen:   make(map[string]bool),
	}
	s, err := c.emit(root)
	if err != nil {
		return nil, err
	}
	c.p.species = s
	return c.p, nil
}

type compiler struct {
	p         *Program
	maskIndex map[string]int
	varSeen   map[string]bool
}

func (c *compiler) push(in instr) int {
	c.p.instrs = append(c.p.instrs, in)
	return len(c.p.instrs) - 1
}

func (c *compiler) emit(n Node) (vector.Species, error) {
	switch n := n.(type) {
	case varNode:
		s, ok := c.p.env.Vars[n.name]
		if !ok {
			return vector.Species{}, fmt.Errorf("%w: variable %q", ErrUnbound, n.name)
		}
		if !c.varSeen[n.name] {
			c.varSeen[n.name] = true
			c.p.vars = append(c.p.vars, n.name)
		}
		c.push(instr{code: opVar, elem: s.ElementType(), name: n.name, mask: -1})
		return s, nil

	case constNode:
		s := n.value.Species()
		if s.IsZero() {
			return vector.Species{}, mismatch("constant has no lanes")
		}
		c.push(instr{code: opConst, elem: s.ElementType(), value: n.value, mask: -1})
		return s, nil

	case binaryNode:
		ls, err := c.emit(n.left)
		if err != nil {
			return vector.Species{}, err
		}
		a := len(c.p.instrs) - 1
		rs, err := c.emit(n.right)
		if err != nil {
			return vector.Species{}, err
		}
		b := len(c.p.instrs) - 1
		if ls != rs {
			return vector.Species{}, mismatch("%s: operands %s and %s", n, ls, rs)
		}
		if !n.op.Supports(ls.ElementType()) {
			return vector.Species{}, unsupported("%s: %s is not defined for %s lanes", n, n.op, ls.ElementType())
		}
		m, err := c.maskSlot(n, n.mask, ls)
		if err != nil {
			return vector.Species{}, err
		}
		c.push(instr{code: opBinary, elem: ls.ElementType(), binary: n.op, a: a, b: b, mask: m})
		return ls, nil

	case unaryNode:
		s, err := c.emit(n.operand)
		if err != nil {
			return vector.Species{}, err
		}
		a := len(c.p.instrs) - 1
		if !n.op.Supports(s.ElementType()) {
			return vector.Species{}, unsupported("%s: %s is not defined for %s lanes", n, n.op, s.ElementType())
		}
		m, err := c.maskSlot(n, n.mask, s)
		if err != nil {
			return vector.Species{}, err
		}
		c.push(instr{code: opUnary, elem: s.ElementType(), unary: n.op, a: a, mask: m})
		return s, nil

	default:
		return vector.Species{}, fmt.Errorf("expr: compile: unknown node %T", n)
	}
}

// maskSlot resolves a node's mask to a slot, checking its lane count.
func (c *compiler) maskSlot(n Node, r MaskRef, s vector.Species) (int, error) {
	if r.IsZero() {
		return -1, nil
	}
	var ms vector.Species
	if r.name != "" {
		var ok bool
		if ms, ok = c.p.env.Masks[r.name]; !ok {
			return 0, fmt.Errorf("%w: mask %q", ErrUnbound, r.name)
		}
	} else {
		ms = r.mask.Species()
	}
	if ms.LaneCount() != s.LaneCount() {
		return 0, mismatch("%s: mask %s has %d lanes, operands have %d", n, r, ms.LaneCount(), s.LaneCount())
	}
	if r.name != "" {
		if i, ok := c.maskIndex[r.name]; ok {
			return i, nil
		}
		c.maskIndex[r.name] = len(c.p.masks)
	}
	c.p.masks = append(c.p.masks, r)
	return len(c.p.masks) - 1, nil
}

func mismatch(format string, args ...any) error {
	return &vector.Error{Op: "expr.Compile", Kind: vector.KindSpeciesMismatch, Detail: fmt.Sprintf(format, args...)}
}

func unsupported(format string, args ...any) error {
	return &vector.Error{Op: "expr.Compile", Kind: vector.KindUnsupportedOperator, Detail: fmt.Sprintf(format, args...)}
}

// Species returns the species of the program result.
func (p *Program) Species() vector.Species {
	return p.species
}

// Vars returns the variable names in order of first appearance.
func (p *Program) Vars() []string {
	return append([]string(nil), p.vars...)
}

// String renders the tree, e.g. "xor(and(a, b), and(a, c)[m])".
func (p *Program) String() string {
	return p.root.String()
}

// resolve checks b against the program's environment and returns the
// masks in slot order.
func (p *Program) resolve(op string, b Bindings) ([]vector.Mask, error) {
	for _, name := range p.vars {
		v, ok := b.Vars[name]
		if !ok {
			return nil, fmt.Errorf("%w: variable %q", ErrUnbound, name)
		}
		if want := p.env.Vars[name]; v.Species() != want {
			return nil, &vector.Error{Op: op, Kind: vector.KindSpeciesMismatch, Detail: fmt.Sprintf("variable %q is %s, compiled for %s", name, v.Species(), want)}
		}
	}
	masks := make([]vector.Mask, len(p.masks))
	for i, r := range p.masks {
		if r.name == "" {
			masks[i] = r.mask
			continue
		}
		m, ok := b.Masks[r.name]
		if !ok {
			return nil, fmt.Errorf("%w: mask %q", ErrUnbound, r.name)
		}
		if want := p.env.Masks[r.name]; m.LaneCount() != want.LaneCount() {
			return nil, &vector.Error{Op: op, Kind: vector.KindSpeciesMismatch, Detail: fmt.Sprintf("mask %q has %d lanes, compiled for %d", r.name, m.LaneCount(), want.LaneCount())}
		}
		masks[i] = m
	}
	return masks, nil
}

// Eval evaluates the program over whole vectors.
func (p *Program) Eval(b Bindings) (vector.Vector, error) {
	masks, err := p.resolve("expr.Eval", b)
	if err != nil {
		return vector.Vector{}, err
	}
	regs := make([]vector.Vector, len(p.instrs))
	for i, in := range p.instrs {
		var r vector.Vector
		switch in.code {
		case opVar:
			r = b.Vars[in.name]
		case opConst:
			r = in.value
		case opBinary:
			if in.mask < 0 {
				r, err = regs[in.a].Lanewise(in.binary, regs[in.b])
			} else {
				r, err = regs[in.a].LanewiseMasked(in.binary, regs[in.b], masks[in.mask])
			}
		case opUnary:
			if in.mask < 0 {
				r, err = regs[in.a].Unary(in.unary)
			} else {
				r, err = regs[in.a].UnaryMasked(in.unary, masks[in.mask])
			}
		}
		if err != nil {
			return vector.Vector{}, fmt.Errorf("expr: eval: %w", err)
		}
		regs[i] = r
	}
	return regs[len(regs)-1], nil
}

// EvalLane evaluates lane i of the program with scalar code on raw lane
// bits, applying the masking rule at every node. The result is the lane's
// bit pattern, zero-extended to 64 bits.
func (p *Program) EvalLane(b Bindings, i int) (uint64, error) {
	masks, err := p.resolve("expr.EvalLane", b)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= p.species.LaneCount() {
		return 0, &vector.Error{Op: "expr.EvalLane", Kind: vector.KindOutOfBounds, Detail: fmt.Sprintf("lane %d outside %d lanes", i, p.species.LaneCount())}
	}
	regs := make([]uint64, len(p.instrs))
	for k, in := range p.instrs {
		switch in.code {
		case opVar:
			regs[k] = b.Vars[in.name].LaneBits(i)
		case opConst:
			regs[k] = in.value.LaneBits(i)
		case opBinary:
			if in.mask >= 0 && !masks[in.mask].IsSet(i) {
				regs[k] = regs[in.a]
				continue
			}
			r, err := scalarBinary(in.elem, in.binary, regs[in.a], regs[in.b])
			if err != nil {
				return 0, fmt.Errorf("expr: lane %d: %w", i, err)
			}
			regs[k] = r
		case opUnary:
			if in.mask >= 0 && !masks[in.mask].IsSet(i) {
				regs[k] = regs[in.a]
				continue
			}
			regs[k] = scalarUnary(in.elem, in.unary, regs[in.a])
		}
	}
	return regs[len(regs)-1], nil
}
