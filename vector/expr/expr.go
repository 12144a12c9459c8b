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

// Package expr builds and evaluates trees of masked lane-wise operations.
//
// Any node of a tree may carry its own mask. A masked-off lane of a node
// yields that node's left operand unchanged, so an inner node that is
// masked off still feeds its left operand to its parent:
//
//	a, b, c := expr.Var("a"), expr.Var("b"), expr.Var("c")
//	m := expr.MaskVar("m")
//
//	// (a & b) ^ (m ? a & c : a)
//	tree := expr.Binary(vector.Xor,
//		expr.Binary(vector.And, a, b),
//		expr.BinaryMasked(vector.And, a, c, m))
//
//	prog, err := expr.Compile(tree, env)
//	out, err := prog.Eval(bindings)
//
// Compile checks every node against the species in an Env before any lane
// is touched. Program.EvalLane recomputes a single lane with scalar code
// and is the reference Eval is tested against. Program.Fuse collapses
// bitwise trees over at most three variables into a truth table.
package expr

import (
	"fmt"
	"strings"

	"github.com/ajroetker/go-vector/vector"
)

// Node is an expression tree node. Nodes are immutable and may be shared
// between trees.
type Node interface {
	fmt.Stringer
	isNode()
}

// MaskRef names the mask of a node: either a mask variable bound at
// evaluation time or a constant mask. The zero MaskRef means unmasked.
type MaskRef struct {
	name  string
	mask  vector.Mask
	isSet bool
}

// MaskVar refers to the mask bound to name at evaluation.
func MaskVar(name string) MaskRef {
	return MaskRef{name: name, isSet: true}
}

// MaskConst refers to a fixed mask.
func MaskConst(m vector.Mask) MaskRef {
	return MaskRef{mask: m, isSet: true}
}

// IsZero reports whether r means "no mask".
func (r MaskRef) IsZero() bool {
	return !r.isSet
}

// Name returns the variable name, or "" for a constant mask.
func (r MaskRef) Name() string {
	return r.name
}

func (r MaskRef) String() string {
	switch {
	case !r.isSet:
		return ""
	case r.name != "":
		return r.name
	default:
		return r.mask.String()
	}
}

type varNode struct {
	name string
}

type constNode struct {
	value vector.Vector
}

type binaryNode struct {
	op          vector.BinaryOp
	left, right Node
	mask        MaskRef
}

type unaryNode struct {
	op      vector.UnaryOp
	operand Node
	mask    MaskRef
}

func (varNode) isNode()    {}
func (constNode) isNode()  {}
func (binaryNode) isNode() {}
func (unaryNode) isNode()  {}

// Var is a vector variable bound by name at evaluation.
func Var(name string) Node {
	return varNode{name: name}
}

// Const is a fixed vector.
func Const(v vector.Vector) Node {
	return constNode{value: v}
}

// Binary applies op to every lane of left and right.
func Binary(op vector.BinaryOp, left, right Node) Node {
	return binaryNode{op: op, left: left, right: right}
}

// BinaryMasked applies op where mask is set and yields left elsewhere.
func BinaryMasked(op vector.BinaryOp, left, right Node, mask MaskRef) Node {
	return binaryNode{op: op, left: left, right: right, mask: mask}
}

// Unary applies op to every lane of operand.
func Unary(op vector.UnaryOp, operand Node) Node {
	return unaryNode{op: op, operand: operand}
}

// UnaryMasked applies op where mask is set and yields operand elsewhere.
func UnaryMasked(op vector.UnaryOp, operand Node, mask MaskRef) Node {
	return unaryNode{op: op, operand: operand, mask: mask}
}

func (n varNode) String() string {
	return n.name
}

func (n constNode) String() string {
	return n.value.String()
}

func (n binaryNode) String() string {
	return fmt.Sprintf("%s(%s, %s)%s", strings.ToLower(n.op.String()), n.left, n.right, maskSuffix(n.mask))
}

func (n unaryNode) String() string {
	return fmt.Sprintf("%s(%s)%s", strings.ToLower(n.op.String()), n.operand, maskSuffix(n.mask))
}

func maskSuffix(r MaskRef) string {
	if r.IsZero() {
		return ""
	}
	return "[" + r.String() + "]"
}
