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

// BinaryOp is a lane-wise operator taking two operands.
type BinaryOp uint8

const (
	Add BinaryOp = iota + 1
	Sub
	Mul
	// Div is integer division truncated toward zero, or IEEE division.
	// Integer division by zero in an active lane is an ErrArithmetic.
	Div
	Min
	Max
	And
	Or
	Xor
	// AndNot computes a & ^b.
	AndNot
	// ShiftLeft, ShiftRightArith and ShiftRightLogical mask the shift count
	// to the lane width, so shifting an int8 lane by 9 shifts by 1.
	ShiftLeft
	ShiftRightArith
	ShiftRightLogical
	RotateLeft
	RotateRight
	// CompressBits gathers the bits of a selected by b into the low bits.
	CompressBits
	// ExpandBits scatters the low bits of a to the positions set in b.
	ExpandBits
)

var binaryOpNames = map[BinaryOp]string{
	Add:               "ADD",
	Sub:               "SUB",
	Mul:               "MUL",
	Div:               "DIV",
	Min:               "MIN",
	Max:               "MAX",
	And:               "AND",
	Or:                "OR",
	Xor:               "XOR",
	AndNot:            "AND_NOT",
	ShiftLeft:         "LSHL",
	ShiftRightArith:   "ASHR",
	ShiftRightLogical: "LSHR",
	RotateLeft:        "ROL",
	RotateRight:       "ROR",
	CompressBits:      "COMPRESS_BITS",
	ExpandBits:        "EXPAND_BITS",
}

// String returns the operator name, e.g. "AND_NOT".
func (op BinaryOp) String() string {
	if name, ok := binaryOpNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsBitwise reports whether op only combines bits position by position.
func (op BinaryOp) IsBitwise() bool {
	switch op {
	case And, Or, Xor, AndNot:
		return true
	default:
		return false
	}
}

// Supports reports whether op is defined for lanes of type e.
func (op BinaryOp) Supports(e ElementType) bool {
	if !e.Valid() {
		return false
	}
	switch op {
	case Add, Sub, Mul, Div, Min, Max:
		return true
	case And, Or, Xor, AndNot, ShiftLeft, ShiftRightArith, ShiftRightLogical, RotateLeft, RotateRight:
		return !e.IsFloat()
	case CompressBits, ExpandBits:
		return e == Int32 || e == Int64
	default:
		return false
	}
}

// UnaryOp is a lane-wise operator taking one operand.
type UnaryOp uint8

const (
	Neg UnaryOp = iota + 1
	Abs
	Not
	// BitCount is the population count of the lane's raw bits.
	BitCount
	LeadingZerosCount
	TrailingZerosCount
	// Reverse reverses the order of the bits in each lane.
	Reverse
	ReverseBytes
	Sqrt
)

var unaryOpNames = map[UnaryOp]string{
	Neg:                "NEG",
	Abs:                "ABS",
	Not:                "NOT",
	BitCount:           "BIT_COUNT",
	LeadingZerosCount:  "LEADING_ZEROS_COUNT",
	TrailingZerosCount: "TRAILING_ZEROS_COUNT",
	Reverse:            "REVERSE",
	ReverseBytes:       "REVERSE_BYTES",
	Sqrt:               "SQRT",
}

// String returns the operator name, e.g. "BIT_COUNT".
func (op UnaryOp) String() string {
	if name, ok := unaryOpNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// Supports reports whether op is defined for lanes of type e.
func (op UnaryOp) Supports(e ElementType) bool {
	if !e.Valid() {
		return false
	}
	switch op {
	case Neg, Abs:
		return true
	case Not, BitCount, LeadingZerosCount, TrailingZerosCount, Reverse, ReverseBytes:
		return !e.IsFloat()
	case Sqrt:
		return e.IsFloat()
	default:
		return false
	}
}

// CompareOp is a lane-wise comparison producing a Mask.
type CompareOp uint8

const (
	Eq CompareOp = iota + 1
	Ne
	Lt
	Le
	Gt
	Ge
)

var compareOpNames = map[CompareOp]string{
	Eq: "EQ",
	Ne: "NE",
	Lt: "LT",
	Le: "LE",
	Gt: "GT",
	Ge: "GE",
}

// String returns the comparison name, e.g. "LT".
func (op CompareOp) String() string {
	if name, ok := compareOpNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
