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
	"fmt"
	"strings"
)

// Kind categorizes an Error.
type Kind string

const (
	KindInvalidSpecies      Kind = "invalid_species"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindSpeciesMismatch     Kind = "species_mismatch"
	KindShapeMismatch       Kind = "shape_mismatch"
	KindUnsupportedOperator Kind = "unsupported_operator"
	KindArithmetic          Kind = "arithmetic"
)

// Error is the error type returned by every operation in this package.
//
// Errors are deterministic: the same inputs always produce the same Error,
// and an operation that returns an Error has not written to any buffer.
type Error struct {
	// Op is the operation that failed, e.g. "Load" or "ConvertShape".
	Op     string
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("vector: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(strings.ReplaceAll(string(e.Kind), "_", " "))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is reports whether target is an Error of the same Kind, so that
// errors.Is(err, ErrOutOfBounds) matches any out-of-bounds failure.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidSpecies      = &Error{Kind: KindInvalidSpecies}
	ErrOutOfBounds         = &Error{Kind: KindOutOfBounds}
	ErrSpeciesMismatch     = &Error{Kind: KindSpeciesMismatch}
	ErrShapeMismatch       = &Error{Kind: KindShapeMismatch}
	ErrUnsupportedOperator = &Error{Kind: KindUnsupportedOperator}
	ErrArithmetic          = &Error{Kind: KindArithmetic}
)

func newError(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func outOfBounds(op string, offset, lanes, length int) *Error {
	return newError(op, KindOutOfBounds, "offset %d + %d lanes exceeds length %d", offset, lanes, length)
}

func speciesMismatch(op string, a, b Species) *Error {
	return newError(op, KindSpeciesMismatch, "%s (%d lanes) vs %s (%d lanes)", a, a.LaneCount(), b, b.LaneCount())
}

func unsupported(op string, operator fmt.Stringer, e ElementType) *Error {
	return newError(op, KindUnsupportedOperator, "%s is not defined for %s lanes", operator, e)
}
