// Package lexer provides lexical analysis (tokenization) for the compiler.
// It transforms raw source text into an ordered token stream consumed by the
// parser, tracking line and column for every token.
package lexer

import "strconv"

// Position represents a location in the source text.
//
// Position is a value type: it is small, immutable once created, and cheap
// to copy. Line and Column are both 1-based, which matches how text editors
// display locations; a zero Position reports as invalid.
//
// The compiler works on a single anonymous source unit, so there is no
// filename component.
type Position struct {
	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column of the first character of the lexeme.
	Column int
}

// String returns a human-readable representation of the position.
// Format: "line L, column C". This is the exact shape front-ends append to
// diagnostics, so it lives here rather than being rebuilt per caller.
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// IsValid reports whether the position carries real location information.
// Line is the minimum needed for error reporting, so a positive line is the
// validity test; Position{} correctly reports as invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}
