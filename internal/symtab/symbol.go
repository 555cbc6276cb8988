// Package symtab provides the symbol table used during semantic analysis: a
// stack of lexical scopes, each mapping names to the entries declared there.
package symtab

import "github.com/hassan/tinylang/internal/lexer"

// SymbolKind classifies what a name was declared as.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
)

// String returns a human-readable kind name, used in diagnostics.
func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Symbol is one declared name. The analyzer flips Initialized and Used as it
// walks the program; both start false for a plain 'var x;' declaration.
type Symbol struct {
	Name string
	Kind SymbolKind
	Pos  lexer.Position

	// Initialized reports whether the name has been given a value: at
	// declaration (with an initializer) or by a later assignment.
	// Functions and parameters are initialized from birth.
	Initialized bool

	// Used reports whether the name's value has been read. Assigning to a
	// name does not count as a use.
	Used bool
}
