package parser

import (
	"github.com/hassan/tinylang/internal/lexer"
)

// Precedence represents operator binding strength. Higher values bind
// tighter; the climbing loop in parsePrecedence keeps consuming infix
// operators while their precedence is at least the requested minimum.
//
// Levels, from loosest to tightest binding:
//
//	assignment < || < && < equality < relational < additive
//	           < multiplicative < unary < call/member < primary
//
// These match C conventions, which is what the language's users expect.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // ==, !=
	PrecComparison            // <, <=, >, >=
	PrecTerm                  // +, -
	PrecFactor                // *, /
	PrecUnary                 // !, -
	PrecCall                  // . ()
	PrecPrimary               // literals, identifiers, grouping
)

// getPrecedence returns the infix precedence for a token type, or PrecNone
// for tokens that never appear in infix position. A switch (not a map) keeps
// the whole table visible in one place and lets the compiler check the token
// names.
func getPrecedence(tt lexer.TokenType) Precedence {
	switch tt {
	case lexer.TokenAssign:
		return PrecAssignment
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenLessEqual,
		lexer.TokenGreater, lexer.TokenGreaterEqual:
		return PrecComparison
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash:
		return PrecFactor
	case lexer.TokenDot, lexer.TokenLeftParen:
		return PrecCall
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether an operator groups to the right.
// Assignment is the only right-associative operator: x = y = 0 means
// x = (y = 0).
func isRightAssociative(tt lexer.TokenType) bool {
	return tt == lexer.TokenAssign
}
