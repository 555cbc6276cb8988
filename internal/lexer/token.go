package lexer

// TokenType identifies the lexical category of a token.
//
// We use an int-based enum (via iota) rather than strings: comparisons are
// cheap, the compiler catches typos, and the String() method below gives the
// uppercase names front-ends display.
type TokenType int

// Token type enumeration, grouped by category: the end-of-input sentinel,
// literals, identifiers, keywords, operators, and delimiters. The keyword
// range is contiguous so IsKeyword can be a simple bounds check.
const (
	// TokenEOF marks the end of the input. Every token stream ends with
	// exactly one EOF token carrying empty text; the parser relies on it
	// instead of special-casing the end of the stream.
	TokenEOF TokenType = iota

	// Literals

	// TokenNumber is a numeric literal: digits with an optional single
	// decimal point followed by at least one digit. No exponent and no
	// leading sign (unary minus is a separate operator).
	TokenNumber

	// TokenString is a string literal including its surrounding quotes.
	// Escape sequences are not supported.
	TokenString

	// TokenIdentifier is a name: [A-Za-z_][A-Za-z0-9_]*, excluding keywords.
	TokenIdentifier

	// Keywords. Each keyword is its own token type so the parser can switch
	// on the type without string comparisons.

	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenReturn
	TokenInt
	TokenFloat
	TokenVoid
	TokenStringKw
	TokenBool
	TokenTrue
	TokenFalse
	TokenNull
	TokenFunction
	TokenVar

	// Operators

	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenAssign       // =
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenAnd          // &&
	TokenOr           // ||
	TokenNot          // !
	TokenDot          // .

	// Delimiters

	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenSemicolon  // ;
	TokenComma      // ,
)

// Token represents a single lexical unit.
//
// Token is a value type: tokens are small, never mutated after creation, and
// copying avoids GC pressure in the hot tokenize loop.
type Token struct {
	// Type is the token's lexical category.
	Type TokenType

	// Text is the exact source text of the lexeme. Empty for EOF.
	Text string

	// Position is where the lexeme starts (its first character).
	Position Position
}

// String returns a human-readable representation of the token.
// Format: "TYPE(text) at line L, column C".
func (t Token) String() string {
	return t.Type.String() + "(" + t.Text + ") at " + t.Position.String()
}

// String returns the display name of a token type. Keywords render as their
// uppercased spelling, which is how phase output lists tokens.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenIf:
		return "IF"
	case TokenElse:
		return "ELSE"
	case TokenWhile:
		return "WHILE"
	case TokenFor:
		return "FOR"
	case TokenReturn:
		return "RETURN"
	case TokenInt:
		return "INT"
	case TokenFloat:
		return "FLOAT"
	case TokenVoid:
		return "VOID"
	case TokenStringKw:
		return "STRING_KW"
	case TokenBool:
		return "BOOL"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNull:
		return "NULL"
	case TokenFunction:
		return "FUNCTION"
	case TokenVar:
		return "VAR"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenAssign:
		return "ASSIGN"
	case TokenEqual:
		return "EQUAL"
	case TokenNotEqual:
		return "NOT_EQUAL"
	case TokenLess:
		return "LESS"
	case TokenLessEqual:
		return "LESS_EQUAL"
	case TokenGreater:
		return "GREATER"
	case TokenGreaterEqual:
		return "GREATER_EQUAL"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenDot:
		return "DOT"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	case TokenLeftBrace:
		return "LBRACE"
	case TokenRightBrace:
		return "RBRACE"
	case TokenSemicolon:
		return "SEMICOLON"
	case TokenComma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

// keywords maps keyword spellings to their token types. Recognition is by
// exact match after an identifier-shaped lexeme has been scanned; anything
// not in this map stays an identifier.
var keywords = map[string]TokenType{
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"for":      TokenFor,
	"return":   TokenReturn,
	"int":      TokenInt,
	"float":    TokenFloat,
	"void":     TokenVoid,
	"string":   TokenStringKw,
	"bool":     TokenBool,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"null":     TokenNull,
	"function": TokenFunction,
	"var":      TokenVar,
}

// LookupKeyword returns the keyword token type for an identifier-shaped
// lexeme, or TokenIdentifier when the lexeme is not a keyword.
func LookupKeyword(text string) TokenType {
	if tt, ok := keywords[text]; ok {
		return tt
	}
	return TokenIdentifier
}

// IsKeyword reports whether the token type is a keyword.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenIf && tt <= TokenVar
}

// IsLiteral reports whether the token type is a literal value.
// true/false/null count: they parse straight to literal AST nodes.
func (tt TokenType) IsLiteral() bool {
	return tt == TokenNumber || tt == TokenString ||
		tt == TokenTrue || tt == TokenFalse || tt == TokenNull
}
