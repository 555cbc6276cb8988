package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Number(t *testing.T) {
	tokens, err := Tokenize("3.14")
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, TokenNumber, tokens[0].Type)
	assert.Equal(t, "3.14", tokens[0].Text)
	assert.Equal(t, Position{Line: 1, Column: 1}, tokens[0].Position)

	assert.Equal(t, TokenEOF, tokens[1].Type)
	assert.Equal(t, "", tokens[1].Text)
}

func TestLexer_NumberNeedsDigitAfterDot(t *testing.T) {
	// "1." is the number 1 followed by a dot token, not a malformed number.
	tokens, err := Tokenize("1.")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenNumber, tokens[0].Type)
	assert.Equal(t, "1", tokens[0].Text)
	assert.Equal(t, TokenDot, tokens[1].Type)
}

func TestLexer_Keywords(t *testing.T) {
	tokens, err := Tokenize("while")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenWhile, tokens[0].Type)

	source := "if else while for return int float void string bool true false null function var"
	tokens, err = Tokenize(source)
	require.NoError(t, err)

	want := []TokenType{
		TokenIf, TokenElse, TokenWhile, TokenFor, TokenReturn,
		TokenInt, TokenFloat, TokenVoid, TokenStringKw, TokenBool,
		TokenTrue, TokenFalse, TokenNull, TokenFunction, TokenVar,
		TokenEOF,
	}
	require.Len(t, tokens, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type, "token %d", i)
		assert.True(t, tt == TokenEOF || tt.IsKeyword())
	}
}

func TestLexer_Identifiers(t *testing.T) {
	tokens, err := Tokenize("foo _bar baz42 whileLoop")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	want := []string{"foo", "_bar", "baz42", "whileLoop"}
	for i, name := range want {
		assert.Equal(t, TokenIdentifier, tokens[i].Type)
		assert.Equal(t, name, tokens[i].Text)
	}
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		source string
		want   TokenType
	}{
		{"+", TokenPlus},
		{"-", TokenMinus},
		{"*", TokenStar},
		{"/", TokenSlash},
		{"=", TokenAssign},
		{"==", TokenEqual},
		{"!=", TokenNotEqual},
		{"<", TokenLess},
		{"<=", TokenLessEqual},
		{">", TokenGreater},
		{">=", TokenGreaterEqual},
		{"&&", TokenAnd},
		{"||", TokenOr},
		{"!", TokenNot},
		{".", TokenDot},
		{"(", TokenLeftParen},
		{")", TokenRightParen},
		{"{", TokenLeftBrace},
		{"}", TokenRightBrace},
		{";", TokenSemicolon},
		{",", TokenComma},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, err := Tokenize(tt.source)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, tt.source, tokens[0].Text)
		})
	}
}

func TestLexer_LoneAmpersandAndPipe(t *testing.T) {
	for _, source := range []string{"a & b", "a | b"} {
		t.Run(source, func(t *testing.T) {
			_, err := Tokenize(source)
			require.Error(t, err)

			lexErr, ok := err.(*Error)
			require.True(t, ok)
			assert.Equal(t, Position{Line: 1, Column: 3}, lexErr.Pos)
		})
	}
}

func TestLexer_Comments(t *testing.T) {
	source := "var x; // trailing comment\n// full-line comment\nvar y;"
	tokens, err := Tokenize(source)
	require.NoError(t, err)

	want := []TokenType{TokenVar, TokenIdentifier, TokenSemicolon, TokenVar, TokenIdentifier, TokenSemicolon, TokenEOF}
	require.Len(t, tokens, len(want))
	for i, tt := range want {
		assert.Equal(t, tt, tokens[i].Type, "token %d", i)
	}
	assert.Equal(t, 3, tokens[3].Position.Line)
}

func TestLexer_Strings(t *testing.T) {
	tokens, err := Tokenize(`"hello"`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Type)
	assert.Equal(t, `"hello"`, tokens[0].Text)
}

func TestLexer_StringWithEmbeddedNewline(t *testing.T) {
	// A newline inside a string advances the line counter without ending
	// the string.
	tokens, err := Tokenize("\"a\nb\" x")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenString, tokens[0].Type)
	assert.Equal(t, "\"a\nb\"", tokens[0].Text)

	assert.Equal(t, TokenIdentifier, tokens[1].Type)
	assert.Equal(t, Position{Line: 2, Column: 4}, tokens[1].Position)
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := Tokenize("var s = \"oops;")
	require.Error(t, err)

	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "unterminated string literal", lexErr.Message)
	// Reported at the opening quote.
	assert.Equal(t, Position{Line: 1, Column: 9}, lexErr.Pos)
}

func TestLexer_PositionTracking(t *testing.T) {
	source := "var x;\n  x = 1;"
	tokens, err := Tokenize(source)
	require.NoError(t, err)

	want := []Position{
		{Line: 1, Column: 1}, // var
		{Line: 1, Column: 5}, // x
		{Line: 1, Column: 6}, // ;
		{Line: 2, Column: 3}, // x
		{Line: 2, Column: 5}, // =
		{Line: 2, Column: 7}, // 1
		{Line: 2, Column: 8}, // ;
	}
	require.Len(t, tokens, len(want)+1)
	for i, pos := range want {
		assert.Equal(t, pos, tokens[i].Position, "token %d (%s)", i, tokens[i].Text)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("var x = 1 # 2;")
	require.Error(t, err)

	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Position{Line: 1, Column: 11}, lexErr.Pos)
}
