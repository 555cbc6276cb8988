package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Error is a lexical error. Lexical errors are fatal to the whole pipeline:
// scanning stops at the first unrecognized character or unterminated string
// literal, there is no recovery.
type Error struct {
	Message string
	Pos     Position
}

func (e *Error) Error() string {
	return e.Message + " at " + e.Pos.String()
}

// Lexer performs a single left-to-right scan over the source text with one
// character of lookahead, producing tokens one at a time.
//
// A Lexer instance owns its scan state and is not safe for concurrent use;
// create one per tokenization (or call Tokenize, which does).
type Lexer struct {
	// source is the complete source text. Holding it whole keeps lookahead
	// and lexeme extraction trivial; source units easily fit in memory.
	source string

	// start is the byte offset where the current lexeme begins.
	start int

	// current is the byte offset being examined.
	current int

	// line and column track the position being examined. Column counts
	// runes, is 1-based, and resets to 1 after every newline.
	line   int
	column int

	// startPos is the position of the current lexeme's first character,
	// captured before scanning it so multi-character lexemes report their
	// opening column.
	startPos Position
}

// New creates a Lexer for the given source text.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
	}
}

// Tokenize scans the entire source and returns the token stream, terminated
// by an EOF token. It fails with *Error on the first unrecognized character
// or unterminated string literal.
func Tokenize(source string) ([]Token, error) {
	l := New(source)
	tokens := make([]Token, 0, 64)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token from the source, or *Error on a lexical
// error. After the source is exhausted it returns the EOF sentinel (and will
// keep returning it if called again).
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()

	l.start = l.current
	l.startPos = Position{Line: l.line, Column: l.column}

	if l.isAtEnd() {
		return l.makeToken(TokenEOF), nil
	}

	ch := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}
	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen), nil
	case ')':
		return l.makeToken(TokenRightParen), nil
	case '{':
		return l.makeToken(TokenLeftBrace), nil
	case '}':
		return l.makeToken(TokenRightBrace), nil
	case ';':
		return l.makeToken(TokenSemicolon), nil
	case ',':
		return l.makeToken(TokenComma), nil
	case '.':
		return l.makeToken(TokenDot), nil
	case '+':
		return l.makeToken(TokenPlus), nil
	case '-':
		return l.makeToken(TokenMinus), nil
	case '*':
		return l.makeToken(TokenStar), nil
	case '/':
		// A second slash would have been consumed as a comment above, so a
		// lone slash here is always the division operator.
		return l.makeToken(TokenSlash), nil

	// One character of lookahead distinguishes the two-character operators.
	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual), nil
		}
		return l.makeToken(TokenAssign), nil
	case '!':
		if l.match('=') {
			return l.makeToken(TokenNotEqual), nil
		}
		return l.makeToken(TokenNot), nil
	case '<':
		if l.match('=') {
			return l.makeToken(TokenLessEqual), nil
		}
		return l.makeToken(TokenLess), nil
	case '>':
		if l.match('=') {
			return l.makeToken(TokenGreaterEqual), nil
		}
		return l.makeToken(TokenGreater), nil

	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd), nil
		}
		return Token{}, l.errorf("unexpected character '&'")
	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr), nil
		}
		return Token{}, l.errorf("unexpected character '|'")

	case '"':
		return l.scanString()

	default:
		return Token{}, l.errorf("unexpected character %q", ch)
	}
}

// skipWhitespaceAndComments discards whitespace and // line comments.
// Newlines advance the line counter and reset the column to 1; comments run
// to (but do not consume) the newline and are never tokenized.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// scanIdentifier scans an identifier and classifies it against the keyword
// set. Identifiers are [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) scanIdentifier() Token {
	for !l.isAtEnd() && (isLetter(l.peek()) || isDigit(l.peek())) {
		l.advance()
	}
	return l.makeToken(LookupKeyword(l.source[l.start:l.current]))
}

// scanNumber scans a numeric literal: digits with an optional single decimal
// point followed by at least one digit. There is no exponent notation and no
// leading sign; "1." lexes as the number 1 followed by a dot token.
func (l *Lexer) scanNumber() Token {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // the '.'
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	return l.makeToken(TokenNumber)
}

// scanString scans a string literal. Escape sequences are not supported. An
// embedded newline advances the line counter but does not terminate the
// string; reaching end of input before the closing quote is a fatal lexical
// error reported at the opening quote.
func (l *Lexer) scanString() (Token, error) {
	for !l.isAtEnd() {
		if l.peek() == '"' {
			l.advance()
			return l.makeToken(TokenString), nil
		}
		l.advance()
	}
	return Token{}, &Error{Message: "unterminated string literal", Pos: l.startPos}
}

// advance consumes and returns the rune at the current offset, maintaining
// line/column bookkeeping.
func (l *Lexer) advance() rune {
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// peek returns the rune at the current offset without consuming it, or 0 at
// end of input.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

// peekNext returns the rune after the current one, or 0 when fewer than two
// runes remain.
func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

// match consumes the current rune only if it equals expected.
func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// makeToken builds a token for the current lexeme. EOF carries empty text;
// every other token carries the exact source slice it was scanned from.
func (l *Lexer) makeToken(tt TokenType) Token {
	text := ""
	if tt != TokenEOF {
		text = l.source[l.start:l.current]
	}
	return Token{Type: tt, Text: text, Position: l.startPos}
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: l.startPos}
}

// isLetter reports whether ch can start or continue an identifier.
// Identifiers are ASCII-only: numeric literals and keywords are ASCII, and
// keeping names in the same alphabet avoids confusable identifiers.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// isDigit reports whether ch is a decimal digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
