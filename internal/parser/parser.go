// Package parser implements syntax analysis for the compiler.
//
// PARSING STRATEGY:
// Statements and declarations are parsed by recursive descent, a direct
// mapping from the grammar to one function per rule. Expressions are parsed
// by precedence climbing: each operator has a binding strength, and the
// climbing loop keeps extending the expression while the next operator binds
// at least as tightly as the current minimum.
//
// ERROR HANDLING STRATEGY:
// A syntax error panics with a *SyntaxError. The top-level declaration loop
// recovers from the panic, discards tokens up to a statement boundary
// (panic-mode recovery), and keeps parsing the remaining top-level
// declarations. Only the first error is surfaced to the caller; the
// recovery exists so one early error does not cascade into a pile of
// spurious follow-on errors.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hassan/tinylang/internal/lexer"
	"github.com/hassan/tinylang/internal/parser/ast"
)

// maxParameters bounds a function's parameter list.
const maxParameters = 255

// SyntaxError is a syntax-analysis failure, carrying the offending token so
// callers can report an exact source position.
type SyntaxError struct {
	Message string
	Token   lexer.Token
}

func (e *SyntaxError) Error() string {
	return e.Message + " at " + e.Token.Position.String()
}

// Parser converts a token stream into an AST. A Parser owns its cursor state
// and is used for exactly one Parse.
type Parser struct {
	tokens  []lexer.Token
	current int

	// firstErr remembers the first syntax error raised during parsing.
	// Recovery lets the top-level loop keep consuming declarations, but the
	// public contract surfaces only this error.
	firstErr *SyntaxError
}

// Parse parses a token stream into a Program. On any syntax error it returns
// a nil Program and the first *SyntaxError encountered, even when internal
// recovery allowed later declarations to parse.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := &Parser{tokens: tokens}

	program := &ast.Program{Statements: make([]ast.Stmt, 0)}
	for !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	if p.firstErr != nil {
		return nil, p.firstErr
	}
	return program, nil
}

// parseDeclaration parses one top-level declaration or statement, recovering
// from syntax errors at this level. On an error it synchronizes to the next
// statement boundary and returns nil so the caller's loop can continue.
func (p *Parser) parseDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			if p.firstErr == nil {
				p.firstErr = err
			}
			p.synchronize()
			stmt = nil
		}
	}()

	return p.parseStatement()
}

// parseStatement parses a statement.
//
// GRAMMAR:
//
//	stmt = varDecl | funcDecl | blockStmt | ifStmt | whileStmt
//	     | forStmt | returnStmt | exprStmt
//
// Declarations are statements here (they may appear anywhere a statement
// may), but never expressions.
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.match(lexer.TokenVar):
		return p.parseVarDecl()
	case p.match(lexer.TokenFunction):
		return p.parseFuncDecl()
	case p.check(lexer.TokenLeftBrace):
		return p.parseBlockStmt()
	case p.match(lexer.TokenIf):
		return p.parseIfStmt()
	case p.match(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.match(lexer.TokenFor):
		return p.parseForStmt()
	case p.match(lexer.TokenReturn):
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseVarDecl parses: var NAME (= expr)? ;
// The 'var' keyword has already been consumed.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	keyword := p.previous()

	name := p.consume(lexer.TokenIdentifier, "expected variable name")

	var initializer ast.Expr
	if p.match(lexer.TokenAssign) {
		initializer = p.parseExpression()
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")

	return &ast.VarDecl{Keyword: keyword, Name: name, Initializer: initializer}
}

// parseFuncDecl parses: function NAME ( params? ) block
// The 'function' keyword has already been consumed.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	keyword := p.previous()

	name := p.consume(lexer.TokenIdentifier, "expected function name")
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")

	params := make([]lexer.Token, 0)
	if !p.check(lexer.TokenRightParen) {
		for {
			if len(params) >= maxParameters {
				p.errorAt(p.peek(), fmt.Sprintf("cannot have more than %d parameters", maxParameters))
			}
			params = append(params, p.consume(lexer.TokenIdentifier, "expected parameter name"))
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	if !p.check(lexer.TokenLeftBrace) {
		p.errorAt(p.peek(), "expected '{' before function body")
	}
	body := p.parseBlockStmt()

	return &ast.FuncDecl{Keyword: keyword, Name: name, Params: params, Body: body}
}

// parseBlockStmt parses: { stmt* }
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	leftBrace := p.consume(lexer.TokenLeftBrace, "expected '{'")

	statements := make([]ast.Stmt, 0)
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		statements = append(statements, p.parseStatement())
	}

	p.consume(lexer.TokenRightBrace, "expected '}' after block")

	return &ast.BlockStmt{LeftBrace: leftBrace, Statements: statements}
}

// parseIfStmt parses: if ( expr ) stmt (else stmt)?
// An "else if" chain is just an IfStmt in the else position.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	keyword := p.previous()

	p.consume(lexer.TokenLeftParen, "expected '(' after 'if'")
	condition := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")

	thenBranch := p.parseStatement()

	var elseBranch ast.Stmt
	if p.match(lexer.TokenElse) {
		elseBranch = p.parseStatement()
	}

	return &ast.IfStmt{
		Keyword:    keyword,
		Condition:  condition,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
	}
}

// parseWhileStmt parses: while ( expr ) stmt
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	keyword := p.previous()

	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	condition := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")

	body := p.parseStatement()

	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}
}

// parseForStmt parses: for ( init? ; cond? ; update? ) stmt
// Each clause is optional; the two separating semicolons are required. The
// init clause is either a variable declaration or an expression statement,
// both of which consume the first semicolon themselves.
func (p *Parser) parseForStmt() *ast.ForStmt {
	keyword := p.previous()

	p.consume(lexer.TokenLeftParen, "expected '(' after 'for'")

	var init ast.Stmt
	if p.match(lexer.TokenSemicolon) {
		// no initializer
	} else if p.match(lexer.TokenVar) {
		init = p.parseVarDecl()
	} else {
		init = p.parseExprStmt()
	}

	var condition ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		condition = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after loop condition")

	var update ast.Expr
	if !p.check(lexer.TokenRightParen) {
		update = p.parseExpression()
	}
	p.consume(lexer.TokenRightParen, "expected ')' after for clauses")

	body := p.parseStatement()

	return &ast.ForStmt{
		Keyword:   keyword,
		Init:      init,
		Condition: condition,
		Update:    update,
		Body:      body,
	}
}

// parseReturnStmt parses: return expr? ;
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	keyword := p.previous()

	var value ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		value = p.parseExpression()
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after return value")

	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

// parseExprStmt parses: expr ;
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after expression")
	return &ast.ExprStmt{Expression: expr}
}

// Expression parsing by precedence climbing.

// parseExpression parses an expression at any precedence.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses an expression whose operators all bind at least as
// tightly as the given precedence. This is the climbing loop: parse a prefix
// expression, then keep folding in infix operators while they qualify.
func (p *Parser) parsePrecedence(precedence Precedence) ast.Expr {
	left := p.parsePrefix()

	for precedence <= getPrecedence(p.peek().Type) {
		left = p.parseInfix(left)
	}

	return left
}

// parsePrefix parses the expressions that can begin an expression: literals,
// identifiers, grouping, and the unary operators.
func (p *Parser) parsePrefix() ast.Expr {
	if p.peek().Type.IsLiteral() {
		return p.parseLiteral()
	}

	switch p.peek().Type {
	case lexer.TokenIdentifier:
		tok := p.advance()
		return &ast.IdentifierExpr{Token: tok, Name: tok.Text}
	case lexer.TokenLeftParen:
		return p.parseGroup()
	case lexer.TokenNot, lexer.TokenMinus:
		return p.parseUnary()
	default:
		p.errorAt(p.peek(), fmt.Sprintf("expected expression, got %s", p.peek().Type))
		return nil // unreachable, errorAt panics
	}
}

// parseInfix extends left with one infix construct: a binary or logical
// operator, an assignment, a member access, or a call.
func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.peek().Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash,
		lexer.TokenEqual, lexer.TokenNotEqual,
		lexer.TokenLess, lexer.TokenLessEqual,
		lexer.TokenGreater, lexer.TokenGreaterEqual:
		return p.parseBinary(left)
	case lexer.TokenAnd, lexer.TokenOr:
		return p.parseLogical(left)
	case lexer.TokenAssign:
		return p.parseAssignment(left)
	case lexer.TokenDot:
		return p.parseMember(left)
	case lexer.TokenLeftParen:
		return p.parseCall(left)
	default:
		return left
	}
}

// parseLiteral parses one number, string, boolean, or null literal.
func (p *Parser) parseLiteral() ast.Expr {
	switch p.peek().Type {
	case lexer.TokenNumber:
		return p.parseNumberLiteral()
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenTrue, lexer.TokenFalse:
		tok := p.advance()
		return &ast.LiteralExpr{Token: tok, Value: tok.Type == lexer.TokenTrue}
	default:
		return &ast.LiteralExpr{Token: p.advance(), Value: nil}
	}
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.advance()
	value, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		p.errorAt(tok, fmt.Sprintf("invalid number literal %q", tok.Text))
	}
	return &ast.LiteralExpr{Token: tok, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.advance()
	// Strip the surrounding quotes. The language has no escape sequences,
	// so the content is exactly the source text between them.
	return &ast.LiteralExpr{Token: tok, Value: tok.Text[1 : len(tok.Text)-1]}
}

func (p *Parser) parseGroup() ast.Expr {
	leftParen := p.advance()
	expr := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after expression")
	return &ast.GroupExpr{LeftParen: leftParen, Expression: expr}
}

func (p *Parser) parseUnary() ast.Expr {
	operator := p.advance()
	operand := p.parsePrecedence(PrecUnary)
	return &ast.UnaryExpr{Operator: operator, Operand: operand}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	operator := p.advance()
	right := p.parsePrecedence(rightOperandPrecedence(operator.Type))
	return &ast.BinaryExpr{Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseLogical(left ast.Expr) ast.Expr {
	operator := p.advance()
	right := p.parsePrecedence(rightOperandPrecedence(operator.Type))
	return &ast.LogicalExpr{Left: left, Operator: operator, Right: right}
}

// rightOperandPrecedence returns the minimum precedence for an operator's
// right operand: one level tighter for left-associative operators, the same
// level for right-associative ones so the recursion groups rightward.
func rightOperandPrecedence(tt lexer.TokenType) Precedence {
	if isRightAssociative(tt) {
		return getPrecedence(tt)
	}
	return getPrecedence(tt) + 1
}

// parseAssignment parses: target = value. Assignment is right-associative,
// and the only legal target is a bare identifier; a parenthesized name, a
// member access, or any other shape on the left is a syntax error.
func (p *Parser) parseAssignment(left ast.Expr) ast.Expr {
	operator := p.advance()

	if _, ok := left.(*ast.IdentifierExpr); !ok {
		p.errorAt(operator, "invalid assignment target")
	}

	value := p.parsePrecedence(PrecAssignment)

	return &ast.AssignExpr{Target: left, Operator: operator, Value: value}
}

func (p *Parser) parseMember(left ast.Expr) ast.Expr {
	p.advance() // the '.'
	property := p.consume(lexer.TokenIdentifier, "expected property name after '.'")
	return &ast.MemberExpr{Object: left, Property: property}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	paren := p.advance()

	args := make([]ast.Expr, 0)
	if !p.check(lexer.TokenRightParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after arguments")

	return &ast.CallExpr{Callee: left, Paren: paren, Args: args}
}

// Cursor helpers.

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokenEOF
}

// advance consumes and returns the current token. The EOF sentinel is never
// consumed, so the cursor cannot run off the end of the stream.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// consume advances past a token of the expected type or raises a syntax
// error at the current token.
func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	return lexer.Token{} // unreachable, errorAt panics
}

// errorAt raises a syntax error by panicking with a *SyntaxError. The panic
// unwinds to parseDeclaration, which records the error and synchronizes.
func (p *Parser) errorAt(tok lexer.Token, message string) {
	panic(&SyntaxError{Message: message, Token: tok})
}

// synchronize discards tokens until a statement boundary: just past a
// semicolon, or at a token that begins a new statement or declaration. This
// is panic-mode recovery: everything inside the broken statement is skipped
// so parsing can resume on a clean boundary.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previousIsSemicolon() {
			return
		}

		switch p.peek().Type {
		case lexer.TokenFunction, lexer.TokenVar, lexer.TokenFor,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenReturn:
			return
		}

		p.advance()
	}
}

func (p *Parser) previousIsSemicolon() bool {
	return p.current > 0 && p.previous().Type == lexer.TokenSemicolon
}
