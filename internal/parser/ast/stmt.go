package ast

import (
	"github.com/hassan/tinylang/internal/lexer"
)

// Statement and declaration nodes represent actions, control flow, and
// bindings.

// ExprStmt represents an expression in statement position: foo(); x = 5;
type ExprStmt struct {
	Expression Expr
}

func (e *ExprStmt) Pos() lexer.Position { return e.Expression.Pos() }
func (e *ExprStmt) stmtNode()           {}
func (e *ExprStmt) Accept(v Visitor) error {
	return v.VisitExprStmt(e)
}

// BlockStmt represents a braced statement list: { stmt* }. Blocks open a new
// scope during semantic analysis and lower to BLOCK_START/BLOCK_END markers
// in the IR.
type BlockStmt struct {
	LeftBrace  lexer.Token
	Statements []Stmt
}

func (b *BlockStmt) Pos() lexer.Position { return b.LeftBrace.Position }
func (b *BlockStmt) stmtNode()           {}
func (b *BlockStmt) Accept(v Visitor) error {
	return v.VisitBlockStmt(b)
}

// IfStmt represents a conditional: if (cond) thenBranch [else elseBranch].
// ElseBranch is nil when there is no else clause; else-if chains nest as an
// IfStmt in the else position.
type IfStmt struct {
	Keyword    lexer.Token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

func (i *IfStmt) Pos() lexer.Position { return i.Keyword.Position }
func (i *IfStmt) stmtNode()           {}
func (i *IfStmt) Accept(v Visitor) error {
	return v.VisitIfStmt(i)
}

// WhileStmt represents a while loop: while (cond) body.
type WhileStmt struct {
	Keyword   lexer.Token
	Condition Expr
	Body      Stmt
}

func (w *WhileStmt) Pos() lexer.Position { return w.Keyword.Position }
func (w *WhileStmt) stmtNode()           {}
func (w *WhileStmt) Accept(v Visitor) error {
	return v.VisitWhileStmt(w)
}

// ForStmt represents a C-style three-clause loop:
// for (init; cond; update) body. Every clause is optional; the two
// separating semicolons are not. A nil clause simply emits no code.
type ForStmt struct {
	Keyword   lexer.Token
	Init      Stmt // nil, a VarDecl, or an ExprStmt
	Condition Expr // nil for an infinite loop
	Update    Expr // nil when there is no per-iteration step
	Body      Stmt
}

func (f *ForStmt) Pos() lexer.Position { return f.Keyword.Position }
func (f *ForStmt) stmtNode()           {}
func (f *ForStmt) Accept(v Visitor) error {
	return v.VisitForStmt(f)
}

// ReturnStmt represents a return: return [expr];
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr // nil for a bare return
}

func (r *ReturnStmt) Pos() lexer.Position { return r.Keyword.Position }
func (r *ReturnStmt) stmtNode()           {}
func (r *ReturnStmt) Accept(v Visitor) error {
	return v.VisitReturnStmt(r)
}

// VarDecl represents a variable declaration: var name [= initializer];
// A declaration without an initializer leaves the binding uninitialized,
// which the semantic checker tracks.
type VarDecl struct {
	Keyword     lexer.Token
	Name        lexer.Token
	Initializer Expr // nil when the declaration has no '= expr'
}

func (d *VarDecl) Pos() lexer.Position { return d.Keyword.Position }
func (d *VarDecl) stmtNode()           {}
func (d *VarDecl) declNode()           {}
func (d *VarDecl) Accept(v Visitor) error {
	return v.VisitVarDecl(d)
}

// FuncDecl represents a function declaration:
// function name(params) { body }. Parameters are plain names; the language
// has no type annotations.
type FuncDecl struct {
	Keyword lexer.Token
	Name    lexer.Token
	Params  []lexer.Token
	Body    *BlockStmt
}

func (d *FuncDecl) Pos() lexer.Position { return d.Keyword.Position }
func (d *FuncDecl) stmtNode()           {}
func (d *FuncDecl) declNode()           {}
func (d *FuncDecl) Accept(v Visitor) error {
	return v.VisitFuncDecl(d)
}
