// Package ast defines the Abstract Syntax Tree node types for the compiler.
//
// The AST is a strict tree: nodes own their children exclusively, there are
// no back-references and no sharing. It is built once by the parser and is
// read-only afterward: the semantic checker and the IR generator only
// traverse it, never mutate it.
//
// The node set is closed. Every consumer dispatches through the Visitor
// interface, so adding a node kind forces every visitor to be updated; there
// is no "unknown node" fallback at runtime.
package ast

import (
	"github.com/hassan/tinylang/internal/lexer"
)

// Node is the base interface for all AST nodes. Every node reports the
// position of its first token for error reporting.
type Node interface {
	Pos() lexer.Position
}

// Expr is the interface for expression nodes, code that produces a value.
//
// The marker method prevents accidental interface satisfaction: only types
// in this package can be expressions.
type Expr interface {
	Node
	// Accept dispatches to the matching Visitor method. Visitors that
	// compute a value per expression (the IR generator returns the name of
	// the value's temporary) pass it through the interface{} result.
	Accept(v Visitor) (interface{}, error)
	exprNode()
}

// Stmt is the interface for statement nodes, code that performs an action.
// Statements have no value.
type Stmt interface {
	Node
	Accept(v Visitor) error
	stmtNode()
}

// Decl is the interface for declaration nodes. Declarations introduce a new
// name and are only valid in statement position, never as expressions.
type Decl interface {
	Stmt
	declNode()
}

// Visitor is the interface for AST traversal. One Accept call dispatches to
// exactly one method here; a consumer that needs a new behavior implements
// this interface rather than type-switching at every call site.
type Visitor interface {
	// Expressions
	VisitBinaryExpr(expr *BinaryExpr) (interface{}, error)
	VisitUnaryExpr(expr *UnaryExpr) (interface{}, error)
	VisitLogicalExpr(expr *LogicalExpr) (interface{}, error)
	VisitAssignExpr(expr *AssignExpr) (interface{}, error)
	VisitCallExpr(expr *CallExpr) (interface{}, error)
	VisitMemberExpr(expr *MemberExpr) (interface{}, error)
	VisitIdentifierExpr(expr *IdentifierExpr) (interface{}, error)
	VisitLiteralExpr(expr *LiteralExpr) (interface{}, error)
	VisitGroupExpr(expr *GroupExpr) (interface{}, error)

	// Statements
	VisitExprStmt(stmt *ExprStmt) error
	VisitBlockStmt(stmt *BlockStmt) error
	VisitIfStmt(stmt *IfStmt) error
	VisitWhileStmt(stmt *WhileStmt) error
	VisitForStmt(stmt *ForStmt) error
	VisitReturnStmt(stmt *ReturnStmt) error

	// Declarations
	VisitVarDecl(decl *VarDecl) error
	VisitFuncDecl(decl *FuncDecl) error
}

// Program is the root of the AST: the ordered top-level declarations and
// statements of one source unit.
type Program struct {
	Statements []Stmt
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{}
}
