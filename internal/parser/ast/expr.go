package ast

import (
	"github.com/hassan/tinylang/internal/lexer"
)

// Expression nodes represent values and computations.

// BinaryExpr represents an arithmetic, relational, or equality operation:
// left op right. One node type serves all binary operators; the operator
// token distinguishes them.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token // +, -, *, /, <, <=, >, >=, ==, !=
	Right    Expr
}

func (b *BinaryExpr) Pos() lexer.Position { return b.Left.Pos() }
func (b *BinaryExpr) exprNode()           {}
func (b *BinaryExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitBinaryExpr(b)
}

// UnaryExpr represents a prefix operation: !operand or -operand.
type UnaryExpr struct {
	Operator lexer.Token
	Operand  Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) exprNode()           {}
func (u *UnaryExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitUnaryExpr(u)
}

// LogicalExpr represents a short-circuit operation: left && right or
// left || right. Kept separate from BinaryExpr because the right operand is
// conditionally evaluated: the IR generator lowers it to a branch, not to a
// plain binary instruction.
type LogicalExpr struct {
	Left     Expr
	Operator lexer.Token // && or ||
	Right    Expr
}

func (l *LogicalExpr) Pos() lexer.Position { return l.Left.Pos() }
func (l *LogicalExpr) exprNode()           {}
func (l *LogicalExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitLogicalExpr(l)
}

// AssignExpr represents an assignment: target = value. Assignment is
// right-associative, so x = y = 1 parses as x = (y = 1). The parser only
// accepts a bare identifier as the target.
type AssignExpr struct {
	Target   Expr
	Operator lexer.Token // the '='
	Value    Expr
}

func (a *AssignExpr) Pos() lexer.Position { return a.Target.Pos() }
func (a *AssignExpr) exprNode()           {}
func (a *AssignExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitAssignExpr(a)
}

// CallExpr represents a function call: callee(args...). The callee is an
// arbitrary expression so chained forms like obj.method() parse; calls to
// anything other than a bare identifier lower to an indirect call.
type CallExpr struct {
	Callee Expr
	Paren  lexer.Token // the '(', position anchor for call diagnostics
	Args   []Expr
}

func (c *CallExpr) Pos() lexer.Position { return c.Callee.Pos() }
func (c *CallExpr) exprNode()           {}
func (c *CallExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitCallExpr(c)
}

// MemberExpr represents property access: object.property. Only the object
// sub-expression is name-resolved; the property name is never checked.
type MemberExpr struct {
	Object   Expr
	Property lexer.Token // the property name
}

func (m *MemberExpr) Pos() lexer.Position { return m.Object.Pos() }
func (m *MemberExpr) exprNode()           {}
func (m *MemberExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitMemberExpr(m)
}

// IdentifierExpr represents a name reference: a variable, parameter, or
// function. Separate from LiteralExpr because identifiers need resolution
// against the scope stack while literals never do.
type IdentifierExpr struct {
	Token lexer.Token
	Name  string
}

func (i *IdentifierExpr) Pos() lexer.Position { return i.Token.Position }
func (i *IdentifierExpr) exprNode()           {}
func (i *IdentifierExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitIdentifierExpr(i)
}

// LiteralExpr represents a literal value.
//
// Value holds the decoded literal:
//   - float64 for numeric literals (all numbers share one representation)
//   - string for string literals (quotes stripped)
//   - bool for true/false
//   - nil for null
type LiteralExpr struct {
	Token lexer.Token
	Value interface{}
}

func (l *LiteralExpr) Pos() lexer.Position { return l.Token.Position }
func (l *LiteralExpr) exprNode()           {}
func (l *LiteralExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitLiteralExpr(l)
}

// GroupExpr represents a parenthesized expression: (expr). Grouping stays in
// the tree so phase output shows exactly what the user wrote; it changes
// nothing semantically.
type GroupExpr struct {
	LeftParen  lexer.Token
	Expression Expr
}

func (g *GroupExpr) Pos() lexer.Position { return g.LeftParen.Position }
func (g *GroupExpr) exprNode()           {}
func (g *GroupExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitGroupExpr(g)
}
