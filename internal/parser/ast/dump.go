package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump returns an indented structural rendering of a node and everything
// under it, one node per line. Front-ends use it to show the syntax-analysis
// artifact; tests use it to assert tree shapes without walking struct fields.
//
// Example:
//
//	Program
//	  VarDecl x
//	    Binary +
//	      Literal 1
//	      Literal 2
func Dump(node Node) string {
	d := &dumper{}
	switch n := node.(type) {
	case *Program:
		d.line("Program")
		d.indent++
		for _, s := range n.Statements {
			_ = s.Accept(d)
		}
		d.indent--
	case Expr:
		_, _ = n.Accept(d)
	case Stmt:
		_ = n.Accept(d)
	}
	return d.b.String()
}

// dumper is a Visitor that accumulates one indented line per node.
type dumper struct {
	b      strings.Builder
	indent int
}

func (d *dumper) line(text string) {
	for i := 0; i < d.indent; i++ {
		d.b.WriteString("  ")
	}
	d.b.WriteString(text)
	d.b.WriteByte('\n')
}

// child visits a statement one level deeper.
func (d *dumper) child(s Stmt) {
	if s == nil {
		return
	}
	d.indent++
	_ = s.Accept(d)
	d.indent--
}

// childExpr visits an expression one level deeper.
func (d *dumper) childExpr(e Expr) {
	if e == nil {
		return
	}
	d.indent++
	_, _ = e.Accept(d)
	d.indent--
}

func (d *dumper) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	d.line("Binary " + expr.Operator.Text)
	d.childExpr(expr.Left)
	d.childExpr(expr.Right)
	return nil, nil
}

func (d *dumper) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	d.line("Unary " + expr.Operator.Text)
	d.childExpr(expr.Operand)
	return nil, nil
}

func (d *dumper) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	d.line("Logical " + expr.Operator.Text)
	d.childExpr(expr.Left)
	d.childExpr(expr.Right)
	return nil, nil
}

func (d *dumper) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	d.line("Assign")
	d.childExpr(expr.Target)
	d.childExpr(expr.Value)
	return nil, nil
}

func (d *dumper) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	d.line("Call")
	d.childExpr(expr.Callee)
	for _, arg := range expr.Args {
		d.childExpr(arg)
	}
	return nil, nil
}

func (d *dumper) VisitMemberExpr(expr *MemberExpr) (interface{}, error) {
	d.line("Member ." + expr.Property.Text)
	d.childExpr(expr.Object)
	return nil, nil
}

func (d *dumper) VisitIdentifierExpr(expr *IdentifierExpr) (interface{}, error) {
	d.line("Identifier " + expr.Name)
	return nil, nil
}

func (d *dumper) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	d.line("Literal " + literalString(expr.Value))
	return nil, nil
}

func (d *dumper) VisitGroupExpr(expr *GroupExpr) (interface{}, error) {
	d.line("Group")
	d.childExpr(expr.Expression)
	return nil, nil
}

func (d *dumper) VisitExprStmt(stmt *ExprStmt) error {
	d.line("ExprStmt")
	d.childExpr(stmt.Expression)
	return nil
}

func (d *dumper) VisitBlockStmt(stmt *BlockStmt) error {
	d.line("Block")
	for _, s := range stmt.Statements {
		d.child(s)
	}
	return nil
}

func (d *dumper) VisitIfStmt(stmt *IfStmt) error {
	d.line("If")
	d.childExpr(stmt.Condition)
	d.child(stmt.ThenBranch)
	d.child(stmt.ElseBranch)
	return nil
}

func (d *dumper) VisitWhileStmt(stmt *WhileStmt) error {
	d.line("While")
	d.childExpr(stmt.Condition)
	d.child(stmt.Body)
	return nil
}

func (d *dumper) VisitForStmt(stmt *ForStmt) error {
	d.line("For")
	d.child(stmt.Init)
	d.childExpr(stmt.Condition)
	d.childExpr(stmt.Update)
	d.child(stmt.Body)
	return nil
}

func (d *dumper) VisitReturnStmt(stmt *ReturnStmt) error {
	d.line("Return")
	d.childExpr(stmt.Value)
	return nil
}

func (d *dumper) VisitVarDecl(decl *VarDecl) error {
	d.line("VarDecl " + decl.Name.Text)
	d.childExpr(decl.Initializer)
	return nil
}

func (d *dumper) VisitFuncDecl(decl *FuncDecl) error {
	names := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		names[i] = p.Text
	}
	d.line("FuncDecl " + decl.Name.Text + "(" + strings.Join(names, ", ") + ")")
	d.child(decl.Body)
	return nil
}

// literalString renders a literal value the way the language spells it:
// numbers in minimal decimal form, strings quoted, null for nil.
func literalString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
