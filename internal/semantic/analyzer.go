// Package semantic implements the semantic analysis phase: name resolution
// and the declare-before-use, initialize-before-read, and unused-binding
// checks. Unlike the parser, the analyzer never stops at the first problem;
// it walks the whole program and reports every violation it finds, in source
// order.
package semantic

import (
	"fmt"

	"github.com/hassan/tinylang/internal/parser/ast"
	"github.com/hassan/tinylang/internal/symtab"
)

// Error is one semantic violation. Node points at the construct that caused
// it and may be nil for scope-exit diagnostics such as unused bindings.
type Error struct {
	Message string
	Node    ast.Node
}

func (e *Error) Error() string {
	if e.Node != nil {
		return e.Message + " at " + e.Node.Pos().String()
	}
	return e.Message
}

// Analyzer walks an AST and collects semantic errors. An Analyzer is used
// for exactly one Analyze.
type Analyzer struct {
	scope  *symtab.Scope
	errors []*Error
}

// NewAnalyzer creates an analyzer whose global scope holds the print
// built-in, matching the extern the emitted target declares.
func NewAnalyzer() *Analyzer {
	global := symtab.NewScope(nil)
	global.Declare(&symtab.Symbol{
		Name:        "print",
		Kind:        symtab.SymbolFunction,
		Initialized: true,
		Used:        true,
	})
	return &Analyzer{scope: global}
}

// Analyze checks the program and returns all semantic errors in a
// deterministic order: violations in visit order, with each scope's unused
// bindings reported in declaration order when the scope closes. The global
// scope is never checked for unused bindings; top-level names are the
// program's public surface.
func (a *Analyzer) Analyze(program *ast.Program) []*Error {
	for _, stmt := range program.Statements {
		a.visitStmt(stmt)
	}
	return a.errors
}

func (a *Analyzer) reportf(node ast.Node, format string, args ...interface{}) {
	a.errors = append(a.errors, &Error{Message: fmt.Sprintf(format, args...), Node: node})
}

// pushScope opens a nested scope for a block, function, or for-header.
func (a *Analyzer) pushScope() {
	a.scope = symtab.NewScope(a.scope)
}

// popScope closes the current scope, reporting its unused variables and
// parameters in declaration order.
func (a *Analyzer) popScope() {
	for _, sym := range a.scope.Symbols() {
		if sym.Used {
			continue
		}
		switch sym.Kind {
		case symtab.SymbolVariable:
			a.reportf(nil, "variable '%s' is declared but never used", sym.Name)
		case symtab.SymbolParameter:
			a.reportf(nil, "parameter '%s' is declared but never used", sym.Name)
		}
	}
	a.scope = a.scope.Parent()
}

// Statement visits. The analyzer reports problems through a.errors rather
// than the error return, which exists to satisfy the visitor interface.

func (a *Analyzer) visitStmt(stmt ast.Stmt) {
	// Accept never returns a non-nil error from this visitor.
	_ = stmt.Accept(a)
}

func (a *Analyzer) visitExpr(expr ast.Expr) {
	_, _ = expr.Accept(a)
}

func (a *Analyzer) VisitExprStmt(stmt *ast.ExprStmt) error {
	a.visitExpr(stmt.Expression)
	return nil
}

func (a *Analyzer) VisitBlockStmt(stmt *ast.BlockStmt) error {
	a.pushScope()
	for _, s := range stmt.Statements {
		a.visitStmt(s)
	}
	a.popScope()
	return nil
}

func (a *Analyzer) VisitIfStmt(stmt *ast.IfStmt) error {
	a.visitExpr(stmt.Condition)
	a.visitStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		a.visitStmt(stmt.ElseBranch)
	}
	return nil
}

func (a *Analyzer) VisitWhileStmt(stmt *ast.WhileStmt) error {
	a.visitExpr(stmt.Condition)
	a.visitStmt(stmt.Body)
	return nil
}

// VisitForStmt opens a header scope so a variable declared in the init
// clause is visible to the condition, update, and body, but not outside the
// loop.
func (a *Analyzer) VisitForStmt(stmt *ast.ForStmt) error {
	a.pushScope()
	if stmt.Init != nil {
		a.visitStmt(stmt.Init)
	}
	if stmt.Condition != nil {
		a.visitExpr(stmt.Condition)
	}
	if stmt.Update != nil {
		a.visitExpr(stmt.Update)
	}
	a.visitStmt(stmt.Body)
	a.popScope()
	return nil
}

func (a *Analyzer) VisitReturnStmt(stmt *ast.ReturnStmt) error {
	if stmt.Value != nil {
		a.visitExpr(stmt.Value)
	}
	return nil
}

// VisitVarDecl checks the initializer before declaring the name, so
// 'var x = x;' reads the old binding (or fails) instead of the new one.
func (a *Analyzer) VisitVarDecl(decl *ast.VarDecl) error {
	if decl.Initializer != nil {
		a.visitExpr(decl.Initializer)
	}

	sym := &symtab.Symbol{
		Name:        decl.Name.Text,
		Kind:        symtab.SymbolVariable,
		Pos:         decl.Name.Position,
		Initialized: decl.Initializer != nil,
	}
	if !a.scope.Declare(sym) {
		a.reportf(decl, "duplicate declaration of '%s'", decl.Name.Text)
	}
	return nil
}

// VisitFuncDecl declares the function in the enclosing scope, then opens a
// single scope holding both the parameters and the body's statements. The
// body block does not open a second scope, so a parameter cannot be
// re-declared by a top-level 'var' in the body.
func (a *Analyzer) VisitFuncDecl(decl *ast.FuncDecl) error {
	fn := &symtab.Symbol{
		Name:        decl.Name.Text,
		Kind:        symtab.SymbolFunction,
		Pos:         decl.Name.Position,
		Initialized: true,
	}
	if !a.scope.Declare(fn) {
		a.reportf(decl, "duplicate declaration of '%s'", decl.Name.Text)
	}

	a.pushScope()
	for _, param := range decl.Params {
		p := &symtab.Symbol{
			Name:        param.Text,
			Kind:        symtab.SymbolParameter,
			Pos:         param.Position,
			Initialized: true,
		}
		if !a.scope.Declare(p) {
			a.reportf(decl, "duplicate declaration of '%s'", param.Text)
		}
	}
	for _, s := range decl.Body.Statements {
		a.visitStmt(s)
	}
	a.popScope()
	return nil
}

// Expression visits.

func (a *Analyzer) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	a.visitExpr(expr.Left)
	a.visitExpr(expr.Right)
	return nil, nil
}

func (a *Analyzer) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	a.visitExpr(expr.Operand)
	return nil, nil
}

func (a *Analyzer) VisitLogicalExpr(expr *ast.LogicalExpr) (interface{}, error) {
	a.visitExpr(expr.Left)
	a.visitExpr(expr.Right)
	return nil, nil
}

// VisitAssignExpr checks the value first, then marks the target initialized.
// Assignment writes a name without reading it, so the target is not marked
// used.
func (a *Analyzer) VisitAssignExpr(expr *ast.AssignExpr) (interface{}, error) {
	a.visitExpr(expr.Value)

	target, ok := expr.Target.(*ast.IdentifierExpr)
	if !ok {
		a.visitExpr(expr.Target)
		return nil, nil
	}

	sym := a.scope.Resolve(target.Name)
	if sym == nil {
		a.reportf(target, "'%s' used before declaration", target.Name)
		return nil, nil
	}
	sym.Initialized = true
	return nil, nil
}

// VisitCallExpr resolves a direct callee by name so calling a non-function
// or an undeclared name gets a call-specific diagnostic. Computed callees
// (member access, grouped expressions) are checked as ordinary expressions.
func (a *Analyzer) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	if callee, ok := expr.Callee.(*ast.IdentifierExpr); ok {
		sym := a.scope.Resolve(callee.Name)
		switch {
		case sym == nil:
			a.reportf(callee, "call to undeclared function '%s'", callee.Name)
		case sym.Kind != symtab.SymbolFunction:
			a.reportf(callee, "'%s' is not a function", callee.Name)
			sym.Used = true
		default:
			sym.Used = true
		}
	} else {
		a.visitExpr(expr.Callee)
	}

	for _, arg := range expr.Args {
		a.visitExpr(arg)
	}
	return nil, nil
}

// VisitMemberExpr checks the object expression only; property names live in
// the object's namespace, not the lexical scope.
func (a *Analyzer) VisitMemberExpr(expr *ast.MemberExpr) (interface{}, error) {
	a.visitExpr(expr.Object)
	return nil, nil
}

func (a *Analyzer) VisitIdentifierExpr(expr *ast.IdentifierExpr) (interface{}, error) {
	sym := a.scope.Resolve(expr.Name)
	if sym == nil {
		a.reportf(expr, "'%s' used before declaration", expr.Name)
		return nil, nil
	}
	if sym.Kind == symtab.SymbolVariable && !sym.Initialized {
		a.reportf(expr, "'%s' used before initialization", expr.Name)
	}
	sym.Used = true
	return nil, nil
}

func (a *Analyzer) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (a *Analyzer) VisitGroupExpr(expr *ast.GroupExpr) (interface{}, error) {
	a.visitExpr(expr.Expression)
	return nil, nil
}
