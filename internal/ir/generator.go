package ir

import (
	"fmt"
	"strconv"

	"github.com/hassan/tinylang/internal/lexer"
	"github.com/hassan/tinylang/internal/parser/ast"
)

// GenerationError is a fatal IR-generation failure: an AST shape or operator
// the lowering does not recognize. Node points at the offending construct.
type GenerationError struct {
	Message string
	Node    ast.Node
}

func (e *GenerationError) Error() string {
	if e.Node != nil {
		return e.Message + " at " + e.Node.Pos().String()
	}
	return e.Message
}

// Generator lowers an AST into a flat instruction list. It owns the
// temporary and label counters, which reset at the start of each Generate,
// so a Generator is not safe for two overlapping Generate calls.
type Generator struct {
	instructions []Instruction
	tempCount    int
	labelCount   int
}

// NewGenerator creates an IR generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers the program. It fails with a *GenerationError on the first
// unrecognized construct; there is no recovery at this phase.
func (g *Generator) Generate(program *ast.Program) ([]Instruction, error) {
	g.instructions = make([]Instruction, 0)
	g.tempCount = 0
	g.labelCount = 0

	for _, stmt := range program.Statements {
		if err := stmt.Accept(g); err != nil {
			return nil, err
		}
	}
	return g.instructions, nil
}

func (g *Generator) emit(inst Instruction) {
	g.instructions = append(g.instructions, inst)
}

// newTemp returns a fresh reserved-prefix temporary name.
func (g *Generator) newTemp() string {
	name := TempPrefix + strconv.Itoa(g.tempCount)
	g.tempCount++
	return name
}

// newLabel returns a fresh label with a purpose prefix, e.g. "else_3".
// The counter is shared across prefixes, so labels are unique program-wide.
func (g *Generator) newLabel(prefix string) string {
	name := prefix + "_" + strconv.Itoa(g.labelCount)
	g.labelCount++
	return name
}

// genExpr evaluates an expression, emitting its instructions, and returns
// the name of the temporary (or variable) holding its value.
func (g *Generator) genExpr(expr ast.Expr) (string, error) {
	result, err := expr.Accept(g)
	if err != nil {
		return "", err
	}
	name, ok := result.(string)
	if !ok {
		return "", &GenerationError{Message: "expression produced no value", Node: expr}
	}
	return name, nil
}

// Statement lowerings.

func (g *Generator) VisitExprStmt(stmt *ast.ExprStmt) error {
	_, err := g.genExpr(stmt.Expression)
	return err
}

func (g *Generator) VisitBlockStmt(stmt *ast.BlockStmt) error {
	g.emit(&BlockStart{})
	for _, s := range stmt.Statements {
		if err := s.Accept(g); err != nil {
			return err
		}
	}
	g.emit(&BlockEnd{})
	return nil
}

// VisitIfStmt lowers:
//
//	<cond>            JUMP_IF_FALSE cond, else_N
//	<then>            JUMP end_if_M
//	else_N:           <else, if present>
//	end_if_M:
func (g *Generator) VisitIfStmt(stmt *ast.IfStmt) error {
	elseLabel := g.newLabel("else")
	endLabel := g.newLabel("end_if")

	cond, err := g.genExpr(stmt.Condition)
	if err != nil {
		return err
	}
	g.emit(&JumpIfFalse{Cond: NameOf(cond), Target: elseLabel})

	if err := stmt.ThenBranch.Accept(g); err != nil {
		return err
	}
	g.emit(&Jump{Target: endLabel})

	g.emit(&Label{Name: elseLabel})
	if stmt.ElseBranch != nil {
		if err := stmt.ElseBranch.Accept(g); err != nil {
			return err
		}
	}
	g.emit(&Label{Name: endLabel})
	return nil
}

func (g *Generator) VisitWhileStmt(stmt *ast.WhileStmt) error {
	startLabel := g.newLabel("while_start")
	endLabel := g.newLabel("while_end")

	g.emit(&Label{Name: startLabel})

	cond, err := g.genExpr(stmt.Condition)
	if err != nil {
		return err
	}
	g.emit(&JumpIfFalse{Cond: NameOf(cond), Target: endLabel})

	if err := stmt.Body.Accept(g); err != nil {
		return err
	}
	g.emit(&Jump{Target: startLabel})
	g.emit(&Label{Name: endLabel})
	return nil
}

// VisitForStmt lowers a C-style loop. Omitted clauses simply emit nothing;
// an omitted condition makes the loop unconditional. The update label is
// emitted ahead of the update expression even though the language has no
// statement that jumps to it; dead-label elimination removes it later.
func (g *Generator) VisitForStmt(stmt *ast.ForStmt) error {
	startLabel := g.newLabel("for_start")
	updateLabel := g.newLabel("for_update")
	endLabel := g.newLabel("for_end")

	if stmt.Init != nil {
		if err := stmt.Init.Accept(g); err != nil {
			return err
		}
	}

	g.emit(&Label{Name: startLabel})
	if stmt.Condition != nil {
		cond, err := g.genExpr(stmt.Condition)
		if err != nil {
			return err
		}
		g.emit(&JumpIfFalse{Cond: NameOf(cond), Target: endLabel})
	}

	if err := stmt.Body.Accept(g); err != nil {
		return err
	}

	g.emit(&Label{Name: updateLabel})
	if stmt.Update != nil {
		if _, err := g.genExpr(stmt.Update); err != nil {
			return err
		}
	}
	g.emit(&Jump{Target: startLabel})
	g.emit(&Label{Name: endLabel})
	return nil
}

func (g *Generator) VisitReturnStmt(stmt *ast.ReturnStmt) error {
	if stmt.Value == nil {
		g.emit(&Return{})
		return nil
	}
	value, err := g.genExpr(stmt.Value)
	if err != nil {
		return err
	}
	g.emit(&Return{HasValue: true, Value: NameOf(value)})
	return nil
}

func (g *Generator) VisitVarDecl(decl *ast.VarDecl) error {
	if decl.Initializer == nil {
		return nil
	}
	value, err := g.genExpr(decl.Initializer)
	if err != nil {
		return err
	}
	g.emit(&Store{Name: decl.Name.Text, Src: NameOf(value)})
	return nil
}

// VisitFuncDecl brackets the body with FUNCTION_START/FUNCTION_END. The body
// block's statements are emitted directly; the function markers already
// delimit the body, so no BLOCK_START pair is added for it.
func (g *Generator) VisitFuncDecl(decl *ast.FuncDecl) error {
	params := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = p.Text
	}
	g.emit(&FunctionStart{Name: decl.Name.Text, Params: params})

	for _, s := range decl.Body.Statements {
		if err := s.Accept(g); err != nil {
			return err
		}
	}

	g.emit(&FunctionEnd{Name: decl.Name.Text})
	return nil
}

// Expression lowerings. Each returns the name holding the value.

func (g *Generator) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	dest := g.newTemp()
	g.emit(&Const{Dest: dest, Value: expr.Value})
	return dest, nil
}

func (g *Generator) VisitIdentifierExpr(expr *ast.IdentifierExpr) (interface{}, error) {
	dest := g.newTemp()
	g.emit(&Load{Dest: dest, Name: expr.Name})
	return dest, nil
}

func (g *Generator) VisitGroupExpr(expr *ast.GroupExpr) (interface{}, error) {
	return expr.Expression.Accept(g)
}

func (g *Generator) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	op, ok := binaryOpFor(expr.Operator.Type)
	if !ok {
		return nil, &GenerationError{
			Message: fmt.Sprintf("unknown binary operator '%s'", expr.Operator.Text),
			Node:    expr,
		}
	}

	left, err := g.genExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.genExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	dest := g.newTemp()
	g.emit(&Binary{Op: op, Dest: dest, Left: NameOf(left), Right: NameOf(right)})
	return dest, nil
}

func (g *Generator) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	var op UnaryOp
	switch expr.Operator.Type {
	case lexer.TokenMinus:
		op = OpNeg
	case lexer.TokenNot:
		op = OpNot
	default:
		return nil, &GenerationError{
			Message: fmt.Sprintf("unknown unary operator '%s'", expr.Operator.Text),
			Node:    expr,
		}
	}

	operand, err := g.genExpr(expr.Operand)
	if err != nil {
		return nil, err
	}

	dest := g.newTemp()
	g.emit(&Unary{Op: op, Dest: dest, Operand: NameOf(operand)})
	return dest, nil
}

// VisitLogicalExpr lowers short-circuit && and ||. The left value lands in
// the result temporary; if it already decides the outcome, evaluation of the
// right operand is skipped, otherwise the right value overwrites the result.
func (g *Generator) VisitLogicalExpr(expr *ast.LogicalExpr) (interface{}, error) {
	var skipLabel string
	switch expr.Operator.Type {
	case lexer.TokenAnd:
		skipLabel = g.newLabel("and_skip")
	case lexer.TokenOr:
		skipLabel = g.newLabel("or_skip")
	default:
		return nil, &GenerationError{
			Message: fmt.Sprintf("unknown logical operator '%s'", expr.Operator.Text),
			Node:    expr,
		}
	}

	result := g.newTemp()

	left, err := g.genExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	g.emit(&Copy{Dest: result, Src: NameOf(left)})

	if expr.Operator.Type == lexer.TokenAnd {
		g.emit(&JumpIfFalse{Cond: Temp(result), Target: skipLabel})
	} else {
		g.emit(&JumpIfTrue{Cond: Temp(result), Target: skipLabel})
	}

	right, err := g.genExpr(expr.Right)
	if err != nil {
		return nil, err
	}
	g.emit(&Copy{Dest: result, Src: NameOf(right)})

	g.emit(&Label{Name: skipLabel})
	return result, nil
}

func (g *Generator) VisitAssignExpr(expr *ast.AssignExpr) (interface{}, error) {
	value, err := g.genExpr(expr.Value)
	if err != nil {
		return nil, err
	}

	switch target := expr.Target.(type) {
	case *ast.IdentifierExpr:
		g.emit(&Store{Name: target.Name, Src: NameOf(value)})
	case *ast.MemberExpr:
		object, err := g.genExpr(target.Object)
		if err != nil {
			return nil, err
		}
		g.emit(&StoreProp{
			Object:   NameOf(object),
			Property: target.Property.Text,
			Src:      NameOf(value),
		})
	default:
		return nil, &GenerationError{Message: "invalid assignment target", Node: expr}
	}

	return value, nil
}

func (g *Generator) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	// A bare-identifier callee is a direct call; anything else is evaluated
	// to a value and called indirectly.
	if callee, ok := expr.Callee.(*ast.IdentifierExpr); ok {
		args, err := g.genArgs(expr.Args)
		if err != nil {
			return nil, err
		}
		dest := g.newTemp()
		g.emit(&Call{Dest: dest, Func: callee.Name, Args: args})
		return dest, nil
	}

	callee, err := g.genExpr(expr.Callee)
	if err != nil {
		return nil, err
	}
	args, err := g.genArgs(expr.Args)
	if err != nil {
		return nil, err
	}
	dest := g.newTemp()
	g.emit(&CallIndirect{Dest: dest, Callee: NameOf(callee), Args: args})
	return dest, nil
}

func (g *Generator) genArgs(exprs []ast.Expr) ([]Operand, error) {
	args := make([]Operand, 0, len(exprs))
	for _, e := range exprs {
		name, err := g.genExpr(e)
		if err != nil {
			return nil, err
		}
		args = append(args, NameOf(name))
	}
	return args, nil
}

func (g *Generator) VisitMemberExpr(expr *ast.MemberExpr) (interface{}, error) {
	object, err := g.genExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	dest := g.newTemp()
	g.emit(&LoadProp{Dest: dest, Object: NameOf(object), Property: expr.Property.Text})
	return dest, nil
}

func binaryOpFor(tt lexer.TokenType) (BinaryOp, bool) {
	switch tt {
	case lexer.TokenPlus:
		return OpAdd, true
	case lexer.TokenMinus:
		return OpSub, true
	case lexer.TokenStar:
		return OpMul, true
	case lexer.TokenSlash:
		return OpDiv, true
	case lexer.TokenLess:
		return OpLt, true
	case lexer.TokenLessEqual:
		return OpLe, true
	case lexer.TokenGreater:
		return OpGt, true
	case lexer.TokenGreaterEqual:
		return OpGe, true
	case lexer.TokenEqual:
		return OpEq, true
	case lexer.TokenNotEqual:
		return OpNeq, true
	default:
		return 0, false
	}
}
