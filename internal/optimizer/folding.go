package optimizer

import "github.com/hassan/tinylang/internal/ir"

// foldConstants replaces binary and unary instructions whose operands are
// compile-time constants with a single CONST holding the computed value.
//
// Operand resolution is deliberately local, not a dataflow analysis: each
// operand is resolved by scanning backward from the instruction for the
// nearest prior CONST defining that exact name. If no such CONST is found,
// folding is skipped for that instruction even when the value is in fact
// constant. Constant propagation also inlines literals directly into
// operand positions, which this pass folds without any scan.
func foldConstants(instructions []ir.Instruction) ([]ir.Instruction, bool) {
	out := make([]ir.Instruction, len(instructions))
	changed := false

	for i, inst := range instructions {
		out[i] = inst

		switch in := inst.(type) {
		case *ir.Binary:
			left, ok := resolveConstant(instructions, i, in.Left)
			if !ok {
				continue
			}
			right, ok := resolveConstant(instructions, i, in.Right)
			if !ok {
				continue
			}
			value, ok := foldBinary(in.Op, left, right)
			if !ok {
				continue
			}
			out[i] = &ir.Const{Dest: in.Dest, Value: value}
			changed = true

		case *ir.Unary:
			operand, ok := resolveConstant(instructions, i, in.Operand)
			if !ok {
				continue
			}
			value, ok := foldUnary(in.Op, operand)
			if !ok {
				continue
			}
			out[i] = &ir.Const{Dest: in.Dest, Value: value}
			changed = true
		}
	}

	return out, changed
}

// resolveConstant resolves an operand to a constant value: directly for
// inline literals, otherwise via the backward scan for the nearest prior
// CONST with a matching destination name.
func resolveConstant(instructions []ir.Instruction, index int, op ir.Operand) (interface{}, bool) {
	if op.IsLiteral() {
		return op.Lit, true
	}
	for j := index - 1; j >= 0; j-- {
		if c, ok := instructions[j].(*ir.Const); ok && c.Dest == op.Name {
			return c.Value, true
		}
	}
	return nil, false
}

// foldBinary computes a binary operation over two constants. Only numeric
// operands fold; arithmetic yields float64, comparisons yield bool.
func foldBinary(op ir.BinaryOp, left, right interface{}) (interface{}, bool) {
	l, ok := left.(float64)
	if !ok {
		return nil, false
	}
	r, ok := right.(float64)
	if !ok {
		return nil, false
	}

	if op.IsComparison() {
		return foldComparison(op, l, r)
	}

	switch op {
	case ir.OpAdd:
		return l + r, true
	case ir.OpSub:
		return l - r, true
	case ir.OpMul:
		return l * r, true
	case ir.OpDiv:
		return l / r, true
	default:
		return nil, false
	}
}

func foldComparison(op ir.BinaryOp, l, r float64) (interface{}, bool) {
	switch op {
	case ir.OpLt:
		return l < r, true
	case ir.OpLe:
		return l <= r, true
	case ir.OpGt:
		return l > r, true
	case ir.OpGe:
		return l >= r, true
	case ir.OpEq:
		return l == r, true
	case ir.OpNeq:
		return l != r, true
	default:
		return nil, false
	}
}

// foldUnary computes a unary operation over a constant: negation of a
// number, or logical not of a boolean or a number (numbers are falsy only
// at zero).
func foldUnary(op ir.UnaryOp, operand interface{}) (interface{}, bool) {
	switch op {
	case ir.OpNeg:
		if v, ok := operand.(float64); ok {
			return -v, true
		}
	case ir.OpNot:
		switch v := operand.(type) {
		case bool:
			return !v, true
		case float64:
			return v == 0, true
		}
	}
	return nil, false
}
