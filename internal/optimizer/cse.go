package optimizer

import "github.com/hassan/tinylang/internal/ir"

// exprKey identifies a binary computation by operator and the rendered form
// of both operands.
type exprKey struct {
	op    ir.BinaryOp
	left  string
	right string
}

// eliminateCommonSubexpressions replaces a repeated binary computation with
// a COPY from the temporary that last computed it.
//
// The available-expression map is cleared on STORE, CALL, CALL_INDIRECT,
// FUNCTION_START, and BLOCK_START, since any of those can change the value a
// tracked operand names. As with constant propagation, the map survives the
// matching end markers, so an expression made available inside a block stays
// available after it closes.
func eliminateCommonSubexpressions(instructions []ir.Instruction) ([]ir.Instruction, bool) {
	available := make(map[exprKey]string)
	out := make([]ir.Instruction, len(instructions))
	changed := false

	for i, inst := range instructions {
		out[i] = inst

		switch in := inst.(type) {
		case *ir.Binary:
			key := exprKey{op: in.Op, left: in.Left.String(), right: in.Right.String()}
			if prior, ok := available[key]; ok {
				out[i] = &ir.Copy{Dest: in.Dest, Src: ir.Temp(prior)}
				changed = true
			} else {
				available[key] = in.Dest
			}

		case *ir.Store, *ir.Call, *ir.CallIndirect, *ir.FunctionStart, *ir.BlockStart:
			available = make(map[exprKey]string)
		}
	}

	return out, changed
}
