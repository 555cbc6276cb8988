package optimizer

import "github.com/hassan/tinylang/internal/ir"

// eliminateDeadCode is a two-pass mark/sweep over the flat list: mark every
// name that is read and every label that is jumped to, then sweep the
// definitions nothing marked.
//
// Only two instruction shapes are droppable:
//   - A CONST or STORE whose destination is a reserved-prefix temporary that
//     is never read anywhere else. Stores to named variables are never
//     dropped, even when apparently unused, because the IR does not track
//     cross-scope visibility.
//   - A LABEL no remaining JUMP/JUMP_IF_TRUE/JUMP_IF_FALSE targets.
//
// The final instruction in the list is always kept: it holds the run's
// trailing result value, which has no explicit consumer in the IR.
func eliminateDeadCode(instructions []ir.Instruction) ([]ir.Instruction, bool) {
	used := markUsedNames(instructions)
	targets := markJumpTargets(instructions)

	out := make([]ir.Instruction, 0, len(instructions))
	changed := false
	last := len(instructions) - 1

	for i, inst := range instructions {
		if i != last && isDead(inst, used, targets) {
			changed = true
			continue
		}
		out = append(out, inst)
	}

	return out, changed
}

func isDead(inst ir.Instruction, used, targets map[string]bool) bool {
	switch in := inst.(type) {
	case *ir.Const:
		return ir.IsTemp(in.Dest) && !used[in.Dest]
	case *ir.Store:
		return ir.IsTemp(in.Name) && !used[in.Name]
	case *ir.Label:
		return !targets[in.Name]
	default:
		return false
	}
}

// markUsedNames collects every name read by any instruction. Destination
// positions do not count as reads.
func markUsedNames(instructions []ir.Instruction) map[string]bool {
	used := make(map[string]bool)

	mark := func(op ir.Operand) {
		if !op.IsLiteral() {
			used[op.Name] = true
		}
	}

	for _, inst := range instructions {
		switch in := inst.(type) {
		case *ir.Load:
			used[in.Name] = true
		case *ir.Store:
			mark(in.Src)
		case *ir.LoadProp:
			mark(in.Object)
		case *ir.StoreProp:
			mark(in.Object)
			mark(in.Src)
		case *ir.Binary:
			mark(in.Left)
			mark(in.Right)
		case *ir.Unary:
			mark(in.Operand)
		case *ir.Copy:
			mark(in.Src)
		case *ir.JumpIfTrue:
			mark(in.Cond)
		case *ir.JumpIfFalse:
			mark(in.Cond)
		case *ir.Call:
			for _, arg := range in.Args {
				mark(arg)
			}
		case *ir.CallIndirect:
			mark(in.Callee)
			for _, arg := range in.Args {
				mark(arg)
			}
		case *ir.Return:
			if in.HasValue {
				mark(in.Value)
			}
		}
	}

	return used
}

func markJumpTargets(instructions []ir.Instruction) map[string]bool {
	targets := make(map[string]bool)
	for _, inst := range instructions {
		switch in := inst.(type) {
		case *ir.Jump:
			targets[in.Target] = true
		case *ir.JumpIfTrue:
			targets[in.Target] = true
		case *ir.JumpIfFalse:
			targets[in.Target] = true
		}
	}
	return targets
}
