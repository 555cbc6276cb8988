// Package optimizer rewrites the IR instruction list through four passes:
// constant folding, dead-code elimination, constant propagation, and common
// subexpression elimination. The driver applies the full pass set repeatedly
// until one whole round changes nothing.
//
// Every pass consumes one instruction list and produces a new one; no pass
// mutates its input. No pass ever grows the instruction count, which is what
// guarantees the fixpoint terminates.
package optimizer

import "github.com/hassan/tinylang/internal/ir"

// pass is one rewrite over the instruction list. It returns the rewritten
// list and whether anything changed.
type pass func(instructions []ir.Instruction) ([]ir.Instruction, bool)

var passes = []pass{
	foldConstants,
	eliminateDeadCode,
	propagateConstants,
	eliminateCommonSubexpressions,
}

// Optimize runs the pass set to a fixpoint and returns the final list. It is
// total: it never fails, and optimizing an already-optimized list returns it
// unchanged (idempotence).
func Optimize(instructions []ir.Instruction) []ir.Instruction {
	for {
		changedAny := false
		for _, p := range passes {
			var changed bool
			instructions, changed = p(instructions)
			if changed {
				changedAny = true
			}
		}
		if !changedAny {
			return instructions
		}
	}
}
