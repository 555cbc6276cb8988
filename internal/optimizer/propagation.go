package optimizer

import "github.com/hassan/tinylang/internal/ir"

// propagateConstants tracks names with known constant values and rewrites
// their reads. Two rewrites apply: a LOAD of a known-constant name becomes a
// CONST, and any operand naming a known constant is replaced by an inline
// literal.
//
// The tracking map is cleared on FUNCTION_START and BLOCK_START but not on
// the matching end markers, so a constant established inside a block stays
// visible after the block closes, until the next entry marker. That leak is
// long-standing observable behavior and is kept as-is. A STORE of a
// non-constant value invalidates whatever constant was tracked for the
// stored name. Only CONST destinations and constant STOREs establish
// known values; a COPY invalidates its destination.
func propagateConstants(instructions []ir.Instruction) ([]ir.Instruction, bool) {
	known := make(map[string]interface{})
	out := make([]ir.Instruction, len(instructions))
	changed := false

	// substitute returns the operand with a known-constant name replaced by
	// its literal value.
	substitute := func(op ir.Operand) ir.Operand {
		if op.IsLiteral() {
			return op
		}
		if value, ok := known[op.Name]; ok {
			changed = true
			return ir.Lit(value)
		}
		return op
	}

	for i, inst := range instructions {
		out[i] = inst

		switch in := inst.(type) {
		case *ir.Const:
			known[in.Dest] = in.Value

		case *ir.Load:
			if value, ok := known[in.Name]; ok {
				out[i] = &ir.Const{Dest: in.Dest, Value: value}
				known[in.Dest] = value
				changed = true
			}

		case *ir.Store:
			src := substitute(in.Src)
			if src != in.Src {
				out[i] = &ir.Store{Name: in.Name, Src: src}
			}
			if src.IsLiteral() {
				known[in.Name] = src.Lit
			} else {
				delete(known, in.Name)
			}

		case *ir.LoadProp:
			object := substitute(in.Object)
			if object != in.Object {
				out[i] = &ir.LoadProp{Dest: in.Dest, Object: object, Property: in.Property}
			}

		case *ir.StoreProp:
			object := substitute(in.Object)
			src := substitute(in.Src)
			if object != in.Object || src != in.Src {
				out[i] = &ir.StoreProp{Object: object, Property: in.Property, Src: src}
			}

		case *ir.Binary:
			left := substitute(in.Left)
			right := substitute(in.Right)
			if left != in.Left || right != in.Right {
				out[i] = &ir.Binary{Op: in.Op, Dest: in.Dest, Left: left, Right: right}
			}

		case *ir.Unary:
			operand := substitute(in.Operand)
			if operand != in.Operand {
				out[i] = &ir.Unary{Op: in.Op, Dest: in.Dest, Operand: operand}
			}

		case *ir.Copy:
			src := substitute(in.Src)
			if src != in.Src {
				out[i] = &ir.Copy{Dest: in.Dest, Src: src}
			}
			// A COPY destination is never tracked. The short-circuit
			// lowering writes the result temporary on both sides of a skip
			// label, and only one side executes.
			delete(known, in.Dest)

		case *ir.JumpIfTrue:
			cond := substitute(in.Cond)
			if cond != in.Cond {
				out[i] = &ir.JumpIfTrue{Cond: cond, Target: in.Target}
			}

		case *ir.JumpIfFalse:
			cond := substitute(in.Cond)
			if cond != in.Cond {
				out[i] = &ir.JumpIfFalse{Cond: cond, Target: in.Target}
			}

		case *ir.Call:
			if args, ok := substituteArgs(in.Args, substitute); ok {
				out[i] = &ir.Call{Dest: in.Dest, Func: in.Func, Args: args}
			}
			delete(known, in.Dest)

		case *ir.CallIndirect:
			if args, ok := substituteArgs(in.Args, substitute); ok {
				out[i] = &ir.CallIndirect{Dest: in.Dest, Callee: in.Callee, Args: args}
			}
			delete(known, in.Dest)

		case *ir.Return:
			if in.HasValue {
				value := substitute(in.Value)
				if value != in.Value {
					out[i] = &ir.Return{HasValue: true, Value: value}
				}
			}

		case *ir.FunctionStart:
			known = make(map[string]interface{})

		case *ir.BlockStart:
			known = make(map[string]interface{})
		}
	}

	return out, changed
}

// substituteArgs applies substitute to each argument, reporting whether any
// argument changed.
func substituteArgs(args []ir.Operand, substitute func(ir.Operand) ir.Operand) ([]ir.Operand, bool) {
	out := make([]ir.Operand, len(args))
	any := false
	for i, arg := range args {
		out[i] = substitute(arg)
		if out[i] != arg {
			any = true
		}
	}
	if !any {
		return nil, false
	}
	return out, true
}
