// Package codegen maps the optimized IR 1:1 onto lines of a simplified,
// goto-based textual target notation. It performs no optimization and no
// operand validation beyond opcode dispatch; the instruction list is assumed
// well-formed by the time it arrives here.
package codegen

import (
	"strings"

	"github.com/hassan/tinylang/internal/ir"
)

// preamble opens every emitted artifact and declares the one runtime
// primitive the target environment provides.
const preamble = "# tinylang target v1\nextern print/1\n\n"

// indentUnit is one nesting level of emitted text.
const indentUnit = "  "

// Error is a code-generation failure: an instruction the emitter does not
// recognize. It should not occur while the IR package's instruction set and
// this package's dispatch stay in sync.
type Error struct {
	Message     string
	Instruction ir.Instruction
}

func (e *Error) Error() string {
	return e.Message
}

// Generate emits the target text for an instruction list. Each instruction
// maps to one line (FUNCTION_START to two); indentation tracks the
// FUNCTION/BLOCK bracketing.
func Generate(instructions []ir.Instruction) (string, error) {
	g := &emitter{}
	g.out.WriteString(preamble)

	for _, inst := range instructions {
		if err := g.emit(inst); err != nil {
			return "", err
		}
	}

	return g.out.String(), nil
}

type emitter struct {
	out   strings.Builder
	level int
}

func (g *emitter) line(text string) {
	for i := 0; i < g.level; i++ {
		g.out.WriteString(indentUnit)
	}
	g.out.WriteString(text)
	g.out.WriteByte('\n')
}

func (g *emitter) dedent() {
	if g.level > 0 {
		g.level--
	}
}

func (g *emitter) emit(inst ir.Instruction) error {
	switch in := inst.(type) {
	case *ir.Const:
		g.line(in.Dest + " = const " + ir.FormatValue(in.Value))
	case *ir.Load:
		g.line(in.Dest + " = load " + in.Name)
	case *ir.Store:
		g.line("store " + in.Name + ", " + in.Src.String())
	case *ir.LoadProp:
		g.line(in.Dest + " = getprop " + in.Object.String() + "." + in.Property)
	case *ir.StoreProp:
		g.line("setprop " + in.Object.String() + "." + in.Property + ", " + in.Src.String())
	case *ir.Binary:
		g.line(in.Dest + " = " + in.Op.String() + " " + in.Left.String() + ", " + in.Right.String())
	case *ir.Unary:
		g.line(in.Dest + " = " + in.Op.String() + " " + in.Operand.String())
	case *ir.Copy:
		g.line(in.Dest + " = " + in.Src.String())
	case *ir.Label:
		g.line(in.Name + ":")
	case *ir.Jump:
		g.line("goto " + in.Target)
	case *ir.JumpIfTrue:
		g.line("if_true " + in.Cond.String() + " goto " + in.Target)
	case *ir.JumpIfFalse:
		g.line("if_false " + in.Cond.String() + " goto " + in.Target)
	case *ir.Call:
		g.line(in.Dest + " = call " + in.Func + "(" + operandList(in.Args) + ")")
	case *ir.CallIndirect:
		g.line(in.Dest + " = call_indirect " + in.Callee.String() + "(" + operandList(in.Args) + ")")
	case *ir.Return:
		if in.HasValue {
			g.line("return " + in.Value.String())
		} else {
			g.line("return")
		}
	case *ir.FunctionStart:
		g.line("function " + in.Name + "(" + strings.Join(in.Params, ", ") + "):")
		g.level++
		g.line("enter " + in.Name)
	case *ir.FunctionEnd:
		g.dedent()
		g.line("end function")
	case *ir.BlockStart:
		g.line("begin")
		g.level++
	case *ir.BlockEnd:
		g.dedent()
		g.line("end")
	default:
		return &Error{Message: "unsupported instruction", Instruction: inst}
	}
	return nil
}

func operandList(args []ir.Operand) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, ", ")
}
