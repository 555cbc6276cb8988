// Package ir defines the three-address intermediate representation and the
// generator that lowers an AST into it.
//
// The IR is a flat, ordered instruction list. There are no basic blocks and
// no nesting: control flow is expressed entirely through LABEL, JUMP,
// JUMP_IF_TRUE, and JUMP_IF_FALSE instructions referencing label names.
// Compiler-introduced temporaries carry the reserved "%t" prefix; '%' is not
// in the identifier alphabet, so a temporary can never collide with a user
// binding. That reservation is what lets the optimizer tell values it may
// discard apart from user-visible bindings it must preserve.
package ir

import (
	"strconv"
	"strings"
)

// TempPrefix is the reserved prefix for compiler-introduced temporaries.
const TempPrefix = "%t"

// IsTemp reports whether name is a compiler temporary.
func IsTemp(name string) bool {
	return strings.HasPrefix(name, TempPrefix)
}

// OperandKind discriminates the three operand shapes.
type OperandKind int

const (
	OperandTemp OperandKind = iota
	OperandVar
	OperandLiteral
)

// Operand is one source operand of an instruction: a temporary, a variable
// name, or (after constant propagation) an inline literal value.
type Operand struct {
	Kind OperandKind
	Name string      // temp or variable name; empty for literals
	Lit  interface{} // float64, string, bool, or nil; only for literals
}

// Temp makes a temporary operand.
func Temp(name string) Operand { return Operand{Kind: OperandTemp, Name: name} }

// Var makes a variable operand.
func Var(name string) Operand { return Operand{Kind: OperandVar, Name: name} }

// Lit makes a literal operand.
func Lit(value interface{}) Operand { return Operand{Kind: OperandLiteral, Lit: value} }

// NameOf makes the operand matching a name returned by an expression visit:
// a temp operand for reserved-prefix names, a variable operand otherwise.
func NameOf(name string) Operand {
	if IsTemp(name) {
		return Temp(name)
	}
	return Var(name)
}

// IsLiteral reports whether the operand is an inline literal.
func (o Operand) IsLiteral() bool { return o.Kind == OperandLiteral }

// String renders the operand as it appears in instruction listings.
func (o Operand) String() string {
	if o.Kind == OperandLiteral {
		return FormatValue(o.Lit)
	}
	return o.Name
}

// FormatValue renders a literal value: numbers in shortest decimal form,
// strings quoted, booleans as true/false, nil as null.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		return "?"
	}
}

// BinaryOp enumerates the binary arithmetic and comparison operations.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNeq
)

// String returns the operation's target-notation mnemonic.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	default:
		return "unknown"
	}
}

// IsComparison reports whether the operation yields a boolean.
func (op BinaryOp) IsComparison() bool {
	return op >= OpLt
}

// UnaryOp enumerates the unary operations.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	default:
		return "unknown"
	}
}

// Instruction is one three-address instruction. The set of implementations
// is closed; every consumer dispatches with an exhaustive type switch, and an
// unhandled case is a bug surfaced by the consumer's own error type.
type Instruction interface {
	// String renders a debug listing line (opcode-first, uppercase). The
	// code generator produces the target notation separately.
	String() string
	isInstruction()
}

// Const defines a temporary with a literal value.
type Const struct {
	Dest  string
	Value interface{}
}

// Load reads a variable into a temporary.
type Load struct {
	Dest string
	Name string
}

// Store writes a value into a named variable.
type Store struct {
	Name string
	Src  Operand
}

// LoadProp reads object.Property into a temporary.
type LoadProp struct {
	Dest     string
	Object   Operand
	Property string
}

// StoreProp writes a value into object.Property.
type StoreProp struct {
	Object   Operand
	Property string
	Src      Operand
}

// Binary computes Dest = Left op Right.
type Binary struct {
	Op    BinaryOp
	Dest  string
	Left  Operand
	Right Operand
}

// Unary computes Dest = op Operand.
type Unary struct {
	Op      UnaryOp
	Dest    string
	Operand Operand
}

// Copy duplicates a value into another temporary.
type Copy struct {
	Dest string
	Src  Operand
}

// Label marks a jump target.
type Label struct {
	Name string
}

// Jump transfers control unconditionally.
type Jump struct {
	Target string
}

// JumpIfTrue transfers control when the condition is truthy.
type JumpIfTrue struct {
	Cond   Operand
	Target string
}

// JumpIfFalse transfers control when the condition is falsy.
type JumpIfFalse struct {
	Cond   Operand
	Target string
}

// Call invokes a function by name.
type Call struct {
	Dest string
	Func string
	Args []Operand
}

// CallIndirect invokes a computed callee value.
type CallIndirect struct {
	Dest   string
	Callee Operand
	Args   []Operand
}

// Return leaves the current function, optionally with a value.
type Return struct {
	HasValue bool
	Value    Operand
}

// FunctionStart opens a function body.
type FunctionStart struct {
	Name   string
	Params []string
}

// FunctionEnd closes the matching FunctionStart.
type FunctionEnd struct {
	Name string
}

// BlockStart opens a lexical block.
type BlockStart struct{}

// BlockEnd closes the matching BlockStart.
type BlockEnd struct{}

func (*Const) isInstruction()         {}
func (*Load) isInstruction()          {}
func (*Store) isInstruction()         {}
func (*LoadProp) isInstruction()      {}
func (*StoreProp) isInstruction()     {}
func (*Binary) isInstruction()        {}
func (*Unary) isInstruction()         {}
func (*Copy) isInstruction()          {}
func (*Label) isInstruction()         {}
func (*Jump) isInstruction()          {}
func (*JumpIfTrue) isInstruction()    {}
func (*JumpIfFalse) isInstruction()   {}
func (*Call) isInstruction()          {}
func (*CallIndirect) isInstruction()  {}
func (*Return) isInstruction()        {}
func (*FunctionStart) isInstruction() {}
func (*FunctionEnd) isInstruction()   {}
func (*BlockStart) isInstruction()    {}
func (*BlockEnd) isInstruction()      {}

func (i *Const) String() string {
	return "CONST " + i.Dest + ", " + FormatValue(i.Value)
}

func (i *Load) String() string {
	return "LOAD " + i.Dest + ", " + i.Name
}

func (i *Store) String() string {
	return "STORE " + i.Name + ", " + i.Src.String()
}

func (i *LoadProp) String() string {
	return "LOAD_PROP " + i.Dest + ", " + i.Object.String() + "." + i.Property
}

func (i *StoreProp) String() string {
	return "STORE_PROP " + i.Object.String() + "." + i.Property + ", " + i.Src.String()
}

func (i *Binary) String() string {
	return strings.ToUpper(i.Op.String()) + " " + i.Dest + ", " + i.Left.String() + ", " + i.Right.String()
}

func (i *Unary) String() string {
	return strings.ToUpper(i.Op.String()) + " " + i.Dest + ", " + i.Operand.String()
}

func (i *Copy) String() string {
	return "COPY " + i.Dest + ", " + i.Src.String()
}

func (i *Label) String() string {
	return "LABEL " + i.Name
}

func (i *Jump) String() string {
	return "JUMP " + i.Target
}

func (i *JumpIfTrue) String() string {
	return "JUMP_IF_TRUE " + i.Cond.String() + ", " + i.Target
}

func (i *JumpIfFalse) String() string {
	return "JUMP_IF_FALSE " + i.Cond.String() + ", " + i.Target
}

func (i *Call) String() string {
	return "CALL " + i.Dest + ", " + i.Func + "(" + joinOperands(i.Args) + ")"
}

func (i *CallIndirect) String() string {
	return "CALL_INDIRECT " + i.Dest + ", " + i.Callee.String() + "(" + joinOperands(i.Args) + ")"
}

func (i *Return) String() string {
	if i.HasValue {
		return "RETURN " + i.Value.String()
	}
	return "RETURN"
}

func (i *FunctionStart) String() string {
	return "FUNCTION_START " + i.Name + "(" + strings.Join(i.Params, ", ") + ")"
}

func (i *FunctionEnd) String() string {
	return "FUNCTION_END " + i.Name
}

func (i *BlockStart) String() string {
	return "BLOCK_START"
}

func (i *BlockEnd) String() string {
	return "BLOCK_END"
}

func joinOperands(ops []Operand) string {
	parts := make([]string, len(ops))
	for idx, op := range ops {
		parts[idx] = op.String()
	}
	return strings.Join(parts, ", ")
}
