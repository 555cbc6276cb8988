// Package pipeline threads one source string through all six compilation
// phases and packages every intermediate artifact, successful or not, into a
// single Result for inspection.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/hassan/tinylang/internal/codegen"
	"github.com/hassan/tinylang/internal/ir"
	"github.com/hassan/tinylang/internal/lexer"
	"github.com/hassan/tinylang/internal/optimizer"
	"github.com/hassan/tinylang/internal/parser"
	"github.com/hassan/tinylang/internal/parser/ast"
	"github.com/hassan/tinylang/internal/semantic"
)

// Phase tags carried by diagnostics.
const (
	PhaseLexical  = "Lexical Analysis"
	PhaseSyntax   = "Syntax Analysis"
	PhaseSemantic = "Semantic Analysis"
	PhaseIR       = "IR Generation"
	PhaseCodeGen  = "Code Generation"
	PhaseUnknown  = "Unknown"
)

// Diagnostic is one phase-tagged finding. Pos is the zero Position when the
// failure carries no location, which String renders without a position.
type Diagnostic struct {
	Phase   string
	Message string
	Pos     lexer.Position
}

// String renders the diagnostic in the form front-ends display:
// "[phase] message at line L, column C", or "[phase] message" without a
// position.
func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return "[" + d.Phase + "] " + d.Message + " at " + d.Pos.String()
	}
	return "[" + d.Phase + "] " + d.Message
}

// Result is the outcome of one Compile call. Artifacts produced before a
// failing phase stay attached, so a caller can show valid tokens and an AST
// alongside, say, a semantic diagnostic list. A Result is constructed fresh
// per call and never mutated after return.
type Result struct {
	Success     bool
	Tokens      []lexer.Token
	AST         *ast.Program
	IR          []ir.Instruction
	OptimizedIR []ir.Instruction
	Code        string
	Diagnostics []Diagnostic
}

// Compile runs the phases in order: tokenize, parse, analyze, generate IR,
// optimize, emit. Lexical, syntax, IR, and code-generation failures stop the
// pipeline with exactly one diagnostic; semantic errors are collected and,
// when any exist, recorded one diagnostic per error before IR generation.
// Anything else that escapes a phase is caught and tagged Unknown.
func Compile(source string) (result *Result) {
	result = &Result{}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Phase:   PhaseUnknown,
				Message: fmt.Sprint(r),
			})
		}
	}()

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return fail(result, Diagnostic{
				Phase:   PhaseLexical,
				Message: lexErr.Message,
				Pos:     lexErr.Pos,
			})
		}
		return fail(result, Diagnostic{Phase: PhaseUnknown, Message: err.Error()})
	}
	result.Tokens = tokens

	program, err := parser.Parse(tokens)
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			return fail(result, Diagnostic{
				Phase:   PhaseSyntax,
				Message: synErr.Message,
				Pos:     synErr.Token.Position,
			})
		}
		return fail(result, Diagnostic{Phase: PhaseUnknown, Message: err.Error()})
	}
	result.AST = program

	if semErrs := semantic.NewAnalyzer().Analyze(program); len(semErrs) > 0 {
		for _, semErr := range semErrs {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Phase:   PhaseSemantic,
				Message: semErr.Message,
			})
		}
		return result
	}

	instructions, err := ir.NewGenerator().Generate(program)
	if err != nil {
		var genErr *ir.GenerationError
		if errors.As(err, &genErr) {
			d := Diagnostic{Phase: PhaseIR, Message: genErr.Message}
			if genErr.Node != nil {
				d.Pos = genErr.Node.Pos()
			}
			return fail(result, d)
		}
		return fail(result, Diagnostic{Phase: PhaseUnknown, Message: err.Error()})
	}
	result.IR = instructions

	result.OptimizedIR = optimizer.Optimize(instructions)

	code, err := codegen.Generate(result.OptimizedIR)
	if err != nil {
		var cgErr *codegen.Error
		if errors.As(err, &cgErr) {
			return fail(result, Diagnostic{Phase: PhaseCodeGen, Message: cgErr.Message})
		}
		return fail(result, Diagnostic{Phase: PhaseUnknown, Message: err.Error()})
	}
	result.Code = code

	result.Success = true
	return result
}

func fail(result *Result, d Diagnostic) *Result {
	result.Success = false
	result.Diagnostics = append(result.Diagnostics, d)
	return result
}
