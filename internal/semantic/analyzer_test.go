package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/tinylang/internal/lexer"
	"github.com/hassan/tinylang/internal/parser"
	"github.com/hassan/tinylang/internal/parser/ast"
)

func analyzeSource(t *testing.T, source string) []*Error {
	t.Helper()
	program := parseProgram(t, source)
	return NewAnalyzer().Analyze(program)
}

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	require.NoError(t, err)
	program, err := parser.Parse(tokens)
	require.NoError(t, err)
	return program
}

func messages(errs []*Error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestAnalyzer_CleanProgram(t *testing.T) {
	source := `
function add(a, b) {
	return a + b;
}
var total = add(1, 2);
`
	assert.Empty(t, analyzeSource(t, source))
}

func TestAnalyzer_DuplicateDeclaration(t *testing.T) {
	errs := analyzeSource(t, "var x; var x;")
	assert.Equal(t, []string{"duplicate declaration of 'x'"}, messages(errs))
}

func TestAnalyzer_ShadowingIsAllowed(t *testing.T) {
	source := `
var x = 1;
{
	var x = 2;
	x = x + 1;
}
x = x + 1;
`
	assert.Empty(t, analyzeSource(t, source))
}

func TestAnalyzer_UsedBeforeDeclaration(t *testing.T) {
	errs := analyzeSource(t, "var y = x;\nvar x = 1;\ny = y;")
	assert.Equal(t, []string{"'x' used before declaration"}, messages(errs))
}

func TestAnalyzer_UsedBeforeInitialization(t *testing.T) {
	errs := analyzeSource(t, "var x;\nvar y = x;\ny = y;")
	assert.Equal(t, []string{"'x' used before initialization"}, messages(errs))
}

func TestAnalyzer_AssignmentInitializes(t *testing.T) {
	source := "var x;\nx = 1;\nvar y = x;\ny = y;"
	assert.Empty(t, analyzeSource(t, source))
}

func TestAnalyzer_AssignmentDoesNotCountAsUse(t *testing.T) {
	source := `
function f() {
	var x;
	x = 1;
}
f();
`
	errs := analyzeSource(t, source)
	assert.Equal(t, []string{"variable 'x' is declared but never used"}, messages(errs))
}

func TestAnalyzer_InitializerSeesOuterBinding(t *testing.T) {
	// 'var x = x;' inside the block reads the outer x, not the one being
	// declared.
	source := `
var x = 1;
{
	var x = x;
	x = x + 1;
}
x = x + 1;
`
	assert.Empty(t, analyzeSource(t, source))
}

func TestAnalyzer_CallChecks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "undeclared function",
			source: "missing();",
			want:   []string{"call to undeclared function 'missing'"},
		},
		{
			name:   "variable is not callable",
			source: "var x = 1;\nx();",
			want:   []string{"'x' is not a function"},
		},
		{
			name:   "calling marks the function used",
			source: "function f() { return 1; }\nf();",
			want:   nil,
		},
		{
			name:   "print builtin is callable",
			source: "print(42);",
			want:   nil,
		},
		{
			name:   "redeclaring the print builtin",
			source: "var print = 1;",
			want:   []string{"duplicate declaration of 'print'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := analyzeSource(t, tt.source)
			assert.Equal(t, tt.want, nilIfEmpty(messages(errs)))
		})
	}
}

func nilIfEmpty(msgs []string) []string {
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

func TestAnalyzer_UnusedDiagnostics(t *testing.T) {
	source := `
function f(used, ignored) {
	var dead;
	return used;
}
f(1, 2);
`
	errs := analyzeSource(t, source)
	// Declaration order within the function scope: used, ignored, dead.
	assert.Equal(t, []string{
		"parameter 'ignored' is declared but never used",
		"variable 'dead' is declared but never used",
	}, messages(errs))
}

func TestAnalyzer_GlobalsNeverReportedUnused(t *testing.T) {
	assert.Empty(t, analyzeSource(t, "var untouched = 1;"))
}

func TestAnalyzer_ForHeaderScope(t *testing.T) {
	source := `
for (var i = 0; i < 3; i = i + 1) {
	var x = i;
	x = x + 1;
}
`
	assert.Empty(t, analyzeSource(t, source))

	// The header binding is not visible after the loop.
	errs := analyzeSource(t, "for (var i = 0; i < 3; i = i + 1) { }\ni = 5;")
	assert.Equal(t, []string{"'i' used before declaration"}, messages(errs))
}

func TestAnalyzer_MemberPropertyNotResolved(t *testing.T) {
	// Only the object expression is checked; the property name is not a
	// lexical reference.
	source := "var obj;\nobj = 1;\nvar n = obj.size;\nn = n;"
	assert.Empty(t, analyzeSource(t, source))
}

func TestAnalyzer_CollectsAllErrors(t *testing.T) {
	errs := analyzeSource(t, "a = 1;\nb = 2;\nc();")
	assert.Equal(t, []string{
		"'a' used before declaration",
		"'b' used before declaration",
		"call to undeclared function 'c'",
	}, messages(errs))
}

func TestAnalyzer_Determinism(t *testing.T) {
	source := `
function f(p, q, r) {
	var a;
	var b;
	var c;
}
f(1, 2, 3);
`
	program := parseProgram(t, source)

	first := messages(NewAnalyzer().Analyze(program))
	for i := 0; i < 20; i++ {
		again := messages(NewAnalyzer().Analyze(program))
		require.Equal(t, first, again)
	}
}

func TestAnalyzer_FunctionScopeSharesParams(t *testing.T) {
	// The body's top level shares the parameter scope, so re-declaring a
	// parameter there is a duplicate.
	source := `
function f(x) {
	var x;
	return x;
}
f(1);
`
	errs := analyzeSource(t, source)
	assert.Equal(t, []string{"duplicate declaration of 'x'"}, messages(errs))
}
