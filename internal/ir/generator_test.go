package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/tinylang/internal/lexer"
	"github.com/hassan/tinylang/internal/parser"
)

func generateSource(t *testing.T, source string) []Instruction {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	require.NoError(t, err)
	program, err := parser.Parse(tokens)
	require.NoError(t, err)
	instructions, err := NewGenerator().Generate(program)
	require.NoError(t, err)
	return instructions
}

func listing(instructions []Instruction) []string {
	out := make([]string, len(instructions))
	for i, inst := range instructions {
		out[i] = inst.String()
	}
	return out
}

func TestGenerator_VarDecl(t *testing.T) {
	got := listing(generateSource(t, "var x = 1 + 2;"))
	assert.Equal(t, []string{
		"CONST %t0, 1",
		"CONST %t1, 2",
		"ADD %t2, %t0, %t1",
		"STORE x, %t2",
	}, got)
}

func TestGenerator_UninitializedVarEmitsNothing(t *testing.T) {
	assert.Empty(t, generateSource(t, "var x;"))
}

func TestGenerator_LoadAndStore(t *testing.T) {
	got := listing(generateSource(t, "var y = x;"))
	assert.Equal(t, []string{
		"LOAD %t0, x",
		"STORE y, %t0",
	}, got)
}

func TestGenerator_IfElse(t *testing.T) {
	got := listing(generateSource(t, "if (c) { x = 1; } else { x = 2; }"))
	assert.Equal(t, []string{
		"LOAD %t0, c",
		"JUMP_IF_FALSE %t0, else_0",
		"BLOCK_START",
		"CONST %t1, 1",
		"STORE x, %t1",
		"BLOCK_END",
		"JUMP end_if_1",
		"LABEL else_0",
		"BLOCK_START",
		"CONST %t2, 2",
		"STORE x, %t2",
		"BLOCK_END",
		"LABEL end_if_1",
	}, got)
}

func TestGenerator_While(t *testing.T) {
	got := listing(generateSource(t, "while (x < 3) { x = x + 1; }"))
	assert.Equal(t, []string{
		"LABEL while_start_0",
		"LOAD %t0, x",
		"CONST %t1, 3",
		"LT %t2, %t0, %t1",
		"JUMP_IF_FALSE %t2, while_end_1",
		"BLOCK_START",
		"LOAD %t3, x",
		"CONST %t4, 1",
		"ADD %t5, %t3, %t4",
		"STORE x, %t5",
		"BLOCK_END",
		"JUMP while_start_0",
		"LABEL while_end_1",
	}, got)
}

func TestGenerator_For(t *testing.T) {
	got := listing(generateSource(t, "for (var i = 0; i < 2; i = i + 1) { }"))
	assert.Equal(t, []string{
		"CONST %t0, 0",
		"STORE i, %t0",
		"LABEL for_start_0",
		"LOAD %t1, i",
		"CONST %t2, 2",
		"LT %t3, %t1, %t2",
		"JUMP_IF_FALSE %t3, for_end_2",
		"BLOCK_START",
		"BLOCK_END",
		"LABEL for_update_1",
		"LOAD %t4, i",
		"CONST %t5, 1",
		"ADD %t6, %t4, %t5",
		"STORE i, %t6",
		"JUMP for_start_0",
		"LABEL for_end_2",
	}, got)
}

func TestGenerator_ForWithoutCondition(t *testing.T) {
	got := listing(generateSource(t, "for (;;) { }"))
	assert.Equal(t, []string{
		"LABEL for_start_0",
		"BLOCK_START",
		"BLOCK_END",
		"LABEL for_update_1",
		"JUMP for_start_0",
		"LABEL for_end_2",
	}, got)
}

func TestGenerator_ShortCircuit(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "and skips on false",
			source: "var r = a && b;",
			want: []string{
				"LOAD %t1, a",
				"COPY %t0, %t1",
				"JUMP_IF_FALSE %t0, and_skip_0",
				"LOAD %t2, b",
				"COPY %t0, %t2",
				"LABEL and_skip_0",
				"STORE r, %t0",
			},
		},
		{
			name:   "or skips on true",
			source: "var r = a || b;",
			want: []string{
				"LOAD %t1, a",
				"COPY %t0, %t1",
				"JUMP_IF_TRUE %t0, or_skip_0",
				"LOAD %t2, b",
				"COPY %t0, %t2",
				"LABEL or_skip_0",
				"STORE r, %t0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listing(generateSource(t, tt.source)))
		})
	}
}

func TestGenerator_FunctionAndCall(t *testing.T) {
	got := listing(generateSource(t, "function id(v) { return v; }\nvar r = id(7);"))
	assert.Equal(t, []string{
		"FUNCTION_START id(v)",
		"LOAD %t0, v",
		"RETURN %t0",
		"FUNCTION_END id",
		"CONST %t1, 7",
		"CALL %t2, id(%t1)",
		"STORE r, %t2",
	}, got)
}

func TestGenerator_IndirectCall(t *testing.T) {
	got := listing(generateSource(t, "obj.run(1);"))
	assert.Equal(t, []string{
		"LOAD %t0, obj",
		"LOAD_PROP %t1, %t0.run",
		"CONST %t2, 1",
		"CALL_INDIRECT %t3, %t1(%t2)",
	}, got)
}

func TestGenerator_MemberAccess(t *testing.T) {
	got := listing(generateSource(t, "var n = obj.size;"))
	assert.Equal(t, []string{
		"LOAD %t0, obj",
		"LOAD_PROP %t1, %t0.size",
		"STORE n, %t1",
	}, got)
}

func TestGenerator_Unary(t *testing.T) {
	got := listing(generateSource(t, "var a = -x; var b = !y;"))
	assert.Equal(t, []string{
		"LOAD %t0, x",
		"NEG %t1, %t0",
		"STORE a, %t1",
		"LOAD %t2, y",
		"NOT %t3, %t2",
		"STORE b, %t3",
	}, got)
}

func TestGenerator_BareReturn(t *testing.T) {
	got := listing(generateSource(t, "function f() { return; }"))
	assert.Equal(t, []string{
		"FUNCTION_START f()",
		"RETURN",
		"FUNCTION_END f",
	}, got)
}

func TestGenerator_CountersResetPerGenerate(t *testing.T) {
	tokens, err := lexer.Tokenize("var x = 1;")
	require.NoError(t, err)
	program, err := parser.Parse(tokens)
	require.NoError(t, err)

	g := NewGenerator()
	first, err := g.Generate(program)
	require.NoError(t, err)
	second, err := g.Generate(program)
	require.NoError(t, err)

	assert.Equal(t, listing(first), listing(second))
}
