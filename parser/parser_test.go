package parser

import (
	"strings"
	"testing"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) (*Parser, *symtable.SymbolTable, *tac.Generator) {
	t.Helper()
	table := symtable.New(nil)
	gen := tac.New(nil)
	p := New(nil, src, table, gen, WithTree())
	p.Parse()
	return p, table, gen
}

func instructionStrings(gen *tac.Generator) []string {
	var out []string
	for _, ins := range gen.Instructions() {
		out = append(out, ins.String())
	}
	return out
}

func TestParse_ArithmeticAssignment(t *testing.T) {
	src := `
procedure Main is
	X : INTEGER;
	Y : INTEGER;
begin
	X := 2;
	Y := X + 3 * 4;
end Main;
`
	p, _, gen := compile(t, src)
	require.False(t, p.HasErrors(), "syntax=%v semantic=%v", p.Syntax.All(), p.Semantic.All())

	// X and Y are declared at Main's body scope, depth 1, which
	// symtable.GlobalDepth treats as outermost/global (spec Scenario A: "a
	// = 1", "b = _t1", not frame-relative forms), so they are addressed by
	// name rather than by a _BP offset.
	ins := instructionStrings(gen)
	assert.Contains(t, ins, "X = 2")
	assert.Contains(t, ins, "_t1 = 3 MUL 4")
	assert.Contains(t, ins, "_t2 = X ADD _t1")
	assert.Contains(t, ins, "Y = _t2")

	entry, ok := gen.ProgramEntry()
	assert.True(t, ok)
	assert.Equal(t, "Main", entry)
}

func TestParse_UndeclaredVariableIsSemanticError(t *testing.T) {
	src := `
procedure Main is
begin
	X := 1;
end Main;
`
	p, _, _ := compile(t, src)
	require.False(t, p.Semantic.Empty())
	assert.Contains(t, p.Semantic.All()[0].Message, "undeclared identifier")
}

func TestParse_EndNameMismatchIsSemanticError(t *testing.T) {
	src := `
procedure Main is
begin
	null;
end Oops;
`
	p, _, _ := compile(t, src)
	require.False(t, p.Semantic.Empty())
	assert.Contains(t, p.Semantic.All()[0].Message, "end-name mismatch")
}

func TestParse_ProcedureCallPushesArgsInReverseDeclarationOrder(t *testing.T) {
	src := `
procedure Main is
	A : INTEGER;
	B : INTEGER;

	procedure Helper(X : in INTEGER; Y : out INTEGER) is
	begin
		null;
	end Helper;
begin
	Helper(A, B);
end Main;
`
	p, table, gen := compile(t, src)
	require.False(t, p.HasErrors(), "syntax=%v semantic=%v", p.Syntax.All(), p.Semantic.All())

	helper := table.GetProcedureDefinition("Helper")
	require.NotNil(t, helper)
	require.Len(t, helper.Params(), 2)
	assert.Equal(t, symtable.ModeIn, helper.ParamMode("X"))
	assert.Equal(t, symtable.ModeOut, helper.ParamMode("Y"))
	// Rightmost formal gets the smallest positive offset.
	offY, _ := helper.Params()[1].Offset()
	offX, _ := helper.Params()[0].Offset()
	assert.Equal(t, 4, offY)
	assert.Greater(t, offX, offY)

	// A and B are Main's own locals at depth 1, addressed by name rather
	// than by a _BP offset (see TestParse_ArithmeticAssignment).
	ins := instructionStrings(gen)
	assert.Contains(t, ins, "push A")
	assert.Contains(t, ins, "push @B")
	assert.Contains(t, ins, "call Helper, 2")

	// B (rightmost formal Y) pushes before A (leftmost formal X): reverse
	// declaration order, immediately followed by the call.
	pushB := indexOf(ins, "push @B")
	pushA := indexOf(ins, "push A")
	callIdx := indexOf(ins, "call Helper, 2")
	require.True(t, pushB >= 0 && pushA >= 0 && callIdx >= 0)
	assert.Less(t, pushB, pushA)
	assert.Equal(t, pushA+1, callIdx)
}

func indexOf(ss []string, target string) int {
	for i, s := range ss {
		if s == target {
			return i
		}
	}
	return -1
}

func TestParse_ArgumentCountMismatchIsSemanticError(t *testing.T) {
	src := `
procedure Main is
	procedure Helper(X : in INTEGER) is
	begin
		null;
	end Helper;
begin
	Helper(1, 2);
end Main;
`
	p, _, _ := compile(t, src)
	require.False(t, p.Semantic.Empty())
	assert.Contains(t, p.Semantic.All()[0].Message, "expects 1 argument")
}

func TestParse_StringLiteralInterningDedupes(t *testing.T) {
	src := `
procedure Main is
begin
	put("Hi");
	put("Hi");
	put("Bye");
end Main;
`
	p, table, gen := compile(t, src)
	require.False(t, p.HasErrors(), "syntax=%v semantic=%v", p.Syntax.All(), p.Semantic.All())

	assert.Len(t, table.StringLiterals(), 2)
	wrs := 0
	for _, ins := range gen.Instructions() {
		if strings.HasPrefix(ins.String(), "wrs ") {
			wrs++
		}
	}
	assert.Equal(t, 3, wrs)
}

func TestParse_BarePutLnEmitsNewLineOnly(t *testing.T) {
	src := `
procedure Main is
begin
	put("Hi");
	putln;
end Main;
`
	p, _, gen := compile(t, src)
	require.False(t, p.HasErrors(), "syntax=%v semantic=%v", p.Syntax.All(), p.Semantic.All())
	ins := instructionStrings(gen)
	wrln := 0
	for _, s := range ins {
		if s == "wrln" {
			wrln++
		}
	}
	assert.Equal(t, 1, wrln)
}

func TestParse_DivisionByImmediate(t *testing.T) {
	src := `
procedure Main is
	X : INTEGER;
begin
	X := 10 / 2;
end Main;
`
	p, _, gen := compile(t, src)
	require.False(t, p.HasErrors(), "syntax=%v semantic=%v", p.Syntax.All(), p.Semantic.All())
	ins := instructionStrings(gen)
	assert.Contains(t, ins, "_t1 = 10 DIV 2")
}
