package tac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_RoundTripsGeneratorOutput(t *testing.T) {
	g := New(nil)
	g.AddStringDefinition("_S0", "Hi")
	g.EmitProcStart("one")
	a := Global("a")
	one := LiteralInt(1)
	g.EmitAssignment(a, one)
	t1 := g.NewTemp()
	g.EmitBinaryOp(OpAdd, t1, Global("a"), LiteralInt(2))
	g.EmitPush(Global("a"), 1) // OUT-equivalent numeric mode value, see symtable.ModeOut
	g.EmitCall("p")
	g.EmitProcEnd("one")
	g.EmitProgramStart("one")

	var buf strings.Builder
	require.NoError(t, g.Write(&buf))

	instrs, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	var ops []Opcode
	for _, ins := range instrs {
		ops = append(ops, ins.Op)
	}
	assert.Contains(t, ops, OpStringDef)
	assert.Contains(t, ops, OpProcBegin)
	assert.Contains(t, ops, OpAssign)
	assert.Contains(t, ops, OpAdd)
	assert.Contains(t, ops, OpPush)
	assert.Contains(t, ops, OpCall)
	assert.Contains(t, ops, OpProcEnd)
	assert.Equal(t, OpProgramStart, instrs[len(instrs)-1].Op)
}

func TestRead_UnknownOpcodeDoesNotFail(t *testing.T) {
	src := "this is not valid tac\nstart main\n"
	instrs, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, instrs, 2)
	assert.Equal(t, OpUnknown, instrs[0].Op)
	assert.Equal(t, OpProgramStart, instrs[1].Op)
}

func TestRead_CallWithArgCount(t *testing.T) {
	instrs, err := Read(strings.NewReader("call p, 3\n"))
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, "p", instrs[0].Name)
	assert.True(t, instrs[0].HasArgCount)
	assert.Equal(t, 3, instrs[0].CallArgCount)
}

func TestRead_IfCondition(t *testing.T) {
	instrs, err := Read(strings.NewReader("if_eq a, b, L1\n"))
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, OpIfEq, instrs[0].Op)
	assert.Equal(t, "L1", instrs[0].Name)
}

func TestRead_BlankLinesAndCommentsIgnored(t *testing.T) {
	instrs, err := Read(strings.NewReader("\n# a comment\n\nstart main\n"))
	require.NoError(t, err)
	require.Len(t, instrs, 1)
}

func TestRead_PushAddressOf(t *testing.T) {
	instrs, err := Read(strings.NewReader("push @_BP+4\n"))
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	require.Equal(t, PlaceAddressOf, instrs[0].Src1.Kind)
	assert.Equal(t, 4, instrs[0].Src1.Inner.FrameOffset)
}
