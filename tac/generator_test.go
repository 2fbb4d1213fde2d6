package tac

import (
	"strings"
	"testing"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemp_MonotonicAndResetByProcStart(t *testing.T) {
	g := New(nil)
	g.EmitProcStart("one")
	a := g.NewTemp()
	b := g.NewTemp()
	assert.Equal(t, "_t1", a.String())
	assert.Equal(t, "_t2", b.String())

	g.EmitProcStart("two")
	c := g.NewTemp()
	assert.Equal(t, "_t1", c.String(), "temp counter resets at each procedure begin")
}

func TestEmitPush_AddressingByMode(t *testing.T) {
	g := New(nil)
	g.EmitPush(Global("x"), symtable.ModeIn)
	g.EmitPush(Global("y"), symtable.ModeOut)
	g.EmitPush(Global("z"), symtable.ModeInOut)

	ins := g.Instructions()
	require.Len(t, ins, 3)
	assert.Equal(t, "push x", ins[0].String())
	assert.Equal(t, "push @y", ins[1].String())
	assert.Equal(t, "push @z", ins[2].String())
}

func TestWrite_FailsWithoutProgramEntry(t *testing.T) {
	g := New(nil)
	var buf strings.Builder
	err := g.Write(&buf)
	assert.ErrorIs(t, err, ErrNoProgramEntry)
}

func TestWrite_EndsWithStartLine(t *testing.T) {
	g := New(nil)
	g.EmitProcStart("one")
	dest := Global("a")
	src := LiteralInt(1)
	g.EmitAssignment(dest, src)
	g.EmitProcEnd("one")
	g.EmitProgramStart("one")

	var buf strings.Builder
	require.NoError(t, g.Write(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "start one", lines[len(lines)-1])
}

func TestWrite_StringDefinitionIncludesTerminator(t *testing.T) {
	g := New(nil)
	g.AddStringDefinition("_S0", "Hi")
	g.EmitProcStart("s")
	g.EmitProcEnd("s")
	g.EmitProgramStart("s")

	var buf strings.Builder
	require.NoError(t, g.Write(&buf))
	assert.Contains(t, buf.String(), `_S0: .ASCIZ "Hi$"`)
}

func TestEmitBinaryOp_Rendering(t *testing.T) {
	g := New(nil)
	dest := Temp(1)
	g.EmitBinaryOp(OpAdd, dest, Global("a"), LiteralInt(2))
	assert.Equal(t, "_t1 = a ADD 2", g.Instructions()[0].String())
}
