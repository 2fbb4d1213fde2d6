package symtable

import (
	"testing"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(name string) token.Token {
	return token.New(definitions.IDENT, name, 1, 1)
}

func TestInsertLookup_DepthMatches(t *testing.T) {
	st := New(nil)
	st.EnterScope() // depth 1
	require.NoError(t, st.Insert(NewVariable("x", tok("x"), 0, definitions.IntType, -2)))

	sym, err := st.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, 1, sym.Depth)
}

func TestShadowing_InnerWins_OuterSurvivesAfterExit(t *testing.T) {
	st := New(nil)
	require.NoError(t, st.Insert(NewVariable("n", tok("n"), 0, definitions.IntType, -2))) // depth 0

	st.EnterScope() // depth 1
	require.NoError(t, st.Insert(NewVariable("n", tok("n"), 0, definitions.IntType, -2)))

	sym, err := st.Lookup("n")
	require.NoError(t, err)
	assert.Equal(t, 1, sym.Depth, "inner declaration should shadow outer")

	st.ExitScope() // back to depth 0

	outer, err := st.LookupCurrentScopeOnly("n", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, outer.Depth)
}

func TestInsert_DuplicateInSameScopeFails(t *testing.T) {
	st := New(nil)
	require.NoError(t, st.Insert(NewVariable("a", tok("a"), 0, definitions.IntType, -2)))
	err := st.Insert(NewVariable("a", tok("a"), 0, definitions.IntType, -4))
	require.Error(t, err)
	var dup *DuplicateSymbolError
	assert.ErrorAs(t, err, &dup)
}

func TestInsert_ShadowFromOuterScopeAllowed(t *testing.T) {
	st := New(nil)
	require.NoError(t, st.Insert(NewVariable("a", tok("a"), 0, definitions.IntType, -2)))
	st.EnterScope()
	err := st.Insert(NewVariable("a", tok("a"), 0, definitions.IntType, -2))
	assert.NoError(t, err)
}

func TestProcedureDefinitions_PersistAfterScopeExit(t *testing.T) {
	st := New(nil)
	proc := NewProcedure("p", tok("p"), 0)
	require.NoError(t, st.Insert(proc))

	st.EnterScope()
	st.ExitScope()

	got := st.GetProcedureDefinition("p")
	require.NotNil(t, got)
	assert.Equal(t, "p", got.Name)
}

func TestAddStringLiteral_InternsByValue(t *testing.T) {
	st := New(nil)
	l1 := st.AddStringLiteral("Hi")
	l2 := st.AddStringLiteral("Hi")
	l3 := st.AddStringLiteral("Bye")

	assert.Equal(t, l1, l2)
	assert.NotEqual(t, l1, l3)
	assert.Equal(t, "_S0", l1)
	assert.Equal(t, "_S1", l3)
}

func TestLookup_NotFound(t *testing.T) {
	st := New(nil)
	_, err := st.Lookup("nope")
	require.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestGlobalVariables_CollectsVarsAtOrBelowGlobalDepth(t *testing.T) {
	st := New(nil)
	require.NoError(t, st.Insert(NewProcedure("Main", tok("Main"), 0)))
	st.EnterScope() // depth 1, the outermost procedure's body: treated as "global"

	require.NoError(t, st.Insert(NewVariable("total", token.New(definitions.IDENT, "total", 2, 2), 0, definitions.IntType, -2)))
	require.NoError(t, st.Insert(NewVariable("flag", token.New(definitions.IDENT, "flag", 3, 2), 0, definitions.BoolType, -3)))
	require.NoError(t, st.Insert(NewConstant("limit", tok("limit"), 0, definitions.IntType, "10")))

	st.EnterScope() // depth 2, a nested procedure's locals are not global
	require.NoError(t, st.Insert(NewVariable("inner", tok("inner"), 0, definitions.IntType, -2)))

	globals := st.GlobalVariables()
	require.Len(t, globals, 2)
	assert.Equal(t, "total", globals[0].Name)
	assert.Equal(t, "flag", globals[1].Name)
}

func TestOffsetDiscipline_Locals(t *testing.T) {
	st := New(nil)
	st.EnterScope()

	// three locals of size 2 each, offsets -2, -4, -6
	offset := -2
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, st.Insert(NewVariable(name, tok(name), 0, definitions.IntType, offset)))
		offset -= 2
	}
	a, _ := st.Lookup("a")
	b, _ := st.Lookup("b")
	c, _ := st.Lookup("c")
	oa, _ := a.Offset()
	ob, _ := b.Offset()
	oc, _ := c.Offset()
	assert.Equal(t, -2, oa)
	assert.Equal(t, -4, ob)
	assert.Equal(t, -6, oc)
}
