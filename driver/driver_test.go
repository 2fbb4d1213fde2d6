package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSrc = `
procedure Main is
	X : INTEGER;
begin
	X := 1 + 2;
	put("done");
end Main;
`

func TestRun_WritesTACAndASMOnSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.ada")
	require.NoError(t, os.WriteFile(src, []byte(sampleSrc), 0o644))

	sum, err := Run(nil, Options{
		InputPath: src,
		TACPath:   filepath.Join(dir, "main.tac"),
		ASMPath:   filepath.Join(dir, "main.asm"),
		VerifyTAC: true,
	})
	require.NoError(t, err)
	require.False(t, sum.HasErrors(), "lexical=%v syntax=%v semantic=%v", sum.Lexical, sum.Syntax, sum.Semantic)

	tacBytes, err := os.ReadFile(filepath.Join(dir, "main.tac"))
	require.NoError(t, err)
	assert.Contains(t, string(tacBytes), "start Main")

	asmBytes, err := os.ReadFile(filepath.Join(dir, "main.asm"))
	require.NoError(t, err)
	assert.Contains(t, string(asmBytes), "Main PROC")
	assert.Contains(t, string(asmBytes), "call Main")
	assert.Contains(t, string(asmBytes), "int 21h")
	assert.Contains(t, string(asmBytes), "END MAIN")
}

func TestRun_WritesTokenListingWhenRequested(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.ada")
	require.NoError(t, os.WriteFile(src, []byte(sampleSrc), 0o644))

	sum, err := Run(nil, Options{
		InputPath:        src,
		TokenListingPath: filepath.Join(dir, "main.lst"),
	})
	require.NoError(t, err)
	require.False(t, sum.HasErrors())
	assert.NotEmpty(t, sum.TokenListing)
	assert.Empty(t, sum.TACPath, "no TAC path was requested")
	assert.Empty(t, sum.ASMPath, "no ASM path was requested")

	lstBytes, err := os.ReadFile(filepath.Join(dir, "main.lst"))
	require.NoError(t, err)
	assert.Equal(t, sum.TokenListing, string(lstBytes))
	assert.Contains(t, string(lstBytes), "Main")
}

func TestRun_SemanticErrorSkipsCodegen(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.ada")
	require.NoError(t, os.WriteFile(src, []byte("procedure Main is begin X := 1; end Main;"), 0o644))

	sum, err := Run(nil, Options{
		InputPath: src,
		TACPath:   filepath.Join(dir, "main.tac"),
		ASMPath:   filepath.Join(dir, "main.asm"),
	})
	require.NoError(t, err)
	assert.True(t, sum.HasErrors())
	assert.Empty(t, sum.TACPath)
	_, statErr := os.Stat(filepath.Join(dir, "main.tac"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingInputFileReturnsError(t *testing.T) {
	_, err := Run(nil, Options{InputPath: "/no/such/file.ada"})
	assert.Error(t, err)
}
