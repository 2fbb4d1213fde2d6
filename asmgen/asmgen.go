// Package asmgen lowers the in-memory TAC buffer built by package tac/
// parser into 16-bit real-mode MASM-style assembly text. Unlike the
// TAC-file round trip, this package never goes back through
// text: it walks the same *tac.Generator and *symtable.SymbolTable the
// parser just populated, because only those carry the per-temporary frame
// offsets (tac.Generator.TempOffset) and per-procedure activation-record
// sizes (symtable.Symbol.SizeOfLocals/SizeOfParams) that code generation
// needs. A TAC file read back from disk (package tac's Read/ReadFile) is a
// verification artifact, not an asmgen input.
package asmgen

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
	"github.com/pkg/errors"
)

// Generator lowers a tac.Generator's instruction buffer into assembly.
type Generator struct {
	log *ctx.Context
}

// New creates an asmgen Generator.
func New(c *ctx.Context) *Generator {
	if c == nil {
		c = ctx.Discard()
	}
	return &Generator{log: c}
}

// Unit bundles the inputs a full program's worth of assembly needs: the
// emitted TAC, the string-literal table, the global variables, and the
// persistent procedure symbol store (for activation-record sizes and
// parameter counts).
type Unit struct {
	Instructions []tac.Instruction
	Strings      []struct{ Label, Value string }
	Globals      []*symtable.Symbol
	Procedures   map[string]*symtable.Symbol
	TempOffsets  func(temp int) (int, bool)
	Entry        string
}

// FromGenerator builds a Unit from a finished tac.Generator and
// SymbolTable, the normal path from the driver.
func FromGenerator(g *tac.Generator, table *symtable.SymbolTable) Unit {
	entry, _ := g.ProgramEntry()
	return Unit{
		Instructions: g.Instructions(),
		Strings:      g.StringDefinitions(),
		Globals:      table.GlobalVariables(),
		Procedures:   table.ProcedureDefinitions(),
		TempOffsets:  g.TempOffset,
		Entry:        entry,
	}
}

// entryProcName is the label of the synthetic entry stub that the loader
// actually jumps to; it CALLs the compiled program's designated start
// procedure and then performs a DOS terminate.
const entryProcName = "MAIN"

// dataDirective returns the MASM uninitialized-storage directive for a
// global variable's size.
func dataDirective(size int) string {
	switch size {
	case 1:
		return "DB ?"
	case 4:
		return "DD ?"
	default:
		return "DW ?"
	}
}

// Write renders u as a full .ASM source listing.
func (gen *Generator) Write(w io.Writer, u Unit) error {
	bw := bufio.NewWriter(w)
	l := &lowerer{out: bw, procs: u.Procedures, tempOffset: u.TempOffsets, log: gen.log}

	fmt.Fprintln(bw, ".MODEL SMALL")
	fmt.Fprintln(bw, ".STACK 100h")
	fmt.Fprintln(bw, ".DATA")
	for _, sd := range u.Strings {
		fmt.Fprintf(bw, "%s DB \"%s$\"\n", sd.Label, sd.Value)
	}
	for _, g := range u.Globals {
		fmt.Fprintf(bw, "%s %s\n", g.Name, dataDirective(g.Size()))
	}
	fmt.Fprintln(bw, ".CODE")

	for _, ins := range u.Instructions {
		if err := l.lower(ins); err != nil {
			return errors.Wrapf(err, "lowering %q", ins.String())
		}
	}

	l.emitEntryStub(u.Entry)

	fmt.Fprintf(bw, "END %s\n", entryProcName)
	return errors.Wrap(bw.Flush(), "flushing ASM output")
}

// WriteFile opens path and writes u's assembly listing to it, closing the
// file on every exit path.
func (gen *Generator) WriteFile(path string, u Unit) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating ASM file %q", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing ASM file %q", path)
		}
	}()
	return gen.Write(f, u)
}
