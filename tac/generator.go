package tac

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/pkg/errors"
)

// Generator buffers emitted TAC instructions and allocates temporaries.
// It holds no relationship to the parser's control flow beyond the calls
// the parser's semantic actions make into it.
type Generator struct {
	log *ctx.Context

	instructions []Instruction
	nextTemp     int
	tempOffsets  map[int]int // temp number -> frame offset, reset each EmitProcStart

	stringDefs  map[string]string // label -> value, insertion order tracked separately
	stringOrder []string

	programEntry string
	haveEntry    bool

	labelCounter int
}

// New creates an empty Generator.
func New(c *ctx.Context) *Generator {
	if c == nil {
		c = ctx.Discard()
	}
	return &Generator{log: c, stringDefs: make(map[string]string), tempOffsets: make(map[int]int)}
}

// NewTemp allocates the next "_t<n>" name, monotonically, within the
// current procedure (reset by EmitProcStart).
func (g *Generator) NewTemp() Place {
	g.nextTemp++
	return Temp(g.nextTemp)
}

// NewLabel mints a fresh internal branch-target label, for a documented
// extension point: if/while are not emitted by this parser, but the
// generator supports it for hand-authored/round-tripped TAC.
func (g *Generator) NewLabel() string {
	g.labelCounter++
	return fmt.Sprintf("_L%d", g.labelCounter)
}

func (g *Generator) emit(ins Instruction) {
	g.instructions = append(g.instructions, ins)
}

// EmitProcStart emits "proc name" and resets the temporary counter.
func (g *Generator) EmitProcStart(name string) {
	g.nextTemp = 0
	g.tempOffsets = make(map[int]int)
	g.emit(Instruction{Op: OpProcBegin, Name: name})
}

// SetTempOffset records the frame offset backing temporary number temp,
// assigned by the parser's local-allocation discipline at the moment the
// temp is minted. asmgen reads this back to place a _t<n>
// operand in the activation record; it is meaningless once a TAC file has
// been serialized and re-read, since the textual form carries no offset.
func (g *Generator) SetTempOffset(temp, offset int) {
	g.tempOffsets[temp] = offset
}

// TempOffset returns the frame offset recorded for temp, if any.
func (g *Generator) TempOffset(temp int) (int, bool) {
	o, ok := g.tempOffsets[temp]
	return o, ok
}

// TempState snapshots the temp-numbering bookkeeping that EmitProcStart
// resets. A nested procedure's own EmitProcStart/EmitProcEnd pair clobbers
// the enclosing procedure's in-progress temp state, so the parser saves one
// of these before descending into a nested Procedure production and
// restores it afterward: nested procedures emit TAC depth-first before the
// enclosing body's remaining statements resume.
type TempState struct {
	next    int
	offsets map[int]int
}

// SaveTempState captures the current temp state.
func (g *Generator) SaveTempState() TempState {
	return TempState{next: g.nextTemp, offsets: g.tempOffsets}
}

// RestoreTempState reinstates a previously saved temp state.
func (g *Generator) RestoreTempState(s TempState) {
	g.nextTemp = s.next
	g.tempOffsets = s.offsets
}

// EmitProcEnd emits "endp name".
func (g *Generator) EmitProcEnd(name string) {
	g.emit(Instruction{Op: OpProcEnd, Name: name})
}

// EmitProgramStart records the program entry-point name; it is written as
// the final line of output by WriteFile.
func (g *Generator) EmitProgramStart(name string) {
	g.programEntry = name
	g.haveEntry = true
}

// EmitBinaryOp emits "dest = l op r".
func (g *Generator) EmitBinaryOp(op Opcode, dest, l, r Place) {
	g.emit(Instruction{Op: op, Dest: &dest, Src1: &l, Src2: &r})
}

// EmitUnaryOp emits "dest = op operand".
func (g *Generator) EmitUnaryOp(op Opcode, dest, operand Place) {
	g.emit(Instruction{Op: op, Dest: &dest, Src1: &operand})
}

// EmitAssignment emits "dest = src".
func (g *Generator) EmitAssignment(dest, src Place) {
	g.emit(Instruction{Op: OpAssign, Dest: &dest, Src1: &src})
}

// EmitPush emits "push place" for IN parameters and "push @place" for
// OUT/INOUT parameters.
func (g *Generator) EmitPush(place Place, mode symtable.ParameterMode) {
	p := place
	if mode == symtable.ModeOut || mode == symtable.ModeInOut {
		p = AddressOf(place)
	}
	g.emit(Instruction{Op: OpPush, Src1: &p})
}

// EmitCall emits "call name".
func (g *Generator) EmitCall(name string) {
	g.emit(Instruction{Op: OpCall, Name: name})
}

// EmitCallN emits "call name, n" with an explicit actual-argument count.
func (g *Generator) EmitCallN(name string, n int) {
	g.emit(Instruction{Op: OpCall, Name: name, CallArgCount: n, HasArgCount: true})
}

// EmitRead emits "rdi var".
func (g *Generator) EmitRead(place Place) {
	g.emit(Instruction{Op: OpRead, Src1: &place})
}

// EmitWrite emits "wri place".
func (g *Generator) EmitWrite(place Place) {
	g.emit(Instruction{Op: OpWrite, Src1: &place})
}

// EmitWriteStringByLabel emits "wrs label".
func (g *Generator) EmitWriteStringByLabel(label string) {
	g.emit(Instruction{Op: OpWriteString, Name: label})
}

// EmitNewLine emits "wrln".
func (g *Generator) EmitNewLine() {
	g.emit(Instruction{Op: OpNewLine})
}

// EmitLabel emits a bare "<label>:" line, for the if/while extension point.
func (g *Generator) EmitLabel(label string) {
	g.emit(Instruction{Op: OpLabel, Label: label})
}

// EmitGoto emits "goto label".
func (g *Generator) EmitGoto(label string) {
	g.emit(Instruction{Op: OpGoto, Name: label})
}

// AddStringDefinition stores the label->value mapping for later
// serialization as a ".ASCIZ" line. Calling it twice with the same label
// overwrites the value; callers should use SymbolTable.AddStringLiteral to
// avoid minting duplicate labels in the first place.
func (g *Generator) AddStringDefinition(label, value string) {
	if _, seen := g.stringDefs[label]; !seen {
		g.stringOrder = append(g.stringOrder, label)
	}
	g.stringDefs[label] = value
}

// Instructions returns the buffered instruction list in emission order.
func (g *Generator) Instructions() []Instruction { return g.instructions }

// StringDefinitions returns the label->value map in first-seen order.
func (g *Generator) StringDefinitions() []struct{ Label, Value string } {
	out := make([]struct{ Label, Value string }, 0, len(g.stringOrder))
	for _, l := range g.stringOrder {
		out = append(out, struct{ Label, Value string }{l, g.stringDefs[l]})
	}
	return out
}

// ErrNoProgramEntry is returned by WriteFile/Write when no program entry
// point was ever recorded.
var ErrNoProgramEntry = errors.New("tac: no program entry point set")

// Write serializes string definitions, then the instruction buffer, then
// the final "start <entry>" line, to w.
func (g *Generator) Write(w io.Writer) error {
	if !g.haveEntry {
		return ErrNoProgramEntry
	}
	bw := bufio.NewWriter(w)
	for _, sd := range g.StringDefinitions() {
		if _, err := fmt.Fprintf(bw, "%s: .ASCIZ %q\n", sd.Label, sd.Value+"$"); err != nil {
			return errors.Wrap(err, "writing string definition")
		}
	}
	for _, ins := range g.instructions {
		if _, err := fmt.Fprintln(bw, ins.String()); err != nil {
			return errors.Wrap(err, "writing instruction")
		}
	}
	if _, err := fmt.Fprintf(bw, "start %s\n", g.programEntry); err != nil {
		return errors.Wrap(err, "writing program-entry line")
	}
	return errors.Wrap(bw.Flush(), "flushing TAC output")
}

// WriteFile opens path and writes the TAC output to it, closing the file
// on every exit path.
func (g *Generator) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating TAC file %q", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing TAC file %q", path)
		}
	}()
	return g.Write(f)
}

// ProgramEntry returns the recorded program-entry name and whether it was
// ever set.
func (g *Generator) ProgramEntry() (string, bool) { return g.programEntry, g.haveEntry }
