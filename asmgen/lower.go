package asmgen

import (
	"fmt"
	"io"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
)

// lowerer holds the per-unit state needed to translate one TAC instruction
// at a time: which procedure is currently open (for its activation-record
// sizes) and how to resolve a temporary's frame offset.
type lowerer struct {
	out        io.Writer
	procs      map[string]*symtable.Symbol
	tempOffset func(int) (int, bool)
	log        *ctx.Context

	current *symtable.Symbol // procedure currently between PROC/ENDP
}

func (l *lowerer) emit(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "\t"+format+"\n", args...)
}

func (l *lowerer) emitRaw(line string) {
	fmt.Fprintln(l.out, line)
}

// lower translates one TAC instruction into zero or more assembly lines.
func (l *lowerer) lower(ins tac.Instruction) error {
	switch ins.Op {
	case tac.OpStringDef:
		// String defs were already emitted into .DATA from the Unit's
		// Strings slice; the instruction stream also carries one for the
		// TAC-file round trip, but asmgen has nothing further to do here.
		return nil
	case tac.OpProcBegin:
		return l.lowerProcBegin(ins.Name)
	case tac.OpProcEnd:
		return l.lowerProcEnd(ins.Name)
	case tac.OpAssign:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("mov %s, ax", l.operand(*ins.Dest))
	case tac.OpAdd:
		l.lowerArith("add", ins)
	case tac.OpSub:
		l.lowerArith("sub", ins)
	case tac.OpAnd:
		l.lowerArith("and", ins)
	case tac.OpOr:
		l.lowerArith("or", ins)
	case tac.OpMul:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("mov bx, %s", l.operand(*ins.Src2))
		l.emit("imul bx")
		l.emit("mov %s, ax", l.operand(*ins.Dest))
	case tac.OpDiv:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("cwd")
		l.emit("mov bx, %s", l.operand(*ins.Src2))
		l.emit("idiv bx")
		l.emit("mov %s, ax", l.operand(*ins.Dest))
	case tac.OpMod, tac.OpRem:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("cwd")
		l.emit("mov bx, %s", l.operand(*ins.Src2))
		l.emit("idiv bx")
		l.emit("mov %s, dx", l.operand(*ins.Dest))
	case tac.OpNot:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("not ax")
		l.emit("mov %s, ax", l.operand(*ins.Dest))
	case tac.OpUMinus:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("neg ax")
		l.emit("mov %s, ax", l.operand(*ins.Dest))
	case tac.OpPush:
		l.lowerPush(*ins.Src1)
	case tac.OpCall:
		l.emit("call %s", ins.Name)
	case tac.OpRead:
		l.emit("call ReadInt")
		l.emit("mov %s, ax", l.operand(*ins.Src1))
	case tac.OpWrite:
		l.emit("mov ax, %s", l.operand(*ins.Src1))
		l.emit("call WriteInt")
	case tac.OpWriteString:
		l.emit("mov dx, OFFSET %s", ins.Name)
		l.emit("call WriteString")
	case tac.OpNewLine:
		l.emit("call WriteLn")
	case tac.OpLabel:
		l.emitRaw(ins.Label + ":")
	case tac.OpGoto:
		l.emit("jmp %s", ins.Name)
	case tac.OpIfEq, tac.OpIfNeq, tac.OpIfLt, tac.OpIfLeq, tac.OpIfGt, tac.OpIfGeq:
		l.lowerCondJump(ins)
	case tac.OpReturn:
		// Handled as part of ENDP's epilogue; a bare RETURN mid-body (not
		// produced by this parser) would need its own jump-to-epilogue
		// label, which this subset does not need.
		return nil
	case tac.OpProgramStart:
		return nil
	default:
		l.log.Log.Warnw("asmgen: no lowering for opcode", "opcode", ins.Op.String())
	}
	return nil
}

func (l *lowerer) lowerArith(mnemonic string, ins tac.Instruction) {
	l.emit("mov ax, %s", l.operand(*ins.Src1))
	l.emit("%s ax, %s", mnemonic, l.operand(*ins.Src2))
	l.emit("mov %s, ax", l.operand(*ins.Dest))
}

// emitEntryStub emits the synthetic loader entry point: it loads DS,
// CALLs the program's designated start procedure, and terminates via the
// DOS "terminate process" service.
func (l *lowerer) emitEntryStub(entryProc string) {
	l.emitRaw(entryProcName + " PROC")
	l.emit("mov ax, @DATA")
	l.emit("mov ds, ax")
	l.emit("call %s", entryProc)
	l.emit("mov ah, 4Ch")
	l.emit("int 21h")
	l.emitRaw(entryProcName + " ENDP")
}

func (l *lowerer) lowerProcBegin(name string) error {
	sym, ok := l.procs[name]
	if !ok {
		l.log.Log.Errorw("asmgen: no procedure symbol for PROC", "name", name)
	}
	l.current = sym
	l.emitRaw(name + " PROC")
	l.emit("push bp")
	l.emit("mov bp, sp")
	if sym != nil && sym.SizeOfLocals() > 0 {
		l.emit("sub sp, %d", sym.SizeOfLocals())
	}
	return nil
}

func (l *lowerer) lowerProcEnd(name string) error {
	sym := l.current
	l.emit("mov sp, bp")
	l.emit("pop bp")
	if sym != nil && sym.SizeOfParams() > 0 {
		l.emit("ret %d", sym.SizeOfParams())
	} else {
		l.emit("ret")
	}
	l.emitRaw(name + " ENDP")
	l.current = nil
	return nil
}

// lowerPush renders a PUSH for both plain and address-of operands. An
// address-of a frame slot needs LEA into a scratch register first; an
// address-of a global can be pushed directly as OFFSET name.
func (l *lowerer) lowerPush(p tac.Place) {
	if p.Kind != tac.PlaceAddressOf {
		l.emit("push %s", l.operand(p))
		return
	}
	inner := *p.Inner
	if inner.Kind == tac.PlaceGlobal {
		l.emit("push OFFSET %s", inner.Name)
		return
	}
	l.emit("lea ax, %s", l.operand(inner))
	l.emit("push ax")
}

var condJumps = map[tac.Opcode]string{
	tac.OpIfEq:  "je",
	tac.OpIfNeq: "jne",
	tac.OpIfLt:  "jl",
	tac.OpIfLeq: "jle",
	tac.OpIfGt:  "jg",
	tac.OpIfGeq: "jge",
}

func (l *lowerer) lowerCondJump(ins tac.Instruction) {
	l.emit("mov ax, %s", l.operand(*ins.Src1))
	l.emit("cmp ax, %s", l.operand(*ins.Src2))
	l.emit("%s %s", condJumps[ins.Op], ins.Name)
}

// operand renders a tac.Place as a MASM-style operand: a frame slot as
// "[BP+k]"/"[BP-k]", a temporary by its recorded frame offset, a global by
// its bare label, a literal as an immediate, and an address-of by
// recursing (callers needing the LEA/OFFSET special case go through
// lowerPush instead of this general form).
func (l *lowerer) operand(p tac.Place) string {
	switch p.Kind {
	case tac.PlaceLiteral:
		return p.String()
	case tac.PlaceFrame:
		return bpOperand(p.FrameOffset)
	case tac.PlaceTemp:
		if off, ok := l.tempOffset(p.Temp); ok {
			return bpOperand(off)
		}
		l.log.Log.Errorw("asmgen: temp has no recorded frame offset", "temp", p.Temp)
		return p.String()
	case tac.PlaceGlobal:
		return p.Name
	case tac.PlaceAddressOf:
		return "OFFSET " + l.operand(*p.Inner)
	default:
		return p.String()
	}
}

func bpOperand(offset int) string {
	if offset >= 0 {
		return fmt.Sprintf("[BP+%d]", offset)
	}
	return fmt.Sprintf("[BP%d]", offset)
}
