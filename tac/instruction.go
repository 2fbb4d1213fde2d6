package tac

import "fmt"

// Instruction is one TAC record: an optional label, an opcode, an optional
// destination, up to two source operands, and source-line metadata.
type Instruction struct {
	Label string
	Op    Opcode

	Dest *Place
	Src1 *Place
	Src2 *Place

	// Name is used by PROC/ENDP/CALL/GOTO/WRS/IF_*/START, which refer to a
	// procedure, string label, or branch label rather than a Place.
	Name string

	// CallArgCount is the optional actual-argument count on a CALL line.
	CallArgCount int
	HasArgCount  bool

	// StringValue holds the decoded value of a STRING_DEF instruction.
	StringValue string

	SourceLine int
}

// String renders the instruction in the textual TAC form. This mirrors the
// grammar recognized by ReadFile.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpStringDef:
		return fmt.Sprintf("%s: .ASCIZ %q", ins.Name, ins.StringValue)
	case OpLabel:
		return ins.Label + ":"
	case OpProcBegin:
		return "proc " + ins.Name
	case OpProcEnd:
		return "endp " + ins.Name
	case OpAssign:
		return fmt.Sprintf("%s = %s", ins.Dest, ins.Src1)
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpRem, OpAnd, OpOr:
		return fmt.Sprintf("%s = %s %s %s", ins.Dest, ins.Src1, ins.Op, ins.Src2)
	case OpNot, OpUMinus:
		return fmt.Sprintf("%s = %s %s", ins.Dest, ins.Op, ins.Src1)
	case OpRead:
		return "rdi " + ins.Src1.String()
	case OpWrite:
		return "wri " + ins.Src1.String()
	case OpWriteString:
		return "wrs " + ins.Name
	case OpNewLine:
		return "wrln"
	case OpPush:
		return "push " + ins.Src1.String()
	case OpCall:
		if ins.HasArgCount {
			return fmt.Sprintf("call %s, %d", ins.Name, ins.CallArgCount)
		}
		return "call " + ins.Name
	case OpGoto:
		return "goto " + ins.Name
	case OpIfEq, OpIfNeq, OpIfLt, OpIfLeq, OpIfGt, OpIfGeq:
		cond := map[Opcode]string{
			OpIfEq: "eq", OpIfNeq: "neq", OpIfLt: "lt", OpIfLeq: "leq", OpIfGt: "gt", OpIfGeq: "geq",
		}[ins.Op]
		return fmt.Sprintf("if_%s %s, %s, %s", cond, ins.Src1, ins.Src2, ins.Name)
	case OpRetrieve:
		return fmt.Sprintf("%s = retrieve", ins.Dest)
	case OpReturn:
		if ins.Src1 != nil {
			return "return " + ins.Src1.String()
		}
		return "return"
	case OpProgramStart:
		return "start " + ins.Name
	default:
		return "; unknown instruction"
	}
}
