package tac

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadFile opens path and parses it as a TAC file, closing the file on
// every exit path.
func ReadFile(path string) ([]Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening TAC file %q", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses r as a TAC file into a structured instruction list. It never
// raises on an unrecognized opcode; unknown lines are recorded as
// OpUnknown and parsing continues, following an "accumulate, don't panic"
// discipline.
func Read(r io.Reader) ([]Instruction, error) {
	var out []Instruction
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ins := parseLine(line)
		ins.SourceLine = lineNo
		out = append(out, ins)
	}
	if err := sc.Err(); err != nil {
		return out, errors.Wrap(err, "reading TAC file")
	}
	return out, nil
}

func parseLine(line string) Instruction {
	switch {
	case strings.HasPrefix(line, "proc "):
		return Instruction{Op: OpProcBegin, Name: strings.TrimSpace(line[len("proc "):])}
	case strings.HasPrefix(line, "endp "):
		return Instruction{Op: OpProcEnd, Name: strings.TrimSpace(line[len("endp "):])}
	case strings.HasPrefix(line, "start ") || strings.HasPrefix(strings.ToUpper(line), "START PROC "):
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "start "), "START PROC "))
		return Instruction{Op: OpProgramStart, Name: name}
	case strings.HasPrefix(line, "rdi "):
		return Instruction{Op: OpRead, Src1: parsePlace(strings.TrimSpace(line[len("rdi "):]))}
	case strings.HasPrefix(line, "wri "):
		return Instruction{Op: OpWrite, Src1: parsePlace(strings.TrimSpace(line[len("wri "):]))}
	case strings.HasPrefix(line, "wrs "):
		return Instruction{Op: OpWriteString, Name: strings.TrimSpace(line[len("wrs "):])}
	case line == "wrln":
		return Instruction{Op: OpNewLine}
	case strings.HasPrefix(line, "push "):
		return parsePush(line)
	case strings.HasPrefix(line, "call "):
		return parseCall(line)
	case strings.HasPrefix(line, "goto "):
		return Instruction{Op: OpGoto, Name: strings.TrimSpace(line[len("goto "):])}
	case strings.HasPrefix(line, "if_"):
		return parseIf(line)
	case strings.HasPrefix(line, "return"):
		return parseReturn(line)
	case strings.Contains(line, ": .ASCIZ") || strings.Contains(line, ":.ASCIZ"):
		return parseStringDef(line)
	case strings.HasSuffix(line, ":") && !strings.Contains(line, "="):
		return Instruction{Op: OpLabel, Label: strings.TrimSuffix(line, ":")}
	case strings.Contains(line, "="):
		return parseAssignLike(line)
	default:
		return Instruction{Op: OpUnknown, Name: line}
	}
}

func parseStringDef(line string) Instruction {
	idx := strings.Index(line, ":")
	label := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx+1:])
	rest = strings.TrimPrefix(rest, ".ASCIZ")
	rest = strings.TrimSpace(rest)
	value := rest
	if len(rest) >= 2 && (rest[0] == '"' || rest[0] == '\'') {
		if unquoted, err := strconv.Unquote(normalizeQuotes(rest)); err == nil {
			value = unquoted
		} else {
			value = strings.Trim(rest, `"'`)
		}
	}
	return Instruction{Op: OpStringDef, Name: label, StringValue: value}
}

func normalizeQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return `"` + s[1:len(s)-1] + `"`
	}
	return s
}

func parsePush(line string) Instruction {
	arg := strings.TrimSpace(line[len("push "):])
	if strings.HasPrefix(arg, "@") {
		p := parsePlace(strings.TrimPrefix(arg, "@"))
		wrapped := AddressOf(*p)
		return Instruction{Op: OpPush, Src1: &wrapped}
	}
	return Instruction{Op: OpPush, Src1: parsePlace(arg)}
}

func parseCall(line string) Instruction {
	arg := strings.TrimSpace(line[len("call "):])
	if idx := strings.Index(arg, ","); idx >= 0 {
		name := strings.TrimSpace(arg[:idx])
		n, err := strconv.Atoi(strings.TrimSpace(arg[idx+1:]))
		if err == nil {
			return Instruction{Op: OpCall, Name: name, CallArgCount: n, HasArgCount: true}
		}
		return Instruction{Op: OpCall, Name: name}
	}
	return Instruction{Op: OpCall, Name: arg}
}

var condOpcodes = map[string]Opcode{
	"eq": OpIfEq, "neq": OpIfNeq, "lt": OpIfLt, "leq": OpIfLeq, "gt": OpIfGt, "geq": OpIfGeq,
}

func parseIf(line string) Instruction {
	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return Instruction{Op: OpUnknown, Name: line}
	}
	cond := strings.TrimPrefix(line[:sp], "if_")
	op, ok := condOpcodes[cond]
	if !ok {
		return Instruction{Op: OpUnknown, Name: line}
	}
	rest := strings.TrimSpace(line[sp+1:])
	parts := splitCommaArgs(rest)
	if len(parts) != 3 {
		return Instruction{Op: OpUnknown, Name: line}
	}
	a, b := parsePlace(parts[0]), parsePlace(parts[1])
	return Instruction{Op: op, Src1: a, Src2: b, Name: parts[2]}
}

func parseReturn(line string) Instruction {
	arg := strings.TrimSpace(strings.TrimPrefix(line, "return"))
	if arg == "" {
		return Instruction{Op: OpReturn}
	}
	p := parsePlace(arg)
	return Instruction{Op: OpReturn, Src1: p}
}

// parseAssignLike handles "dest = src", "dest = l OP r", "dest = UOP src"
// and "dest = retrieve".
func parseAssignLike(line string) Instruction {
	idx := strings.Index(line, "=")
	dest := strings.TrimSpace(line[:idx])
	rhs := strings.TrimSpace(line[idx+1:])
	destPlace := parsePlace(dest)

	if rhs == "retrieve" {
		return Instruction{Op: OpRetrieve, Dest: destPlace}
	}

	fields := strings.Fields(rhs)
	switch len(fields) {
	case 1:
		return Instruction{Op: OpAssign, Dest: destPlace, Src1: parsePlace(fields[0])}
	case 2:
		if op, ok := unaryMnemonics[fields[0]]; ok {
			return Instruction{Op: op, Dest: destPlace, Src1: parsePlace(fields[1])}
		}
		return Instruction{Op: OpUnknown, Name: line}
	case 3:
		if op, ok := binaryMnemonics[fields[1]]; ok {
			return Instruction{Op: op, Dest: destPlace, Src1: parsePlace(fields[0]), Src2: parsePlace(fields[2])}
		}
		return Instruction{Op: OpUnknown, Name: line}
	default:
		return Instruction{Op: OpUnknown, Name: line}
	}
}

var binaryMnemonics = map[string]Opcode{
	"ADD": OpAdd, "SUB": OpSub, "MUL": OpMul, "DIV": OpDiv,
	"MOD": OpMod, "REM": OpRem, "AND": OpAnd, "OR": OpOr,
}

var unaryMnemonics = map[string]Opcode{
	"NOT": OpNot, "UMINUS": OpUMinus,
}

func splitCommaArgs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// parsePlace converts a textual operand back into a *Place. Purely
// numeric tokens become integer literals; "_t<n>" becomes a Temp;
// "_BP+k"/"_BP-k" becomes a Frame; "@name" becomes an AddressOf; anything
// else is kept as an identifier (Global) string.
func parsePlace(s string) *Place {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		inner := parsePlace(s[1:])
		p := AddressOf(*inner)
		return &p
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		p := LiteralInt(n)
		return &p
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, ".eE") {
		p := LiteralReal(f)
		return &p
	}
	if strings.HasPrefix(s, "_t") {
		if n, err := strconv.Atoi(s[2:]); err == nil {
			p := Temp(n)
			return &p
		}
	}
	if strings.HasPrefix(s, "_BP+") {
		if n, err := strconv.Atoi(s[4:]); err == nil {
			p := Frame(n)
			return &p
		}
	}
	if strings.HasPrefix(s, "_BP-") {
		if n, err := strconv.Atoi(s[4:]); err == nil {
			p := Frame(-n)
			return &p
		}
	}
	p := Global(s)
	return &p
}
