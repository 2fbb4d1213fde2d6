// Package symtable implements a scoped symbol table: a stack of scopes
// with offset discipline, historical retention of exited scopes, and a
// persistent procedure-definition store.
//
// Symbol is a common header plus a tagged-variant payload rather than a
// single record with optional fields: VARIABLE/PARAMETER share varPayload,
// CONSTANT gets constPayload, PROCEDURE/FUNCTION get procPayload,
// STRING_LITERAL gets stringPayload.
package symtable

import (
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/token"
)

// EntryType is the kind of a declared name.
type EntryType int

const (
	VARIABLE EntryType = iota
	CONSTANT
	PROCEDURE
	FUNCTION
	PARAMETER
	TYPESYM
	STRINGLITERAL
)

func (e EntryType) String() string {
	switch e {
	case VARIABLE:
		return "VARIABLE"
	case CONSTANT:
		return "CONSTANT"
	case PROCEDURE:
		return "PROCEDURE"
	case FUNCTION:
		return "FUNCTION"
	case PARAMETER:
		return "PARAMETER"
	case TYPESYM:
		return "TYPE"
	case STRINGLITERAL:
		return "STRING_LITERAL"
	default:
		return "UNKNOWN"
	}
}

// ParameterMode is the passing mode of a procedure/function parameter.
type ParameterMode int

const (
	ModeIn ParameterMode = iota // default
	ModeOut
	ModeInOut
)

func (m ParameterMode) String() string {
	switch m {
	case ModeOut:
		return "OUT"
	case ModeInOut:
		return "IN OUT"
	default:
		return "IN"
	}
}

// payload is the kind-specific data a Symbol carries. Implemented by
// varPayload, constPayload, procPayload and stringPayload.
type payload interface{ isPayload() }

// varPayload backs VARIABLE and PARAMETER symbols.
type varPayload struct {
	VarType     definitions.VarType
	Offset      int // signed bytes from BP, within the activation record
	Size        int
	IsParameter bool
}

func (varPayload) isPayload() {}

// constPayload backs CONSTANT symbols.
type constPayload struct {
	VarType definitions.VarType
	Value   string // literal text, as it should appear as a TAC/ASM operand
}

func (constPayload) isPayload() {}

// procPayload backs PROCEDURE and FUNCTION symbols.
type procPayload struct {
	Params       []*Symbol
	Modes        map[string]ParameterMode
	SizeOfLocals int
	SizeOfParams int
	ReturnType   definitions.VarType // FUNCTION only
	IsFunction   bool
}

func (procPayload) isPayload() {}

// stringPayload backs STRING_LITERAL symbols (interned string constants).
type stringPayload struct {
	ConstValue string
}

func (stringPayload) isPayload() {}

// Symbol is a declared name: a common header (name, declaring token, kind,
// scope depth) plus a kind-specific payload.
type Symbol struct {
	Name     string
	Token    token.Token
	Kind     EntryType
	Depth    int
	payload  payload
}

// --- constructors ---

// NewVariable constructs a VARIABLE symbol.
func NewVariable(name string, tok token.Token, depth int, vt definitions.VarType, offset int) *Symbol {
	return &Symbol{
		Name: name, Token: tok, Kind: VARIABLE, Depth: depth,
		payload: varPayload{VarType: vt, Offset: offset, Size: definitions.SizeOf(vt)},
	}
}

// NewParameter constructs a PARAMETER symbol.
func NewParameter(name string, tok token.Token, depth int, vt definitions.VarType, offset int) *Symbol {
	return &Symbol{
		Name: name, Token: tok, Kind: PARAMETER, Depth: depth,
		payload: varPayload{VarType: vt, Offset: offset, Size: definitions.SizeOf(vt), IsParameter: true},
	}
}

// NewConstant constructs a CONSTANT symbol.
func NewConstant(name string, tok token.Token, depth int, vt definitions.VarType, value string) *Symbol {
	return &Symbol{
		Name: name, Token: tok, Kind: CONSTANT, Depth: depth,
		payload: constPayload{VarType: vt, Value: value},
	}
}

// NewProcedure constructs a PROCEDURE symbol (IsFunction false). FUNCTION
// symbols come from NewFunction.
func NewProcedure(name string, tok token.Token, depth int) *Symbol {
	return &Symbol{
		Name: name, Token: tok, Kind: PROCEDURE, Depth: depth,
		payload: procPayload{Modes: make(map[string]ParameterMode)},
	}
}

// NewFunction constructs a FUNCTION symbol.
func NewFunction(name string, tok token.Token, depth int, returnType definitions.VarType) *Symbol {
	return &Symbol{
		Name: name, Token: tok, Kind: FUNCTION, Depth: depth,
		payload: procPayload{Modes: make(map[string]ParameterMode), ReturnType: returnType, IsFunction: true},
	}
}

// NewStringLiteral constructs a STRING_LITERAL symbol (no offset/size).
func NewStringLiteral(label, value string) *Symbol {
	return &Symbol{
		Name: label, Kind: STRINGLITERAL,
		payload: stringPayload{ConstValue: value},
	}
}

// --- payload accessors; each panics if called on the wrong Kind. ---

func (s *Symbol) varPayload() varPayload {
	p, ok := s.payload.(varPayload)
	if !ok {
		panic("symtable: " + s.Kind.String() + " symbol has no variable payload")
	}
	return p
}

func (s *Symbol) procPayload() *procPayload {
	p, ok := s.payload.(procPayload)
	if !ok {
		panic("symtable: " + s.Kind.String() + " symbol has no procedure payload")
	}
	return &p
}

// VarType returns the semantic type of a VARIABLE/PARAMETER/CONSTANT
// symbol.
func (s *Symbol) VarType() definitions.VarType {
	switch s.Kind {
	case VARIABLE, PARAMETER:
		return s.varPayload().VarType
	case CONSTANT:
		return s.payload.(constPayload).VarType
	default:
		return definitions.UnknownType
	}
}

// Offset returns the frame-relative offset of a VARIABLE/PARAMETER symbol.
// ok is false for any other kind.
func (s *Symbol) Offset() (int, bool) {
	if s.Kind != VARIABLE && s.Kind != PARAMETER {
		return 0, false
	}
	return s.varPayload().Offset, true
}

// Size returns the byte size of a VARIABLE/PARAMETER symbol.
func (s *Symbol) Size() int {
	if s.Kind != VARIABLE && s.Kind != PARAMETER {
		return 0
	}
	return s.varPayload().Size
}

// IsParameter reports whether this is a PARAMETER symbol.
func (s *Symbol) IsParameter() bool {
	return s.Kind == PARAMETER
}

// ConstValue returns the literal text of a CONSTANT symbol.
func (s *Symbol) ConstValue() string {
	if s.Kind != CONSTANT {
		return ""
	}
	return s.payload.(constPayload).Value
}

// StringValue returns the decoded value of a STRING_LITERAL symbol.
func (s *Symbol) StringValue() string {
	if s.Kind != STRINGLITERAL {
		return ""
	}
	return s.payload.(stringPayload).ConstValue
}

// Params returns the ordered parameter-symbol list of a PROCEDURE/FUNCTION
// symbol, in declaration order.
func (s *Symbol) Params() []*Symbol {
	return s.procPayload().Params
}

// ParamMode returns the passing mode of a named parameter of a
// PROCEDURE/FUNCTION symbol.
func (s *Symbol) ParamMode(name string) ParameterMode {
	return s.procPayload().Modes[name]
}

// SizeOfLocals returns the total byte size of a procedure/function's
// locals plus compiler temporaries.
func (s *Symbol) SizeOfLocals() int { return s.procPayload().SizeOfLocals }

// SizeOfParams returns the total byte size of a procedure/function's
// parameters.
func (s *Symbol) SizeOfParams() int { return s.procPayload().SizeOfParams }

// ReturnType returns a FUNCTION symbol's return type.
func (s *Symbol) ReturnType() definitions.VarType { return s.procPayload().ReturnType }

// IsFunction reports whether a PROCEDURE/FUNCTION symbol is a function.
func (s *Symbol) IsFunction() bool { return s.procPayload().IsFunction }

// --- mutators used while building a procedure symbol during parsing ---

// SetParams installs the ordered parameter list and mode map. Called once
// by the parser after all OneArgSpec productions for a procedure header
// have been processed and offsets assigned.
func (s *Symbol) SetParams(params []*Symbol, modes map[string]ParameterMode, sizeOfParams int) {
	p := s.procPayload()
	p.Params = params
	p.Modes = modes
	p.SizeOfParams = sizeOfParams
	s.payload = *p
}

// SetSizeOfLocals sets the cumulative size of locals + temporaries
// outright, replacing whatever GrowLocals has accumulated. The parser
// itself only uses GrowLocals.
func (s *Symbol) SetSizeOfLocals(n int) {
	p := s.procPayload()
	p.SizeOfLocals = n
	s.payload = *p
}

// GrowLocals adds delta bytes to SizeOfLocals, used incrementally as each
// local/temp is allocated rather than computed once at the end.
func (s *Symbol) GrowLocals(delta int) {
	p := s.procPayload()
	p.SizeOfLocals += delta
	s.payload = *p
}
