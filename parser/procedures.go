package parser

import (
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/diag"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/token"
)

// argSpec is one flattened (name, mode, type) tuple collected while parsing
// an ArgList, before offsets are assigned.
type argSpec struct {
	name string
	tok  token.Token
	mode symtable.ParameterMode
	vt   definitions.VarType
}

// parseProcedure implements:
//
//	Procedure → `procedure` Ident [ Args ] `is` DeclarativePart { Procedure } `begin` SeqOfStatements `end` Ident `;`.
func (p *Parser) parseProcedure() {
	p.trace("Procedure")
	p.state = stateHeader
	procTok, _ := p.expect(definitions.PROCEDURE)
	nameTok, ok := p.expect(definitions.IDENT)
	if !ok {
		return
	}
	name := nameTok.Lexeme

	procSym := symtable.NewProcedure(name, procTok, p.table.CurrentDepth())
	if err := p.table.Insert(procSym); err != nil {
		p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column, "%s", err.Error())
	}
	p.procStack = append(p.procStack, procSym)
	defer func() { p.procStack = p.procStack[:len(p.procStack)-1] }()

	p.table.EnterScope()
	savedLocal, savedParam := p.localOffset, p.paramOffset
	p.localOffset = -2
	p.paramOffset = 4

	var args []argSpec
	if p.at(definitions.LPAREN) {
		args = p.parseArgs()
	}
	p.installParams(procSym, args)

	p.expect(definitions.IS)

	p.state = stateDeclarations
	p.gen.EmitProcStart(name)
	p.parseDeclarativePart()

	p.expect(definitions.BEGIN)
	p.state = stateBody
	p.parseSeqOfStatements()

	endTok, _ := p.expect(definitions.END)
	endNameTok, hasEndName := p.expect(definitions.IDENT)
	if hasEndName && endNameTok.Lexeme != name {
		p.Semantic.Add(diag.Semantic, endTok.Line, endTok.Column,
			"procedure end-name mismatch: expected %q but found %q", name, endNameTok.Lexeme)
	}
	p.expect(definitions.SEMI, definitions.PROCEDURE, definitions.END)

	p.gen.EmitProcEnd(name)

	p.table.ExitScope()
	p.localOffset, p.paramOffset = savedLocal, savedParam
	p.state = stateOutside

	// The first top-level procedure parsed is, by convention, the program
	// entry point. procStack still holds this procedure here (the deferred
	// pop runs on return), so a top-level procedure sees a length of 1.
	if len(p.procStack) == 1 && !p.haveEntry() {
		p.gen.EmitProgramStart(name)
	}
}

func (p *Parser) haveEntry() bool {
	_, ok := p.gen.ProgramEntry()
	return ok
}

// currentProc returns the procedure symbol whose body is currently being
// parsed, or nil at the top level (there is always at least one by the
// time a declarative part or statement is reached).
func (p *Parser) currentProc() *symtable.Symbol {
	if len(p.procStack) == 0 {
		return nil
	}
	return p.procStack[len(p.procStack)-1]
}

// newTemp mints a fresh compiler temporary and gives it a frame slot
// alongside the procedure's declared locals, in the same negative-offset
// region. Every temp is treated as word-sized regardless of the
// expression's actual type.
func (p *Parser) newTemp() tac.Place {
	t := p.gen.NewTemp()
	offset := p.allocLocal(2)
	p.gen.SetTempOffset(t.Temp, offset)
	return t
}

// allocLocal assigns the next local/temporary frame slot of size bytes,
// growing the enclosing procedure's SizeOfLocals, and returns the assigned
// offset. Locals start at -2 and grow downward.
func (p *Parser) allocLocal(size int) int {
	offset := p.localOffset
	p.localOffset -= size
	if proc := p.currentProc(); proc != nil {
		proc.GrowLocals(size)
	}
	return offset
}

// parseArgs implements:
//
//	Args → `(` ArgList `)`.
//	ArgList → OneArgSpec { `;` OneArgSpec }.
//	OneArgSpec → [Mode] IdentifierList `:` TypeMark.
func (p *Parser) parseArgs() []argSpec {
	p.trace("Args")
	p.expect(definitions.LPAREN)
	var specs []argSpec
	for {
		specs = append(specs, p.parseOneArgSpec()...)
		if p.at(definitions.SEMI) {
			p.advance()
			continue
		}
		break
	}
	p.expect(definitions.RPAREN)
	return specs
}

func (p *Parser) parseOneArgSpec() []argSpec {
	mode := symtable.ModeIn
	switch {
	case p.at(definitions.IN) && p.peekAt(1).Kind == definitions.OUT:
		p.advance()
		p.advance()
		mode = symtable.ModeInOut
	case p.at(definitions.IN):
		p.advance()
		mode = symtable.ModeIn
	case p.at(definitions.OUT):
		p.advance()
		mode = symtable.ModeOut
	}

	names := p.parseIdentifierList()

	p.expect(definitions.COLON)
	vt := p.parseTypeMark()

	specs := make([]argSpec, 0, len(names))
	for _, n := range names {
		specs = append(specs, argSpec{name: n.Lexeme, tok: n, mode: mode, vt: vt})
	}
	return specs
}

// parseIdentifierList parses Ident { ',' Ident }.
func (p *Parser) parseIdentifierList() []token.Token {
	var toks []token.Token
	t, ok := p.expect(definitions.IDENT)
	if ok {
		toks = append(toks, t)
	}
	for p.at(definitions.COMMA) {
		p.advance()
		t, ok := p.expect(definitions.IDENT)
		if ok {
			toks = append(toks, t)
		}
	}
	return toks
}

// parseTypeMark parses a basic-type keyword. (The `constant := Literal`
// form of TypeMark is handled at the ObjectDeclaration level, where the
// `constant` keyword is visible before the type.)
func (p *Parser) parseTypeMark() definitions.VarType {
	t := p.cur()
	if !definitions.TypeKeywordKinds[t.Kind] {
		p.Syntax.Add(diag.Syntax, t.Line, t.Column, "expected a type mark but found %s %q", t.Kind, t.Lexeme)
		return definitions.UnknownType
	}
	p.advance()
	return definitions.VarTypeForKeyword(t.Kind)
}

// installParams assigns offsets by iterating the flattened argument list
// right-to-left: the first (rightmost) parameter gets +4 and each earlier
// one gets a strictly greater offset by the following parameter's size.
// Each is inserted as a PARAMETER symbol in the procedure's new scope.
func (p *Parser) installParams(procSym *symtable.Symbol, args []argSpec) {
	sizes := make([]int, len(args))
	running := 4
	for i := len(args) - 1; i >= 0; i-- {
		sizes[i] = running
		running += definitions.SizeOf(args[i].vt)
	}
	sizeOfParams := running - 4

	params := make([]*symtable.Symbol, 0, len(args))
	modes := make(map[string]symtable.ParameterMode, len(args))
	for i, a := range args {
		sym := symtable.NewParameter(a.name, a.tok, p.table.CurrentDepth(), a.vt, sizes[i])
		if err := p.table.Insert(sym); err != nil {
			p.Semantic.Add(diag.Semantic, a.tok.Line, a.tok.Column, "%s", err.Error())
		}
		params = append(params, sym)
		modes[a.name] = a.mode
	}
	procSym.SetParams(params, modes, sizeOfParams)
}
