package parser

import (
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/diag"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
)

// parseDeclarativePart implements:
//
//	DeclarativePart → { ObjectDeclaration } { Procedure }.
//
// Object declarations and nested procedure declarations are two distinct
// sub-loops rather than one interleaved loop: once a `procedure` keyword is
// seen, no further object declarations are accepted at this level.
func (p *Parser) parseDeclarativePart() {
	p.trace("DeclarativePart")
	for p.at(definitions.IDENT) {
		p.parseObjectDeclaration()
	}
	for p.at(definitions.PROCEDURE) {
		p.state = stateNested
		saved := p.gen.SaveTempState()
		p.parseProcedure()
		p.gen.RestoreTempState(saved)
	}
	p.state = stateDeclarations
}

// parseObjectDeclaration implements:
//
//	ObjectDeclaration → IdentifierList `:` [`constant`] TypeMark [`:=` Expression] `;`.
//
// A `constant` declaration requires an initializer (an error is recorded
// otherwise); the initializer is not checked to be a literal, and the
// constant's value is the text of its resolved place. A plain variable
// declaration may have an optional initializer, emitted as an immediate
// assignment right after the frame slot is allocated.
func (p *Parser) parseObjectDeclaration() {
	p.trace("ObjectDeclaration")
	names := p.parseIdentifierList()

	p.expect(definitions.COLON)

	isConst := false
	if p.at(definitions.CONSTANT) {
		p.advance()
		isConst = true
	}
	vt := p.parseTypeMark()

	var init tac.Place
	hasInit := false
	if p.at(definitions.ASSIGN) {
		p.advance()
		init = p.parseExpression()
		hasInit = true
	}
	p.expect(definitions.SEMI)

	if isConst {
		if !hasInit {
			t := p.cur()
			p.Semantic.Add(diag.Semantic, t.Line, t.Column, "constant declaration requires an initial value")
		}
		value := "0"
		if hasInit {
			value = init.String()
		}
		for _, n := range names {
			sym := symtable.NewConstant(n.Lexeme, n, p.table.CurrentDepth(), vt, value)
			if err := p.table.Insert(sym); err != nil {
				p.Semantic.Add(diag.Semantic, n.Line, n.Column, "%s", err.Error())
			}
		}
		return
	}

	for _, n := range names {
		// Globals (depth <= symtable.GlobalDepth) are addressed by name, not
		// by frame offset, and must not consume frame space.
		offset := 0
		if p.table.CurrentDepth() > symtable.GlobalDepth {
			offset = p.allocLocal(definitions.SizeOf(vt))
		}
		sym := symtable.NewVariable(n.Lexeme, n, p.table.CurrentDepth(), vt, offset)
		if err := p.table.Insert(sym); err != nil {
			p.Semantic.Add(diag.Semantic, n.Line, n.Column, "%s", err.Error())
			continue
		}
		if hasInit {
			p.gen.EmitAssignment(p.gen.ResolvePlace(sym), init)
		}
	}
}
