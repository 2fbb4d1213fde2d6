package parser

import (
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/diag"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
)

// parseSeqOfStatements implements:
//
//	SeqOfStatements → { Statement }.
//
// terminated by the enclosing `end` keyword. An empty body is accepted;
// a body with nothing but `null;` is the usual idiom for "no statements".
func (p *Parser) parseSeqOfStatements() {
	p.trace("SeqOfStatements")
	for !p.at(definitions.END) && !p.at(definitions.EOF) {
		p.parseStatement()
		if p.Syntax.Fatal() {
			return
		}
	}
}

// parseStatement implements:
//
//	Statement → AssignmentStatement | ProcedureCallStatement
//	          | GetStatement | PutStatement | PutLnStatement | NullStatement.
func (p *Parser) parseStatement() {
	p.trace("Statement")
	switch {
	case p.at(definitions.IDENT):
		p.parseAssignmentOrCall()
	case p.at(definitions.GET):
		p.parseGetStatement()
	case p.at(definitions.PUT):
		p.parsePutStatement(false)
	case p.at(definitions.PUTLN):
		p.parsePutStatement(true)
	case p.at(definitions.NULL):
		p.advance()
		p.expect(definitions.SEMI)
	default:
		t := p.cur()
		p.Syntax.Add(diag.Syntax, t.Line, t.Column, "expected a statement but found %s %q", t.Kind, t.Lexeme)
		p.advance()
	}
}

// parseAssignmentOrCall implements:
//
//	AssignmentStatement → Ident `:=` Expression `;`.
//	ProcedureCallStatement → Ident [ `(` ArgList `)` ] `;`.
//
// Both begin with a bare identifier, so one production looks ahead at the
// token following the name to decide which it is parsing.
func (p *Parser) parseAssignmentOrCall() {
	nameTok := p.advance()
	sym, lookupErr := p.table.Lookup(nameTok.Lexeme)
	if lookupErr != nil {
		p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column, "%s", lookupErr.Error())
	}

	if p.at(definitions.ASSIGN) {
		p.trace("AssignmentStatement")
		p.advance()
		rhs := p.parseExpression()
		p.expect(definitions.SEMI)
		if sym == nil {
			return
		}
		if sym.Kind == symtable.CONSTANT || sym.Kind == symtable.PROCEDURE || sym.Kind == symtable.FUNCTION {
			p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column, "cannot assign to %s %q", sym.Kind, sym.Name)
			return
		}
		p.gen.EmitAssignment(p.gen.ResolvePlace(sym), rhs)
		return
	}

	p.trace("ProcedureCallStatement")
	var actuals []tac.Place
	if p.at(definitions.LPAREN) {
		actuals = p.parseActualArgList()
	}
	p.expect(definitions.SEMI)

	if sym == nil {
		return
	}
	if sym.Kind != symtable.PROCEDURE && sym.Kind != symtable.FUNCTION {
		p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column, "%q is not a procedure", nameTok.Lexeme)
		return
	}
	params := sym.Params()
	if len(actuals) != len(params) {
		p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column,
			"procedure %q expects %d argument(s) but call supplies %d", nameTok.Lexeme, len(params), len(actuals))
		n := len(actuals)
		if len(params) < n {
			n = len(params)
		}
		actuals = actuals[:n]
		params = params[:n]
	}
	// Pushes go in reverse declaration order, so the callee's leftmost
	// formal ends up at its highest positive frame offset.
	for i := len(params) - 1; i >= 0; i-- {
		p.gen.EmitPush(actuals[i], sym.ParamMode(params[i].Name))
	}
	p.gen.EmitCallN(nameTok.Lexeme, len(params))
}

// parseActualArgList implements:
//
//	ArgList → `(` Expression { `,` Expression } `)`.
func (p *Parser) parseActualArgList() []tac.Place {
	p.trace("ArgList")
	p.expect(definitions.LPAREN)
	var actuals []tac.Place
	if !p.at(definitions.RPAREN) {
		actuals = append(actuals, p.parseExpression())
		for p.at(definitions.COMMA) {
			p.advance()
			actuals = append(actuals, p.parseExpression())
		}
	}
	p.expect(definitions.RPAREN)
	return actuals
}

// parseGetStatement implements:
//
//	GetStatement → `get` `(` Ident `)` `;`.
func (p *Parser) parseGetStatement() {
	p.trace("GetStatement")
	p.advance() // GET
	p.expect(definitions.LPAREN)
	nameTok, ok := p.expect(definitions.IDENT)
	p.expect(definitions.RPAREN)
	p.expect(definitions.SEMI)
	if !ok {
		return
	}
	sym, err := p.table.Lookup(nameTok.Lexeme)
	if err != nil {
		p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column, "%s", err.Error())
		return
	}
	if sym.Kind != symtable.VARIABLE && sym.Kind != symtable.PARAMETER {
		p.Semantic.Add(diag.Semantic, nameTok.Line, nameTok.Column, "%q is not a variable", nameTok.Lexeme)
		return
	}
	p.gen.EmitRead(p.gen.ResolvePlace(sym))
}

// parsePutStatement implements:
//
//	PutStatement   → `put`   `(` ( Expression | StringLiteral ) `)` `;`.
//	PutLnStatement → `putln` [ `(` ( Expression | StringLiteral ) `)` ] `;`.
//
// A string-literal actual is interned and written by label rather than
// evaluated as an expression operand (strings are not a Factor form).
func (p *Parser) parsePutStatement(newline bool) {
	if newline {
		p.trace("PutLnStatement")
	} else {
		p.trace("PutStatement")
	}
	p.advance() // PUT or PUTLN

	// `putln` (bare, no argument) is the only form with an optional
	// parenthesized argument; `put` always requires one.
	if newline && !p.at(definitions.LPAREN) {
		p.expect(definitions.SEMI)
		p.gen.EmitNewLine()
		return
	}

	p.expect(definitions.LPAREN)

	if p.at(definitions.STRINGLIT) {
		tok := p.advance()
		label := p.table.AddStringLiteral(tok.StringValue)
		p.gen.AddStringDefinition(label, tok.StringValue)
		p.gen.EmitWriteStringByLabel(label)
	} else {
		place := p.parseExpression()
		p.gen.EmitWrite(place)
	}

	p.expect(definitions.RPAREN)
	p.expect(definitions.SEMI)
	if newline {
		p.gen.EmitNewLine()
	}
}
