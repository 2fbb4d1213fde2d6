package parser

import (
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/diag"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
)

// parseExpression implements Expression → Relation. No relational operator
// is part of this grammar (if/while and the comparison operators are left
// as a documented, unimplemented extension point), so Relation reduces
// straight through to SimpleExpression; the production is kept as its own
// method purely so a later relational extension has a single call site to
// change.
func (p *Parser) parseExpression() tac.Place {
	p.trace("Expression")
	return p.parseSimpleExpression()
}

// parseSimpleExpression implements:
//
//	SimpleExpression → [ `+` | `-` ] Term { ( `+` | `-` | `or` ) Term }.
func (p *Parser) parseSimpleExpression() tac.Place {
	p.trace("SimpleExpression")
	neg := p.at(definitions.MINUS)
	if p.at(definitions.PLUS) || p.at(definitions.MINUS) {
		p.advance()
	}

	left := p.parseTerm()
	if neg {
		t := p.newTemp()
		p.gen.EmitUnaryOp(tac.OpUMinus, t, left)
		left = t
	}

	for p.at(definitions.PLUS) || p.at(definitions.MINUS) || p.at(definitions.OR) {
		opTok := p.advance()
		right := p.parseTerm()
		var op tac.Opcode
		switch opTok.Kind {
		case definitions.MINUS:
			op = tac.OpSub
		case definitions.OR:
			op = tac.OpOr
		default:
			op = tac.OpAdd
		}
		t := p.newTemp()
		p.gen.EmitBinaryOp(op, t, left, right)
		left = t
	}
	return left
}

// parseTerm implements:
//
//	Term → Factor { ( `*` | `/` | `mod` | `rem` | `and` ) Factor }.
func (p *Parser) parseTerm() tac.Place {
	p.trace("Term")
	left := p.parseFactor()
	for p.at(definitions.STAR) || p.at(definitions.SLASH) || p.at(definitions.MOD) || p.at(definitions.REM) || p.at(definitions.AND) {
		opTok := p.advance()
		right := p.parseFactor()
		var op tac.Opcode
		switch opTok.Kind {
		case definitions.STAR:
			op = tac.OpMul
		case definitions.SLASH:
			op = tac.OpDiv
		case definitions.MOD:
			op = tac.OpMod
		case definitions.REM:
			op = tac.OpRem
		case definitions.AND:
			op = tac.OpAnd
		}
		t := p.newTemp()
		p.gen.EmitBinaryOp(op, t, left, right)
		left = t
	}
	return left
}

// parseFactor implements:
//
//	Factor → `not` Factor | `(` Expression `)` | Name | IntLiteral
//	       | RealLiteral | CharLiteral.
func (p *Parser) parseFactor() tac.Place {
	p.trace("Factor")
	switch {
	case p.at(definitions.NOT):
		p.advance()
		operand := p.parseFactor()
		t := p.newTemp()
		p.gen.EmitUnaryOp(tac.OpNot, t, operand)
		return t

	case p.at(definitions.LPAREN):
		p.advance()
		e := p.parseExpression()
		p.expect(definitions.RPAREN)
		return e

	case p.at(definitions.INTLIT):
		tok := p.advance()
		return tac.LiteralInt(tok.IntValue)

	case p.at(definitions.REALLIT):
		tok := p.advance()
		return tac.LiteralReal(tok.RealValue)

	case p.at(definitions.CHARLIT):
		tok := p.advance()
		var v int64
		if r := []rune(tok.StringValue); len(r) > 0 {
			v = int64(r[0])
		}
		return tac.LiteralInt(v)

	case p.at(definitions.IDENT):
		tok := p.advance()
		sym, err := p.table.Lookup(tok.Lexeme)
		if err != nil {
			p.Semantic.Add(diag.Semantic, tok.Line, tok.Column, "%s", err.Error())
			return tac.ErrorPlace
		}
		if (sym.Kind == symtable.PROCEDURE || sym.Kind == symtable.FUNCTION) && !sym.IsFunction() {
			p.Semantic.Add(diag.Semantic, tok.Line, tok.Column, "%q is a procedure and cannot be used as a value", tok.Lexeme)
			return tac.ErrorPlace
		}
		return p.gen.ResolvePlace(sym)

	default:
		t := p.cur()
		p.Syntax.Add(diag.Syntax, t.Line, t.Column, "expected an expression but found %s %q", t.Kind, t.Lexeme)
		p.advance()
		return tac.ErrorPlace
	}
}
