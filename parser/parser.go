// Package parser implements a single-pass recursive-descent parser over
// the Ada subset's grammar. It simultaneously drives symbol-table
// construction, intra-procedure semantic checks, and TAC emission, all in
// one pass: parse-tree construction is an opt-in side channel (see Option
// WithTree), not a second parser implementation.
package parser

import (
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/diag"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/lexer"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/token"
)

// Option configures optional Parser behavior.
type Option func(*Parser)

// WithTree enables parse-tree construction alongside semantic actions and
// TAC emission, implemented here as a flag rather than a distinct parser
// type.
func WithTree() Option { return func(p *Parser) { p.buildTree = true } }

// WithPanicModeRecovery enables panic-mode error recovery: on a syntax
// error, the parser skips tokens until a synchronization token is seen
// instead of returning immediately.
func WithPanicModeRecovery() Option { return func(p *Parser) { p.panicMode = true } }

// WithStopOnError makes the first syntax error fatal.
func WithStopOnError() Option { return func(p *Parser) { p.stopOnError = true } }

// state is the parser's coarse-grained state machine position, tracked for
// diagnostics and debug logging; control flow itself is still driven by
// the grammar's recursive-descent calls.
type state int

const (
	stateOutside state = iota
	stateHeader
	stateDeclarations
	stateBody
	stateNested
)

// Parser drives the Ada-subset grammar over a token stream, inserting
// symbols into table and emitting TAC into gen as it goes.
type Parser struct {
	ctx   *ctx.Context
	toks  []token.Token
	pos   int
	state state

	table *symtable.SymbolTable
	gen   *tac.Generator

	Syntax   *diag.Bag
	Semantic *diag.Bag

	buildTree   bool
	panicMode   bool
	stopOnError bool

	// Tree is populated only when buildTree is set; it is a flat list of
	// the production names entered, in order, not a full AST, matching the
	// "optional" parse-tree side channel described above.
	Tree []string

	// per-procedure offset trackers (activation-record layout)
	localOffset int
	paramOffset int

	// procStack tracks the enclosing-procedure symbol chain so nested
	// procedures can look up/insert into the correct enclosing scope.
	procStack []*symtable.Symbol
}

// New creates a Parser over src, wired to table and gen.
func New(c *ctx.Context, src string, table *symtable.SymbolTable, gen *tac.Generator, opts ...Option) *Parser {
	if c == nil {
		c = ctx.Discard()
	}
	lx := lexer.New(src, false)
	toks := lx.Tokenize()

	p := &Parser{
		ctx:      c,
		toks:     toks,
		table:    table,
		gen:      gen,
		Syntax:   diag.New(false),
		Semantic: diag.New(false),
		state:    stateOutside,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Syntax = diag.New(p.stopOnError)
	// Lexical errors surfaced by the lexer are copied into Syntax, keeping
	// their Lexical kind, so HasErrors and the stop-on-error check see the
	// lexer errors the parser inherited along with the token stream. The
	// driver reports lexical errors from its own lexer run and leaves these
	// copies out of its syntax count.
	for _, d := range lx.Errors.All() {
		p.Syntax.Add(d.Kind, d.Line, d.Column, "%s", d.Message)
	}
	return p
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(kind definitions.TokenKind) bool { return p.cur().Kind == kind }

// expect consumes the current token if it matches kind, else records a
// syntax error and (if panic-mode recovery is enabled) resynchronizes.
func (p *Parser) expect(kind definitions.TokenKind, syncSet ...definitions.TokenKind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	t := p.cur()
	p.Syntax.Add(diag.Syntax, t.Line, t.Column, "expected %s but found %s %q", kind, t.Kind, t.Lexeme)
	if p.panicMode {
		p.recover(syncSet)
	}
	return t, false
}

// recover skips tokens until one in syncSet (or SEMI/END/EOF by default) is
// seen.
func (p *Parser) recover(syncSet []definitions.TokenKind) {
	if len(syncSet) == 0 {
		syncSet = []definitions.TokenKind{definitions.SEMI, definitions.END, definitions.EOF}
	}
	for !p.at(definitions.EOF) {
		for _, k := range syncSet {
			if p.at(k) {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) trace(production string) {
	if p.buildTree {
		p.Tree = append(p.Tree, production)
	}
}

// Parse runs the whole grammar: one or more top-level Procedure
// definitions followed by EOF.
func (p *Parser) Parse() {
	p.trace("Program")
	for !p.at(definitions.EOF) {
		if !p.at(definitions.PROCEDURE) {
			t := p.cur()
			p.Syntax.Add(diag.Syntax, t.Line, t.Column, "expected 'procedure' at top level, found %s %q", t.Kind, t.Lexeme)
			p.advance()
			if p.Syntax.Fatal() {
				return
			}
			continue
		}
		p.parseProcedure()
		if p.Syntax.Fatal() {
			return
		}
	}
}

// HasErrors reports whether any syntax or semantic diagnostic was
// recorded.
func (p *Parser) HasErrors() bool {
	return !p.Syntax.Empty() || !p.Semantic.Empty()
}
