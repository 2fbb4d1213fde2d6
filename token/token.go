// Package token defines the immutable lexeme produced by the lexer and
// consumed by the parser.
package token

import (
	"fmt"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
)

// Token is an immutable lexeme plus its kind, source location, and decoded
// literal value (at most one of IntValue/RealValue/StringValue is
// meaningful, selected by Kind). Once constructed a Token is never mutated.
type Token struct {
	Kind   definitions.TokenKind
	Lexeme string
	Line   int
	Column int

	IntValue    int64
	RealValue   float64
	StringValue string // decoded value for STRINGLIT/CHARLIT
}

// New builds a plain token carrying no numeric/string value.
func New(kind definitions.TokenKind, lexeme string, line, col int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: col}
}

// NewInt builds an INTLIT token.
func NewInt(lexeme string, line, col int, v int64) Token {
	return Token{Kind: definitions.INTLIT, Lexeme: lexeme, Line: line, Column: col, IntValue: v}
}

// NewReal builds a REALLIT token.
func NewReal(lexeme string, line, col int, v float64) Token {
	return Token{Kind: definitions.REALLIT, Lexeme: lexeme, Line: line, Column: col, RealValue: v}
}

// NewString builds a STRINGLIT or CHARLIT token with its decoded value.
func NewString(kind definitions.TokenKind, lexeme string, line, col int, decoded string) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: col, StringValue: decoded}
}

// String renders the token as a fixed-width listing row: "Token Type |
// Lexeme | Value".
func (t Token) String() string {
	value := t.Lexeme
	switch t.Kind {
	case definitions.INTLIT:
		value = fmt.Sprintf("%d", t.IntValue)
	case definitions.REALLIT:
		value = fmt.Sprintf("%g", t.RealValue)
	case definitions.STRINGLIT, definitions.CHARLIT:
		value = t.StringValue
	}
	return fmt.Sprintf("%-12s| %-20s| %s", t.Kind.String(), t.Lexeme, value)
}

// IsEOF reports whether this is the terminating EOF sentinel.
func (t Token) IsEOF() bool { return t.Kind == definitions.EOF }
