package lexer

import (
	"testing"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/definitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken_Punctuation(t *testing.T) {
	l := New("( ) ; , := + - * /", false)
	var kinds []definitions.TokenKind
	for {
		tok := l.NextToken()
		if tok.IsEOF() {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []definitions.TokenKind{
		definitions.LPAREN, definitions.RPAREN, definitions.SEMI, definitions.COMMA,
		definitions.ASSIGN, definitions.PLUS, definitions.MINUS, definitions.STAR, definitions.SLASH,
	}, kinds)
	assert.True(t, l.Errors.Empty())
}

func TestNextToken_ReservedWordsCaseInsensitive(t *testing.T) {
	l := New("Procedure PROCEDURE procedure", false)
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		require.Equal(t, definitions.PROCEDURE, tok.Kind)
	}
}

func TestNextToken_IdentifierTooLong(t *testing.T) {
	l := New("this_identifier_is_definitely_too_long", false)
	tok := l.NextToken()
	assert.Equal(t, definitions.IDENT, tok.Kind)
	require.Equal(t, 1, l.Errors.Len())
}

func TestNextToken_Numbers(t *testing.T) {
	l := New("42 3.14", false)
	i := l.NextToken()
	require.Equal(t, definitions.INTLIT, i.Kind)
	assert.EqualValues(t, 42, i.IntValue)

	r := l.NextToken()
	require.Equal(t, definitions.REALLIT, r.Kind)
	assert.InDelta(t, 3.14, r.RealValue, 1e-9)
}

func TestNextToken_StringLiteralEscape(t *testing.T) {
	l := New(`"Say ""Hi"" there"`, false)
	s := l.NextToken()
	require.Equal(t, definitions.STRINGLIT, s.Kind)
	assert.Equal(t, `Say "Hi" there`, s.StringValue)
	assert.True(t, l.Errors.Empty())
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New(`"unterminated`, false)
	l.NextToken()
	require.Equal(t, 1, l.Errors.Len())
}

func TestNextToken_CharLiteral(t *testing.T) {
	l := New(`'a'`, false)
	c := l.NextToken()
	require.Equal(t, definitions.CHARLIT, c.Kind)
	assert.Equal(t, "a", c.StringValue)
}

func TestNextToken_CommentsSkipped(t *testing.T) {
	l := New("a -- this is a comment\n:= 1", false)
	id := l.NextToken()
	require.Equal(t, definitions.IDENT, id.Kind)
	assign := l.NextToken()
	require.Equal(t, definitions.ASSIGN, assign.Kind)
}

func TestNextToken_UnrecognizedCharacter(t *testing.T) {
	l := New("a $ b", false)
	l.NextToken() // a
	tok := l.NextToken()
	assert.Equal(t, definitions.ILLEGAL, tok.Kind)
	require.Equal(t, 1, l.Errors.Len())
	tok = l.NextToken() // b still reachable
	assert.Equal(t, definitions.IDENT, tok.Kind)
}

func TestNextToken_PositionsNonDecreasing(t *testing.T) {
	l := New("a b\nc d", false)
	prevLine, prevCol := 0, 0
	for {
		tok := l.NextToken()
		if tok.IsEOF() {
			break
		}
		if tok.Line == prevLine {
			assert.GreaterOrEqual(t, tok.Column, prevCol)
		} else {
			assert.Greater(t, tok.Line, prevLine)
		}
		prevLine, prevCol = tok.Line, tok.Column
	}
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	l := New("a b", false)
	toks := l.Tokenize()
	require.NotEmpty(t, toks)
	assert.True(t, toks[len(toks)-1].IsEOF())
}
