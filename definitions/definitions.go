// Package definitions holds the compiler's closed vocabularies: token
// kinds, reserved words, the type-keyword set, and the fixed type-size
// table used for offset arithmetic. Punctuation is recognized directly by
// the lexer; there is no pattern table here. It corresponds to the original
// Modules/Definitions.py and has no mutable state of its own -- everything
// here is a package-level constant table, looked up by every later phase.
package definitions

// TokenKind enumerates the lexical categories produced by the lexer.
type TokenKind int

const (
	// Structural
	EOF TokenKind = iota
	IDENT
	INTLIT
	REALLIT
	STRINGLIT
	CHARLIT
	ILLEGAL

	// Reserved words
	PROCEDURE
	IS
	BEGIN
	END
	IN
	OUT
	CONSTANT
	GET
	PUT
	PUTLN
	NULL
	NOT
	MOD
	REM
	AND
	OR

	// Type keywords
	INTEGER
	FLOAT
	REAL
	CHAR
	BOOLEAN
	STRING

	// Punctuation / operators
	SEMI       // ;
	COLON      // :
	COMMA      // ,
	LPAREN     // (
	RPAREN     // )
	ASSIGN     // :=
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	DOT        // .
)

// tokenNames gives the fixed-width table column name for each kind (used by
// the token listing in §6).
var tokenNames = map[TokenKind]string{
	EOF:       "EOF",
	IDENT:     "ID",
	INTLIT:    "NUM_INT",
	REALLIT:   "NUM_REAL",
	STRINGLIT: "STRING",
	CHARLIT:   "CHAR",
	ILLEGAL:   "ILLEGAL",
	PROCEDURE: "PROCEDURE",
	IS:        "IS",
	BEGIN:     "BEGIN",
	END:       "END",
	IN:        "IN",
	OUT:       "OUT",
	CONSTANT:  "CONSTANT",
	GET:       "GET",
	PUT:       "PUT",
	PUTLN:     "PUTLN",
	NULL:      "NULL",
	NOT:       "NOT",
	MOD:       "MOD",
	REM:       "REM",
	AND:       "AND",
	OR:        "OR",
	INTEGER:   "INTEGER",
	FLOAT:     "FLOAT",
	REAL:      "REAL",
	CHAR:      "CHAR",
	BOOLEAN:   "BOOLEAN",
	STRING:    "STRING",
	SEMI:      "SEMI",
	COLON:     "COLON",
	COMMA:     "COMMA",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	ASSIGN:    "ASSIGN",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	DOT:       "DOT",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// ReservedWords maps the case-folded (lowercase) spelling of every reserved
// word to its kind. The lexer does case-insensitive matching.
var ReservedWords = map[string]TokenKind{
	"procedure": PROCEDURE,
	"is":        IS,
	"begin":     BEGIN,
	"end":       END,
	"in":        IN,
	"out":       OUT,
	"constant":  CONSTANT,
	"get":       GET,
	"put":       PUT,
	"putln":     PUTLN,
	"null":      NULL,
	"not":       NOT,
	"mod":       MOD,
	"rem":       REM,
	"and":       AND,
	"or":        OR,
	"integer":   INTEGER,
	"float":     FLOAT,
	"real":      REAL,
	"char":      CHAR,
	"boolean":   BOOLEAN,
	"string":    STRING,
}

// TypeKeywordKinds is the subset of ReservedWords that introduce a
// TypeMark in an object/parameter declaration.
var TypeKeywordKinds = map[TokenKind]bool{
	INTEGER: true,
	FLOAT:   true,
	REAL:    true,
	CHAR:    true,
	BOOLEAN: true,
	STRING:  true,
}

// MaxIdentLength is the maximum identifier length before the lexer records
// an "identifier too long" error.
const MaxIdentLength = 17

// VarType is the semantic type of a declared variable, constant, parameter
// or function return value. It is distinct from the lexical TYPE keyword
// tokens above: REAL and FLOAT both map to VarType FLOAT, REAL being an
// alias of FLOAT.
type VarType int

const (
	UnknownType VarType = iota
	IntType
	FloatType
	CharType
	BoolType
	StringType
)

func (t VarType) String() string {
	switch t {
	case IntType:
		return "INTEGER"
	case FloatType:
		return "FLOAT"
	case CharType:
		return "CHAR"
	case BoolType:
		return "BOOLEAN"
	case StringType:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// TypeSizes gives the byte size of each VarType. STRING is address-sized:
// on this 16-bit real-mode target that is 2 bytes (a near pointer/offset).
var TypeSizes = map[VarType]int{
	IntType:    2,
	CharType:   1,
	BoolType:   1,
	FloatType:  4,
	StringType: 2,
}

// SizeOf returns the byte size of a VarType, or 0 for an unknown type.
func SizeOf(t VarType) int {
	return TypeSizes[t]
}

// VarTypeForKeyword maps a type-keyword token kind to its VarType.
func VarTypeForKeyword(k TokenKind) VarType {
	switch k {
	case INTEGER:
		return IntType
	case FLOAT, REAL:
		return FloatType
	case CHAR:
		return CharType
	case BOOLEAN:
		return BoolType
	case STRING:
		return StringType
	default:
		return UnknownType
	}
}
