package symtable

import (
	"fmt"
	"sort"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
)

// scope is one scope's name->symbol dictionary. Scopes are retained by
// depth after exit so historical lookup by explicit depth remains possible,
// so SymbolTable keeps a slice indexed by depth rather than popping entries
// off on exit.
type scope map[string]*Symbol

// DuplicateSymbolError is returned by Insert when the name already exists
// in the target scope.
type DuplicateSymbolError struct {
	Name  string
	Depth int
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate declaration of %q at scope depth %d", e.Name, e.Depth)
}

// NotFoundError is returned by Lookup when no matching symbol exists.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("undeclared identifier %q", e.Name)
}

// SymbolTable is a stack of scopes plus the persistent procedure-definition
// store and the string-literal intern table.
type SymbolTable struct {
	scopes       []scope // index i holds the scope at depth i; never shrinks
	currentDepth int

	procedureDefinitions map[string]*Symbol

	stringLiterals map[string]string // raw value -> label
	stringOrder    []string          // labels in first-seen order
	nextStringID   int

	log *ctx.Context
}

// New creates a SymbolTable with the global scope (depth 0) already open.
func New(c *ctx.Context) *SymbolTable {
	if c == nil {
		c = ctx.Discard()
	}
	return &SymbolTable{
		scopes:               []scope{make(scope)},
		procedureDefinitions: make(map[string]*Symbol),
		stringLiterals:       make(map[string]string),
		log:                  c,
	}
}

// CurrentDepth returns the depth of the innermost open scope.
func (t *SymbolTable) CurrentDepth() int { return t.currentDepth }

// EnterScope pushes a new empty scope and increments the current depth.
func (t *SymbolTable) EnterScope() {
	t.currentDepth++
	if t.currentDepth < len(t.scopes) {
		// Re-entering a depth whose historical scope was retained from a
		// sibling procedure: start that depth fresh. Only the scope at the
		// depth being closed is ever retained for historical lookup; a new
		// scope opened at the same depth is a distinct scope.
		t.scopes[t.currentDepth] = make(scope)
		return
	}
	t.scopes = append(t.scopes, make(scope))
}

// ExitScope decrements the current depth. The scope dictionary at the
// exited depth is retained in place so LookupCurrentScopeOnly with an
// explicit depth can still find symbols declared there.
func (t *SymbolTable) ExitScope() {
	if t.currentDepth == 0 {
		return
	}
	t.currentDepth--
}

// Insert adds sym to the scope at the current depth. It fails with a
// *DuplicateSymbolError if the name already exists in that scope;
// shadowing a name from an outer scope is always permitted. PROCEDURE and
// FUNCTION symbols are additionally mirrored into procedureDefinitions.
func (t *SymbolTable) Insert(sym *Symbol) error {
	sym.Depth = t.currentDepth
	cur := t.scopes[t.currentDepth]
	if _, exists := cur[sym.Name]; exists {
		return &DuplicateSymbolError{Name: sym.Name, Depth: t.currentDepth}
	}
	cur[sym.Name] = sym

	if sym.Kind == PROCEDURE || sym.Kind == FUNCTION {
		if _, redefined := t.procedureDefinitions[sym.Name]; redefined {
			t.log.Log.Warnf("redefinition of procedure/function %q overwrites previous definition", sym.Name)
		}
		t.procedureDefinitions[sym.Name] = sym
	}
	return nil
}

// Lookup scans outward from the current depth toward depth 0 and returns
// the innermost matching symbol. LookupFromDepth starts from an explicit
// depth instead.
func (t *SymbolTable) Lookup(name string) (*Symbol, error) {
	return t.lookupFrom(name, t.currentDepth)
}

// LookupFromDepth scans outward starting at the given depth.
func (t *SymbolTable) LookupFromDepth(name string, depth int) (*Symbol, error) {
	return t.lookupFrom(name, depth)
}

func (t *SymbolTable) lookupFrom(name string, depth int) (*Symbol, error) {
	for d := depth; d >= 0; d-- {
		if d >= len(t.scopes) {
			continue
		}
		if sym, ok := t.scopes[d][name]; ok {
			return sym, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// LookupCurrentScopeOnly inspects only the scope at the current depth (or
// at explicitDepth if non-negative), without scanning outward. Used for
// duplicate checks and for explicit historical lookup by depth.
func (t *SymbolTable) LookupCurrentScopeOnly(name string, explicitDepth int) (*Symbol, error) {
	depth := t.currentDepth
	if explicitDepth >= 0 {
		depth = explicitDepth
	}
	if depth >= len(t.scopes) {
		return nil, &NotFoundError{Name: name}
	}
	if sym, ok := t.scopes[depth][name]; ok {
		return sym, nil
	}
	return nil, &NotFoundError{Name: name}
}

// GetProcedureDefinition returns the persistent procedure/function symbol,
// or nil if no such name was ever declared. Unlike Lookup, this survives
// scope exit unconditionally and is the canonical source for code
// generation and call resolution.
func (t *SymbolTable) GetProcedureDefinition(name string) *Symbol {
	return t.procedureDefinitions[name]
}

// ProcedureDefinitions returns the full persistent procedure/function
// store, keyed by name. The map has no order; the ASM generator looks
// procedures up by name as it meets their PROC instructions.
func (t *SymbolTable) ProcedureDefinitions() map[string]*Symbol {
	return t.procedureDefinitions
}

// AddStringLiteral interns value and returns its label, minting a new
// "_S<n>" label only the first time a given raw value is seen.
func (t *SymbolTable) AddStringLiteral(value string) string {
	if label, ok := t.stringLiterals[value]; ok {
		return label
	}
	label := fmt.Sprintf("_S%d", t.nextStringID)
	t.nextStringID++
	t.stringLiterals[value] = label
	t.stringOrder = append(t.stringOrder, label)
	return label
}

// StringLiteralValue returns the decoded value that was interned under
// label, and whether it exists.
func (t *SymbolTable) StringLiteralValue(label string) (string, bool) {
	for v, l := range t.stringLiterals {
		if l == label {
			return v, true
		}
	}
	return "", false
}

// StringLiterals returns the interned (label, value) pairs in the order
// labels were first minted.
func (t *SymbolTable) StringLiterals() []struct{ Label, Value string } {
	out := make([]struct{ Label, Value string }, 0, len(t.stringOrder))
	for _, label := range t.stringOrder {
		for v, l := range t.stringLiterals {
			if l == label {
				out = append(out, struct{ Label, Value string }{label, v})
				break
			}
		}
	}
	return out
}

// GlobalVariables returns the VARIABLE symbols declared at depth <=
// GlobalDepth, in first-declared order, for the ASM generator's .DATA
// segment: any global (outermost-procedure-depth) variable becomes an
// uninitialized word/byte sized from the symbol. CONSTANT symbols are never
// emitted as storage: their value is substituted directly at every use site
// (see tac.Generator's place resolution), so they need no backing memory.
func (t *SymbolTable) GlobalVariables() []*Symbol {
	var out []*Symbol
	for d := 0; d <= GlobalDepth && d < len(t.scopes); d++ {
		for _, sym := range t.scopes[d] {
			if sym.Kind == VARIABLE {
				out = append(out, sym)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Token.Line < out[j].Token.Line ||
			(out[i].Token.Line == out[j].Token.Line && out[i].Token.Column < out[j].Token.Column)
	})
	return out
}

// GlobalDepth is the scope depth treated as "global" for place resolution:
// a symbol at depth <= GlobalDepth is addressed by name rather than by
// frame offset. Depth 0 is the table's own outermost scope; depth 1 is the
// outermost procedure's local scope, which the source treats as globally
// addressable because there is exactly one top-level procedure active as
// the program entry.
const GlobalDepth = 1

// IsGlobal reports whether a symbol should be addressed by name rather
// than by frame offset.
func IsGlobal(sym *Symbol) bool {
	return sym.Depth <= GlobalDepth
}
