package tac

import "github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"

// ResolvePlace resolves a symbol to its operand form: a CONSTANT symbol
// resolves to its literal text, a symbol at depth <= symtable.GlobalDepth
// resolves to its bare name (treated as global), and everything else
// resolves to its frame-relative offset. A symbol with no offset produces
// ErrorPlace and logs a diagnostic through the generator's context logger.
func (g *Generator) ResolvePlace(sym *symtable.Symbol) Place {
	if sym.Kind == symtable.CONSTANT {
		return Global(sym.ConstValue())
	}
	if symtable.IsGlobal(sym) {
		return Global(sym.Name)
	}
	offset, ok := sym.Offset()
	if !ok {
		g.log.Log.Errorw("cannot resolve place for symbol with no frame offset", "symbol", sym.Name)
		return ErrorPlace
	}
	return Frame(offset)
}
