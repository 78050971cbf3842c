// Sealing primitives of §4.3: wrap(sym) / unwrap(sym, wrapped), the
// parametricity mechanism behind opaque (Flat/Forall) contracts.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

// applyWrap implements wrap(sym): a function that seals its argument
// under sym. Returned as an ast.NativeFunc since there is no surface
// term shape for "construct a Wrapped node" (§4.3 Sealing).
func applyWrap(sym Closure, pos *ast.Span) (Closure, error) {
	s, ok := sym.Term.(*ast.Sym)
	if !ok {
		return Closure{}, &TypeError{Expected: "Sym", Op: "wrap", Term: sym.Term, Pos: pos}
	}
	sealed := *s
	return AtomicClosure(&ast.NativeFunc{
		Name: "wrap",
		Fn: func(arg ast.Term) (ast.Term, error) {
			return &ast.Wrapped{Sym: sealed, Term: arg}, nil
		},
	}), nil
}

// applyUnwrap implements unwrap(sym, wrapped): identity if the symbols
// don't match, the sealed inner term if they do.
func applyUnwrap(symClosure, wrappedClosure Closure, pos *ast.Span) (Closure, error) {
	s, ok := symClosure.Term.(*ast.Sym)
	if !ok {
		return Closure{}, &TypeError{Expected: "Sym", Op: "unwrap", Term: symClosure.Term, Pos: pos}
	}
	w, ok := wrappedClosure.Term.(*ast.Wrapped)
	if !ok {
		return wrappedClosure, nil
	}
	if w.Sym.ID != s.ID {
		return wrappedClosure, nil
	}
	return AtomicClosure(w.Term), nil
}
