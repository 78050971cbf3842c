package evaluator

import "github.com/funvibe/corelang/internal/ast"

// Closure pairs a term with the environment it closes over (§3.2).
type Closure struct {
	Term ast.Term
	Env  Env
}

// AtomicClosure wraps an already-ground term with an empty environment,
// avoiding an environment allocation for operation results that need no
// free variables — ported from original_source/src/eval.rs's
// Closure::atomic_closure (§C.3 of SPEC_FULL).
func AtomicClosure(t ast.Term) Closure {
	return Closure{Term: t, Env: EmptyEnv()}
}

// Thunk is the shared, interior-mutable cell of §3.2: multiple
// environments may hold a pointer to the same Thunk, and forcing it
// through any of them must mutate the one cell observable through all of
// them.
type Thunk struct {
	Closure Closure
	Forced  bool
}

// NewThunk allocates a fresh, unforced thunk.
func NewThunk(c Closure) *Thunk {
	return &Thunk{Closure: c}
}

// Update overwrites the thunk in place with a freshly-computed WHNF
// closure and marks it forced (§4.1's "pop them all and overwrite each
// with a clone of the current closure").
func (t *Thunk) Update(c Closure) {
	t.Closure = c
	t.Forced = true
}

// IsWHNF reports whether t's head constructor is already a value shape
// per §4.1's value set: "a lambda with no pending arg, a ground literal,
// an unreduced record/list, a label, a symbol, or a wrapped value".
func IsWHNF(t ast.Term) bool {
	switch t.(type) {
	case *ast.Num, *ast.Bool, *ast.Str, *ast.Sym, *ast.Lbl,
		*ast.Fun, *ast.NativeFunc, *ast.Record, *ast.List, *ast.Enum, *ast.Wrapped:
		return true
	default:
		return false
	}
}

// CallStackEntry annotates the evaluator's call stack (distinct from the
// main operand/update/opcont Stack of internal/stack) for blame-report
// attachment on a surfaced BlameError (§4.1, §6 "Blame label CLI").
type CallStackEntry struct {
	Kind string // "Var" or "App", per §4.1 dispatch
	Name string // identifier forced, for Var entries
	Pos  *ast.Span
}
