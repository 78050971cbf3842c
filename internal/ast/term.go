// Package ast defines the term universe (§3.1): the tagged variants that
// make up a program, plus the optional source span every node carries.
//
// Grounded on github.com/funvibe/funxy/internal/ast's split of a closed
// interface with one struct per expression shape (ast_expressions.go /
// ast_types.go), adapted from funxy's surface-language node set (match
// expressions, loops, traits) down to the smaller calculus this core
// evaluates: literals, Fun/Let/App, records, enums, string chunks, and the
// contract-bearing enriched-value wrappers of §3.1.
package ast

import "github.com/funvibe/corelang/internal/typesystem"

// Term is any node in the expression tree. All variants below implement
// it; Pos is nil when a term was built by desugaring rather than parsed
// from source (e.g. closurization output, merge sub-terms).
type Term interface {
	Position() *Span
	isTerm()
}

// base carries the Span common to every concrete term; embed it to get
// Position() for free.
type base struct {
	Pos *Span
}

func (b base) Position() *Span { return b.Pos }
func (base) isTerm()           {}

// --- Ground literals ------------------------------------------------------

type Num struct {
	base
	Value float64
}

type Bool struct {
	base
	Value bool
}

type Str struct {
	base
	Value string
}

// Sym is a sealing symbol: an opaque, identity-compared token minted fresh
// per wrap/unwrap site (§4.3 Sealing).
type Sym struct {
	base
	ID uint64
}

// Lbl lifts a blame label to a first-class term (so it can be pushed on
// the Arg stack ahead of a Promise/Assume body, per §4.1).
type Lbl struct {
	base
	Label typesystem.Label
}

// --- Variables, abstraction, application, let -----------------------------

type Var struct {
	base
	Name string
}

// Fun is a single-argument lambda; multi-argument functions are curried
// chains of Fun the way the spec's calculus has no native arity > 1.
type Fun struct {
	base
	Param string
	Body  Term
}

// Let is non-recursive (§3.1); recursive definitions are expected to have
// already been desugared into RecRecord/fixpoint form before reaching
// this core (§9 Cyclic sharing).
type Let struct {
	base
	Name  string
	Bound Term
	Body  Term
}

type App struct {
	base
	Fun Term
	Arg Term
}

// --- Operators -------------------------------------------------------------

// Op1 and Op2 hold a term-level operator invocation as built by the
// parser/desugarer. Per §9's "two separate data shapes" option, the
// evaluator never mutates these in place: on dispatch it closurizes each
// operand into a Closure and tracks the operation with an OpCont stack
// frame (internal/stack), which is the "closure" shape of the same
// operator concept.
type Op1 struct {
	base
	Op      UnaryOp
	Arg     Term
	Payload UnaryPayload
}

type Op2 struct {
	base
	Op      BinaryOp
	Fst     Term
	Snd     Term
	Payload BinaryPayload
}

// --- Records, lists, enums --------------------------------------------------

// Record is a flat record: fields are already non-recursive thunk-ready
// terms (the output of unfolding a RecRecord, or written directly).
type Record struct {
	base
	Fields map[string]Term
	// FieldOrder preserves declaration order for fieldsOf/mapRec iteration
	// determinism and pretty-printing; the field set itself is unordered
	// per §4.3 (fieldsOf sorts lexicographically regardless).
	FieldOrder []string
}

// RecRecord is a record as written in source, before the recursive
// self-reference unfolding described in §9 rewrites it into a Record
// whose field bodies close over a shared fixpoint environment.
type RecRecord struct {
	base
	Fields     map[string]Term
	FieldOrder []string
}

type List struct {
	base
	Items []Term
}

// Enum is a bare tag constructor (§4.3 embed/switch); it carries no
// payload in this core — tagged unions with payloads are expressed as a
// record under the tag by convention at the surface level, out of scope
// here.
type Enum struct {
	base
	Tag string
}

// StrChunk is one piece of an interpolated string literal: either a raw
// literal fragment or an embedded expression to be stringified and
// spliced in (§4.3 ChunksConcat).
type StrChunk struct {
	IsExpr bool
	Lit    string
	Expr   Term
}

// StrChunks holds the chunks in reverse (closest-to-end first), matching
// the order they are produced by a lexer that accumulates a string from
// its trailing end, and the order ChunksConcat consumes them in (§3.1,
// §4.3).
type StrChunks struct {
	base
	Chunks []StrChunk
}

// --- Contracts and enriched values ------------------------------------------

// Promise(ty, label, t) annotates t with a contract and switches the
// typechecker to strict mode for t's subtree (§3.1, §4.5).
type Promise struct {
	base
	Type  typesystem.Type
	Label typesystem.Label
	Term  Term
}

// NewAssume constructs an Assume node with the given position, for use
// by desugaring code outside this package (e.g. ContractWithDefault's
// rewrite to Assume in the evaluator, §4.1) which cannot set the
// unexported base field directly.
func NewAssume(ty typesystem.Type, label typesystem.Label, term Term, pos *Span) *Assume {
	return &Assume{base: base{Pos: pos}, Type: ty, Label: label, Term: term}
}

// Assume(ty, label, t) is Promise's dual: it exits strict typechecking
// for t's subtree, but the runtime contract check still applies (the
// mechanism §8 scenario 4 exercises).
type Assume struct {
	base
	Type  typesystem.Type
	Label typesystem.Label
	Term  Term
}

// DefaultValue marks t as a low-priority value that loses to any concrete
// value it is merged against (§4.4).
type DefaultValue struct {
	base
	Term Term
}

// Docstring attaches documentation metadata that is inert at runtime.
type Docstring struct {
	base
	Text string
	Term Term
}

// Contract is a bare, as-yet-unapplied contract annotation: a record
// field that was declared with a type but never given a value. Forcing
// one under strict evaluation is itself an error (§4.1).
type Contract struct {
	base
	Type  typesystem.Type
	Label typesystem.Label
}

// ContractWithDefault combines Contract and DefaultValue: a declared type
// plus a fallback value, collapsing to Assume(ty,label,t) once strict
// evaluation reaches it (§4.1).
type ContractWithDefault struct {
	base
	Type  typesystem.Type
	Label typesystem.Label
	Term  Term
}

// Wrapped is a value sealed under a sealing symbol (§4.3 Sealing); only
// unwrap with the matching Sym can observe Term again.
type Wrapped struct {
	base
	Sym  Sym
	Term Term
}

// --- Imports -----------------------------------------------------------------

// Import is an unresolved module reference; the import resolver
// collaborator (§6) rewrites it to ResolvedImport before the evaluator
// ever sees it.
type Import struct {
	base
	Path string
}

// NativeFunc is a function value implemented directly in Go rather than
// compiled from surface syntax — used by primitives whose result is
// itself a function (wrap's per-symbol sealer) or by the driver's
// built-in functions (parseYaml, toYaml), where there is no
// surface-syntax shape to build a Fun node from. Fn receives the forced argument term; its Env is always the
// empty environment since it closes over Go values, not bound
// identifiers. This is a deliberate, narrow escape hatch, not a general
// FFI: Fn must not be serialized, compared, or inspected beyond calling
// it.
type NativeFunc struct {
	base
	Name string
	Fn   func(arg Term) (Term, error)
}

// ResolvedImport carries an opaque file id that the import resolver
// collaborator can look up via get(file_id) → term (§6). The evaluator
// treats it as an indirection cell it can ask the collaborator to resolve
// to a term on demand.
type ResolvedImport struct {
	base
	FileID string
}
