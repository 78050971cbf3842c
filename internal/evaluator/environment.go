package evaluator

// BindingKind tags why an identifier entered an environment. It is
// carried purely for debugging/call-stack annotation (§3.2) and never
// influences evaluation.
type BindingKind int

const (
	BindLet BindingKind = iota
	BindLam
	BindRecord
)

func (k BindingKind) String() string {
	switch k {
	case BindLet:
		return "let"
	case BindLam:
		return "lambda"
	case BindRecord:
		return "record"
	default:
		return "?"
	}
}

// Binding pairs a shared thunk with the binding-kind tag of §3.2.
type Binding struct {
	Thunk *Thunk
	Kind  BindingKind
}

// Env is the environment of §3.2: an immutable mapping from identifier
// to a shared, interior-mutable thunk plus its binding-kind. It is a
// thin wrapper around PersistentMap so that cloning on closure
// construction (every Fun application, every Let) is the cheap
// structural-sharing operation the persistent map gives for free,
// instead of a deep copy — grounded on
// github.com/funvibe/funxy/internal/evaluator/persistent_map.go's HAMT,
// re-keyed here by plain Go strings since environments are indexed by
// identifier, not by a hashed Object (see persistent_map.go in this
// package for the adaptation).
type Env struct {
	bindings *stringMap
}

// EmptyEnv is the environment with no bindings.
func EmptyEnv() Env {
	return Env{bindings: emptyStringMap()}
}

// Lookup returns the binding for name, and whether it was found.
func (e Env) Lookup(name string) (Binding, bool) {
	v, ok := e.bindings.Get(name)
	if !ok {
		return Binding{}, false
	}
	return v.(Binding), true
}

// Extend returns a new environment with name bound to the given thunk
// and binding-kind, sharing structure with e (§9 "Environment
// representation").
func (e Env) Extend(name string, t *Thunk, kind BindingKind) Env {
	return Env{bindings: e.bindings.Put(name, Binding{Thunk: t, Kind: kind})}
}

// Len reports the number of bindings visible in this environment.
func (e Env) Len() int {
	if e.bindings == nil {
		return 0
	}
	return e.bindings.Len()
}
