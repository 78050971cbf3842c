package typecheck

import "github.com/funvibe/corelang/internal/typesystem"

// Env maps identifiers to their TypeWrapper, extended immutably so a
// checking branch's bindings never leak to its sibling (mirrors
// evaluator.Env's persistent-extension discipline, §3.2).
type Env struct {
	parent *Env
	name   string
	ty     typesystem.Type
}

// EmptyEnv returns the environment with no bindings.
func EmptyEnv() *Env { return nil }

// Extend returns a new environment with name bound to ty, shadowing any
// outer binding of the same name.
func (e *Env) Extend(name string, ty typesystem.Type) *Env {
	return &Env{parent: e, name: name, ty: ty}
}

// Lookup finds the nearest binding for name, if any.
func (e *Env) Lookup(name string) (typesystem.Type, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.ty, true
		}
	}
	return nil, false
}
