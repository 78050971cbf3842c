// State for the bidirectional, row-polymorphic typechecker of §4.5: a
// union-find table over unification variables plus a row-constraint
// table recording, per variable, the labels it may never gain.
//
// Grounded on funvibe-funxy's internal/typesystem/unify.go (Bind /
// OccursCheck shape, kept here as resolve/bind over this core's own
// typesystem.Type instead of funxy's TVar/TCon/TApp), generalized with
// the row-extension and row-constraint bookkeeping original_source's
// src/typecheck.rs performs over its UnifTable/ConstrTable.
package typecheck

import (
	"fmt"

	"github.com/funvibe/corelang/internal/typesystem"
)

// TypeWrapper is one of Concrete (a shape over further TypeWrappers,
// represented directly as a typesystem.Type whose Var leaves are
// unification/skolem ids), Constant (a rigid skolem id), or Ptr (a
// mutable unification variable id). Concrete is represented as a plain
// typesystem.Type; Constant and Ptr share typesystem.Var and are told
// apart by the Table's skolem set.
type TypeWrapper = typesystem.Type

// Table is the typechecker's mutable state: a union-find map from
// variable id to its resolved type (absent means free), a row
// constraint map from variable id to its forbidden label set, the
// skolem set distinguishing rigid Constants from mutable Ptrs, and a
// counter minting fresh ids.
type Table struct {
	resolved map[int]typesystem.Type
	rowBans  map[int]map[string]bool
	skolems  map[int]bool
	next     int
}

// NewTable returns an empty typechecking state.
func NewTable() *Table {
	return &Table{
		resolved: make(map[int]typesystem.Type),
		rowBans:  make(map[int]map[string]bool),
		skolems:  make(map[int]bool),
	}
}

// Fresh mints a new, currently-unbound unification variable.
func (tb *Table) Fresh() typesystem.Var {
	tb.next++
	return typesystem.Var{ID: tb.next}
}

// FreshSkolem mints a new rigid constant, used to instantiate the
// universals of a Promise's declared type before strict-mode recursion.
func (tb *Table) FreshSkolem() typesystem.Var {
	v := tb.Fresh()
	tb.skolems[v.ID] = true
	return v
}

// IsSkolem reports whether id names a rigid constant rather than a
// mutable unification variable.
func (tb *Table) IsSkolem(id int) bool {
	return tb.skolems[id]
}

// Resolve follows the union-find chain from ty's head, replacing a bound
// Var with its binding, repeatedly, until reaching a type whose head is
// not a bound Var. Vars nested inside a structural type are left as is.
func (tb *Table) Resolve(ty typesystem.Type) typesystem.Type {
	for {
		v, ok := ty.(typesystem.Var)
		if !ok {
			return ty
		}
		next, bound := tb.resolved[v.ID]
		if !bound {
			return ty
		}
		ty = next
	}
}

// Bind records ty as the resolution of variable v, after an occurs
// check against infinite types (funvibe-funxy's Bind/OccursCheck).
func (tb *Table) Bind(v typesystem.Var, ty typesystem.Type) error {
	if other, ok := ty.(typesystem.Var); ok && other.ID == v.ID {
		return nil
	}
	if tb.IsSkolem(v.ID) {
		return fmt.Errorf("cannot bind rigid type variable %s to %s", v, ty)
	}
	if occursIn(v.ID, ty) {
		return fmt.Errorf("infinite type: %s occurs in %s", v, ty)
	}
	tb.resolved[v.ID] = ty
	return nil
}

func occursIn(id int, ty typesystem.Type) bool {
	for _, fv := range ty.FreeVars() {
		if fv == id {
			return true
		}
	}
	return false
}

// RowBans returns the (possibly nil) set of labels forbidden on row
// variable id.
func (tb *Table) RowBans(id int) map[string]bool {
	return tb.rowBans[id]
}

// BanLabels records that the row variable id may never gain any of
// labels, used when a variable becomes a row tail (§4.5 "row
// constraints").
func (tb *Table) BanLabels(id int, labels []string) {
	set := tb.rowBans[id]
	if set == nil {
		set = make(map[string]bool, len(labels))
		tb.rowBans[id] = set
	}
	for _, l := range labels {
		set[l] = true
	}
}

// UnionBans merges from's forbidden set into into's, used when two row
// variables unify (§4.5: "their forbidden sets union").
func (tb *Table) UnionBans(into, from int) {
	fromSet := tb.rowBans[from]
	if fromSet == nil {
		return
	}
	set := tb.rowBans[into]
	if set == nil {
		set = make(map[string]bool, len(fromSet))
		tb.rowBans[into] = set
	}
	for l := range fromSet {
		set[l] = true
	}
}
