package typesystem

import (
	"fmt"
	"sort"
)

// Type is the interface implemented by every member of the type algebra
// (§3.4). Unlike funxy's Type (which supports higher-kinded generics via
// TApp/Kind), this algebra has a closed, flat ground-type set plus rows,
// matching the Nickel core this spec distills (see
// original_source/src/types.rs).
type Type interface {
	String() string
	// Apply substitutes type variables per s; used by Forall
	// instantiation in internal/typecheck.
	Apply(s Subst) Type
	// FreeVars returns the unification variable ids free in this type.
	FreeVars() []int
}

// Subst maps unification variable ids to resolved types. The typechecker
// keeps its working substitution in a union-find table
// (internal/typecheck.Table); Subst is the flattened view handed to
// Type.Apply.
type Subst map[int]Type

// --- Ground types -----------------------------------------------------

type Dyn struct{}

func (Dyn) String() string        { return "Dyn" }
func (t Dyn) Apply(Subst) Type    { return t }
func (Dyn) FreeVars() []int       { return nil }

type Num struct{}

func (Num) String() string     { return "Num" }
func (t Num) Apply(Subst) Type { return t }
func (Num) FreeVars() []int    { return nil }

type Bool struct{}

func (Bool) String() string     { return "Bool" }
func (t Bool) Apply(Subst) Type { return t }
func (Bool) FreeVars() []int    { return nil }

type Str struct{}

func (Str) String() string     { return "Str" }
func (t Str) Apply(Subst) Type { return t }
func (Str) FreeVars() []int    { return nil }

type Sym struct{}

func (Sym) String() string     { return "Sym" }
func (t Sym) Apply(Subst) Type { return t }
func (Sym) FreeVars() []int    { return nil }

// List is the ground list type; like funxy's treatment of String as
// List<Char>, element typing is not tracked structurally in this core
// (§1 Non-goals: no full inference for unannotated terms) so List has no
// element-type parameter.
type List struct{}

func (List) String() string     { return "List" }
func (t List) Apply(Subst) Type { return t }
func (List) FreeVars() []int    { return nil }

// --- Structural types ---------------------------------------------------

// Arrow is a function type A -> B.
type Arrow struct {
	Dom, Cod Type
}

func (t Arrow) String() string { return fmt.Sprintf("(%s -> %s)", t.Dom, t.Cod) }
func (t Arrow) Apply(s Subst) Type {
	return Arrow{Dom: t.Dom.Apply(s), Cod: t.Cod.Apply(s)}
}
func (t Arrow) FreeVars() []int {
	return append(t.Dom.FreeVars(), t.Cod.FreeVars()...)
}

// Flat wraps an arbitrary term acting as an opaque predicate contract.
// Term is an interface{} (rather than ast.Term) to avoid an import
// cycle between typesystem and ast (ast.Promise/Assume already embed a
// typesystem.Type); the evaluator type-asserts it back to ast.Term at the
// point it needs to apply the predicate.
type Flat struct {
	Term interface{}
}

func (t Flat) String() string     { return "#<flat>" }
func (t Flat) Apply(Subst) Type   { return t }
func (Flat) FreeVars() []int      { return nil }

// Forall is a universally quantified (rank-1) type: forall id. T
type Forall struct {
	Var  int
	Body Type
}

func (t Forall) String() string { return fmt.Sprintf("forall %s. %s", Var{ID: t.Var}, t.Body) }
func (t Forall) Apply(s Subst) Type {
	// Quantified variable is bound; strip it from the substitution so an
	// outer substitution can't capture it.
	filtered := make(Subst, len(s))
	for k, v := range s {
		if k != t.Var {
			filtered[k] = v
		}
	}
	return Forall{Var: t.Var, Body: t.Body.Apply(filtered)}
}
func (t Forall) FreeVars() []int {
	out := []int{}
	for _, v := range t.Body.FreeVars() {
		if v != t.Var {
			out = append(out, v)
		}
	}
	return out
}

// Var is a unification type variable, resolved through the typechecker's
// union-find table (internal/typecheck.Table). Two Vars with the same
// ID denote the same metavariable.
type Var struct {
	ID int
}

func (t Var) String() string { return fmt.Sprintf("?t%d", t.ID) }
func (t Var) Apply(s Subst) Type {
	if repl, ok := s[t.ID]; ok {
		if rv, ok := repl.(Var); ok && rv.ID == t.ID {
			return t
		}
		return repl.Apply(s)
	}
	return t
}
func (t Var) FreeVars() []int { return []int{t.ID} }

// --- Rows ----------------------------------------------------------------

// RowEmpty terminates a closed row.
type RowEmpty struct{}

func (RowEmpty) String() string     { return "" }
func (t RowEmpty) Apply(Subst) Type { return t }
func (RowEmpty) FreeVars() []int    { return nil }

// RowExtend prepends a labeled field onto a row tail. FieldType is nil for
// enum rows (tags carry no payload); non-nil for record rows.
type RowExtend struct {
	Label     string
	FieldType Type // nil in an enum row
	Tail      Type // RowEmpty, Var, or another RowExtend
}

func (t RowExtend) String() string {
	if t.FieldType == nil {
		return fmt.Sprintf("%s%s", t.Label, rowTailString(t.Tail))
	}
	return fmt.Sprintf("%s: %s%s", t.Label, t.FieldType, rowTailString(t.Tail))
}
func rowTailString(tail Type) string {
	switch tail.(type) {
	case RowEmpty:
		return ""
	default:
		return ", " + tail.String()
	}
}
func (t RowExtend) Apply(s Subst) Type {
	var ft Type
	if t.FieldType != nil {
		ft = t.FieldType.Apply(s)
	}
	return RowExtend{Label: t.Label, FieldType: ft, Tail: t.Tail.Apply(s)}
}
func (t RowExtend) FreeVars() []int {
	var out []int
	if t.FieldType != nil {
		out = append(out, t.FieldType.FreeVars()...)
	}
	return append(out, t.Tail.FreeVars()...)
}

// Enum is a structural row of tags: Enum(`ok, `err | ρ).
type Enum struct {
	Row Type
}

func (t Enum) String() string     { return fmt.Sprintf("[| %s |]", t.Row) }
func (t Enum) Apply(s Subst) Type { return Enum{Row: t.Row.Apply(s)} }
func (t Enum) FreeVars() []int    { return t.Row.FreeVars() }

// StaticRecord is a structural row of statically-known fields.
type StaticRecord struct {
	Row Type
}

func (t StaticRecord) String() string     { return fmt.Sprintf("{%s}", t.Row) }
func (t StaticRecord) Apply(s Subst) Type { return StaticRecord{Row: t.Row.Apply(s)} }
func (t StaticRecord) FreeVars() []int    { return t.Row.FreeVars() }

// DynRecord is a record whose field set is not statically known, but every
// value has the same type (the common shape of a dynamically-keyed map).
type DynRecord struct {
	Value Type
}

func (t DynRecord) String() string     { return fmt.Sprintf("{_: %s}", t.Value) }
func (t DynRecord) Apply(s Subst) Type { return DynRecord{Value: t.Value.Apply(s)} }
func (t DynRecord) FreeVars() []int    { return t.Value.FreeVars() }

// --- Row helpers ---------------------------------------------------------

// RowLabels collects, in row order, the field labels of a (possibly open)
// row, plus the unresolved tail if one remains.
func RowLabels(row Type) (labels []string, tail Type) {
	for {
		switch r := row.(type) {
		case RowExtend:
			labels = append(labels, r.Label)
			row = r.Tail
		case RowEmpty:
			return labels, nil
		default: // Var or anything else: open tail
			return labels, row
		}
	}
}

// SortedRowLabels returns the labels of a row sorted lexicographically.
// The evaluator's fieldsOf sorts its field names directly and does not
// call it.
func SortedRowLabels(row Type) []string {
	labels, _ := RowLabels(row)
	sort.Strings(labels)
	return labels
}
