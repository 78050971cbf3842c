package typecheck

import (
	"fmt"

	"github.com/funvibe/corelang/internal/typesystem"
)

// Unify makes a and b equal under tb's substitution, mutating tb.
// Grounded on funvibe-funxy's unify.go (co-inductive dispatch on the
// left operand's concrete shape, Bind for variables) but without that
// file's width-subtyping/TUnion cases, since this core's row
// polymorphism supplies the equivalent flexibility through RowExtend
// rather than through a union type.
func Unify(tb *Table, a, b typesystem.Type) error {
	a = tb.Resolve(a)
	b = tb.Resolve(b)

	if av, ok := a.(typesystem.Var); ok {
		if bv, ok := b.(typesystem.Var); ok && bv.ID == av.ID {
			return nil
		}
		return bindVar(tb, av, b)
	}
	if bv, ok := b.(typesystem.Var); ok {
		return bindVar(tb, bv, a)
	}

	switch x := a.(type) {
	case typesystem.Dyn:
		if _, ok := b.(typesystem.Dyn); ok {
			return nil
		}
	case typesystem.Num:
		if _, ok := b.(typesystem.Num); ok {
			return nil
		}
	case typesystem.Bool:
		if _, ok := b.(typesystem.Bool); ok {
			return nil
		}
	case typesystem.Str:
		if _, ok := b.(typesystem.Str); ok {
			return nil
		}
	case typesystem.Sym:
		if _, ok := b.(typesystem.Sym); ok {
			return nil
		}
	case typesystem.List:
		if _, ok := b.(typesystem.List); ok {
			return nil
		}
	case typesystem.Arrow:
		y, ok := b.(typesystem.Arrow)
		if !ok {
			break
		}
		if err := Unify(tb, x.Dom, y.Dom); err != nil {
			return err
		}
		return Unify(tb, x.Cod, y.Cod)
	case typesystem.Flat:
		// Flat contracts carry an opaque predicate term; they are only
		// ever compared by identity of the wrapping Promise/Assume node,
		// never unified structurally (§4.5 treats Flat as a leaf).
		return nil
	case typesystem.Forall:
		y, ok := b.(typesystem.Forall)
		if !ok {
			break
		}
		return Unify(tb, x.Body, y.Body)
	case typesystem.RowEmpty:
		if _, ok := b.(typesystem.RowEmpty); ok {
			return nil
		}
	case typesystem.RowExtend:
		return unifyRows(tb, x, b)
	case typesystem.Enum:
		y, ok := b.(typesystem.Enum)
		if !ok {
			break
		}
		return Unify(tb, x.Row, y.Row)
	case typesystem.StaticRecord:
		y, ok := b.(typesystem.StaticRecord)
		if !ok {
			break
		}
		return Unify(tb, x.Row, y.Row)
	case typesystem.DynRecord:
		y, ok := b.(typesystem.DynRecord)
		if !ok {
			break
		}
		return Unify(tb, x.Value, y.Value)
	}

	if a.String() == b.String() {
		return nil
	}
	return fmt.Errorf("cannot unify %s with %s", a, b)
}

func bindVar(tb *Table, v typesystem.Var, ty typesystem.Type) error {
	if resolvedTy, ok := ty.(typesystem.Var); ok {
		if resolvedTy.ID == v.ID {
			return nil
		}
		tb.UnionBans(resolvedTy.ID, v.ID)
	}
	return tb.Bind(v, ty)
}

// unifyRows implements row_add (§4.5): finds (or, if b's tail is a
// variable, appends) x.Label somewhere in row b, unifying the field
// type found along the way, then unifies x's own tail against
// whatever remains of b once that label is removed.
func unifyRows(tb *Table, x typesystem.RowExtend, b typesystem.Type) error {
	remainder := tb.Fresh()
	if err := rowAdd(tb, x.Label, x.FieldType, b, remainder); err != nil {
		return err
	}
	return Unify(tb, x.Tail, remainder)
}

// rowAdd finds-or-appends label in row, respecting tb's row-ban
// bookkeeping (§4.5 "row constraints"): a variable tail gains a ban on
// label once it is forced to extend past it.
func rowAdd(tb *Table, label string, fieldType typesystem.Type, row typesystem.Type, result typesystem.Var) error {
	row = tb.Resolve(row)
	switch r := row.(type) {
	case typesystem.RowExtend:
		if r.Label == label {
			if r.FieldType != nil && fieldType != nil {
				if err := Unify(tb, r.FieldType, fieldType); err != nil {
					return err
				}
			}
			return tb.Bind(result, r.Tail)
		}
		innerResult := tb.Fresh()
		if err := rowAdd(tb, label, fieldType, r.Tail, innerResult); err != nil {
			return err
		}
		return tb.Bind(result, typesystem.RowExtend{Label: r.Label, FieldType: r.FieldType, Tail: innerResult})
	case typesystem.RowEmpty:
		return fmt.Errorf("label %q not found in closed row", label)
	case typesystem.Var:
		if bans := tb.RowBans(r.ID); bans != nil && bans[label] {
			return fmt.Errorf("row constraint violation: label %q already excluded from row variable %s", label, r)
		}
		tail := tb.Fresh()
		tb.BanLabels(tail.ID, []string{label})
		if err := tb.Bind(r, typesystem.RowExtend{Label: label, FieldType: fieldType, Tail: tail}); err != nil {
			return err
		}
		return tb.Bind(result, tail)
	default:
		return fmt.Errorf("cannot extend non-row type %s with label %q", row, label)
	}
}
