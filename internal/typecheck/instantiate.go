package typecheck

import "github.com/funvibe/corelang/internal/typesystem"

// instantiate strips ty's leading Foralls, replacing each bound
// variable with a fresh mutable unification variable (used for Var
// lookups, §4.5: "instantiate head Foralls with fresh variables").
func instantiate(tb *Table, ty typesystem.Type) typesystem.Type {
	for {
		fa, ok := ty.(typesystem.Forall)
		if !ok {
			return ty
		}
		fresh := tb.Fresh()
		ty = fa.Body.Apply(typesystem.Subst{fa.Var: fresh})
	}
}

// instantiateSkolem strips ty's leading Foralls, replacing each bound
// variable with a fresh rigid skolem (used for Promise, §4.5:
// "instantiate head Foralls with fresh constants").
func instantiateSkolem(tb *Table, ty typesystem.Type) typesystem.Type {
	for {
		fa, ok := ty.(typesystem.Forall)
		if !ok {
			return ty
		}
		skolem := tb.FreshSkolem()
		ty = fa.Body.Apply(typesystem.Subst{fa.Var: skolem})
	}
}
