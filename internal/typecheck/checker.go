// The bidirectional, row-polymorphic typechecker of §4.5: a permissive
// mode that merely traverses looking for nested Promise/Assume
// boundaries, and a strict mode (entered by Promise, exited by Assume)
// that actually unifies.
//
// Grounded on original_source/src/typecheck.rs's type_check_ walk
// (env/strict/term/expected shape, the Let-uses-annotation-or-Dyn rule,
// the enriched-wrapper transparency) and on funvibe-funxy's
// typesystem/unify.go for the union-find/occurs-check machinery this
// package's Table and Unify build on (internal/typecheck/state.go,
// unify.go).
package typecheck

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

// Checker holds the mutable unification state for one top-level check.
type Checker struct {
	Table *Table
}

// NewChecker returns a checker with fresh, empty state.
func NewChecker() *Checker {
	return &Checker{Table: NewTable()}
}

// CheckProgram typechecks term against a freshly-minted Dyn-rooted
// expectation in permissive mode, the entry point a driver calls before
// evaluation (§6).
func (c *Checker) CheckProgram(term ast.Term) error {
	return c.Check(EmptyEnv(), false, term, typesystem.Dyn{})
}

// Check implements type_check_(env, strict, term, expected). In
// permissive mode (!strict) every unify call is skipped — the walk
// still recurses structurally so a nested Promise can flip into strict
// mode — matching §4.5's "unification is a no-op; the checker merely
// traverses to find nested annotations."
func (c *Checker) Check(env *Env, strict bool, term ast.Term, expected typesystem.Type) error {
	unify := func(a, b typesystem.Type) error {
		if !strict {
			return nil
		}
		if err := Unify(c.Table, a, b); err != nil {
			return &TypecheckError{Msg: err.Error(), Pos: term.Position()}
		}
		return nil
	}

	switch t := term.(type) {
	case *ast.Num:
		return unify(expected, typesystem.Num{})
	case *ast.Bool:
		return unify(expected, typesystem.Bool{})
	case *ast.Str:
		return unify(expected, typesystem.Str{})
	case *ast.Sym:
		return unify(expected, typesystem.Sym{})
	case *ast.Lbl:
		return nil // labels carry no surface type (§3.5)

	case *ast.Var:
		ty, ok := env.Lookup(t.Name)
		if !ok {
			return &UnboundIdentifier{ID: t.Name, Pos: t.Position()}
		}
		return unify(expected, instantiate(c.Table, ty))

	case *ast.Fun:
		src := c.Table.Fresh()
		tgt := c.Table.Fresh()
		if err := unify(expected, typesystem.Arrow{Dom: src, Cod: tgt}); err != nil {
			return err
		}
		return c.Check(env.Extend(t.Param, src), strict, t.Body, tgt)

	case *ast.Let:
		boundTy := declaredType(t.Bound)
		if boundTy == nil {
			boundTy = typesystem.Dyn{}
		}
		if err := c.Check(env, strict, t.Bound, boundTy); err != nil {
			return err
		}
		return c.Check(env.Extend(t.Name, boundTy), strict, t.Body, expected)

	case *ast.App:
		src := c.Table.Fresh()
		if err := c.Check(env, strict, t.Fun, typesystem.Arrow{Dom: src, Cod: expected}); err != nil {
			return err
		}
		return c.Check(env, strict, t.Arg, src)

	case *ast.Op1:
		if handled, err := specialUnary(c, env, strict, t, expected); handled {
			return err
		}
		scheme := unaryScheme(c.Table, t.Op, t.Payload)
		arrow, ok := scheme.(typesystem.Arrow)
		if !ok {
			return fmt.Errorf("operator scheme is not a function type: %s", scheme)
		}
		if err := unify(expected, arrow.Cod); err != nil {
			return err
		}
		return c.Check(env, strict, t.Arg, arrow.Dom)

	case *ast.Op2:
		scheme := binaryScheme(c.Table, t.Op, t.Payload)
		arrow, ok := scheme.(typesystem.Arrow)
		if !ok {
			return fmt.Errorf("operator scheme is not a function type: %s", scheme)
		}
		inner, ok := arrow.Cod.(typesystem.Arrow)
		if !ok {
			return fmt.Errorf("binary operator scheme is not curried: %s", scheme)
		}
		if err := unify(expected, inner.Cod); err != nil {
			return err
		}
		if err := c.Check(env, strict, t.Fst, arrow.Dom); err != nil {
			return err
		}
		return c.Check(env, strict, t.Snd, inner.Dom)

	case *ast.Record:
		return c.checkRecord(env, strict, t.Fields, t.FieldOrder, expected)

	case *ast.RecRecord:
		return c.checkRecord(env, strict, t.Fields, t.FieldOrder, expected)

	case *ast.List:
		if err := unify(expected, typesystem.List{}); err != nil {
			return err
		}
		for _, item := range t.Items {
			if err := c.Check(env, strict, item, c.Table.Fresh()); err != nil {
				return err
			}
		}
		return nil

	case *ast.Enum:
		return unify(expected, typesystem.Enum{Row: c.Table.Fresh()})

	case *ast.StrChunks:
		if err := unify(expected, typesystem.Str{}); err != nil {
			return err
		}
		for _, chunk := range t.Chunks {
			if chunk.IsExpr {
				if err := c.Check(env, strict, chunk.Expr, c.Table.Fresh()); err != nil {
					return err
				}
			}
		}
		return nil

	case *ast.Promise:
		if err := unify(expected, t.Type); err != nil {
			return err
		}
		skolemized := instantiateSkolem(c.Table, t.Type)
		return c.Check(env, true, t.Term, skolemized)

	case *ast.Assume:
		if err := unify(expected, t.Type); err != nil {
			return err
		}
		return c.Check(env, false, t.Term, c.Table.Fresh())

	case *ast.DefaultValue:
		return c.Check(env, strict, t.Term, expected)
	case *ast.Docstring:
		return c.Check(env, strict, t.Term, expected)
	case *ast.Contract:
		return unify(expected, t.Type)
	case *ast.ContractWithDefault:
		if err := unify(expected, t.Type); err != nil {
			return err
		}
		return c.Check(env, strict, t.Term, c.Table.Fresh())
	case *ast.Wrapped:
		return c.Check(env, strict, t.Term, expected)

	case *ast.Import, *ast.ResolvedImport, *ast.NativeFunc:
		return nil

	default:
		return fmt.Errorf("typecheck: unhandled term %T", t)
	}
}

// checkRecord infers a StaticRecord by folding RowExtend over the
// fields (or, when expected resolves to a DynRecord, checks every
// field against its shared value type), per §4.5.
func (c *Checker) checkRecord(env *Env, strict bool, fields map[string]ast.Term, order []string, expected typesystem.Type) error {
	if strict {
		if dr, ok := c.Table.Resolve(expected).(typesystem.DynRecord); ok {
			for _, name := range order {
				if err := c.Check(env, strict, fields[name], dr.Value); err != nil {
					return err
				}
			}
			return nil
		}
	}

	row := typesystem.Type(typesystem.RowEmpty{})
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		fieldTy := c.Table.Fresh()
		if err := c.Check(env, strict, fields[name], fieldTy); err != nil {
			return err
		}
		row = typesystem.RowExtend{Label: name, FieldType: fieldTy, Tail: row}
	}
	if !strict {
		return nil
	}
	return Unify(c.Table, expected, typesystem.StaticRecord{Row: row})
}

// declaredType extracts the top-level contract type a Let's bound
// expression already carries, if any (§4.5: "if e has a top-level
// Promise/Assume, use that type as the bound").
func declaredType(bound ast.Term) typesystem.Type {
	switch t := bound.(type) {
	case *ast.Promise:
		return t.Type
	case *ast.Assume:
		return t.Type
	case *ast.Docstring:
		return declaredType(t.Term)
	default:
		return nil
	}
}

// specialUnary handles the two unary operators whose scheme depends on
// payload data rather than a fixed table entry: MapRec (needs the
// mapping function's own inferred type) and Switch (needs the case
// table's row to be exact unless a default is present).
func specialUnary(c *Checker, env *Env, strict bool, t *ast.Op1, expected typesystem.Type) (handled bool, err error) {
	switch t.Op {
	case ast.OpMapRec:
		a := c.Table.Fresh()
		b := c.Table.Fresh()
		fnTy := typesystem.Arrow{Dom: typesystem.Str{}, Cod: typesystem.Arrow{Dom: a, Cod: b}}
		if t.Payload.MapFn != nil {
			if err := c.Check(env, strict, t.Payload.MapFn, fnTy); err != nil {
				return true, err
			}
		}
		if strict {
			if err := Unify(c.Table, expected, typesystem.DynRecord{Value: b}); err != nil {
				return true, err
			}
		}
		return true, c.Check(env, strict, t.Arg, typesystem.DynRecord{Value: a})

	case ast.OpSwitch:
		result := c.Table.Fresh()
		if strict {
			if err := Unify(c.Table, expected, result); err != nil {
				return true, err
			}
		}
		row := typesystem.Type(typesystem.RowEmpty{})
		if t.Payload.Default != nil {
			row = c.Table.Fresh()
			if err := c.Check(env, strict, t.Payload.Default, result); err != nil {
				return true, err
			}
		}
		for tag, body := range t.Payload.Cases {
			if err := c.Check(env, strict, body, result); err != nil {
				return true, err
			}
			row = typesystem.RowExtend{Label: tag, Tail: row}
		}
		return true, c.Check(env, strict, t.Arg, typesystem.Enum{Row: row})
	}
	return false, nil
}
