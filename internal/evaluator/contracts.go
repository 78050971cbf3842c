// The type-directed contract engine behind Promise/Assume (§4.1, §4.5).
// Each type shape compiles to a Go-native check rather than to a term
// the evaluator would have to synthesize and re-enter through App — the
// same "call straight back into Eval from native code" shape funxy's own
// builtins use whenever they need a forced argument.
package evaluator

import (
	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

// checkContract forces body far enough to decide whether it inhabits ty,
// under label. On success it returns a (possibly wrapped) closure for
// body; on failure it returns a BlameError carrying label and the call
// stack accumulated so far (§7).
func (ev *Evaluator) checkContract(ty typesystem.Type, label typesystem.Label, body Closure) (Closure, error) {
	switch t := ty.(type) {

	case typesystem.Dyn:
		// Dyn accepts anything unchecked; still evaluate to WHNF since
		// Promise/Assume are value positions (§4.1).
		return ev.Eval(body.Term, body.Env)

	case typesystem.Num:
		return ev.checkGround(body, label, func(v ast.Term) bool { _, ok := v.(*ast.Num); return ok })

	case typesystem.Bool:
		return ev.checkGround(body, label, func(v ast.Term) bool { _, ok := v.(*ast.Bool); return ok })

	case typesystem.Str:
		return ev.checkGround(body, label, func(v ast.Term) bool { _, ok := v.(*ast.Str); return ok })

	case typesystem.Sym:
		return ev.checkGround(body, label, func(v ast.Term) bool { _, ok := v.(*ast.Sym); return ok })

	case typesystem.List:
		return ev.checkGround(body, label, func(v ast.Term) bool { _, ok := v.(*ast.List); return ok })

	case typesystem.Flat:
		pred, ok := t.Term.(ast.Term)
		if !ok {
			return Closure{}, &Other{Msg: "malformed flat contract"}
		}
		value, err := ev.Eval(body.Term, body.Env)
		if err != nil {
			return Closure{}, err
		}
		verdict, err := ev.Eval(&ast.App{Fun: pred, Arg: value.Term}, value.Env)
		if err != nil {
			return Closure{}, err
		}
		b, ok := verdict.Term.(*ast.Bool)
		if !ok || !b.Value {
			return Closure{}, &BlameError{Label: label, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
		}
		return value, nil

	case typesystem.Arrow:
		// Higher-order contracts are checked lazily at application
		// boundaries: wrap the function so that each call re-checks its
		// argument against Dom and its result against Cod, threading
		// goDom/goCodom through the label's type path (§4.3).
		fn, err := ev.Eval(body.Term, body.Env)
		if err != nil {
			return Closure{}, err
		}
		return ev.wrapArrowContract(t, label, fn)

	case typesystem.Forall:
		// No rank-2 polymorphism is exercised by this core's runtime
		// checks (§1 Non-goals: full inference for unannotated terms);
		// the quantified variable is treated as transparent and the
		// body type is checked directly, matching the typechecker's own
		// skolemization-at-the-boundary treatment without requiring a
		// separate runtime skolem representation.
		return ev.checkContract(t.Body, label, body)

	case typesystem.Enum:
		value, err := ev.Eval(body.Term, body.Env)
		if err != nil {
			return Closure{}, err
		}
		tagTerm, ok := value.Term.(*ast.Enum)
		if !ok {
			return Closure{}, &BlameError{Label: label, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
		}
		labels, tail := typesystem.RowLabels(t.Row)
		if !containsLabel(labels, tagTerm.Tag) && tail == nil {
			return Closure{}, &BlameError{Label: label, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
		}
		return value, nil

	case typesystem.StaticRecord:
		value, err := ev.Eval(body.Term, body.Env)
		if err != nil {
			return Closure{}, err
		}
		rec, ok := value.Term.(*ast.Record)
		if !ok {
			return Closure{}, &BlameError{Label: label, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
		}
		labels, _ := typesystem.RowLabels(t.Row)
		for _, l := range labels {
			fieldTerm, ok := rec.Fields[l]
			if !ok {
				return Closure{}, &FieldMissing{Field: l, Op: "contract", Record: rec, Pos: value.Term.Position()}
			}
			fieldType := fieldTypeOf(t.Row, l)
			fieldLabel := label.WithPath(typesystem.PathStep{Kind: typesystem.Field, FieldName: l})
			checked, err := ev.checkContract(fieldType, fieldLabel, Closure{Term: fieldTerm, Env: value.Env})
			if err != nil {
				return Closure{}, err
			}
			rec.Fields[l] = checked.Term
		}
		return value, nil

	case typesystem.DynRecord:
		value, err := ev.Eval(body.Term, body.Env)
		if err != nil {
			return Closure{}, err
		}
		rec, ok := value.Term.(*ast.Record)
		if !ok {
			return Closure{}, &BlameError{Label: label, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
		}
		for name, fieldTerm := range rec.Fields {
			checked, err := ev.checkContract(t.Value, label, Closure{Term: fieldTerm, Env: value.Env})
			if err != nil {
				return Closure{}, err
			}
			rec.Fields[name] = checked.Term
		}
		return value, nil

	default:
		return ev.Eval(body.Term, body.Env)
	}
}

func (ev *Evaluator) checkGround(body Closure, label typesystem.Label, pred func(ast.Term) bool) (Closure, error) {
	value, err := ev.Eval(body.Term, body.Env)
	if err != nil {
		return Closure{}, err
	}
	if !pred(value.Term) {
		return Closure{}, &BlameError{Label: label, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
	}
	return value, nil
}

// wrapArrowContract returns fn re-wrapped so that every call checks its
// argument against arrow.Dom (negative position: chngPol) and its result
// against arrow.Cod (positive position), per the goDom/goCodom path
// steps of §4.3.
func (ev *Evaluator) wrapArrowContract(arrow typesystem.Arrow, label typesystem.Label, fn Closure) (Closure, error) {
	fnTerm, ok := fn.Term.(*ast.Fun)
	if !ok {
		return Closure{}, &NotAFunc{Term: fn.Term, Pos: fn.Term.Position()}
	}
	domLabel := label.WithPath(typesystem.PathStep{Kind: typesystem.Domain}).FlipPolarity()
	codLabel := label.WithPath(typesystem.PathStep{Kind: typesystem.Codomain})

	guardedParam := freshVar("_arg")
	wrapped := &ast.Fun{
		Param: guardedParam,
		Body: ast.NewAssume(arrow.Cod, codLabel,
			&ast.App{Fun: fnTerm, Arg: ast.NewAssume(arrow.Dom, domLabel, &ast.Var{Name: guardedParam}, nil)},
			nil),
	}
	return Closure{Term: wrapped, Env: fn.Env}, nil
}

func containsLabel(labels []string, tag string) bool {
	for _, l := range labels {
		if l == tag {
			return true
		}
	}
	return false
}

func fieldTypeOf(row typesystem.Type, label string) typesystem.Type {
	for {
		switch r := row.(type) {
		case typesystem.RowExtend:
			if r.Label == label {
				return r.FieldType
			}
			row = r.Tail
		default:
			return typesystem.Dyn{}
		}
	}
}
