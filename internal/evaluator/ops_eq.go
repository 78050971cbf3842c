// Structural equality (§4.3 "=="). The spec describes this as recursing
// down to the standard library's `all (λx.x)` over element-wise
// sub-comparisons; since this core has no standard library (§1
// Non-goals: standard library definitions are out of scope), structEqual
// performs the equivalent direct recursive comparison itself rather than
// building a real `all`/lambda term to delegate to — see DESIGN.md for
// this Open Question resolution.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

func (ev *Evaluator) applyStructEqual(a, b Closure, pos *ast.Span) (Closure, error) {
	eq, err := ev.structEqual(a, b)
	if err != nil {
		return Closure{}, err
	}
	return boolResult(eq)
}

func (ev *Evaluator) structEqual(a, b Closure) (bool, error) {
	switch x := a.Term.(type) {
	case *ast.Num:
		y, ok := b.Term.(*ast.Num)
		return ok && x.Value == y.Value, nil
	case *ast.Bool:
		y, ok := b.Term.(*ast.Bool)
		return ok && x.Value == y.Value, nil
	case *ast.Str:
		y, ok := b.Term.(*ast.Str)
		return ok && normalizeStr(x.Value) == normalizeStr(y.Value), nil
	case *ast.Sym:
		y, ok := b.Term.(*ast.Sym)
		return ok && x.ID == y.ID, nil
	case *ast.Enum:
		y, ok := b.Term.(*ast.Enum)
		return ok && x.Tag == y.Tag, nil
	case *ast.List:
		y, ok := b.Term.(*ast.List)
		if !ok || len(x.Items) != len(y.Items) {
			return false, nil
		}
		for i := range x.Items {
			fx, err := ev.Eval(x.Items[i], a.Env)
			if err != nil {
				return false, err
			}
			fy, err := ev.Eval(y.Items[i], b.Env)
			if err != nil {
				return false, err
			}
			eq, err := ev.structEqual(fx, fy)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *ast.Record:
		y, ok := b.Term.(*ast.Record)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false, nil
		}
		for name, fx := range x.Fields {
			fyTerm, ok := y.Fields[name]
			if !ok {
				return false, nil
			}
			vx, err := ev.Eval(fx, a.Env)
			if err != nil {
				return false, err
			}
			vy, err := ev.Eval(fyTerm, b.Env)
			if err != nil {
				return false, err
			}
			eq, err := ev.structEqual(vx, vy)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	default:
		return false, nil
	}
}
