// List primitives of §4.3: head, tail, length, @ (concat), map, elemAt.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

func asList(t ast.Term) (*ast.List, bool) {
	l, ok := t.(*ast.List)
	return l, ok
}

func (ev *Evaluator) applyHead(v Closure, pos *ast.Span) (Closure, error) {
	l, ok := asList(v.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "head", Term: v.Term, Pos: pos}
	}
	if len(l.Items) == 0 {
		return Closure{}, &Other{Msg: "head of empty list", Pos: pos}
	}
	return Closure{Term: l.Items[0], Env: v.Env}, nil
}

func (ev *Evaluator) applyTail(v Closure, pos *ast.Span) (Closure, error) {
	l, ok := asList(v.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "tail", Term: v.Term, Pos: pos}
	}
	if len(l.Items) == 0 {
		return Closure{}, &Other{Msg: "tail of empty list", Pos: pos}
	}
	return Closure{Term: &ast.List{Items: l.Items[1:]}, Env: v.Env}, nil
}

func (ev *Evaluator) applyLength(v Closure, pos *ast.Span) (Closure, error) {
	l, ok := asList(v.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "length", Term: v.Term, Pos: pos}
	}
	return numResult(float64(len(l.Items)))
}

func (ev *Evaluator) applyElemAt(payload ast.UnaryPayload, v Closure, pos *ast.Span) (Closure, error) {
	l, ok := asList(v.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "elemAt", Term: v.Term, Pos: pos}
	}
	idxClosure, err := ev.Eval(payload.IndexArg, v.Env)
	if err != nil {
		return Closure{}, err
	}
	idx, ok := asNum(idxClosure.Term)
	if !ok || idx != float64(int(idx)) {
		return Closure{}, &TypeError{Expected: "integer Num", Op: "elemAt", Term: idxClosure.Term, Pos: pos}
	}
	i := int(idx)
	if i < 0 || i >= len(l.Items) {
		return Closure{}, &Other{Msg: "elemAt: index out of bounds", Pos: pos}
	}
	return Closure{Term: l.Items[i], Env: v.Env}, nil
}

// applyConcat implements @, closurizing each element pair's originating
// environment into a shared host environment rather than deep-cloning
// either side (§4.3 Closurization).
func (ev *Evaluator) applyConcat(a, b Closure, pos *ast.Span) (Closure, error) {
	la, ok := asList(a.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "@", Term: a.Term, Pos: pos}
	}
	lb, ok := asList(b.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "@", Term: b.Term, Pos: pos}
	}
	hostEnv := a.Env
	items := make([]ast.Term, 0, len(la.Items)+len(lb.Items))
	for _, it := range la.Items {
		items = append(items, it)
	}
	for _, it := range lb.Items {
		fresh := freshVar("_cat")
		hostEnv = hostEnv.Extend(fresh, NewThunk(Closure{Term: it, Env: b.Env}), BindLet)
		items = append(items, &ast.Var{Name: fresh})
	}
	return Closure{Term: &ast.List{Items: items}, Env: hostEnv}, nil
}

// applyMap implements list map f by building one App per element,
// exactly as mapRec does for records (§4.3).
func (ev *Evaluator) applyMap(fnClosure, listClosure Closure, pos *ast.Span) (Closure, error) {
	l, ok := asList(listClosure.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "List", Op: "map", Term: listClosure.Term, Pos: pos}
	}
	hostEnv := listClosure.Env
	fnVar := freshVar("_mapfn")
	hostEnv = hostEnv.Extend(fnVar, NewThunk(fnClosure), BindLet)
	items := make([]ast.Term, len(l.Items))
	for i, it := range l.Items {
		items[i] = &ast.App{Fun: &ast.Var{Name: fnVar}, Arg: it}
	}
	return Closure{Term: &ast.List{Items: items}, Env: hostEnv}, nil
}
