// Label-transformation primitives of §4.3: blame, chngPol, polarity,
// goDom/goCodom/goField, tag.
package evaluator

import (
	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

func asLabel(t ast.Term) (typesystem.Label, bool) {
	l, ok := t.(*ast.Lbl)
	if !ok {
		return typesystem.Label{}, false
	}
	return l.Label, true
}

func (ev *Evaluator) applyLabelOp(op ast.UnaryOp, payload ast.UnaryPayload, v Closure, pos *ast.Span) (Closure, error) {
	lbl, ok := asLabel(v.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Lbl", Op: "label op", Term: v.Term, Pos: pos}
	}

	switch op {
	case ast.OpBlame:
		return Closure{}, &BlameError{Label: lbl, CallStack: append([]CallStackEntry(nil), ev.CallStack...)}
	case ast.OpChngPol:
		return AtomicClosure(&ast.Lbl{Label: lbl.FlipPolarity()}), nil
	case ast.OpPolarity:
		return boolResult(lbl.Polarity)
	case ast.OpGoDom:
		return AtomicClosure(&ast.Lbl{Label: lbl.WithPath(typesystem.PathStep{Kind: typesystem.Domain})}), nil
	case ast.OpGoCodom:
		return AtomicClosure(&ast.Lbl{Label: lbl.WithPath(typesystem.PathStep{Kind: typesystem.Codomain})}), nil
	case ast.OpGoField:
		return AtomicClosure(&ast.Lbl{Label: lbl.WithPath(typesystem.PathStep{Kind: typesystem.Field, FieldName: payload.FieldName})}), nil
	case ast.OpTag:
		return AtomicClosure(&ast.Lbl{Label: lbl.WithTag(payload.TagValue)}), nil
	}
	return Closure{}, &Other{Msg: "not a label operator", Pos: pos}
}
