// seq / deepSeq forcing primitives of §4.3.
//
// seq's "force the first argument" half is free: by the time
// applyBinary runs for OpSeq, the evaluator has already driven both
// operands to WHNF as part of ordinary Op2 dispatch (§4.2). seq's whole
// job is therefore just "return the second operand, having forced the
// first as a side effect of evaluating it" — so applySeq below is a
// one-liner; deepSeq additionally recurses into records/lists.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

func applySeq(_, b Closure) (Closure, error) {
	return b, nil
}

// applyDeepSeq recursively forces every field of a record or element of
// a list (and their nested records/lists) before yielding v unchanged
// (§4.3).
func (ev *Evaluator) applyDeepSeq(v Closure, pos *ast.Span) (Closure, error) {
	if err := ev.deepForce(v); err != nil {
		return Closure{}, err
	}
	return v, nil
}

// DeepForce exports applyDeepSeq for callers outside this package (the
// cmd/corelang driver's -out yaml path) that need a fully-forced value
// tree without going through a surface deepSeq term; the toYaml builtin
// calls applyDeepSeq directly.
func (ev *Evaluator) DeepForce(v Closure) (Closure, error) {
	return ev.applyDeepSeq(v, nil)
}

func (ev *Evaluator) deepForce(v Closure) error {
	switch t := v.Term.(type) {
	case *ast.Record:
		for name, field := range t.Fields {
			forced, err := ev.Eval(field, v.Env)
			if err != nil {
				return err
			}
			t.Fields[name] = forced.Term
			if err := ev.deepForce(forced); err != nil {
				return err
			}
		}
	case *ast.List:
		for i, item := range t.Items {
			forced, err := ev.Eval(item, v.Env)
			if err != nil {
				return err
			}
			t.Items[i] = forced.Term
			if err := ev.deepForce(forced); err != nil {
				return err
			}
		}
	}
	return nil
}
