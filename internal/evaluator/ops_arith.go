// Arithmetic, comparison, and type-predicate primitives of §4.3.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

func asNum(t ast.Term) (float64, bool) {
	n, ok := t.(*ast.Num)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func numResult(v float64) (Closure, error) {
	return AtomicClosure(&ast.Num{Value: v}), nil
}

func boolResult(v bool) (Closure, error) {
	return AtomicClosure(&ast.Bool{Value: v}), nil
}

func applyArith(op ast.BinaryOp, a, b Closure, pos *ast.Span) (Closure, error) {
	x, ok := asNum(a.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Num", Op: "arith", Term: a.Term, Pos: pos}
	}
	y, ok := asNum(b.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Num", Op: "arith", Term: b.Term, Pos: pos}
	}
	switch op {
	case ast.OpAdd:
		return numResult(x + y)
	case ast.OpSub:
		return numResult(x - y)
	case ast.OpMul:
		return numResult(x * y)
	case ast.OpDiv:
		if y == 0 {
			return Closure{}, &Other{Msg: "division by zero", Pos: pos}
		}
		return numResult(x / y)
	case ast.OpMod:
		if y == 0 {
			return Closure{}, &Other{Msg: "modulo by zero", Pos: pos}
		}
		return numResult(float64(int64(x) % int64(y)))
	}
	return Closure{}, &Other{Msg: "not an arithmetic operator", Pos: pos}
}

func applyCompare(op ast.BinaryOp, a, b Closure, pos *ast.Span) (Closure, error) {
	x, ok := asNum(a.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Num", Op: "compare", Term: a.Term, Pos: pos}
	}
	y, ok := asNum(b.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Num", Op: "compare", Term: b.Term, Pos: pos}
	}
	switch op {
	case ast.OpLt:
		return boolResult(x < y)
	case ast.OpLte:
		return boolResult(x <= y)
	case ast.OpGt:
		return boolResult(x > y)
	case ast.OpGte:
		return boolResult(x >= y)
	}
	return Closure{}, &Other{Msg: "not a comparison operator", Pos: pos}
}

func applyTypePredicate(op ast.UnaryOp, v Closure) (Closure, error) {
	switch op {
	case ast.OpIsNum:
		_, ok := v.Term.(*ast.Num)
		return boolResult(ok)
	case ast.OpIsBool:
		_, ok := v.Term.(*ast.Bool)
		return boolResult(ok)
	case ast.OpIsStr:
		_, ok := v.Term.(*ast.Str)
		return boolResult(ok)
	case ast.OpIsFun:
		_, ok := v.Term.(*ast.Fun)
		return boolResult(ok)
	case ast.OpIsList:
		_, ok := v.Term.(*ast.List)
		return boolResult(ok)
	case ast.OpIsRecord:
		_, ok := v.Term.(*ast.Record)
		return boolResult(ok)
	}
	return Closure{}, &Other{Msg: "not a type predicate"}
}

func applyNot(v Closure, pos *ast.Span) (Closure, error) {
	b, ok := v.Term.(*ast.Bool)
	if !ok {
		return Closure{}, &TypeError{Expected: "Bool", Op: "!", Term: v.Term, Pos: pos}
	}
	return boolResult(!b.Value)
}
