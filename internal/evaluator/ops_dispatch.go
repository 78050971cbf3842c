// Central dispatch for the primitive operator engine of §4.3: routes a
// resumed OpCont to the concrete operator implementation living in the
// sibling ops_*.go files and merge.go.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

func (ev *Evaluator) applyUnary(op ast.UnaryOp, payload ast.UnaryPayload, arg Closure, pos *ast.Span) (Closure, error) {
	switch op {
	case ast.OpIsNum, ast.OpIsBool, ast.OpIsStr, ast.OpIsFun, ast.OpIsList, ast.OpIsRecord:
		return applyTypePredicate(op, arg)
	case ast.OpNot:
		return applyNot(arg, pos)
	case ast.OpIte, ast.OpBoolAnd, ast.OpBoolOr:
		return ev.applyControlFlow(op, arg, pos)
	case ast.OpBlame, ast.OpChngPol, ast.OpPolarity, ast.OpGoDom, ast.OpGoCodom, ast.OpGoField, ast.OpTag:
		return ev.applyLabelOp(op, payload, arg, pos)
	case ast.OpWrap:
		return applyWrap(arg, pos)
	case ast.OpEmbed:
		return applyEmbed(payload, arg, pos)
	case ast.OpStaticAccess:
		return ev.applyStaticAccess(payload, arg, pos)
	case ast.OpHasField:
		return ev.applyHasField(payload, arg, pos)
	case ast.OpFieldsOf:
		return ev.applyFieldsOf(arg, pos)
	case ast.OpRecordRemove:
		return ev.applyRecordRemove(payload, arg, pos)
	case ast.OpMapRec:
		return ev.applyMapRec(payload, arg, pos)
	case ast.OpHead:
		return ev.applyHead(arg, pos)
	case ast.OpTail:
		return ev.applyTail(arg, pos)
	case ast.OpLength:
		return ev.applyLength(arg, pos)
	case ast.OpElemAt:
		return ev.applyElemAt(payload, arg, pos)
	case ast.OpDeepSeq:
		return ev.applyDeepSeq(arg, pos)
	case ast.OpSwitch:
		return applySwitch(payload, arg, pos)
	case ast.OpTypeOf:
		return typeOfResult(arg.Term), nil
	}
	return Closure{}, &Other{Msg: "unimplemented unary operator", Pos: pos}
}

func (ev *Evaluator) applyBinary(op ast.BinaryOp, payload ast.BinaryPayload, a, b Closure, fstPos, sndPos *ast.Span) (Closure, error) {
	pos := fstPos
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return applyArith(op, a, b, pos)
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return applyCompare(op, a, b, pos)
	case ast.OpEq:
		return ev.applyStructEqual(a, b, pos)
	case ast.OpUnwrap:
		return applyUnwrap(a, b, pos)
	case ast.OpExtend:
		return ev.applyExtend(payload, a, b, pos)
	case ast.OpDynAccess:
		return ev.applyDynAccess(a, b, pos)
	case ast.OpDynRemove:
		return ev.applyDynRemove(a, b, pos)
	case ast.OpDynHasField:
		return ev.applyDynHasField(a, b, pos)
	case ast.OpConcat:
		return ev.applyConcat(a, b, pos)
	case ast.OpMap:
		return ev.applyMap(a, b, pos)
	case ast.OpSeq:
		return applySeq(a, b)
	case ast.OpMerge:
		return ev.applyMerge(a, b, pos)
	}
	return Closure{}, &Other{Msg: "unimplemented binary operator", Pos: pos}
}

func typeOfResult(t ast.Term) Closure {
	name := "Dyn"
	switch t.(type) {
	case *ast.Num:
		name = "Num"
	case *ast.Bool:
		name = "Bool"
	case *ast.Str:
		name = "Str"
	case *ast.Sym:
		name = "Sym"
	case *ast.List:
		name = "List"
	case *ast.Fun, *ast.NativeFunc:
		name = "Fun"
	case *ast.Record:
		name = "Record"
	case *ast.Enum:
		name = "Enum"
	}
	return AtomicClosure(&ast.Str{Value: name})
}
