// Operation continuations (§4.2): the three shapes an in-flight Op1/Op2
// leaves on the stack while its operand(s) reduce, and the resume logic
// that drives them back into the primitive operator engine once a
// pending operand reaches WHNF.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

// Op1Cont is §4.2's Op1(uop, arg_pos): the unary to apply once the sole
// operand has reduced.
type Op1Cont struct {
	Op                  ast.UnaryOp
	Payload             ast.UnaryPayload
	Pos                 *ast.Span
	SavedEnrichedStrict bool
}

// Op2FirstCont is §4.2's Op2First: the first operand is being reduced;
// the second is still an unevaluated closure.
type Op2FirstCont struct {
	Op                  ast.BinaryOp
	Payload             ast.BinaryPayload
	Snd                 Closure
	FstPos              *ast.Span
	SavedEnrichedStrict bool
}

// Op2SecondCont is §4.2's Op2Second: both operands are now available.
type Op2SecondCont struct {
	Op                  ast.BinaryOp
	Payload             ast.BinaryPayload
	Fst                 Closure
	FstPos, SndPos      *ast.Span
	SavedEnrichedStrict bool
}

// unaryIsStrict reports the is_strict flag an operator's type carries
// (§4.1 "set enriched_strict := op.is_strict"). Every unary primitive in
// this core evaluates its operand under normal (enriched-transparent)
// evaluation.
func unaryIsStrict(ast.UnaryOp) bool { return true }

// binaryIsStrict mirrors unaryIsStrict for binary operators. Only Merge
// evaluates its operands with enriched_strict off, so DefaultValue
// wrappers survive to be inspected by the merge combinator instead of
// being transparently unwrapped (§4.4).
func binaryIsStrict(op ast.BinaryOp) bool {
	return op != ast.OpMerge
}

// resumeOpCont dispatches on the concrete continuation shape popped from
// the stack's OpCont frame, per §4.2's "On resume" rules. cur is the
// freshly-reduced operand that triggered the resume.
func (ev *Evaluator) resumeOpCont(cont interface{}, cur Closure) (Closure, error) {
	switch c := cont.(type) {

	case *Op1Cont:
		ev.EnrichedStrict = c.SavedEnrichedStrict
		return ev.applyUnary(c.Op, c.Payload, cur, c.Pos)

	case *Op2FirstCont:
		// Swap the freshly-evaluated first operand in, push Op2Second,
		// and hand back the second operand's closure for evaluation
		// (§4.2).
		ev.Stack.PushOpCont(&Op2SecondCont{
			Op:                  c.Op,
			Payload:             c.Payload,
			Fst:                 cur,
			FstPos:              c.FstPos,
			SndPos:              c.Snd.Term.Position(),
			SavedEnrichedStrict: c.SavedEnrichedStrict,
		}, ev.Stack.Len(), len(ev.CallStack))
		return c.Snd, nil

	case *Op2SecondCont:
		ev.EnrichedStrict = c.SavedEnrichedStrict
		return ev.applyBinary(c.Op, c.Payload, c.Fst, cur, c.FstPos, c.SndPos)

	default:
		return Closure{}, &Other{Msg: "unknown operation continuation"}
	}
}
