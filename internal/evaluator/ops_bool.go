// Boolean control-flow primitives of §4.3: if/then/else, short-circuiting
// && and ||. All three are unary operators dispatching on a single
// forced Bool operand, then pulling further branch(es) directly off the
// pending Arg stack rather than through an Op2 second-operand slot — the
// mechanism §9's design note on short-circuiting describes ("the second
// operand consumed from the arg stack only when needed"). Encoded at the
// term level as App(App(Op1(Ite, cond), thenBranch), elseBranch) (and
// analogously for && / ||), so by the time the unary resumes with cond in
// WHNF, the surrounding App dispatches have already pushed the branch
// closures as Arg frames.
package evaluator

import (
	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/stack"
)

func (ev *Evaluator) applyControlFlow(op ast.UnaryOp, cond Closure, pos *ast.Span) (Closure, error) {
	b, ok := cond.Term.(*ast.Bool)
	if !ok {
		return Closure{}, &TypeError{Expected: "Bool", Op: "if/&&/||", Term: cond.Term, Pos: pos}
	}

	switch op {
	case ast.OpIte:
		thenFrame, ok := ev.Stack.Pop()
		if !ok || thenFrame.Kind != stack.KindArg {
			return Closure{}, &NotEnoughArgs{Required: 2, Op: "if", Pos: pos}
		}
		elseFrame, ok := ev.Stack.Pop()
		if !ok || elseFrame.Kind != stack.KindArg {
			return Closure{}, &NotEnoughArgs{Required: 2, Op: "if", Pos: pos}
		}
		if b.Value {
			return *thenFrame.Arg.(*Closure), nil
		}
		return *elseFrame.Arg.(*Closure), nil

	case ast.OpBoolAnd:
		sndFrame, ok := ev.Stack.Pop()
		if !ok || sndFrame.Kind != stack.KindArg {
			return Closure{}, &NotEnoughArgs{Required: 2, Op: "&&", Pos: pos}
		}
		if !b.Value {
			return boolResult(false)
		}
		return *sndFrame.Arg.(*Closure), nil

	case ast.OpBoolOr:
		sndFrame, ok := ev.Stack.Pop()
		if !ok || sndFrame.Kind != stack.KindArg {
			return Closure{}, &NotEnoughArgs{Required: 2, Op: "||", Pos: pos}
		}
		if b.Value {
			return boolResult(true)
		}
		return *sndFrame.Arg.(*Closure), nil
	}

	return Closure{}, &Other{Msg: "not a control-flow operator", Pos: pos}
}
