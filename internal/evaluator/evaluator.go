// Package evaluator implements the CEK-style lazy abstract machine of
// §4.1: it drives a current closure through the term dispatch table,
// pushing Arg/Thunk/OpCont frames onto internal/stack.Stack and
// resolving them as WHNF is reached.
//
// Grounded on github.com/funvibe/funxy/internal/evaluator/evaluator.go's
// overall "Eval drains a stack of pending work" shape (Evaluator.stack,
// Evaluator.callStack), rebuilt around this core's four-category stack
// and call-by-need thunk discipline rather than funxy's strict
// tree-walking interpreter.
package evaluator

import (
	"fmt"
	"io"
	"weak"

	"github.com/google/uuid"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/stack"
)

// ModuleLoader is the import resolver collaborator of §6: the evaluator
// only ever sees ResolvedImport nodes, and asks this collaborator to
// turn a file id into the already-resolved term.
type ModuleLoader interface {
	Get(fileID string) (ast.Term, error)
}

// Evaluator holds the mutable state of §4.1: the main stack, a call
// stack used purely for blame-report attachment, the enriched_strict
// flag, and an optional tracing sink.
type Evaluator struct {
	Stack     *stack.Stack
	CallStack []CallStackEntry

	// EnrichedStrict controls whether enriched wrappers (DefaultValue,
	// Docstring, Contract, ContractWithDefault) transparently unwrap
	// during Eval (§4.1). Initially true; toggled off around Op2 Merge
	// sub-evaluation (§4.4).
	EnrichedStrict bool

	Modules ModuleLoader

	// Out receives interpreter-level tracing (one line per thunk update
	// written by atValue) instead of this core adopting a
	// structured logging dependency nothing in the pack uses at this
	// layer (SPEC_FULL §A).
	Out io.Writer
}

// New returns an Evaluator ready to drive Eval, with enriched_strict
// initially true per §4.1.
func New(modules ModuleLoader, out io.Writer) *Evaluator {
	return &Evaluator{
		Stack:          stack.New(),
		EnrichedStrict: true,
		Modules:        modules,
		Out:            out,
	}
}

func (ev *Evaluator) trace(format string, args ...interface{}) {
	if ev.Out == nil {
		return
	}
	fmt.Fprintf(ev.Out, format+"\n", args...)
}

// freshVar mints a collision-free identifier for closurization (§4.3)
// and merge's fresh-variable generation (§4.4), using a UUID rather than
// a process-global counter so that concurrent/forked evaluators can
// never collide — see SPEC_FULL §B for the original_source/merge.rs
// grounding of this substitution.
func freshVar(prefix string) string {
	return prefix + uuid.NewString()
}

// Eval drives term/env to WHNF per §4.1's eval(term) → value | error
// contract. It is the sole external entry point; OpCont dispatch, merge,
// and all primitive operators are reached only through this loop.
func (ev *Evaluator) Eval(term ast.Term, env Env) (Closure, error) {
	// Each call drives its own stack, so a nested Eval (NativeFunc
	// argument forcing, contracts, deepSeq) stops at its own WHNF
	// instead of resuming the caller's pending frames.
	saved := ev.Stack
	ev.Stack = stack.New()
	defer func() { ev.Stack = saved }()

	cur := Closure{Term: term, Env: env}

	for {
		switch t := cur.Term.(type) {

		case *ast.Var:
			next, err := ev.evalVar(t, cur.Env)
			if err != nil {
				return Closure{}, err
			}
			cur = next
			continue

		case *ast.App:
			// Push the argument as a pending Arg frame; continue with
			// the function position (§4.1 App dispatch).
			argClosure := Closure{Term: t.Arg, Env: cur.Env}
			ev.Stack.PushArg(&argClosure, spanOf(t.Position()))
			cur = Closure{Term: t.Fun, Env: cur.Env}
			continue

		case *ast.Let:
			th := NewThunk(Closure{Term: t.Bound, Env: cur.Env})
			newEnv := cur.Env.Extend(t.Name, th, BindLet)
			cur = Closure{Term: t.Body, Env: newEnv}
			continue

		case *ast.Fun:
			frame, ok := ev.Stack.Peek()
			if ok && frame.Kind == stack.KindArg {
				ev.Stack.Pop()
				argClosure := frame.Arg.(*Closure)
				th := NewThunk(*argClosure)
				newEnv := cur.Env.Extend(t.Param, th, BindLam)
				ev.CallStack = append(ev.CallStack, CallStackEntry{Kind: "App", Pos: t.Position()})
				cur = Closure{Term: t.Body, Env: newEnv}
				continue
			}
			// No pending arg: the function is its own value. Fall
			// through to the "value reached" handling below.

		case *ast.NativeFunc:
			frame, ok := ev.Stack.Peek()
			if ok && frame.Kind == stack.KindArg {
				ev.Stack.Pop()
				argClosure := frame.Arg.(*Closure)
				forcedArg, err := ev.Eval(argClosure.Term, argClosure.Env)
				if err != nil {
					return Closure{}, err
				}
				result, err := t.Fn(forcedArg.Term)
				if err != nil {
					return Closure{}, err
				}
				cur = AtomicClosure(result)
				continue
			}
			// No pending arg: same as Fun, it is its own value.

		case *ast.Op1:
			argClosure := Closure{Term: t.Arg, Env: cur.Env}
			ev.Stack.PushOpCont(&Op1Cont{
				Op:                  t.Op,
				Payload:             t.Payload,
				Pos:                 t.Position(),
				SavedEnrichedStrict: ev.EnrichedStrict,
			}, ev.Stack.Len(), len(ev.CallStack))
			ev.EnrichedStrict = unaryIsStrict(t.Op)
			cur = argClosure
			continue

		case *ast.Op2:
			sndClosure := Closure{Term: t.Snd, Env: cur.Env}
			ev.Stack.PushOpCont(&Op2FirstCont{
				Op:                  t.Op,
				Payload:             t.Payload,
				Snd:                 sndClosure,
				FstPos:              t.Fst.Position(),
				SavedEnrichedStrict: ev.EnrichedStrict,
			}, ev.Stack.Len(), len(ev.CallStack))
			ev.EnrichedStrict = binaryIsStrict(t.Op)
			cur = Closure{Term: t.Fst, Env: cur.Env}
			continue

		case *ast.Promise:
			// §4.1: apply ty's contract to the label and the body.
			// Rather than literally pushing both as Arg frames and
			// continuing into a synthesized two-argument contract
			// function (which would require compiling every type
			// shape down to ast terms), this core calls directly into
			// checkContract, the type-directed Go-native contract
			// engine of contracts.go — the same "call back into Eval
			// from native code" shape funxy's own builtins use for
			// anything that needs to force an argument. Strict-vs-
			// permissive mode selection is internal/typecheck's
			// concern; at runtime Promise and Assume both run the same
			// contract check.
			checked, err := ev.checkContract(t.Type, t.Label, Closure{Term: t.Term, Env: cur.Env})
			if err != nil {
				return Closure{}, err
			}
			cur = checked
			continue

		case *ast.Assume:
			checked, err := ev.checkContract(t.Type, t.Label, Closure{Term: t.Term, Env: cur.Env})
			if err != nil {
				return Closure{}, err
			}
			cur = checked
			continue

		case *ast.Contract:
			if ev.EnrichedStrict {
				return Closure{}, &Other{Msg: "contract cannot be evaluated: field declared but never defined", Pos: t.Position()}
			}
			// Permissive: a bare contract annotation with no value is
			// itself an (inert) value.

		case *ast.DefaultValue:
			if ev.EnrichedStrict {
				cur = Closure{Term: t.Term, Env: cur.Env}
				continue
			}

		case *ast.Docstring:
			if ev.EnrichedStrict {
				cur = Closure{Term: t.Term, Env: cur.Env}
				continue
			}

		case *ast.ContractWithDefault:
			if ev.EnrichedStrict {
				cur = Closure{Term: ast.NewAssume(t.Type, t.Label, t.Term, t.Position()), Env: cur.Env}
				continue
			}

		case *ast.StrChunks:
			resolved, err := ev.resolveStrChunks(t, cur.Env)
			if err != nil {
				return Closure{}, err
			}
			cur = resolved
			continue

		case *ast.RecRecord:
			cur = Closure{Term: ev.unfoldRecRecord(t, cur.Env), Env: cur.Env}
			continue

		case *ast.ResolvedImport:
			if ev.Modules == nil {
				return Closure{}, &Other{Msg: "no module loader configured", Pos: t.Position()}
			}
			resolved, err := ev.Modules.Get(t.FileID)
			if err != nil {
				return Closure{}, err
			}
			cur = Closure{Term: resolved, Env: EmptyEnv()}
			continue

		case *ast.Import:
			return Closure{}, &Other{Msg: "unresolved import reached the evaluator", Pos: t.Position()}
		}

		// Value reached (§4.1 "Otherwise"): flush pending thunk updates
		// first, then handle OpConts, then Args.
		done, result, err := ev.atValue(cur)
		if err != nil {
			return Closure{}, err
		}
		if !done {
			return cur, nil
		}
		cur = result
	}
}

// atValue implements the "Otherwise (value reached)" branch of §4.1: it
// flushes updates, then drains exactly one OpCont or Arg frame if one is
// pending, reporting whether the loop should keep going with a new
// current closure.
func (ev *Evaluator) atValue(cur Closure) (cont bool, next Closure, err error) {
	// Updates flushed before OpConts (§4.1 ordering guarantee).
	for _, f := range ev.Stack.PopWhileTop(stack.KindThunk) {
		wp, ok := f.ThunkRef.(weak.Pointer[Thunk])
		if !ok {
			continue
		}
		if th := wp.Value(); th != nil {
			th.Update(cur)
			ev.trace("update thunk %p", th)
		}
		// Else: last strong owner already dropped the thunk; the
		// update is silently skipped (§3.2 "no dangling updates").
	}

	if frame, ok := ev.Stack.Peek(); ok && frame.Kind == stack.KindOpCont {
		ev.Stack.Pop()
		ev.Stack.Truncate(frame.StackLen)
		if len(ev.CallStack) > frame.CallStackLen {
			ev.CallStack = ev.CallStack[:frame.CallStackLen]
		}
		result, rerr := ev.resumeOpCont(frame.OpCont, cur)
		return true, result, rerr
	}

	if frame, ok := ev.Stack.Peek(); ok && frame.Kind == stack.KindArg {
		if !IsWHNF(cur.Term) {
			return false, cur, nil
		}
		switch cur.Term.(type) {
		case *ast.Fun, *ast.NativeFunc:
			// A callable is sitting at the head with an Arg still
			// pending: hand it straight back so the main loop's
			// Fun/NativeFunc case applies it.
			return true, cur, nil
		default:
			argClosure := frame.Arg.(*Closure)
			return true, Closure{}, &NotAFunc{Term: cur.Term, Arg: argClosure.Term, Pos: cur.Term.Position()}
		}
	}

	return false, cur, nil
}

// evalVar implements §4.1's Var(x) dispatch: look up x's thunk in the
// environment (which is left unchanged), push a weak update marker if it isn't already forced, and
// continue with its closure. Go's GC makes the spec's "consume if sole
// owner, else clone" distinction (§5) unobservable from the outside —
// this core always hands back the thunk's stored closure directly and
// relies on weak.Pointer to make the "thunk already dropped" case safe,
// rather than tracking reference counts by hand.
func (ev *Evaluator) evalVar(v *ast.Var, env Env) (Closure, error) {
	b, ok := env.Lookup(v.Name)
	if !ok {
		return Closure{}, &UnboundIdentifier{ID: v.Name, Pos: v.Position()}
	}
	ev.CallStack = append(ev.CallStack, CallStackEntry{Kind: "Var", Name: v.Name, Pos: v.Position()})
	if !b.Thunk.Forced {
		ev.Stack.PushThunkUpdate(weak.Make(b.Thunk))
	}
	return b.Thunk.Closure, nil
}

// unfoldRecRecord desugars a recursive record literal into a Record whose
// field bodies can observe their siblings, by extending the environment
// with a thunk per field bound over that same extended environment
// before evaluating any of them (§9 "Cyclic sharing": self-reference
// through explicit let-bound thunks, never a mutable back-pointer).
func (ev *Evaluator) unfoldRecRecord(t *ast.RecRecord, env Env) ast.Term {
	recEnv := env
	thunks := make(map[string]*Thunk, len(t.Fields))
	for name, body := range t.Fields {
		th := NewThunk(Closure{Term: body, Env: env})
		thunks[name] = th
		recEnv = recEnv.Extend(name, th, BindRecord)
	}
	for _, th := range thunks {
		th.Closure.Env = recEnv
	}
	fields := make(map[string]ast.Term, len(t.Fields))
	for _, name := range t.FieldOrder {
		fields[name] = &ast.Var{Name: name}
	}
	return &ast.Record{Fields: fields, FieldOrder: append([]string(nil), t.FieldOrder...)}
}

func spanOf(s *ast.Span) stack.Span {
	if s == nil {
		return stack.Span{}
	}
	return stack.Span{
		StartLine: s.Start.Line, StartCol: s.Start.Column,
		EndLine: s.End.Line, EndCol: s.End.Column,
	}
}
