// The merge combinator of §4.4: a commutative-on-grounds, recursive,
// sharing-preserving combinator over records and ground values, with
// right-absorptive default handling for enriched DefaultValue wrappers.
//
// Grounded on original_source/src/merge.rs's field partitioning
// (left-only / right-only / common) and its EvalError::MergeIncompatibleArgs
// shape (SPEC_FULL §C.2), rebuilt here around this core's Env/Closure
// instead of Rust's RichTerm/Environment pair.
package evaluator

import "github.com/funvibe/corelang/internal/ast"

func (ev *Evaluator) applyMerge(a, b Closure, pos *ast.Span) (Closure, error) {
	aTerm, aKind, aInner := unwrapEnriched(a.Term)
	bTerm, bKind, bInner := unwrapEnriched(b.Term)

	// Right-absorptive defaults (§4.4): a concrete value beats an
	// enriched DefaultValue/ContractWithDefault on the other side; two
	// defaults collide and fail (§8 scenario 6).
	if aKind == enrichedDefault || aKind == enrichedContractDefault {
		if bKind == enrichedDefault || bKind == enrichedContractDefault {
			return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
		}
		if bKind == enrichedNone {
			return Closure{Term: bTerm, Env: b.Env}, nil
		}
	}
	if bKind == enrichedDefault || bKind == enrichedContractDefault {
		if aKind == enrichedNone {
			return Closure{Term: aTerm, Env: a.Env}, nil
		}
	}

	// A bare Contract (declared type, no value yet) merged against a
	// concrete value attaches the contract to that value.
	if aKind == enrichedContract && bKind == enrichedNone {
		return Closure{Term: ast.NewAssume(aInner.(*ast.Contract).Type, aInner.(*ast.Contract).Label, bTerm, pos), Env: b.Env}, nil
	}
	if bKind == enrichedContract && aKind == enrichedNone {
		return Closure{Term: ast.NewAssume(bInner.(*ast.Contract).Type, bInner.(*ast.Contract).Label, aTerm, pos), Env: a.Env}, nil
	}

	switch x := aTerm.(type) {
	case *ast.Num:
		y, ok := bTerm.(*ast.Num)
		if !ok || x.Value != y.Value {
			return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
		}
		return Closure{Term: x}, nil
	case *ast.Bool:
		y, ok := bTerm.(*ast.Bool)
		if !ok || x.Value != y.Value {
			return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
		}
		return Closure{Term: x}, nil
	case *ast.Str:
		y, ok := bTerm.(*ast.Str)
		if !ok || x.Value != y.Value {
			return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
		}
		return Closure{Term: x}, nil
	case *ast.Lbl:
		y, ok := bTerm.(*ast.Lbl)
		if !ok || x.Label.String() != y.Label.String() {
			return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
		}
		return Closure{Term: x}, nil
	case *ast.Record:
		y, ok := bTerm.(*ast.Record)
		if !ok {
			return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
		}
		return ev.mergeRecords(x, a.Env, y, b.Env, pos)
	default:
		return Closure{}, &MergeIncompatibleArgs{Left: a.Term, Right: b.Term, Pos: pos}
	}
}

type enrichedKind int

const (
	enrichedNone enrichedKind = iota
	enrichedDefault
	enrichedContract
	enrichedContractDefault
	enrichedDocstring
)

// unwrapEnriched classifies t's enriched-wrapper kind (if any) and
// returns the term merge logic should actually compare/recurse into,
// unwrapping transparent Docstring layers but leaving DefaultValue/
// Contract/ContractWithDefault intact for the caller to dispatch on.
func unwrapEnriched(t ast.Term) (inner ast.Term, kind enrichedKind, self ast.Term) {
	switch v := t.(type) {
	case *ast.DefaultValue:
		return v.Term, enrichedDefault, v
	case *ast.Contract:
		return nil, enrichedContract, v
	case *ast.ContractWithDefault:
		return v.Term, enrichedContractDefault, v
	case *ast.Docstring:
		in, k, s := unwrapEnriched(v.Term)
		return in, k, s
	default:
		return t, enrichedNone, v
	}
}

// mergeRecords partitions fields into left-only, right-only, and common
// (§4.4). Left/right-only fields are closurized into a fresh merged
// environment under their original envs; common fields are rebuilt as a
// deferred Op2(Merge, ...) sub-term so the recursive merge only happens
// if and when that field is actually forced.
func (ev *Evaluator) mergeRecords(x *ast.Record, envX Env, y *ast.Record, envY Env, pos *ast.Span) (Closure, error) {
	hostEnv := EmptyEnv()
	fields := make(map[string]ast.Term, len(x.Fields)+len(y.Fields))
	var order []string

	for name, term := range x.Fields {
		if _, inY := y.Fields[name]; inY {
			continue
		}
		fresh := freshVar("_ml")
		hostEnv = hostEnv.Extend(fresh, NewThunk(Closure{Term: term, Env: envX}), BindRecord)
		fields[name] = &ast.Var{Name: fresh}
		order = append(order, name)
	}
	for name, term := range y.Fields {
		if _, inX := x.Fields[name]; inX {
			continue
		}
		fresh := freshVar("_mr")
		hostEnv = hostEnv.Extend(fresh, NewThunk(Closure{Term: term, Env: envY}), BindRecord)
		fields[name] = &ast.Var{Name: fresh}
		order = append(order, name)
	}
	for name, xt := range x.Fields {
		yt, inY := y.Fields[name]
		if !inY {
			continue
		}
		freshX := freshVar("_mcx")
		freshY := freshVar("_mcy")
		hostEnv = hostEnv.Extend(freshX, NewThunk(Closure{Term: xt, Env: envX}), BindRecord)
		hostEnv = hostEnv.Extend(freshY, NewThunk(Closure{Term: yt, Env: envY}), BindRecord)
		fields[name] = &ast.Op2{
			Op:  ast.OpMerge,
			Fst: &ast.Var{Name: freshX},
			Snd: &ast.Var{Name: freshY},
		}
		order = append(order, name)
	}

	return Closure{Term: &ast.Record{Fields: fields, FieldOrder: order}, Env: hostEnv}, nil
}
