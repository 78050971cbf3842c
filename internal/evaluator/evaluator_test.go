package evaluator

import (
	"testing"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

func evalTerm(t *testing.T, term ast.Term) Closure {
	t.Helper()
	ev := New(nil, nil)
	result, err := ev.Eval(term, EmptyEnv())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	return result
}

func mustNum(t *testing.T, c Closure) float64 {
	t.Helper()
	n, ok := c.Term.(*ast.Num)
	if !ok {
		t.Fatalf("expected Num, got %T", c.Term)
	}
	return n.Value
}

// Scenario 1: ((λx. x) 5) ⇒ Num 5.
func TestScenarioIdentity(t *testing.T) {
	term := &ast.App{
		Fun: &ast.Fun{Param: "x", Body: &ast.Var{Name: "x"}},
		Arg: &ast.Num{Value: 5},
	}
	if got := mustNum(t, evalTerm(t, term)); got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

// Scenario 2: let x = 5 in x + 7.5 ⇒ Num 12.5.
func TestScenarioLetArith(t *testing.T) {
	term := &ast.Let{
		Name:  "x",
		Bound: &ast.Num{Value: 5},
		Body: &ast.Op2{
			Op:  ast.OpAdd,
			Fst: &ast.Var{Name: "x"},
			Snd: &ast.Num{Value: 7.5},
		},
	}
	if got := mustNum(t, evalTerm(t, term)); got != 12.5 {
		t.Errorf("got %v, want 12.5", got)
	}
}

// Scenario 3: if true then 5 else false ⇒ Num 5.
func TestScenarioIfThenElse(t *testing.T) {
	term := &ast.App{
		Fun: &ast.App{
			Fun: &ast.Op1{Op: ast.OpIte, Arg: &ast.Bool{Value: true}},
			Arg: &ast.Num{Value: 5},
		},
		Arg: &ast.Bool{Value: false},
	}
	if got := mustNum(t, evalTerm(t, term)); got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

// Scenario 3b: the discarded else-branch is never forced, so its shape
// mismatch against the then-branch is never observed (§9 short-circuit
// note, applied symmetrically to Ite's unused branch).
func TestIfThenElseDoesNotForceDiscardedBranch(t *testing.T) {
	forced := false
	poison := &ast.App{
		Fun: &ast.NativeFunc{Fn: func(ast.Term) (ast.Term, error) {
			forced = true
			return nil, &Other{Msg: "should never be forced"}
		}},
		Arg: &ast.Num{Value: 0},
	}
	term := &ast.App{
		Fun: &ast.App{
			Fun: &ast.Op1{Op: ast.OpIte, Arg: &ast.Bool{Value: true}},
			Arg: &ast.Num{Value: 5},
		},
		Arg: poison,
	}
	if got := mustNum(t, evalTerm(t, term)); got != 5 {
		t.Errorf("got %v, want 5", got)
	}
	if forced {
		t.Error("discarded else-branch was forced")
	}
}

// Scenario 4: Promise(Num, Assume(Num, label, true)) blames with the
// given label — Assume exits strict checking, but the runtime Num
// contract on `true` still fails.
func TestScenarioAssumeBlame(t *testing.T) {
	label := typesystem.Label{Tag: "assume-blame-demo", Polarity: true}
	term := &ast.Promise{
		Type:  typesystem.Num{},
		Label: label,
		Term: &ast.Assume{
			Type:  typesystem.Num{},
			Label: label,
			Term:  &ast.Bool{Value: true},
		},
	}
	ev := New(nil, nil)
	_, err := ev.Eval(term, EmptyEnv())
	if err == nil {
		t.Fatal("expected a blame error, got nil")
	}
	be, ok := err.(*BlameError)
	if !ok {
		t.Fatalf("expected *BlameError, got %T (%v)", err, err)
	}
	if be.Label.Tag != "assume-blame-demo" {
		t.Errorf("got label tag %q, want %q", be.Label.Tag, "assume-blame-demo")
	}
}

// Contract identity: Assume(T, l, v) = v whenever v inhabits T.
func TestContractIdentityOverValues(t *testing.T) {
	label := typesystem.Label{Tag: "identity"}
	term := &ast.Assume{Type: typesystem.Num{}, Label: label, Term: &ast.Num{Value: 42}}
	if got := mustNum(t, evalTerm(t, term)); got != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

// Value idempotence: eval(v) = v for v already in WHNF.
func TestValueIdempotence(t *testing.T) {
	values := []ast.Term{
		&ast.Num{Value: 3.5},
		&ast.Bool{Value: true},
		&ast.Str{Value: "hi"},
		&ast.List{Items: []ast.Term{&ast.Num{Value: 1}}},
		&ast.Record{Fields: map[string]ast.Term{"a": &ast.Num{Value: 1}}, FieldOrder: []string{"a"}},
		&ast.Enum{Tag: "ok"},
	}
	for _, v := range values {
		got := evalTerm(t, v)
		if !IsWHNF(got.Term) {
			t.Errorf("eval(%T) = %T, not WHNF", v, got.Term)
		}
	}
}

// Sharing: let x = EXPENSIVE in x + x forces EXPENSIVE at most once.
func TestLetSharingForcesOnce(t *testing.T) {
	calls := 0
	expensive := &ast.App{
		Fun: &ast.NativeFunc{Fn: func(ast.Term) (ast.Term, error) {
			calls++
			return &ast.Num{Value: 5}, nil
		}},
		Arg: &ast.Num{Value: 0},
	}
	term := &ast.Let{
		Name:  "x",
		Bound: expensive,
		Body: &ast.Op2{
			Op:  ast.OpAdd,
			Fst: &ast.Var{Name: "x"},
			Snd: &ast.Var{Name: "x"},
		},
	}
	got := mustNum(t, evalTerm(t, term))
	if got != 10 {
		t.Errorf("got %v, want 10", got)
	}
	if calls != 1 {
		t.Errorf("EXPENSIVE forced %d times, want 1", calls)
	}
}

// Unbound identifiers surface as UnboundIdentifier.
func TestUnboundIdentifier(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.Eval(&ast.Var{Name: "nope"}, EmptyEnv())
	if _, ok := err.(*UnboundIdentifier); !ok {
		t.Fatalf("expected *UnboundIdentifier, got %T (%v)", err, err)
	}
}

// Applying a non-function is a NotAFunc error.
func TestOnlyFunAreApplicable(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.Eval(&ast.App{Fun: &ast.Num{Value: 1}, Arg: &ast.Num{Value: 2}}, EmptyEnv())
	if _, ok := err.(*NotAFunc); !ok {
		t.Fatalf("expected *NotAFunc, got %T (%v)", err, err)
	}
}

// Division by zero is reported, not panicked.
func TestDivisionByZero(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.Eval(&ast.Op2{Op: ast.OpDiv, Fst: &ast.Num{Value: 1}, Snd: &ast.Num{Value: 0}}, EmptyEnv())
	if err == nil {
		t.Fatal("expected an error dividing by zero")
	}
}

// Enriched wrappers unwrap transparently under enriched_strict.
func TestEnrichedTermsUnwrapping(t *testing.T) {
	term := &ast.DefaultValue{Term: &ast.Docstring{Text: "doc", Term: &ast.Num{Value: 9}}}
	if got := mustNum(t, evalTerm(t, term)); got != 9 {
		t.Errorf("got %v, want 9", got)
	}
}

// A bare Contract with no value errors when forced under strict eval.
func TestBareContractCannotBeEvaluated(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.Eval(&ast.Contract{Type: typesystem.Num{}, Label: typesystem.Label{}}, EmptyEnv())
	if err == nil {
		t.Fatal("expected an error forcing a bare contract")
	}
}

// && / || short-circuit without forcing the unused operand.
func TestBoolAndShortCircuits(t *testing.T) {
	forced := false
	poison := &ast.App{
		Fun: &ast.NativeFunc{Fn: func(ast.Term) (ast.Term, error) {
			forced = true
			return nil, &Other{Msg: "should never be forced"}
		}},
		Arg: &ast.Num{Value: 0},
	}
	term := &ast.App{
		Fun: &ast.Op1{Op: ast.OpBoolAnd, Arg: &ast.Bool{Value: false}},
		Arg: poison,
	}
	ev := New(nil, nil)
	result, err := ev.Eval(term, EmptyEnv())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	b, ok := result.Term.(*ast.Bool)
	if !ok || b.Value != false {
		t.Errorf("got %v, want Bool false", result.Term)
	}
	if forced {
		t.Error("second && operand was forced despite short-circuiting")
	}
}

// Structural equality recurses through records and lists.
func TestStructuralEquality(t *testing.T) {
	left := &ast.Record{
		Fields:     map[string]ast.Term{"a": &ast.Num{Value: 1}, "b": &ast.List{Items: []ast.Term{&ast.Num{Value: 2}}}},
		FieldOrder: []string{"a", "b"},
	}
	right := &ast.Record{
		Fields:     map[string]ast.Term{"a": &ast.Num{Value: 1}, "b": &ast.List{Items: []ast.Term{&ast.Num{Value: 2}}}},
		FieldOrder: []string{"a", "b"},
	}
	term := &ast.Op2{Op: ast.OpEq, Fst: left, Snd: right}
	ev := New(nil, nil)
	result, err := ev.Eval(term, EmptyEnv())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	b, ok := result.Term.(*ast.Bool)
	if !ok || !b.Value {
		t.Errorf("got %v, want Bool true", result.Term)
	}
}

// Sealing: unwrap with a mismatched symbol is the identity, not an error.
func TestSealingRoundTrip(t *testing.T) {
	sym := &ast.Sym{ID: 1}
	other := &ast.Sym{ID: 2}
	wrapTerm := &ast.App{Fun: &ast.Op1{Op: ast.OpWrap, Arg: sym}, Arg: &ast.Num{Value: 7}}

	ev := New(nil, nil)
	wrapped, err := ev.Eval(wrapTerm, EmptyEnv())
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	if _, ok := wrapped.Term.(*ast.Wrapped); !ok {
		t.Fatalf("expected *ast.Wrapped, got %T", wrapped.Term)
	}

	mismatched, err := ev.applyBinary(ast.OpUnwrap, ast.BinaryPayload{}, AtomicClosure(other), wrapped, nil, nil)
	if err != nil {
		t.Fatalf("unwrap failed: %v", err)
	}
	if _, ok := mismatched.Term.(*ast.Wrapped); !ok {
		t.Errorf("mismatched unwrap should return the Wrapped value unchanged, got %T", mismatched.Term)
	}

	matched, err := ev.applyBinary(ast.OpUnwrap, ast.BinaryPayload{}, AtomicClosure(sym), wrapped, nil, nil)
	if err != nil {
		t.Fatalf("unwrap failed: %v", err)
	}
	if n, ok := matched.Term.(*ast.Num); !ok || n.Value != 7 {
		t.Errorf("matched unwrap should yield 7, got %v", matched.Term)
	}
}
