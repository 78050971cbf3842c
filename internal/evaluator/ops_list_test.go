package evaluator

import (
	"testing"

	"github.com/funvibe/corelang/internal/ast"
)

func TestHeadAndTail(t *testing.T) {
	ev := New(nil, nil)
	list := AtomicClosure(&ast.List{Items: []ast.Term{
		&ast.Num{Value: 1}, &ast.Num{Value: 2}, &ast.Num{Value: 3},
	}})
	head, err := ev.applyHead(list, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := mustNum(t, head); n != 1 {
		t.Errorf("head = %v, want 1", n)
	}
	tail, err := ev.applyTail(list, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(tail.Term.(*ast.List).Items); got != 2 {
		t.Errorf("tail has %d items, want 2", got)
	}
}

func TestHeadOfEmptyListErrors(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.applyHead(AtomicClosure(&ast.List{}), nil)
	if err == nil {
		t.Fatal("expected an error on head of an empty list")
	}
}

func TestLength(t *testing.T) {
	ev := New(nil, nil)
	list := AtomicClosure(&ast.List{Items: []ast.Term{&ast.Num{Value: 1}, &ast.Num{Value: 2}}})
	got, err := ev.applyLength(list, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := mustNum(t, got); n != 2 {
		t.Errorf("got %v, want 2", n)
	}
}

func TestElemAtInBoundsAndOutOfBounds(t *testing.T) {
	ev := New(nil, nil)
	list := AtomicClosure(&ast.List{Items: []ast.Term{&ast.Num{Value: 10}, &ast.Num{Value: 20}}})

	got, err := ev.applyElemAt(ast.UnaryPayload{IndexArg: &ast.Num{Value: 1}}, list, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := mustNum(t, got); n != 20 {
		t.Errorf("got %v, want 20", n)
	}

	_, err = ev.applyElemAt(ast.UnaryPayload{IndexArg: &ast.Num{Value: 5}}, list, nil)
	if err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
}

// @ concatenates while preserving values drawn from each side's own
// originating environment (§4.3 Closurization).
func TestConcatPreservesBothSidesBindings(t *testing.T) {
	ev := New(nil, nil)
	leftEnv := EmptyEnv().Extend("x", NewThunk(AtomicClosure(&ast.Num{Value: 1})), BindLet)
	rightEnv := EmptyEnv().Extend("y", NewThunk(AtomicClosure(&ast.Num{Value: 2})), BindLet)
	left := Closure{Term: &ast.List{Items: []ast.Term{&ast.Var{Name: "x"}}}, Env: leftEnv}
	right := Closure{Term: &ast.List{Items: []ast.Term{&ast.Var{Name: "y"}}}, Env: rightEnv}

	got, err := ev.applyConcat(left, right, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := got.Term.(*ast.List)
	if len(l.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(l.Items))
	}
	first, err := ev.Eval(l.Items[0], got.Env)
	if err != nil || mustNum(t, first) != 1 {
		t.Fatalf("first = %v, err=%v, want 1", l.Items[0], err)
	}
	second, err := ev.Eval(l.Items[1], got.Env)
	if err != nil || mustNum(t, second) != 2 {
		t.Fatalf("second = %v, err=%v, want 2", l.Items[1], err)
	}
}

func TestMapAppliesFunctionToEachElement(t *testing.T) {
	double := &ast.NativeFunc{Fn: func(arg ast.Term) (ast.Term, error) {
		return &ast.Num{Value: arg.(*ast.Num).Value * 2}, nil
	}}
	ev := New(nil, nil)
	list := AtomicClosure(&ast.List{Items: []ast.Term{&ast.Num{Value: 1}, &ast.Num{Value: 2}}})
	got, err := ev.applyMap(AtomicClosure(double), list, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := got.Term.(*ast.List)
	for i, want := range []float64{2, 4} {
		forced, err := ev.Eval(l.Items[i], got.Env)
		if err != nil {
			t.Fatalf("forcing item %d failed: %v", i, err)
		}
		if n := mustNum(t, forced); n != want {
			t.Errorf("item %d = %v, want %v", i, n, want)
		}
	}
}
