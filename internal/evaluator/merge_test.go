package evaluator

import (
	"testing"

	"github.com/funvibe/corelang/internal/ast"
)

func mergeTerm(a, b ast.Term) ast.Term {
	return &ast.Op2{Op: ast.OpMerge, Fst: a, Snd: b}
}

// merge(v,v) = v for grounds.
func TestMergeIdenticalGrounds(t *testing.T) {
	got := mustNum(t, evalTerm(t, mergeTerm(&ast.Num{Value: 5}, &ast.Num{Value: 5})))
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

// Unequal grounds error.
func TestMergeIncompatibleGroundsError(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.Eval(mergeTerm(&ast.Num{Value: 1}, &ast.Bool{Value: true}), EmptyEnv())
	if _, ok := err.(*MergeIncompatibleArgs); !ok {
		t.Fatalf("expected *MergeIncompatibleArgs, got %T (%v)", err, err)
	}
}

func recordOf(fields map[string]ast.Term, order []string) *ast.Record {
	return &ast.Record{Fields: fields, FieldOrder: order}
}

// merge({a=1}, {b=2}) = {a=1, b=2}.
func TestMergeDisjointRecords(t *testing.T) {
	left := recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}}, []string{"a"})
	right := recordOf(map[string]ast.Term{"b": &ast.Num{Value: 2}}, []string{"b"})

	got := evalTerm(t, mergeTerm(left, right))
	rec, ok := got.Term.(*ast.Record)
	if !ok {
		t.Fatalf("expected *ast.Record, got %T", got.Term)
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(rec.Fields))
	}
	ev := New(nil, nil)
	aVal, err := ev.Eval(rec.Fields["a"], got.Env)
	if err != nil {
		t.Fatalf("forcing a failed: %v", err)
	}
	if n := mustNum(t, aVal); n != 1 {
		t.Errorf("a = %v, want 1", n)
	}
	bVal, err := ev.Eval(rec.Fields["b"], got.Env)
	if err != nil {
		t.Fatalf("forcing b failed: %v", err)
	}
	if n := mustNum(t, bVal); n != 2 {
		t.Errorf("b = %v, want 2", n)
	}
}

// Common fields recursively merge: merge({a={x=1}}, {a={y=2}}) has
// a.x = 1 and a.y = 2.
func TestMergeRecursesIntoCommonFields(t *testing.T) {
	left := recordOf(map[string]ast.Term{
		"a": recordOf(map[string]ast.Term{"x": &ast.Num{Value: 1}}, []string{"x"}),
	}, []string{"a"})
	right := recordOf(map[string]ast.Term{
		"a": recordOf(map[string]ast.Term{"y": &ast.Num{Value: 2}}, []string{"y"}),
	}, []string{"a"})

	ev := New(nil, nil)
	got, err := ev.Eval(mergeTerm(left, right), EmptyEnv())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	outer, ok := got.Term.(*ast.Record)
	if !ok {
		t.Fatalf("expected *ast.Record, got %T", got.Term)
	}
	aClosure, err := ev.Eval(outer.Fields["a"], got.Env)
	if err != nil {
		t.Fatalf("forcing a failed: %v", err)
	}
	inner, ok := aClosure.Term.(*ast.Record)
	if !ok {
		t.Fatalf("expected a to be a record, got %T", aClosure.Term)
	}
	if len(inner.Fields) != 2 {
		t.Fatalf("expected a to have 2 fields (x, y), got %d", len(inner.Fields))
	}
}

// merge({a = default 1}, {a = 2}) = {a = 2}: concrete wins over default.
func TestMergeDefaultLosesToConcrete(t *testing.T) {
	left := recordOf(map[string]ast.Term{"a": &ast.DefaultValue{Term: &ast.Num{Value: 1}}}, []string{"a"})
	right := recordOf(map[string]ast.Term{"a": &ast.Num{Value: 2}}, []string{"a"})

	ev := New(nil, nil)
	got, err := ev.Eval(mergeTerm(left, right), EmptyEnv())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	rec := got.Term.(*ast.Record)
	aVal, err := ev.Eval(rec.Fields["a"], got.Env)
	if err != nil {
		t.Fatalf("forcing a failed: %v", err)
	}
	if n := mustNum(t, aVal); n != 2 {
		t.Errorf("a = %v, want 2 (concrete should win over default)", n)
	}
}

// merge(default 1, default 2) errors: two defaults collide.
func TestMergeTwoDefaultsCollide(t *testing.T) {
	ev := New(nil, nil)
	term := mergeTerm(&ast.DefaultValue{Term: &ast.Num{Value: 1}}, &ast.DefaultValue{Term: &ast.Num{Value: 2}})
	_, err := ev.Eval(term, EmptyEnv())
	if _, ok := err.(*MergeIncompatibleArgs); !ok {
		t.Fatalf("expected *MergeIncompatibleArgs, got %T (%v)", err, err)
	}
}

// merge(ContractWithDefault(Num,l,1), default 2) also errors.
func TestMergeContractWithDefaultCollidesWithDefault(t *testing.T) {
	ev := New(nil, nil)
	term := mergeTerm(
		&ast.ContractWithDefault{Term: &ast.Num{Value: 1}},
		&ast.DefaultValue{Term: &ast.Num{Value: 2}},
	)
	_, err := ev.Eval(term, EmptyEnv())
	if _, ok := err.(*MergeIncompatibleArgs); !ok {
		t.Fatalf("expected *MergeIncompatibleArgs, got %T (%v)", err, err)
	}
}
