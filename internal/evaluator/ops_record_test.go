package evaluator

import (
	"testing"

	"github.com/funvibe/corelang/internal/ast"
)

func TestStaticAccessReturnsField(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}}, []string{"a"}))
	got, err := ev.applyStaticAccess(ast.UnaryPayload{FieldName: "a"}, rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := mustNum(t, got); n != 1 {
		t.Errorf("got %v, want 1", n)
	}
}

func TestStaticAccessMissingFieldErrors(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}}, []string{"a"}))
	_, err := ev.applyStaticAccess(ast.UnaryPayload{FieldName: "missing"}, rec, nil)
	if _, ok := err.(*FieldMissing); !ok {
		t.Fatalf("expected *FieldMissing, got %T (%v)", err, err)
	}
}

func TestHasFieldTrueAndFalse(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}}, []string{"a"}))
	present, err := ev.applyHasField(ast.UnaryPayload{FieldName: "a"}, rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := present.Term.(*ast.Bool); !ok || !b.Value {
		t.Errorf("got %v, want Bool true", present.Term)
	}
	absent, err := ev.applyHasField(ast.UnaryPayload{FieldName: "b"}, rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := absent.Term.(*ast.Bool); !ok || b.Value {
		t.Errorf("got %v, want Bool false", absent.Term)
	}
}

func TestRecordRemoveDropsFieldPreservingOrder(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(
		map[string]ast.Term{"a": &ast.Num{Value: 1}, "b": &ast.Num{Value: 2}, "c": &ast.Num{Value: 3}},
		[]string{"a", "b", "c"},
	))
	got, err := ev.applyRecordRemove(ast.UnaryPayload{FieldName: "b"}, rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := got.Term.(*ast.Record)
	if len(r.Fields) != 2 {
		t.Fatalf("expected 2 fields remaining, got %d", len(r.Fields))
	}
	if _, ok := r.Fields["b"]; ok {
		t.Error("field b should have been removed")
	}
	if len(r.FieldOrder) != 2 || r.FieldOrder[0] != "a" || r.FieldOrder[1] != "c" {
		t.Errorf("got field order %v, want [a c]", r.FieldOrder)
	}
}

func TestFieldsOfIsSorted(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(
		map[string]ast.Term{"z": &ast.Num{Value: 1}, "a": &ast.Num{Value: 2}},
		[]string{"z", "a"},
	))
	got, err := ev.applyFieldsOf(rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := got.Term.(*ast.List)
	if len(l.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(l.Items))
	}
	first := l.Items[0].(*ast.Str).Value
	second := l.Items[1].(*ast.Str).Value
	if first != "a" || second != "z" {
		t.Errorf("got [%s %s], want [a z]", first, second)
	}
}

// mapRec(f, {a=1}) forces to {a = f "a" 1}.
func TestMapRecAppliesKeyAndValue(t *testing.T) {
	seenKey := ""
	seenVal := 0.0
	fn := &ast.NativeFunc{Fn: func(keyTerm ast.Term) (ast.Term, error) {
		seenKey = keyTerm.(*ast.Str).Value
		return &ast.NativeFunc{Fn: func(valTerm ast.Term) (ast.Term, error) {
			seenVal = valTerm.(*ast.Num).Value
			return &ast.Num{Value: seenVal * 10}, nil
		}}, nil
	}}
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}}, []string{"a"}))
	got, err := ev.applyMapRec(ast.UnaryPayload{MapFn: fn}, rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := got.Term.(*ast.Record)
	forced, err := ev.Eval(r.Fields["a"], got.Env)
	if err != nil {
		t.Fatalf("forcing mapped field failed: %v", err)
	}
	if n := mustNum(t, forced); n != 10 {
		t.Errorf("got %v, want 10", n)
	}
	if seenKey != "a" || seenVal != 1 {
		t.Errorf("mapRec saw key=%q val=%v, want a/1", seenKey, seenVal)
	}
}

func TestExtendAddsNewFieldAndOverwritesExisting(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}}, []string{"a"}))

	added, err := ev.applyExtend(ast.BinaryPayload{FieldName: "b"}, rec, AtomicClosure(&ast.Num{Value: 2}), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := added.Term.(*ast.Record)
	if len(r.FieldOrder) != 2 || r.FieldOrder[1] != "b" {
		t.Fatalf("got field order %v, want [a b]", r.FieldOrder)
	}
	bVal, err := ev.Eval(r.Fields["b"], added.Env)
	if err != nil || mustNum(t, bVal) != 2 {
		t.Fatalf("b = %v, err=%v, want 2", r.Fields["b"], err)
	}

	overwritten, err := ev.applyExtend(ast.BinaryPayload{FieldName: "a"}, rec, AtomicClosure(&ast.Num{Value: 99}), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2 := overwritten.Term.(*ast.Record)
	if len(r2.FieldOrder) != 1 {
		t.Fatalf("overwriting an existing field should not grow FieldOrder, got %v", r2.FieldOrder)
	}
	aVal, err := ev.Eval(r2.Fields["a"], overwritten.Env)
	if err != nil || mustNum(t, aVal) != 99 {
		t.Fatalf("a = %v, err=%v, want 99", r2.Fields["a"], err)
	}
}

func TestDynAccessNormalizesFieldName(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 5}}, []string{"a"}))
	got, err := ev.applyDynAccess(AtomicClosure(&ast.Str{Value: "a"}), rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := mustNum(t, got); n != 5 {
		t.Errorf("got %v, want 5", n)
	}
}

func TestDynRemoveAndDynHasField(t *testing.T) {
	ev := New(nil, nil)
	rec := AtomicClosure(recordOf(map[string]ast.Term{"a": &ast.Num{Value: 1}, "b": &ast.Num{Value: 2}}, []string{"a", "b"}))

	removed, err := ev.applyDynRemove(AtomicClosure(&ast.Str{Value: "a"}), rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := removed.Term.(*ast.Record).Fields["a"]; ok {
		t.Error("field a should have been removed")
	}

	has, err := ev.applyDynHasField(AtomicClosure(&ast.Str{Value: "b"}), rec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := has.Term.(*ast.Bool); !ok || !b.Value {
		t.Errorf("got %v, want Bool true", has.Term)
	}
}
