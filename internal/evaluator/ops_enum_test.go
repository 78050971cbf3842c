package evaluator

import (
	"testing"

	"github.com/funvibe/corelang/internal/ast"
)

func TestEmbedIsIdentityOnEnums(t *testing.T) {
	v := AtomicClosure(&ast.Enum{Tag: "ok"})
	got, err := applyEmbed(ast.UnaryPayload{TagValue: "ok"}, v, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag := got.Term.(*ast.Enum).Tag; tag != "ok" {
		t.Errorf("got tag %q, want ok", tag)
	}
}

func TestEmbedRejectsNonEnum(t *testing.T) {
	_, err := applyEmbed(ast.UnaryPayload{}, AtomicClosure(&ast.Num{Value: 1}), nil)
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected *TypeError, got %T (%v)", err, err)
	}
}

func TestSwitchDispatchesOnTag(t *testing.T) {
	cases := map[string]ast.Term{
		"ok":   &ast.Str{Value: "matched-ok"},
		"fail": &ast.Str{Value: "matched-fail"},
	}
	v := AtomicClosure(&ast.Enum{Tag: "fail"})
	got, err := applySwitch(ast.UnaryPayload{Cases: cases}, v, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := got.Term.(*ast.Str).Value; s != "matched-fail" {
		t.Errorf("got %q, want matched-fail", s)
	}
}

func TestSwitchFallsBackToDefault(t *testing.T) {
	cases := map[string]ast.Term{"ok": &ast.Str{Value: "matched-ok"}}
	v := AtomicClosure(&ast.Enum{Tag: "uncovered"})
	got, err := applySwitch(ast.UnaryPayload{Cases: cases, Default: &ast.Str{Value: "fallback"}}, v, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := got.Term.(*ast.Str).Value; s != "fallback" {
		t.Errorf("got %q, want fallback", s)
	}
}

func TestSwitchWithoutDefaultAndUncoveredTagErrors(t *testing.T) {
	cases := map[string]ast.Term{"ok": &ast.Str{Value: "matched-ok"}}
	v := AtomicClosure(&ast.Enum{Tag: "uncovered"})
	_, err := applySwitch(ast.UnaryPayload{Cases: cases}, v, nil)
	if _, ok := err.(*FieldMissing); !ok {
		t.Fatalf("expected *FieldMissing, got %T (%v)", err, err)
	}
}
