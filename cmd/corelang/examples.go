package main

import (
	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

// Programs embeds the §8 TESTABLE PROPERTIES scenarios as ready-built
// term trees: this core has no parser (§2 SYSTEM OVERVIEW's pipeline
// starts at the Term AST), so a thin driver's only way to "run a
// program" by name is to hold a small library of already-constructed
// ASTs the way a host embedding this core would hand it a term it
// built from its own source language's compiler front end.
var Programs = map[string]ast.Term{
	"identity":      programIdentity(),
	"let-arith":     programLetArith(),
	"if-then-else":  programIfThenElse(),
	"assume-blame":  programAssumeBlame(),
	"merge-default": programMergeDefault(),
	"merge-collide": programMergeCollide(),
}

// 1. ((λx. x) 5) ⇒ Num 5
func programIdentity() ast.Term {
	return &ast.App{
		Fun: &ast.Fun{Param: "x", Body: &ast.Var{Name: "x"}},
		Arg: &ast.Num{Value: 5},
	}
}

// 2. let x = 5 in x + 7.5 ⇒ Num 12.5
func programLetArith() ast.Term {
	return &ast.Let{
		Name:  "x",
		Bound: &ast.Num{Value: 5},
		Body: &ast.Op2{
			Op:  ast.OpAdd,
			Fst: &ast.Var{Name: "x"},
			Snd: &ast.Num{Value: 7.5},
		},
	}
}

// 3. if true then 5 else false ⇒ Num 5 (note: the branches disagree in
// type; the program carries no Promise, so the typechecker stays
// permissive and accepts it, and the evaluator never forces the
// discarded else-branch).
func programIfThenElse() ast.Term {
	return &ast.App{
		Fun: &ast.App{
			Fun: &ast.Op1{Op: ast.OpIte, Arg: &ast.Bool{Value: true}},
			Arg: &ast.Num{Value: 5},
		},
		Arg: &ast.Bool{Value: false},
	}
}

// 4. Promise(Num, Assume(Num, label, true)) — Assume exits strict
// checking, so the typechecker never rejects `true` against Num; the
// runtime Num contract still applies when the Promise forces its body
// and blames with the given label.
func programAssumeBlame() ast.Term {
	label := typesystem.Label{Tag: "assume-blame-demo", Polarity: true}
	return &ast.Promise{
		Type:  typesystem.Num{},
		Label: label,
		Term: &ast.Assume{
			Type:  typesystem.Num{},
			Label: label,
			Term:  &ast.Bool{Value: true},
		},
	}
}

// 5. merge({a = default 1}, {a = 2}) ⇒ {a = 2}
func programMergeDefault() ast.Term {
	left := &ast.Record{
		Fields:     map[string]ast.Term{"a": &ast.DefaultValue{Term: &ast.Num{Value: 1}}},
		FieldOrder: []string{"a"},
	}
	right := &ast.Record{
		Fields:     map[string]ast.Term{"a": &ast.Num{Value: 2}},
		FieldOrder: []string{"a"},
	}
	return &ast.Op2{Op: ast.OpMerge, Fst: left, Snd: right}
}

// 6. merge(default 1, default 2) errors: two defaults collide.
func programMergeCollide() ast.Term {
	return &ast.Op2{
		Op:  ast.OpMerge,
		Fst: &ast.DefaultValue{Term: &ast.Num{Value: 1}},
		Snd: &ast.DefaultValue{Term: &ast.Num{Value: 2}},
	}
}
