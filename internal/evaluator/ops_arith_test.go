package evaluator

import (
	"testing"

	"github.com/funvibe/corelang/internal/ast"
)

func numTerm(op ast.BinaryOp, a, b float64) ast.Term {
	return &ast.Op2{Op: op, Fst: &ast.Num{Value: a}, Snd: &ast.Num{Value: b}}
}

func TestArithmeticOperators(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		a, b float64
		want float64
	}{
		{ast.OpAdd, 2, 3, 5},
		{ast.OpSub, 5, 3, 2},
		{ast.OpMul, 4, 3, 12},
		{ast.OpDiv, 9, 2, 4.5},
		{ast.OpMod, 9, 4, 1},
	}
	for _, c := range cases {
		got := mustNum(t, evalTerm(t, numTerm(c.op, c.a, c.b)))
		if got != c.want {
			t.Errorf("op %v: got %v, want %v", c.op, got, c.want)
		}
	}
}

// Nested Op2 with no intervening Var/App dispatch must not lose its
// outer pending continuation: the OpCont resume markers captured at
// push time (stack.Stack length and CallStack length) are independent
// counters, and truncating the main Stack with the wrong one silently
// drops a still-pending outer frame (§4.2).
func TestNestedOp2WithoutVarOrAppKeepsOuterContinuation(t *testing.T) {
	term := &ast.Op2{
		Op:  ast.OpAdd,
		Fst: numTerm(ast.OpAdd, 1, 2),
		Snd: &ast.Num{Value: 3},
	}
	if got := mustNum(t, evalTerm(t, term)); got != 6 {
		t.Errorf("(1+2)+3 = %v, want 6", got)
	}
}

func TestModuloByZeroErrors(t *testing.T) {
	ev := New(nil, nil)
	_, err := ev.Eval(numTerm(ast.OpMod, 1, 0), EmptyEnv())
	if err == nil {
		t.Fatal("expected an error modulo by zero")
	}
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		a, b float64
		want bool
	}{
		{ast.OpLt, 1, 2, true},
		{ast.OpLte, 2, 2, true},
		{ast.OpGt, 3, 2, true},
		{ast.OpGte, 2, 2, true},
		{ast.OpLt, 2, 1, false},
	}
	for _, c := range cases {
		term := &ast.Op2{Op: c.op, Fst: &ast.Num{Value: c.a}, Snd: &ast.Num{Value: c.b}}
		got := evalTerm(t, term)
		b, ok := got.Term.(*ast.Bool)
		if !ok || b.Value != c.want {
			t.Errorf("op %v(%v,%v): got %v, want %v", c.op, c.a, c.b, got.Term, c.want)
		}
	}
}

func TestTypePredicates(t *testing.T) {
	cases := []struct {
		op   ast.UnaryOp
		term ast.Term
		want bool
	}{
		{ast.OpIsNum, &ast.Num{Value: 1}, true},
		{ast.OpIsNum, &ast.Bool{Value: true}, false},
		{ast.OpIsBool, &ast.Bool{Value: true}, true},
		{ast.OpIsStr, &ast.Str{Value: "x"}, true},
		{ast.OpIsFun, &ast.Fun{Param: "x", Body: &ast.Var{Name: "x"}}, true},
		{ast.OpIsList, &ast.List{}, true},
		{ast.OpIsRecord, recordOf(nil, nil), true},
	}
	for _, c := range cases {
		term := &ast.Op1{Op: c.op, Arg: c.term}
		got := evalTerm(t, term)
		b, ok := got.Term.(*ast.Bool)
		if !ok || b.Value != c.want {
			t.Errorf("predicate %v on %T: got %v, want %v", c.op, c.term, got.Term, c.want)
		}
	}
}

func TestNot(t *testing.T) {
	term := &ast.Op1{Op: ast.OpNot, Arg: &ast.Bool{Value: false}}
	got := evalTerm(t, term)
	if b, ok := got.Term.(*ast.Bool); !ok || !b.Value {
		t.Errorf("got %v, want Bool true", got.Term)
	}
}

// An interpolated string splices literal chunks and forced expression
// chunks, stored closest-to-end first (§3.1).
func TestStringInterpolationConcatenatesChunksInOrder(t *testing.T) {
	term := &ast.StrChunks{Chunks: []ast.StrChunk{
		{IsExpr: false, Lit: "!"},
		{IsExpr: true, Expr: &ast.Num{Value: 2}},
		{IsExpr: false, Lit: "x="},
	}}
	got := evalTerm(t, term)
	s, ok := got.Term.(*ast.Str)
	if !ok {
		t.Fatalf("expected *ast.Str, got %T", got.Term)
	}
	if s.Value != "x=2!" {
		t.Errorf("got %q, want %q", s.Value, "x=2!")
	}
}

func TestStringInterpolationRejectsNonScalarChunk(t *testing.T) {
	ev := New(nil, nil)
	term := &ast.StrChunks{Chunks: []ast.StrChunk{
		{IsExpr: true, Expr: &ast.List{}},
	}}
	_, err := ev.Eval(term, EmptyEnv())
	if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected *TypeError, got %T (%v)", err, err)
	}
}
