// Error taxonomy (§7): a closed set of concrete struct types implementing
// error, each carrying a source position where one is available.
//
// Grounded on github.com/funvibe/funxy/internal/evaluator's pattern of
// treating an error as a first-class evaluator Object, combined with
// CWBudde-go-dws's practice (internal/interp/contracts/contracts.go) of
// one small typed struct per distinct failure case rather than a single
// stringly-typed error — this core keeps funxy's "error is always
// reportable with a position" discipline but drops funxy's Object
// wrapping, since errors here short-circuit straight to the driver
// rather than being catchable user-level values (§7: "Propagation is
// non-recoverable from within the evaluator").
package evaluator

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

// BlameError reports that the contract carried by Label failed. CallStack
// is attached by the evaluator the first time the error surfaces (§7).
type BlameError struct {
	Label     typesystem.Label
	CallStack []CallStackEntry
}

func (e *BlameError) Error() string {
	return fmt.Sprintf("blame: contract violation, blamed %s", e.Label)
}

// TypeError reports a runtime operator misuse: an operand didn't have
// the shape Op required.
type TypeError struct {
	Expected string
	Op       string
	Term     ast.Term
	Pos      *ast.Span
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s expected %s at %s", e.Op, e.Expected, posString(e.Pos))
}

// NotAFunc reports App applied to a non-function head.
type NotAFunc struct {
	Term ast.Term
	Arg  ast.Term
	Pos  *ast.Span
}

func (e *NotAFunc) Error() string {
	return fmt.Sprintf("not a function at %s", posString(e.Pos))
}

// NotEnoughArgs reports a partial primitive application that ran out of
// stack before all required operands arrived.
type NotEnoughArgs struct {
	Required int
	Op       string
	Pos      *ast.Span
}

func (e *NotEnoughArgs) Error() string {
	return fmt.Sprintf("%s requires %d argument(s) at %s", e.Op, e.Required, posString(e.Pos))
}

// FieldMissing reports a record operation referencing an absent field.
type FieldMissing struct {
	Field  string
	Op     string
	Record ast.Term
	Pos    *ast.Span
}

func (e *FieldMissing) Error() string {
	return fmt.Sprintf("field %q missing for %s at %s", e.Field, e.Op, posString(e.Pos))
}

// MergeIncompatibleArgs reports two incompatible merge operands,
// carrying both operand terms' positions per
// original_source/src/merge.rs's EvalError::MergeIncompatibleArgs (§C.2
// of SPEC_FULL).
type MergeIncompatibleArgs struct {
	Left, Right ast.Term
	Pos         *ast.Span // the merge call site
}

func (e *MergeIncompatibleArgs) Error() string {
	return fmt.Sprintf("cannot merge incompatible values at %s", posString(e.Pos))
}

// Other carries a free-form message for failure cases not otherwise
// modeled (e.g. division by zero, or an unresolved import).
type Other struct {
	Msg string
	Pos *ast.Span
}

func (e *Other) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, posString(e.Pos))
}

// UnboundIdentifier is raised by the evaluator's Var dispatch when an
// identifier has no binding (internal/typecheck reports the same case
// with its own UnboundIdentifier type).
type UnboundIdentifier struct {
	ID  string
	Pos *ast.Span
}

func (e *UnboundIdentifier) Error() string {
	return fmt.Sprintf("unbound identifier %q at %s", e.ID, posString(e.Pos))
}

// TypecheckError reports a unification mismatch, a row-constraint
// violation, or an ill-formed row. internal/typecheck reports these with
// its own TypecheckError type; nothing in this package constructs one.
type TypecheckError struct {
	Msg string
	Pos *ast.Span
}

func (e *TypecheckError) Error() string {
	return fmt.Sprintf("type error: %s at %s", e.Msg, posString(e.Pos))
}

func posString(p *ast.Span) string {
	if p == nil {
		return "<unknown>"
	}
	return p.String()
}
