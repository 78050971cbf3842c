package typecheck

import "github.com/funvibe/corelang/internal/ast"

// UnboundIdentifier is raised when Var lookup fails during checking
// (§7): a distinct type from evaluator.UnboundIdentifier since the two
// packages never share error values, only the taxonomy's shape.
type UnboundIdentifier struct {
	ID  string
	Pos *ast.Span
}

func (e *UnboundIdentifier) Error() string {
	if e.Pos == nil {
		return "unbound identifier: " + e.ID
	}
	return "unbound identifier: " + e.ID + " at " + e.Pos.Start.String()
}

// TypecheckError covers unification mismatches, row-constraint
// violations, and other ill-formed-type failures surfaced as plain Go
// errors from Unify; this wrapper gives them the taxonomy's name and a
// position for driver-side reporting (§7).
type TypecheckError struct {
	Msg string
	Pos *ast.Span
}

func (e *TypecheckError) Error() string {
	if e.Pos == nil {
		return "type error: " + e.Msg
	}
	return "type error: " + e.Msg + " at " + e.Pos.Start.String()
}
