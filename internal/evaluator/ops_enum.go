// Enum primitives of §4.3: embed(id), switch(cases, default).
package evaluator

import "github.com/funvibe/corelang/internal/ast"

// applyEmbed implements embed(id): the identity on enum values, present
// purely so the typechecker's Embed(id) scheme has a runtime counterpart
// to check against (§4.5).
func applyEmbed(payload ast.UnaryPayload, v Closure, pos *ast.Span) (Closure, error) {
	if _, ok := v.Term.(*ast.Enum); !ok {
		return Closure{}, &TypeError{Expected: "Enum", Op: "embed", Term: v.Term, Pos: pos}
	}
	return v, nil
}

// applySwitch implements switch(cases, default): dispatch on the enum
// tag, falling back to default if given and the tag isn't covered
// (§4.3).
func applySwitch(payload ast.UnaryPayload, v Closure, pos *ast.Span) (Closure, error) {
	tag, ok := v.Term.(*ast.Enum)
	if !ok {
		return Closure{}, &TypeError{Expected: "Enum", Op: "switch", Term: v.Term, Pos: pos}
	}
	if branch, ok := payload.Cases[tag.Tag]; ok {
		return Closure{Term: branch, Env: v.Env}, nil
	}
	if payload.Default != nil {
		return Closure{Term: payload.Default, Env: v.Env}, nil
	}
	return Closure{}, &FieldMissing{Field: tag.Tag, Op: "switch", Record: v.Term, Pos: pos}
}
