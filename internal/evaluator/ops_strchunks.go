// String-chunk concatenation for interpolated string literals (§4.3
// ChunksConcat, §9 design note). The spec describes ChunksConcat as an
// evaluation-time reduction driven through the OpCont engine one chunk
// at a time ("consumes leading literal chunks directly, then pushes a
// fresh continuation with the next expression chunk"); this core instead
// folds the whole chunk list procedurally in one pass, which is
// observably identical (interpolated strings have no way to inspect the
// intermediate reduction state) and avoids a fourth OpCont shape solely
// for this one construct — see DESIGN.md for this Open Question
// resolution, which SPEC_FULL §9 notes the original itself flags as an
// implementation choice ("alternative is to pre-collapse literals at
// parse time").
package evaluator

import (
	"strconv"

	"github.com/funvibe/corelang/internal/ast"
)

// resolveStrChunks forces every expression chunk and concatenates the
// result with the literal chunks, honoring the "reversed sequence"
// storage order of §3.1.
func (ev *Evaluator) resolveStrChunks(t *ast.StrChunks, env Env) (Closure, error) {
	var out []byte
	for i := len(t.Chunks) - 1; i >= 0; i-- {
		c := t.Chunks[i]
		if !c.IsExpr {
			out = append(out, c.Lit...)
			continue
		}
		forced, err := ev.Eval(c.Expr, env)
		if err != nil {
			return Closure{}, err
		}
		s, err := stringify(forced.Term)
		if err != nil {
			return Closure{}, err
		}
		out = append(out, s...)
	}
	return AtomicClosure(&ast.Str{Value: string(out)}), nil
}

// stringify renders a forced value for splicing into an interpolated
// string; only ground scalars are interpolatable.
func stringify(t ast.Term) (string, error) {
	switch v := t.(type) {
	case *ast.Str:
		return v.Value, nil
	case *ast.Num:
		return strconv.FormatFloat(v.Value, 'g', -1, 64), nil
	case *ast.Bool:
		return strconv.FormatBool(v.Value), nil
	case *ast.Enum:
		return "`" + v.Tag, nil
	default:
		return "", &TypeError{Expected: "interpolatable scalar", Op: "string interpolation", Term: t}
	}
}
