package typecheck

import (
	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/typesystem"
)

// unaryScheme returns the instantiated type of op applied to its
// (possibly curried-via-App) operands, per §4.5's "Operator type
// schemes (selected)" plus straightforward extensions for the
// operators the spec left unlisted. MapRec and Switch are excluded
// here since their scheme depends on payload data (the mapping
// function, the case table) checked directly by the caller rather than
// looked up from a fixed table.
func unaryScheme(tb *Table, op ast.UnaryOp, payload ast.UnaryPayload) typesystem.Type {
	switch op {
	case ast.OpIsNum, ast.OpIsBool, ast.OpIsStr, ast.OpIsFun, ast.OpIsList, ast.OpIsRecord:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: a, Cod: typesystem.Bool{}}
	case ast.OpNot:
		return typesystem.Arrow{Dom: typesystem.Bool{}, Cod: typesystem.Bool{}}
	case ast.OpIte:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: typesystem.Bool{}, Cod: typesystem.Arrow{Dom: a, Cod: typesystem.Arrow{Dom: a, Cod: a}}}
	case ast.OpBoolAnd, ast.OpBoolOr:
		return typesystem.Arrow{Dom: typesystem.Bool{}, Cod: typesystem.Arrow{Dom: typesystem.Bool{}, Cod: typesystem.Bool{}}}
	case ast.OpBlame:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: typesystem.Dyn{}, Cod: a}
	case ast.OpChngPol, ast.OpPolarity, ast.OpGoDom, ast.OpGoCodom, ast.OpGoField, ast.OpTag:
		// Labels live outside the surface type algebra (§3.5); treated
		// as opaque Dyn-to-Dyn plumbing for typechecking purposes.
		return typesystem.Arrow{Dom: typesystem.Dyn{}, Cod: typesystem.Dyn{}}
	case ast.OpWrap:
		return typesystem.Arrow{Dom: typesystem.Dyn{}, Cod: typesystem.Dyn{}}
	case ast.OpEmbed:
		rho := tb.Fresh()
		tb.BanLabels(rho.ID, []string{payload.TagValue})
		return typesystem.Arrow{
			Dom: typesystem.Enum{Row: rho},
			Cod: typesystem.Enum{Row: typesystem.RowExtend{Label: payload.TagValue, Tail: rho}},
		}
	case ast.OpStaticAccess:
		a := tb.Fresh()
		rho := tb.Fresh()
		tb.BanLabels(rho.ID, []string{payload.FieldName})
		return typesystem.Arrow{
			Dom: typesystem.StaticRecord{Row: typesystem.RowExtend{Label: payload.FieldName, FieldType: a, Tail: rho}},
			Cod: a,
		}
	case ast.OpHasField:
		return typesystem.Arrow{Dom: typesystem.Dyn{}, Cod: typesystem.Bool{}}
	case ast.OpFieldsOf:
		return typesystem.Arrow{Dom: typesystem.Dyn{}, Cod: typesystem.List{}}
	case ast.OpRecordRemove:
		a := tb.Fresh()
		rho := tb.Fresh()
		tb.BanLabels(rho.ID, []string{payload.FieldName})
		return typesystem.Arrow{
			Dom: typesystem.StaticRecord{Row: typesystem.RowExtend{Label: payload.FieldName, FieldType: a, Tail: rho}},
			Cod: typesystem.StaticRecord{Row: rho},
		}
	case ast.OpHead:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: typesystem.List{}, Cod: a}
	case ast.OpTail:
		return typesystem.Arrow{Dom: typesystem.List{}, Cod: typesystem.List{}}
	case ast.OpLength:
		return typesystem.Arrow{Dom: typesystem.List{}, Cod: typesystem.Num{}}
	case ast.OpElemAt:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: typesystem.List{}, Cod: a}
	case ast.OpDeepSeq:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: a, Cod: a}
	case ast.OpTypeOf:
		a := tb.Fresh()
		return typesystem.Arrow{Dom: a, Cod: typesystem.Str{}}
	}
	a := tb.Fresh()
	return typesystem.Arrow{Dom: typesystem.Dyn{}, Cod: a}
}

// binaryScheme mirrors unaryScheme for the two-operand primitives.
func binaryScheme(tb *Table, op ast.BinaryOp, payload ast.BinaryPayload) typesystem.Type {
	arrow2 := func(x, y, z typesystem.Type) typesystem.Type {
		return typesystem.Arrow{Dom: x, Cod: typesystem.Arrow{Dom: y, Cod: z}}
	}
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return arrow2(typesystem.Num{}, typesystem.Num{}, typesystem.Num{})
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return arrow2(typesystem.Num{}, typesystem.Num{}, typesystem.Bool{})
	case ast.OpEq:
		a := tb.Fresh()
		return arrow2(a, a, typesystem.Bool{})
	case ast.OpUnwrap:
		return arrow2(typesystem.Dyn{}, typesystem.Dyn{}, typesystem.Dyn{})
	case ast.OpExtend:
		a := tb.Fresh()
		rho := tb.Fresh()
		return arrow2(
			typesystem.StaticRecord{Row: rho},
			a,
			typesystem.StaticRecord{Row: typesystem.RowExtend{Label: payload.FieldName, FieldType: a, Tail: rho}},
		)
	case ast.OpDynAccess, ast.OpDynRemove:
		return arrow2(typesystem.Dyn{}, typesystem.Str{}, typesystem.Dyn{})
	case ast.OpDynHasField:
		return arrow2(typesystem.Dyn{}, typesystem.Str{}, typesystem.Bool{})
	case ast.OpConcat:
		return arrow2(typesystem.List{}, typesystem.List{}, typesystem.List{})
	case ast.OpMap:
		return arrow2(typesystem.List{}, typesystem.Dyn{}, typesystem.List{})
	case ast.OpSeq:
		a := tb.Fresh()
		b := tb.Fresh()
		return arrow2(a, b, b)
	case ast.OpMerge:
		return arrow2(typesystem.Dyn{}, typesystem.Dyn{}, typesystem.Dyn{})
	}
	a := tb.Fresh()
	return arrow2(typesystem.Dyn{}, typesystem.Dyn{}, a)
}
