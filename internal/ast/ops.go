package ast

// UnaryOp enumerates every single-operand primitive of §4.3. Payload
// data that varies per invocation (a field id, a case table) lives on
// the Op1 node itself via the typed fields below rather than inside the
// enum, mirroring funxy's practice of keeping the operator tag small and
// pushing variant data onto the surrounding node.
type UnaryOp int

const (
	// Arithmetic / structural predicates
	OpIsNum UnaryOp = iota
	OpIsBool
	OpIsStr
	OpIsFun
	OpIsList
	OpIsRecord
	OpNot

	// Boolean control flow. Ite is unary: it dispatches on a Bool operand
	// against two further arguments popped from the Arg stack (§4.3,
	// §4.1 "Fun" note on arg-stack interplay); BoolAnd/BoolOr are also
	// unary for the same reason — the second operand is consumed from
	// the arg stack only if needed, so it can never be a plain Op2
	// operand (§9 design note on short-circuiting).
	OpIte
	OpBoolAnd
	OpBoolOr

	// Labels
	OpBlame
	OpChngPol
	OpPolarity
	OpGoDom
	OpGoCodom
	OpGoField // FieldName set on the Op1 node
	OpTag     // TagValue set on the Op1 node

	// Sealing
	OpWrap // the sealing Sym is the operand
	OpEmbed // TagValue set on the Op1 node

	// Records
	OpStaticAccess // FieldName set on the Op1 node
	OpHasField     // FieldName set on the Op1 node
	OpFieldsOf
	OpRecordRemove // FieldName set on the Op1 node
	OpMapRec       // MapFn set on the Op1 node (the function closure term)

	// Lists
	OpHead
	OpTail
	OpLength
	OpElemAt // IndexArg set on the Op1 node

	// Enums (dynamic dispatch side): switch's only dynamic operand is
	// the enum value being dispatched on; the case table and optional
	// default are static payload set by the parser (UnaryPayload.Cases /
	// .Default), so this is unary despite taking a "table" as a
	// parameter (§4.3).
	OpSwitch

	// Forcing. seq itself needs no unary counterpart: it is BinaryOp
	// OpSeq below, and its "force the first operand" half falls out for
	// free because Op2's two operands are already driven to WHNF by the
	// evaluator before any binary primitive runs (§4.2).
	OpDeepSeq

	// Misc
	OpTypeOf
)

// UnaryPayload carries operator-specific static data that the parser
// attaches at construction time (a field label, a literal tag, case
// tables). Not every operator uses every field.
type UnaryPayload struct {
	FieldName string
	TagValue  string
	IndexArg  Term // elemAt's index, kept as a term since it may itself be a sub-expression
	MapFn     Term
	Cases     map[string]Term // switch's case table (OpSwitch above)
	Default   Term
}

// BinaryOp enumerates every two-operand primitive of §4.3.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpLt
	OpLte
	OpGt
	OpGte
	OpEq // structural equality (§4.3)

	OpUnwrap // unwrap(sym, wrapped)

	OpExtend // $[id=v]; field id carried on the Op2 node's payload

	OpDynAccess   // record.$ fieldName: dynamic field access (§4.3)
	OpDynRemove   // record -$ fieldName: dynamic field removal (§4.3)
	OpDynHasField // record hasField fieldName, dynamic form (§4.3)

	OpConcat // list @ list, sharing-preserving closurization (§4.3)
	OpMap    // list map f

	OpSeq // seq a b: force a, yield b

	OpMerge // §4.4
)

// BinaryPayload mirrors UnaryPayload for the binary operators that need
// static data beyond their two operand terms.
type BinaryPayload struct {
	FieldName string
}
