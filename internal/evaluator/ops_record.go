// Record primitives of §4.3: static/dynamic access, extend, remove,
// hasField, fieldsOf, mapRec.
package evaluator

import (
	"sort"

	"github.com/funvibe/corelang/internal/ast"
)

func asRecord(t ast.Term) (*ast.Record, bool) {
	r, ok := t.(*ast.Record)
	return r, ok
}

func asFieldName(t ast.Term) (string, bool) {
	s, ok := t.(*ast.Str)
	if !ok {
		return "", false
	}
	// Normalize so a dynamically-computed field name and a statically
	// written one that differ only in Unicode form still collide on the
	// same field (SPEC_FULL §B).
	return normalizeStr(s.Value), true
}

func (ev *Evaluator) applyStaticAccess(payload ast.UnaryPayload, rec Closure, pos *ast.Span) (Closure, error) {
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: ".", Term: rec.Term, Pos: pos}
	}
	field, ok := r.Fields[payload.FieldName]
	if !ok {
		return Closure{}, &FieldMissing{Field: payload.FieldName, Op: ".", Record: r, Pos: pos}
	}
	return Closure{Term: field, Env: rec.Env}, nil
}

func (ev *Evaluator) applyHasField(payload ast.UnaryPayload, rec Closure, pos *ast.Span) (Closure, error) {
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: "hasField", Term: rec.Term, Pos: pos}
	}
	_, ok = r.Fields[payload.FieldName]
	return boolResult(ok)
}

func (ev *Evaluator) applyRecordRemove(payload ast.UnaryPayload, rec Closure, pos *ast.Span) (Closure, error) {
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: "-", Term: rec.Term, Pos: pos}
	}
	return removeField(r, rec.Env, payload.FieldName)
}

func removeField(r *ast.Record, env Env, field string) (Closure, error) {
	newFields := make(map[string]ast.Term, len(r.Fields))
	newOrder := make([]string, 0, len(r.FieldOrder))
	for _, name := range r.FieldOrder {
		if name == field {
			continue
		}
		newFields[name] = r.Fields[name]
		newOrder = append(newOrder, name)
	}
	return Closure{Term: &ast.Record{Fields: newFields, FieldOrder: newOrder}, Env: env}, nil
}

func (ev *Evaluator) applyFieldsOf(rec Closure, pos *ast.Span) (Closure, error) {
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: "fieldsOf", Term: rec.Term, Pos: pos}
	}
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]ast.Term, len(names))
	for i, n := range names {
		items[i] = &ast.Str{Value: n}
	}
	return AtomicClosure(&ast.List{Items: items}), nil
}

// applyMapRec implements mapRec(f): applies f key value to each field,
// producing a new record with the same field set and transformed values
// (§4.3). f is not forced here — the App nodes built below will force it
// lazily the same way any other application does.
func (ev *Evaluator) applyMapRec(payload ast.UnaryPayload, rec Closure, pos *ast.Span) (Closure, error) {
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: "mapRec", Term: rec.Term, Pos: pos}
	}
	if payload.MapFn == nil {
		return Closure{}, &NotEnoughArgs{Required: 1, Op: "mapRec", Pos: pos}
	}
	newFields := make(map[string]ast.Term, len(r.Fields))
	for name, field := range r.Fields {
		newFields[name] = &ast.App{
			Fun: &ast.App{Fun: payload.MapFn, Arg: &ast.Str{Value: name}},
			Arg: field,
		}
	}
	return Closure{Term: &ast.Record{Fields: newFields, FieldOrder: append([]string(nil), r.FieldOrder...)}, Env: rec.Env}, nil
}

// applyExtend implements $[id=v]: extend a record with a new (or
// overwritten) field.
func (ev *Evaluator) applyExtend(payload ast.BinaryPayload, rec, val Closure, pos *ast.Span) (Closure, error) {
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: "extend", Term: rec.Term, Pos: pos}
	}
	// Closurize the new value into rec's environment via a fresh
	// variable so the returned record's fields stay uniformly
	// interpretable under a single env (§4.3 Closurization).
	fresh := freshVar("_ext")
	newEnv := rec.Env.Extend(fresh, NewThunk(val), BindRecord)
	newFields := make(map[string]ast.Term, len(r.Fields)+1)
	for k, v := range r.Fields {
		newFields[k] = v
	}
	_, existed := newFields[payload.FieldName]
	newFields[payload.FieldName] = &ast.Var{Name: fresh}
	order := r.FieldOrder
	if !existed {
		order = append(append([]string(nil), r.FieldOrder...), payload.FieldName)
	}
	return Closure{Term: &ast.Record{Fields: newFields, FieldOrder: order}, Env: newEnv}, nil
}

func (ev *Evaluator) applyDynAccess(fieldClosure, rec Closure, pos *ast.Span) (Closure, error) {
	name, ok := asFieldName(fieldClosure.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Str", Op: ".$", Term: fieldClosure.Term, Pos: pos}
	}
	return ev.applyStaticAccess(ast.UnaryPayload{FieldName: name}, rec, pos)
}

func (ev *Evaluator) applyDynRemove(fieldClosure, rec Closure, pos *ast.Span) (Closure, error) {
	name, ok := asFieldName(fieldClosure.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Str", Op: "-$", Term: fieldClosure.Term, Pos: pos}
	}
	r, ok := asRecord(rec.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Record", Op: "-$", Term: rec.Term, Pos: pos}
	}
	return removeField(r, rec.Env, name)
}

func (ev *Evaluator) applyDynHasField(fieldClosure, rec Closure, pos *ast.Span) (Closure, error) {
	name, ok := asFieldName(fieldClosure.Term)
	if !ok {
		return Closure{}, &TypeError{Expected: "Str", Op: "hasField$", Term: fieldClosure.Term, Pos: pos}
	}
	return ev.applyHasField(ast.UnaryPayload{FieldName: name}, rec, pos)
}
