// YAML interchange for the "dump a config as data" path every
// configuration-language core needs: decode a YAML document into a
// term tree, or encode a forced WHNF value back out as YAML.
//
// Grounded on funvibe-funxy's own yaml standard-library module
// (internal/evaluator/builtins_term.go's pattern of exposing a Go
// encoding library as a pair of native builtins) and wired here onto
// gopkg.in/yaml.v3 (SPEC_FULL §B), the same library funxy's own stack
// already depends on.
package evaluator

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/corelang/internal/ast"
)

// DecodeYAML parses data into a term tree: YAML mappings become
// Records, sequences become Lists, scalars become Num/Bool/Str/Enum
// (a bare `null` decodes to the `null enum tag, since this core has no
// dedicated null ground type).
func DecodeYAML(data []byte) (ast.Term, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parseYaml: %w", err)
	}
	return yamlToTerm(v), nil
}

func yamlToTerm(v interface{}) ast.Term {
	switch x := v.(type) {
	case nil:
		return &ast.Enum{Tag: "null"}
	case bool:
		return &ast.Bool{Value: x}
	case int:
		return &ast.Num{Value: float64(x)}
	case int64:
		return &ast.Num{Value: float64(x)}
	case float64:
		return &ast.Num{Value: x}
	case string:
		return &ast.Str{Value: x}
	case []interface{}:
		items := make([]ast.Term, len(x))
		for i, el := range x {
			items[i] = yamlToTerm(el)
		}
		return &ast.List{Items: items}
	case map[string]interface{}:
		fields := make(map[string]ast.Term, len(x))
		order := make([]string, 0, len(x))
		for k := range x {
			order = append(order, k)
		}
		sort.Strings(order)
		for _, k := range order {
			fields[k] = yamlToTerm(x[k])
		}
		return &ast.Record{Fields: fields, FieldOrder: order}
	case map[interface{}]interface{}:
		fields := make(map[string]ast.Term, len(x))
		order := make([]string, 0, len(x))
		for k := range x {
			ks := fmt.Sprintf("%v", k)
			fields[ks] = yamlToTerm(x[k])
			order = append(order, ks)
		}
		sort.Strings(order)
		return &ast.Record{Fields: fields, FieldOrder: order}
	default:
		return &ast.Str{Value: fmt.Sprintf("%v", x)}
	}
}

// EncodeYAML renders a WHNF'd term tree as YAML. Unlike DecodeYAML it
// does not force thunks itself: callers (the evaluator's toYaml
// builtin, the driver's -out yaml flag) must deep-force the value
// first (ev.applyDeepSeq) so every nested field is already a plain
// term rather than a Var closure.
func EncodeYAML(t ast.Term) ([]byte, error) {
	v, err := termToYAML(t)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func termToYAML(t ast.Term) (interface{}, error) {
	switch x := t.(type) {
	case *ast.Num:
		return x.Value, nil
	case *ast.Bool:
		return x.Value, nil
	case *ast.Str:
		return x.Value, nil
	case *ast.Enum:
		if x.Tag == "null" {
			return nil, nil
		}
		return "`" + x.Tag, nil
	case *ast.List:
		out := make([]interface{}, len(x.Items))
		for i, item := range x.Items {
			v, err := termToYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *ast.Record:
		out := make(map[string]interface{}, len(x.Fields))
		for _, name := range x.FieldOrder {
			v, err := termToYAML(x.Fields[name])
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("toYaml: cannot encode %T, value was not fully forced", t)
	}
}

// builtinParseYaml and builtinToYaml are the NativeFunc values the
// driver installs into a program's top-level environment (cmd/corelang
// wires these the way funxy's pipeline registers its yaml
// stdlib module's builtins).
func builtinParseYaml() *ast.NativeFunc {
	return &ast.NativeFunc{
		Name: "parseYaml",
		Fn: func(arg ast.Term) (ast.Term, error) {
			s, ok := arg.(*ast.Str)
			if !ok {
				return nil, &TypeError{Expected: "Str", Op: "parseYaml", Term: arg}
			}
			return DecodeYAML([]byte(s.Value))
		},
	}
}

func builtinToYaml(ev *Evaluator) *ast.NativeFunc {
	return &ast.NativeFunc{
		Name: "toYaml",
		Fn: func(arg ast.Term) (ast.Term, error) {
			// arg already arrived forced to WHNF (the NativeFunc dispatch
			// in evaluator.go forces it before calling Fn); deep-force its
			// nested fields against the empty environment, which is
			// correct for record/list literals built entirely from
			// already-substituted data but shares NativeFunc's general
			// limitation of dropping the producing environment for
			// compound values whose fields still reference outer
			// bindings (ops_seal.go's wrap sealer drops it the same way).
			deep, err := ev.applyDeepSeq(Closure{Term: arg, Env: EmptyEnv()}, nil)
			if err != nil {
				return nil, err
			}
			out, err := EncodeYAML(deep.Term)
			if err != nil {
				return nil, err
			}
			return &ast.Str{Value: string(out)}, nil
		},
	}
}

// BaseEnv returns the environment every top-level program is checked
// and evaluated against: just the yaml bridge builtins, since this
// core carries no other standard library (§1 Non-goals).
func BaseEnv(ev *Evaluator) Env {
	env := EmptyEnv()
	env = env.Extend("parseYaml", NewThunk(AtomicClosure(builtinParseYaml())), BindLet)
	env = env.Extend("toYaml", NewThunk(AtomicClosure(builtinToYaml(ev))), BindLet)
	return env
}
