// Package typesystem implements the type algebra (§3.4) and blame labels
// (§3.5) of the core: ground types, arrow, polymorphic quantifier, enum
// rows, record rows, flat/contract types, plus the label carried by every
// contract so that a runtime failure can be attributed to a party.
//
// Grounded on github.com/funvibe/funxy/internal/typesystem/types.go for the
// overall shape of a Type interface with String()/Apply(Subst), adapted from
// funxy's higher-kinded generic-function type algebra to this core's simpler
// row-polymorphic record/enum algebra (see original_source/src/types.rs for
// the exact ground-type set this core targets).
package typesystem

import "fmt"

// PathStepKind is one step of a blame type-path: the contract system
// remembers how it descended into an annotated type so that a later
// failure can be reported against the correct sub-position.
type PathStepKind int

const (
	Domain PathStepKind = iota
	Codomain
	Field
)

// PathStep is a single step in a label's accumulated type path.
type PathStep struct {
	Kind      PathStepKind
	FieldName string // only meaningful when Kind == Field
}

func (s PathStep) String() string {
	switch s.Kind {
	case Domain:
		return "dom"
	case Codomain:
		return "codom"
	case Field:
		return "field[" + s.FieldName + "]"
	default:
		return "?"
	}
}

// Span mirrors ast.Span without importing the ast package (labels are
// constructed by the typechecker and the evaluator, both of which the ast
// package must remain independent of).
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Label is the runtime token carried by a contract. It identifies who is
// to blame if the contract it is attached to ever fails.
type Label struct {
	Tag      string
	Span     Span
	Polarity bool // true = blame the annotated term (positive), false = its context, e.g. the caller of a function (negative)
	Path     []PathStep
}

// WithPath returns a copy of the label with an additional path step
// appended; used by goDom/goCodom/goField during contract propagation.
func (l Label) WithPath(step PathStep) Label {
	path := make([]PathStep, len(l.Path)+1)
	copy(path, l.Path)
	path[len(l.Path)] = step
	l.Path = path
	return l
}

// FlipPolarity returns a copy of the label with polarity negated
// (chngPol).
func (l Label) FlipPolarity() Label {
	l.Polarity = !l.Polarity
	return l
}

// WithTag returns a copy of the label with its tag overwritten (tag(s)).
func (l Label) WithTag(tag string) Label {
	l.Tag = tag
	return l
}

func (l Label) String() string {
	pol := "+"
	if !l.Polarity {
		pol = "-"
	}
	return fmt.Sprintf("%s@%s[%s]%s", l.Tag, l.Span, pathString(l.Path), pol)
}

func pathString(path []PathStep) string {
	out := ""
	for i, s := range path {
		if i > 0 {
			out += "."
		}
		out += s.String()
	}
	return out
}
