package ast

import "fmt"

// Position is a single point in source text. The core never interprets
// positions beyond carrying and printing them; parsing is out of scope.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is an optional source range carried alongside every term node.
// It never affects evaluation; it exists solely for diagnostics.
type Span struct {
	Start Position
	End   Position
}

func (s *Span) String() string {
	if s == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
