// Package prettyprinter renders the blame-label CLI output of §6: on a
// BlameError, pretty-print the label's tag, span, polarity, and
// accumulated type path, with ANSI color when the writer it prints to
// is a real terminal.
//
// Grounded on funvibe-funxy's terminal-capability detection
// (internal/evaluator/builtins_term.go's isatty.IsTerminal /
// IsCygwinTerminal / COLORTERM checks), simplified from that file's
// multi-tier truecolor/256-color/16-color palette down to a single
// on/off color decision, since a blame report has no use for more than
// a handful of distinct highlight colors (tag, polarity, path step
// kind).
package prettyprinter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/evaluator"
	"github.com/funvibe/corelang/internal/typesystem"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// ColorCapable reports whether fd looks like a real terminal that can
// render ANSI escapes, the same signals funvibe-funxy's termColorLevel
// checks before deciding how to color text.
func ColorCapable(fd uintptr) bool {
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// BlamePrinter renders diagnostics to Out, coloring them only when
// Color is true.
type BlamePrinter struct {
	Out   io.Writer
	Color bool
}

// NewBlamePrinter returns a printer wired to w, auto-detecting color
// capability from w when w is an *os.File.
func NewBlamePrinter(w io.Writer) *BlamePrinter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = ColorCapable(f.Fd())
	}
	return &BlamePrinter{Out: w, Color: color}
}

func (p *BlamePrinter) paint(code, s string) string {
	if !p.Color {
		return s
	}
	return code + s + ansiReset
}

// PrintError dispatches on the error taxonomy (§7), rendering a
// BlameError with its full label/span/polarity/path detail and every
// other kind with a one-line summary.
func (p *BlamePrinter) PrintError(err error) {
	if be, ok := err.(*evaluator.BlameError); ok {
		p.printBlame(be)
		return
	}
	fmt.Fprintln(p.Out, p.paint(ansiRed+ansiBold, "error:"), err.Error())
}

func (p *BlamePrinter) printBlame(be *evaluator.BlameError) {
	lbl := be.Label
	fmt.Fprintln(p.Out, p.paint(ansiRed+ansiBold, "blame error:"), p.paint(ansiBold, lbl.Tag))
	fmt.Fprintln(p.Out, " ", p.paint(ansiGray, "at"), lbl.Span.String())
	fmt.Fprintln(p.Out, " ", p.paint(ansiGray, "polarity:"), polarityString(lbl.Polarity, p))
	if len(lbl.Path) > 0 {
		fmt.Fprintln(p.Out, " ", p.paint(ansiGray, "type path:"), pathString(lbl.Path, p))
	}
	if len(be.CallStack) > 0 {
		fmt.Fprintln(p.Out, " ", p.paint(ansiGray, "call stack:"))
		for i := len(be.CallStack) - 1; i >= 0; i-- {
			entry := be.CallStack[i]
			fmt.Fprintf(p.Out, "    %s %s\n", p.paint(ansiCyan, entry.Name), spanString(entry.Pos))
		}
	}
}

func spanString(s *ast.Span) string {
	if s == nil {
		return "<unknown>"
	}
	return s.String()
}

func polarityString(positive bool, p *BlamePrinter) string {
	if positive {
		return p.paint(ansiCyan, "+")
	}
	return p.paint(ansiYellow, "-")
}

func pathString(path []typesystem.PathStep, p *BlamePrinter) string {
	parts := make([]string, len(path))
	for i, step := range path {
		switch step.Kind {
		case typesystem.Domain:
			parts[i] = p.paint(ansiCyan, "dom")
		case typesystem.Codomain:
			parts[i] = p.paint(ansiCyan, "cod")
		case typesystem.Field:
			parts[i] = p.paint(ansiCyan, "."+step.FieldName)
		}
	}
	return strings.Join(parts, " → ")
}
