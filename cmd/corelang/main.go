// Command corelang is the thin driver of §6: it typechecks (§4.5) then
// evaluates (§4.1) one of the embedded example programs, prints the
// resulting value, and pretty-prints a BlameError when the program's
// contracts fail, exiting with the code §6 specifies.
//
// Grounded on funvibe-funxy's cmd/funxy/main.go for the overall
// "parse flags, build an evaluator, run, map errors to exit codes"
// shape; trimmed from that file's REPL/LSP/backend-selection surface
// down to what a core with no parser or standard library needs (§2
// SYSTEM OVERVIEW's pipeline has no lexer/parser/backend stage).
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/config"
	"github.com/funvibe/corelang/internal/evaluator"
	"github.com/funvibe/corelang/internal/modules"
	"github.com/funvibe/corelang/internal/prettyprinter"
	"github.com/funvibe/corelang/internal/typecheck"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("corelang", flag.ContinueOnError)
	out := fs.String("out", "value", "output format: value or yaml")
	list := fs.Bool("list", false, "list the embedded example programs and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "corelang %s\n\nusage: corelang [-out value|yaml] <example-name>\n", config.Version)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return config.ExitUsageError
	}

	if *list {
		printExampleNames()
		return config.ExitOK
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return config.ExitUsageError
	}

	name := fs.Arg(0)
	term, ok := Programs[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "corelang: no such example %q\n", name)
		printExampleNames()
		return config.ExitUsageError
	}

	checker := typecheck.NewChecker()
	if err := checker.CheckProgram(term); err != nil {
		prettyprinter.NewBlamePrinter(os.Stderr).PrintError(err)
		return config.ExitTypeError
	}

	loader := modules.NewLoader()
	ev := evaluator.New(loader, os.Stdout)

	result, err := ev.Eval(term, evaluator.BaseEnv(ev))
	if err != nil {
		prettyprinter.NewBlamePrinter(os.Stderr).PrintError(err)
		return config.ExitEvalError
	}

	switch *out {
	case "yaml":
		deep, err := ev.DeepForce(result)
		if err != nil {
			prettyprinter.NewBlamePrinter(os.Stderr).PrintError(err)
			return config.ExitEvalError
		}
		data, err := evaluator.EncodeYAML(deep.Term)
		if err != nil {
			fmt.Fprintln(os.Stderr, "corelang:", err)
			return config.ExitEvalError
		}
		os.Stdout.Write(data)
	default:
		fmt.Fprintln(os.Stdout, renderValue(result.Term))
	}

	return config.ExitOK
}

// renderValue gives a forced WHNF term a short, human-readable form
// for the default (non-yaml) output mode; it does not recurse into
// compound values (printing those is what -out yaml is for).
func renderValue(t ast.Term) string {
	switch v := t.(type) {
	case *ast.Num:
		return fmt.Sprintf("Num %g", v.Value)
	case *ast.Bool:
		return fmt.Sprintf("Bool %t", v.Value)
	case *ast.Str:
		return fmt.Sprintf("Str %q", v.Value)
	case *ast.Enum:
		return "`" + v.Tag
	case *ast.Record:
		return fmt.Sprintf("Record{%d fields}", len(v.Fields))
	case *ast.List:
		return fmt.Sprintf("List[%d items]", len(v.Items))
	case *ast.Fun, *ast.NativeFunc:
		return "<function>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func printExampleNames() {
	names := make([]string, 0, len(Programs))
	for n := range Programs {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "available examples:")
	for _, n := range names {
		fmt.Fprintln(os.Stderr, " ", n)
	}
}
