// Package config holds the small set of constants the driver and
// evaluator share: source file conventions, the module version, a
// test-mode flag, and the driver's exit codes.
//
// Grounded on funvibe-funxy's internal/config/constants.go (the
// version var, source-extension table, and trim/has helpers), trimmed
// to this core's extension and to the identifiers this calculus
// actually defines (no trait names or builtin function/type tables:
// this core has no standard library, §1 Non-goals).
package config

// Version is the current version of this configuration language core.
var Version = "0.1.0"

// SourceFileExt is the canonical extension for this language's source
// files.
const SourceFileExt = ".ncl"

// SourceFileExtensions are all recognized source file extensions; a
// second short form is accepted the way funxy accepted both .lang and
// .funxy/.fx.
var SourceFileExtensions = []string{".ncl", ".nickel"}

// TrimSourceExt removes any recognized source extension from a
// filename. Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized
// source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is a process-wide test-mode flag. It defaults to false;
// the driver has no test subcommand and nothing in this module sets or
// reads it.
var IsTestMode = false

// Exit codes for the driver (§6 "Exit codes (driver concern): 0 on
// value produced, non-zero on evaluation or type error").
const (
	ExitOK         = 0
	ExitEvalError  = 1
	ExitTypeError  = 2
	ExitUsageError = 3
)
