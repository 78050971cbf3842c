// String normalization so that two interpolated strings or record
// field labels that differ only in Unicode normalization form compare
// and hash identically (SPEC_FULL §B: golang.org/x/text is the pack's
// only library for this concern, pulled in transitively by funxy's own
// stack).
package evaluator

import "golang.org/x/text/unicode/norm"

// normalizeStr returns s in Unicode Normalization Form C, the form
// structural equality (ops_eq.go) and the environment's identifier
// keys (persistent_map.go) both compare against.
func normalizeStr(s string) string {
	return norm.NFC.String(s)
}
