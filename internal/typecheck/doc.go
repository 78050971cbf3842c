// Package typecheck implements the gradual, row-polymorphic static
// checker of §4.5: permissive by default, entering strict unification
// under a Promise annotation and leaving it again at the matching
// Assume.
package typecheck
