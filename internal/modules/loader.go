// Package modules is the import resolver collaborator of §6: it turns
// an Import's path into a resolved term and file id, and serves
// already-resolved file ids back to the evaluator on demand so a
// ResolvedImport node never needs to re-parse anything.
//
// Parsing itself is out of this core's scope (§2 SYSTEM OVERVIEW lists
// no parser/lexer stage in the implementation budget); a host program
// registers already-built ast.Term values under a file id or path
// before handing the root term to the evaluator, the way a driver
// would hand a parsed RichTerm to funxy's pipeline stage.
//
// Grounded on funvibe-funxy's internal/modules/loader.go (the
// LoadedModules cache and Processing cycle-detection map on its
// Loader type), rebuilt around a term registry instead of a
// filesystem+lexer+parser pipeline.
package modules

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ast"
)

// Loader caches resolved terms by file id and resolves import paths to
// a (term, file id) pair, detecting import cycles the way
// funvibe-funxy's Loader.Processing does during a recursive load.
type Loader struct {
	byFileID  map[string]ast.Term
	byPath    map[string]string // source path -> file id
	resolving map[string]bool
}

// NewLoader returns an empty Loader; call Register for every file the
// host program wants reachable via import before evaluation begins.
func NewLoader() *Loader {
	return &Loader{
		byFileID:  make(map[string]ast.Term),
		byPath:    make(map[string]string),
		resolving: make(map[string]bool),
	}
}

// Register makes term available under fileID, and reachable from an
// Import node whose Path matches path (pass "" if the file is only
// ever referenced by resolved id, never by a textual import path).
func (l *Loader) Register(fileID, path string, term ast.Term) {
	l.byFileID[fileID] = term
	if path != "" {
		l.byPath[path] = fileID
	}
}

// Get implements evaluator.ModuleLoader: look up an already-resolved
// file id (§6 "get(file_id) → term").
func (l *Loader) Get(fileID string) (ast.Term, error) {
	term, ok := l.byFileID[fileID]
	if !ok {
		return nil, fmt.Errorf("modules: unknown file id %q", fileID)
	}
	return term, nil
}

// Resolve implements the other half of the collaborator (§6
// "resolve(path) → (term, file_id)"), guarding against import cycles
// the same way funvibe-funxy's Loader.Processing does: a path still
// being resolved when Resolve re-enters it is an error rather than an
// infinite recursion.
func (l *Loader) Resolve(path string) (ast.Term, string, error) {
	fileID, ok := l.byPath[path]
	if !ok {
		return nil, "", fmt.Errorf("modules: cannot resolve import %q", path)
	}
	if l.resolving[fileID] {
		return nil, "", fmt.Errorf("modules: import cycle detected at %q", path)
	}
	l.resolving[fileID] = true
	defer delete(l.resolving, fileID)

	term, err := l.Get(fileID)
	if err != nil {
		return nil, "", err
	}
	return term, fileID, nil
}
