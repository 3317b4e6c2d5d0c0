package guardrail

import (
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"
	"sync"
)

// Program is the set of parsed files a run operates over, sharing one
// fileset. It also owns the entity-name index: the only cross-call cache in
// the engine. The index is deterministic, derived once from the parsed
// files, populated lazily behind a once-guard, and never invalidated
// mid-run; repeated computation without the cache would produce identical
// results.
type Program struct {
	Fset  *token.FileSet
	Files []*File

	entityOnce  sync.Once
	entityIndex map[string]string // exported type name → declaring file
}

// NewProgram creates an empty program with a fresh fileset.
func NewProgram() *Program {
	return &Program{Fset: token.NewFileSet()}
}

// Add parses src under the given logical path and appends it to the program.
func (p *Program) Add(path string, src []byte) (*File, error) {
	f, err := ParseSource(p.Fset, path, src)
	if err != nil {
		return nil, err
	}
	p.Files = append(p.Files, f)
	return f, nil
}

// EntityNames returns the names of all domain entity types declared in the
// program. An entity is an exported struct type declared in a file under a
// "domain" path segment. The heuristic is acknowledged: without type
// checking, path convention is the only signal available.
func (p *Program) EntityNames() map[string]string {
	p.entityOnce.Do(func() {
		p.entityIndex = make(map[string]string)
		for _, f := range p.Files {
			if !inDomainLayer(f.Path) {
				continue
			}
			for name := range structTypes(f.Ast) {
				if ast.IsExported(name) {
					p.entityIndex[name] = f.Path
				}
			}
		}
	})
	return p.entityIndex
}

// IsEntity reports whether name is a known domain entity type.
func (p *Program) IsEntity(name string) bool {
	_, ok := p.EntityNames()[name]
	return ok
}

// inDomainLayer reports whether a file path sits in the domain layer.
func inDomainLayer(path string) bool {
	for _, seg := range strings.Split(strings.ToLower(filepath.ToSlash(path)), "/") {
		if seg == "domain" {
			return true
		}
	}
	return false
}

// structTypes collects the struct type declarations of a file.
func structTypes(f *ast.File) map[string]*ast.StructType {
	out := make(map[string]*ast.StructType)
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			ts, ok := s.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				out[ts.Name.Name] = st
			}
		}
	}
	return out
}
