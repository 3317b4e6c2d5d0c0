package guardrail

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
)

// File is one parsed source file under analysis.
type File struct {
	Path    string // relative path from repo root (what patterns match)
	AbsPath string // absolute path on disk
	Src     []byte
	Ast     *ast.File
	Fset    *token.FileSet
}

// ParseSource parses Go source bytes into a File using the given fileset.
// The logical path is recorded for pattern matching and reporting.
func ParseSource(fset *token.FileSet, path string, src []byte) (*File, error) {
	parsed, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return &File{
		Path: path,
		Src:  src,
		Ast:  parsed,
		Fset: fset,
	}, nil
}

// LoadFile reads and parses a file from disk.
func LoadFile(fset *token.FileSet, path, absPath string) (*File, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	f, err := ParseSource(fset, path, src)
	if err != nil {
		return nil, err
	}
	f.AbsPath = absPath
	return f, nil
}

// Position converts a token position to a 1-based line/column pair.
func (f *File) Position(pos token.Pos) (line, column int) {
	if !pos.IsValid() {
		return 0, 0
	}
	p := f.Fset.Position(pos)
	return p.Line, p.Column
}
