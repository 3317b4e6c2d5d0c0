package guardrail

import (
	"go/ast"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

const entitySource = `package domain

type Todo struct {
	ID    string
	Title string
}
`

func parseTestFile(t *testing.T, path, src string) (*File, *Program) {
	t.Helper()
	prog := NewProgram()
	f, err := prog.Add(path, []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f, prog
}

func TestNew_ResolvesCallerFile(t *testing.T) {
	c := New(Definition{Visit: func(ast.Node, *Context) {}})

	// This test file has no checks-root marker in its path, so the policy
	// path falls back to the raw caller path.
	if !strings.HasSuffix(filepath.ToSlash(c.Meta.PolicyPath), "builder_test.go") {
		t.Errorf("policy path = %q, want suffix builder_test.go", c.Meta.PolicyPath)
	}
	if c.Meta.ID != "//builder_test" {
		t.Errorf("id = %q", c.Meta.ID)
	}
}

func TestNewAt_ReadsLeadingDoc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checks", "server", "domain", "my-rule.go")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	src := `/*
 * @what W
 * @why Y
 * @failure F
 */

package domain
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := NewAt(Definition{Visit: func(ast.Node, *Context) {}}, path)

	if c.Meta.ID != "server/domain/my-rule" {
		t.Errorf("id = %q", c.Meta.ID)
	}
	if c.Meta.What != "W" || c.Meta.Why != "Y" || c.Meta.Failure != "F" {
		t.Errorf("tags = %+v", c.Meta)
	}
	if c.Meta.Name != "my rule" {
		t.Errorf("name = %q", c.Meta.Name)
	}
	if c.Meta.PolicyPath != "checks/server/domain/my-rule.go" {
		t.Errorf("policy path = %q", c.Meta.PolicyPath)
	}
}

func TestNewAt_UnreadableFileDegradesToEmpty(t *testing.T) {
	c := NewAt(Definition{
		Visit: func(n ast.Node, ctx *Context) {
			if _, ok := n.(*ast.TypeSpec); ok {
				ctx.Report(n, "found a type")
			}
		},
	}, "/does/not/exist/checks/server/domain/ghost.go")

	// Provenance failed, but the check still detects.
	f, prog := parseTestFile(t, "internal/domain/todo.go", entitySource)
	vs := c.Run(f, prog)

	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1", len(vs))
	}
	if vs[0].What != "" || vs[0].Why != "" {
		t.Errorf("descriptive metadata should be blank: %+v", vs[0])
	}
	if vs[0].RuleID != "server/domain/ghost" {
		t.Errorf("rule id = %q", vs[0].RuleID)
	}
}

func TestNewAt_EmptyPathDegradesToEmpty(t *testing.T) {
	c := NewAt(Definition{Visit: func(ast.Node, *Context) {}}, "")
	if c.Meta.ID != "//" {
		t.Errorf("id = %q", c.Meta.ID)
	}
	if c.Meta.PolicyPath != "" {
		t.Errorf("policy path = %q, want empty", c.Meta.PolicyPath)
	}
}

func TestRun_PatternShortCircuit(t *testing.T) {
	calls := 0
	c := NewAt(Definition{
		FilePattern: regexp.MustCompile(`_entity\.go$`),
		Visit: func(ast.Node, *Context) {
			calls++
		},
	}, "")

	f, prog := parseTestFile(t, "internal/domain/user_repository.go", entitySource)
	vs := c.Run(f, prog)

	if calls != 0 {
		t.Errorf("visitor called %d times on non-matching file, want 0", calls)
	}
	if vs == nil || len(vs) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", vs)
	}
}

func TestRun_ReportsCoordinates(t *testing.T) {
	src := "package domain\n\ntype Todo struct {\n\tID string\n}\n"
	f, prog := parseTestFile(t, "internal/domain/todo.go", src)

	c := NewAt(Definition{
		Visit: func(n ast.Node, ctx *Context) {
			if ts, ok := n.(*ast.TypeSpec); ok {
				ctx.Report(ts, "bad thing")
			}
		},
	}, "")

	vs := c.Run(f, prog)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1", len(vs))
	}

	v := vs[0]
	// "type Todo ...": the TypeSpec starts at the identifier on line 3.
	if v.Line != 3 {
		t.Errorf("line = %d, want 3", v.Line)
	}
	if v.Column != 6 {
		t.Errorf("column = %d, want 6", v.Column)
	}
	if v.Severity != SeverityError {
		t.Errorf("severity = %v, want error default", v.Severity)
	}
	if v.Message != "bad thing" {
		t.Errorf("message = %q", v.Message)
	}
	if v.File != "internal/domain/todo.go" {
		t.Errorf("file = %q", v.File)
	}
}

func TestRun_Idempotent(t *testing.T) {
	f, prog := parseTestFile(t, "internal/domain/todo.go", entitySource)

	c := NewAt(Definition{
		Visit: func(n ast.Node, ctx *Context) {
			if id, ok := n.(*ast.Ident); ok && id.IsExported() {
				ctx.Reportf(n, "exported ident %s", id.Name)
			}
		},
	}, "")

	first := c.Run(f, prog)
	second := c.Run(f, prog)

	if len(first) == 0 {
		t.Fatal("expected violations")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\n%v\n%v", first, second)
	}
}

func TestRun_WithSeverity(t *testing.T) {
	f, prog := parseTestFile(t, "internal/domain/todo.go", entitySource)

	base := NewAt(Definition{
		Visit: func(n ast.Node, ctx *Context) {
			if _, ok := n.(*ast.TypeSpec); ok {
				ctx.Report(n, "x")
			}
		},
	}, "")
	soft := base.WithSeverity(SeverityWarning)

	if got := soft.Run(f, prog)[0].Severity; got != SeverityWarning {
		t.Errorf("override severity = %v", got)
	}
	// The original is untouched.
	if got := base.Run(f, prog)[0].Severity; got != SeverityError {
		t.Errorf("base severity = %v", got)
	}
}

func TestRun_ReportWarning(t *testing.T) {
	f, prog := parseTestFile(t, "internal/domain/todo.go", entitySource)

	c := NewAt(Definition{
		Visit: func(n ast.Node, ctx *Context) {
			if _, ok := n.(*ast.File); ok {
				ctx.ReportWarning(n, "heads up")
			}
		},
	}, "")

	vs := c.Run(f, prog)
	if len(vs) != 1 || vs[0].Severity != SeverityWarning {
		t.Errorf("got %#v", vs)
	}
}
