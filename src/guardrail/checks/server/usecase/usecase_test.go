package usecase

import (
	"testing"

	"github.com/tidyplan/guardrails/src/guardrail"
)

func runOnSingle(t *testing.T, c *guardrail.Check, path, src string) []guardrail.Violation {
	t.Helper()
	prog := guardrail.NewProgram()
	f, err := prog.Add(path, []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return c.Run(f, prog)
}

func TestContextFirstParam_FlagsMissingContext(t *testing.T) {
	src := `package usecase

func CreateTodo(title string) error {
	return nil
}
`
	vs := runOnSingle(t, contextFirstParam, "internal/usecase/create_todo.go", src)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1: %#v", len(vs), vs)
	}
}

func TestContextFirstParam_AllowsContextFirst(t *testing.T) {
	src := `package usecase

import "context"

func CreateTodo(ctx context.Context, title string) error {
	_ = ctx
	return nil
}
`
	if vs := runOnSingle(t, contextFirstParam, "internal/usecase/create_todo.go", src); len(vs) != 0 {
		t.Errorf("unexpected violations: %#v", vs)
	}
}

func TestContextFirstParam_ExemptsConstructorsAndUnexported(t *testing.T) {
	src := `package usecase

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func helper(x int) int {
	return x
}
`
	if vs := runOnSingle(t, contextFirstParam, "internal/usecase/service.go", src); len(vs) != 0 {
		t.Errorf("unexpected violations: %#v", vs)
	}
}

func TestContextFirstParam_FlagsZeroParamExported(t *testing.T) {
	src := `package usecase

func ListTodos() error {
	return nil
}
`
	vs := runOnSingle(t, contextFirstParam, "internal/usecase/list_todos.go", src)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1: %#v", len(vs), vs)
	}
}

func TestContextFirstParam_SkipsNonUsecaseFiles(t *testing.T) {
	src := `package domain

func Validate(title string) error {
	return nil
}
`
	if vs := runOnSingle(t, contextFirstParam, "internal/domain/todo.go", src); len(vs) != 0 {
		t.Errorf("check ran outside the use-case layer: %#v", vs)
	}
}
