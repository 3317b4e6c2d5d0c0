package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidyplan/guardrails/src/guardrail"
)

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		name                            string
		total, errors, warnings, files  int
		want                            string
	}{
		{"clean", 0, 0, 0, 12, "0 violations in 12 files: no violations"},
		{"one error", 1, 1, 0, 3, "1 violations in 3 files: 1 error"},
		{"mixed", 5, 2, 3, 40, "5 violations in 40 files: 2 errors, 3 warnings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummaryLine(tt.total, tt.errors, tt.warnings, tt.files, false)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_GroupsByFileAndOmitsBlankContext(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Writer: &buf}

	hasError := p.Print([]guardrail.Violation{
		{
			File: "internal/domain/todo.go", Line: 3, Column: 6,
			Severity: guardrail.SeverityError,
			RuleID:   "server/domain/entity-unexported-fields",
			Message:  "entity Todo exposes every field",
			Why:      "setters guard invariants",
			PolicyPath: "checks/server/domain/entity-unexported-fields.go",
		},
		{
			File: "internal/domain/todo.go", Line: 9,
			Severity: guardrail.SeverityWarning,
			RuleID:   "server/domain/no-logging-in-domain",
			Message:  "log call in domain code",
		},
	})

	if !hasError {
		t.Error("Print should report error-severity presence")
	}
	out := buf.String()
	if strings.Count(out, "internal/domain/todo.go\n") != 1 {
		t.Errorf("file header should appear once:\n%s", out)
	}
	if !strings.Contains(out, "3:6") || !strings.Contains(out, "ERR") {
		t.Errorf("missing location or severity tag:\n%s", out)
	}
	if !strings.Contains(out, "why: setters guard invariants") {
		t.Errorf("why line missing:\n%s", out)
	}
	if strings.Count(out, "why:") != 1 || strings.Count(out, "policy:") != 1 {
		t.Errorf("blank context fields should be omitted:\n%s", out)
	}
}

func TestPrinter_NoViolations(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Writer: &buf}
	if p.Print(nil) {
		t.Error("empty input reported an error")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLocation(t *testing.T) {
	if got := location(guardrail.Violation{Line: 0}); got != "-" {
		t.Errorf("no position = %q", got)
	}
	if got := location(guardrail.Violation{Line: 7}); got != "7" {
		t.Errorf("line only = %q", got)
	}
	if got := location(guardrail.Violation{Line: 7, Column: 2}); got != "7:2" {
		t.Errorf("line:col = %q", got)
	}
}
