package guardrail

import (
	"fmt"
	"sort"
)

// Severity indicates how serious a violation is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a config string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityError, fmt.Errorf("guardrail: unknown severity %q", s)
	}
}

// Violation is one reported instance of a check failing at a source location.
// A violation is created once per (node, rule) match and never mutated.
type Violation struct {
	File       string   `json:"file"`
	Line       int      `json:"line"`             // 1-based
	Column     int      `json:"column,omitempty"` // 1-based, 0 when unknown
	Severity   Severity `json:"severity"`
	RuleID     string   `json:"rule_id"`
	Message    string   `json:"message"`
	What       string   `json:"what,omitempty"`
	Why        string   `json:"why,omitempty"`
	PolicyPath string   `json:"policy_path,omitempty"`
}

// SortViolations orders violations for stable, diffable output:
// file, line, column, rule id, message.
func SortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Message < b.Message
	})
}
