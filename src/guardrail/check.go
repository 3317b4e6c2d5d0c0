package guardrail

import (
	"fmt"
	"go/ast"
	"regexp"
)

// Definition is the author-supplied configuration for a check: an optional
// file pattern restricting which sources the check applies to, and a visitor
// invoked once per syntax node. A Definition is pure configuration: it is
// supplied once at registration time and never mutated.
type Definition struct {
	// FilePattern restricts the files the check runs on. Nil means all files.
	FilePattern *regexp.Regexp

	// Visit is called for every node of an applicable file, pre-order,
	// including the root *ast.File. It reports through the context.
	Visit func(n ast.Node, ctx *Context)
}

// Check is the executable unit produced by New: metadata paired with a run
// function. Run is pure with respect to the check: all per-run state lives
// in a fresh Context, so a check may run over many files, or the same file
// repeatedly, without interference.
type Check struct {
	Meta Metadata

	def      Definition
	severity Severity // default severity for reports
}

// Severity returns the default severity this check reports with.
func (c *Check) Severity() Severity { return c.severity }

// WithSeverity returns a copy of the check that reports at severity s.
// The registered original is left untouched, so config-driven overrides in
// one engine never leak into another.
func (c *Check) WithSeverity(s Severity) *Check {
	cp := *c
	cp.severity = s
	return &cp
}

// Applicable reports whether the check's file pattern matches path.
// A nil pattern applies to every file.
func (c *Check) Applicable(path string) bool {
	return c.def.FilePattern == nil || c.def.FilePattern.MatchString(path)
}

// Run executes the check against one parsed file. When the file pattern does
// not match, it returns an empty slice without touching the tree. The result
// is never nil.
func (c *Check) Run(file *File, prog *Program) []Violation {
	if !c.Applicable(file.Path) {
		return []Violation{}
	}

	ctx := &Context{
		File:    file,
		Program: prog,
		check:   c,
	}

	Walk(file.Ast, func(n ast.Node) {
		c.def.Visit(n, ctx)
	})

	if ctx.violations == nil {
		return []Violation{}
	}
	return ctx.violations
}

// Context is the per-run reporting surface handed to a visitor. It lives for
// one (check, file) execution and is discarded afterward.
type Context struct {
	File    *File
	Program *Program

	check      *Check
	violations []Violation
}

// Report emits a violation at the node's position with the check's default
// severity.
func (ctx *Context) Report(n ast.Node, message string) {
	ctx.report(n, message, ctx.check.severity)
}

// Reportf is Report with fmt formatting.
func (ctx *Context) Reportf(n ast.Node, format string, args ...any) {
	ctx.report(n, fmt.Sprintf(format, args...), ctx.check.severity)
}

// ReportWarning emits a violation at warning severity regardless of the
// check's default.
func (ctx *Context) ReportWarning(n ast.Node, message string) {
	ctx.report(n, message, SeverityWarning)
}

func (ctx *Context) report(n ast.Node, message string, severity Severity) {
	var line, column int
	if n != nil {
		line, column = ctx.File.Position(n.Pos())
	}
	ctx.violations = append(ctx.violations, Violation{
		File:       ctx.File.Path,
		Line:       line,
		Column:     column,
		Severity:   severity,
		RuleID:     ctx.check.Meta.ID,
		Message:    message,
		What:       ctx.check.Meta.What,
		Why:        ctx.check.Meta.Why,
		PolicyPath: ctx.check.Meta.PolicyPath,
	})
}
