package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/tidyplan/guardrails/src/guardrail"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Printer formats and writes violations.
type Printer struct {
	Writer io.Writer
	Color  bool
}

// NewPrinter creates a printer writing to stdout with color auto-detection.
func NewPrinter() *Printer {
	return &Printer{
		Writer: os.Stdout,
		Color:  isTerminal(),
	}
}

// Print outputs violations grouped by file; returns true if any
// error-severity violations exist.
func (p *Printer) Print(violations []guardrail.Violation) bool {
	if len(violations) == 0 {
		return false
	}

	byFile := make(map[string][]guardrail.Violation)
	for _, v := range violations {
		byFile[v.File] = append(byFile[v.File], v)
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	hasError := false

	for _, file := range files {
		vs := byFile[file]
		guardrail.SortViolations(vs)

		fmt.Fprintf(p.Writer, "\n%s\n", p.colorize(file, colorBold))
		for _, v := range vs {
			if v.Severity == guardrail.SeverityError {
				hasError = true
			}
			fmt.Fprintf(p.Writer, "  %s %s %s %s\n",
				p.colorize(location(v), colorGray),
				severityTag(v.Severity, p.Color),
				p.colorize(v.RuleID, colorCyan),
				v.Message,
			)
			// Descriptive context is optional; blank fields are omitted
			// rather than rendered as empty strings.
			if v.Why != "" {
				fmt.Fprintf(p.Writer, "           %s\n", p.colorize("why: "+v.Why, colorGray))
			}
			if v.PolicyPath != "" {
				fmt.Fprintf(p.Writer, "           %s\n", p.colorize("policy: "+v.PolicyPath, colorGray))
			}
		}
	}

	return hasError
}

// Summary prints a final summary line.
func (p *Printer) Summary(total, errors, warnings, filesScanned int) {
	fmt.Fprintf(p.Writer, "\n%s\n", SummaryLine(total, errors, warnings, filesScanned, p.Color))
}

// SummaryLine returns a one-line violations summary, optionally colored.
func SummaryLine(total, errors, warnings, filesScanned int, color bool) string {
	parts := []string{}
	if errors > 0 {
		s := fmt.Sprintf("%d error", errors)
		if errors > 1 {
			s += "s"
		}
		if color {
			s = colorRed + s + colorReset
		}
		parts = append(parts, s)
	}
	if warnings > 0 {
		s := fmt.Sprintf("%d warning", warnings)
		if warnings > 1 {
			s += "s"
		}
		if color {
			s = colorYellow + s + colorReset
		}
		parts = append(parts, s)
	}

	summary := "no violations"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}

	totalStr := fmt.Sprintf("%d", total)
	if color {
		totalStr = colorBold + totalStr + colorReset
	}
	return fmt.Sprintf("%s violations in %d files: %s", totalStr, filesScanned, summary)
}

// StatsTable writes a per-check stats table inside a section.
func StatsTable(w io.Writer, stats []guardrail.CheckStats, _ bool) {
	fmt.Fprintf(w, "    │ %-42s%6s  %6s  %s\n", "check", "files", "cached", "violations")
	for _, s := range stats {
		fmt.Fprintf(w, "    │ %-42s%5d   %5d   %5d\n", s.ID, s.Files, s.Cached, s.Violations)
	}
}

// SectionViolations renders violations grouped by file inside a section.
func SectionViolations(sec *Section, violations []guardrail.Violation, color bool) {
	if len(violations) == 0 {
		return
	}

	byFile := map[string][]guardrail.Violation{}
	for _, v := range violations {
		byFile[v.File] = append(byFile[v.File], v)
	}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	sec.Row("")
	for _, file := range files {
		vs := byFile[file]
		guardrail.SortViolations(vs)

		if color {
			sec.Row("%s", colorBold+file+colorReset)
		} else {
			sec.Row("%s", file)
		}
		for _, v := range vs {
			sec.Row("  %-8s %-4s  %-38s %s", location(v), severityTag(v.Severity, color), v.RuleID, v.Message)
		}
		sec.Row("")
	}
}

func location(v guardrail.Violation) string {
	switch {
	case v.Line == 0:
		return "-"
	case v.Column > 0:
		return fmt.Sprintf("%d:%d", v.Line, v.Column)
	default:
		return fmt.Sprintf("%d", v.Line)
	}
}

// severityTag returns a short severity label, optionally colored.
func severityTag(s guardrail.Severity, color bool) string {
	switch s {
	case guardrail.SeverityError:
		if color {
			return colorRed + "ERR " + colorReset
		}
		return "ERR "
	case guardrail.SeverityWarning:
		if color {
			return colorYellow + "WARN" + colorReset
		}
		return "WARN"
	default:
		return s.String()
	}
}

func (p *Printer) colorize(text, color string) string {
	if !p.Color {
		return text
	}
	return color + text + colorReset
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
