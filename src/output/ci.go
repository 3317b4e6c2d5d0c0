package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidyplan/guardrails/src/guardrail"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", time.Now().Unix(), id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", time.Now().Unix(), id)
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit writes violations as JUnit XML for CI test reporting.
// Each check becomes a test suite, each analyzed file a test case; only
// error-severity violations count as failures.
func WriteJUnit(dir string, violations []guardrail.Violation, files []guardrail.FileRef, checkIDs []string, elapsed time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	byCheck := make(map[string]map[string][]guardrail.Violation)
	for _, id := range checkIDs {
		byCheck[id] = make(map[string][]guardrail.Violation)
	}
	for _, v := range violations {
		if _, ok := byCheck[v.RuleID]; !ok {
			byCheck[v.RuleID] = make(map[string][]guardrail.Violation)
		}
		byCheck[v.RuleID][v.File] = append(byCheck[v.RuleID][v.File], v)
	}

	var (
		totalTests    int
		totalFailures int
		suites        []JUnitTestSuite
	)

	perSuite := elapsed.Seconds()
	if len(checkIDs) > 0 {
		perSuite /= float64(len(checkIDs))
	}

	for _, id := range checkIDs {
		checkViolations := byCheck[id]
		suite := JUnitTestSuite{
			Name: "guardrails/" + id,
			Time: fmt.Sprintf("%.3f", perSuite),
		}

		for _, f := range files {
			tc := JUnitTestCase{
				Name:      f.Path,
				Classname: "guardrails." + strings.ReplaceAll(id, "/", "."),
				Time:      "0.000",
			}

			if vs, ok := checkViolations[f.Path]; ok && len(vs) > 0 {
				worst := guardrail.SeverityWarning
				var lines []string
				for _, v := range vs {
					if v.Severity > worst {
						worst = v.Severity
					}
					loc := fmt.Sprintf("%d", v.Line)
					if v.Column > 0 {
						loc = fmt.Sprintf("%d:%d", v.Line, v.Column)
					}
					lines = append(lines, fmt.Sprintf("  %s [%s] %s", loc, v.Severity, v.Message))
				}

				if worst >= guardrail.SeverityError {
					tc.Failure = &JUnitFailure{
						Message: fmt.Sprintf("%d violation(s) in %s", len(vs), f.Path),
						Type:    worst.String(),
						Body:    strings.Join(lines, "\n"),
					}
					suite.Failures++
					totalFailures++
				}
			}

			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
			totalTests++
		}

		suites = append(suites, suite)
	}

	root := JUnitTestSuites{
		Name:     "guardrails",
		Tests:    totalTests,
		Failures: totalFailures,
		Time:     fmt.Sprintf("%.3f", elapsed.Seconds()),
		Suites:   suites,
	}

	path := filepath.Join(dir, "guardrails.xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	f.WriteString(xml.Header)
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	f.WriteString("\n")

	return nil
}
