package guardrail

import (
	"bufio"
	"strings"
)

// Recognized doc tags. Everything else in a doc block is prose for humans.
var docTags = []string{"what", "why", "failure"}

// LeadingDocBlock returns the text of the first comment block at the top of
// a Go source file, before the package clause. Both /* ... */ blocks and
// contiguous // line groups count. Returns "" when the file has no leading
// comment; never errors.
func LeadingDocBlock(src []byte) string {
	var (
		lines   []string
		inBlock bool
	)

	scanner := bufio.NewScanner(strings.NewReader(string(src)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if inBlock {
			end := strings.Index(line, "*/")
			if end >= 0 {
				lines = append(lines, line[:end])
				return strings.Join(lines, "\n")
			}
			lines = append(lines, line)
			continue
		}

		switch {
		case line == "":
			// Blank line before any comment: keep looking. Blank line after
			// a // group ends the block.
			if len(lines) > 0 {
				return strings.Join(lines, "\n")
			}
		case strings.HasPrefix(line, "/*"):
			rest := strings.TrimPrefix(line, "/*")
			rest = strings.TrimPrefix(rest, "*") // tolerate /** openers
			if end := strings.Index(rest, "*/"); end >= 0 {
				return rest[:end]
			}
			lines = append(lines, rest)
			inBlock = true
		case strings.HasPrefix(line, "//"):
			lines = append(lines, strings.TrimPrefix(line, "//"))
		default:
			// First non-comment line (usually the package clause).
			return strings.Join(lines, "\n")
		}
	}

	return strings.Join(lines, "\n")
}

// ParseTags extracts @what / @why / @failure tag lines from a doc block.
// Each tag's value is the remainder of its line, trimmed. Tags may appear in
// any order, interleaved with prose. Absent tags are omitted from the result.
// Total over all inputs: empty or malformed text yields an empty map.
func ParseTags(text string) map[string]string {
	tags := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		// Strip comment decoration: leading whitespace, then *, //, and the
		// whitespace after them.
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)

		if !strings.HasPrefix(line, "@") {
			continue
		}

		for _, tag := range docTags {
			if _, ok := tags[tag]; ok {
				continue // first occurrence wins
			}
			marker := "@" + tag
			if !strings.HasPrefix(line, marker) {
				continue
			}
			rest := line[len(marker):]
			// Require whitespace (or end of line) after the tag name so
			// @whatever does not match @what.
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue
			}
			tags[tag] = strings.TrimSpace(rest)
			break
		}
	}

	return tags
}
