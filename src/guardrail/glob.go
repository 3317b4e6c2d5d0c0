package guardrail

import (
	"path/filepath"
	"strings"
)

// MatchGlob matches a glob pattern against a forward-slash path, extending
// filepath.Match with "**" (zero or more path segments).
func MatchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		ok, _ := filepath.Match(pattern, path)
		return ok
	}

	idx := strings.Index(pattern, "**")
	prefix := strings.TrimRight(pattern[:idx], "/")
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		path = strings.TrimLeft(strings.TrimPrefix(path, prefix), "/")
	}

	if suffix == "" {
		return true
	}

	// Match the rest of the pattern against every tail of the path.
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		if MatchGlob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// matchExcludePattern matches one exclude pattern against a path. Patterns
// containing "/" or "**" match the full path; bare patterns match the base
// name only.
func matchExcludePattern(pattern, path string) bool {
	pattern = filepath.ToSlash(pattern)
	norm := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
		return MatchGlob(pattern, norm)
	}
	return MatchGlob(pattern, filepath.Base(norm))
}
