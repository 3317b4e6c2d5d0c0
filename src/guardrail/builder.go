package guardrail

import "os"

// New wraps a Definition into an executable Check. It locates the caller's
// defining file via the runtime, reads that file's leading doc block, and
// assembles the check's metadata from path and tags.
//
// Provenance resolution is best-effort: if the caller's file cannot be
// determined or read, the check still functions and reports with blank
// descriptive metadata. Violation detection never depends on a rule
// locating its own documentation.
func New(def Definition) *Check {
	return build(def, callerFile(2))
}

// NewAt is New with an explicit defining-file path, for callers that resolve
// their own location (wrappers, generated registrations, tests).
func NewAt(def Definition, path string) *Check {
	return build(def, path)
}

func build(def Definition, path string) *Check {
	tags := ParseTags(leadingDocOf(path))

	meta := SynthesizeMetadata(path, tags)
	meta.PolicyPath = NormalizePolicyPath(path)
	if path == "" {
		meta.PolicyPath = ""
	}

	return &Check{
		Meta:     meta,
		def:      def,
		severity: SeverityError,
	}
}

// leadingDocOf reads path and returns its leading doc block. Unreadable and
// absent files are treated identically: empty documentation.
func leadingDocOf(path string) string {
	if path == "" {
		return ""
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return LeadingDocBlock(src)
}
