package guardrail

import "runtime"

// callerFile resolves the source file of the caller skip frames up the
// stack, using the runtime's caller facility rather than parsing stack
// text. Returns "" when the frame cannot be resolved; all metadata derived
// from the path then degrades to empty values.
func callerFile(skip int) string {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return file
}
