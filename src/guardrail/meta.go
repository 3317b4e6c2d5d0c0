package guardrail

import (
	"path/filepath"
	"strings"
)

// checksRootMarker is the path segment under which check definitions live.
// The segment after it is the workspace, the one after that the layer.
const checksRootMarker = "checks"

// Metadata describes a check: a stable id plus human-readable context pulled
// from the defining file's doc block. All fields are plain strings, empty
// when unknown, so reports never have to deal with missing values.
type Metadata struct {
	ID          string
	Name        string
	Description string
	What        string
	Why         string
	Failure     string
	Workspace   string
	Layer       string

	// PolicyPath is the normalized location of the rule's defining file,
	// for traceability from a report back to the rule's documentation.
	PolicyPath string
}

// SynthesizeMetadata combines a check's defining file path with its parsed
// doc tags into a Metadata record. Total over all inputs: an empty or
// unexpected path yields empty workspace/layer, and the id degenerates to
// "//baseName" accordingly (a documented degenerate shape, not an error).
func SynthesizeMetadata(path string, tags map[string]string) Metadata {
	workspace, layer := decomposePath(path)

	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}

	return Metadata{
		ID:          workspace + "/" + layer + "/" + base,
		Name:        strings.ReplaceAll(base, "-", " "),
		Description: tags["what"],
		What:        tags["what"],
		Why:         tags["why"],
		Failure:     tags["failure"],
		Workspace:   workspace,
		Layer:       layer,
	}
}

// decomposePath locates the checks-root marker in path and returns the two
// segments that follow it. Missing marker or missing segments yield "".
func decomposePath(path string) (workspace, layer string) {
	segs := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segs {
		if seg != checksRootMarker {
			continue
		}
		// Segments after the marker, excluding the file name itself.
		rest := segs[i+1:]
		if len(rest) > 0 {
			rest = rest[:len(rest)-1]
		}
		if len(rest) > 0 {
			workspace = rest[0]
		}
		if len(rest) > 1 {
			layer = rest[1]
		}
		return workspace, layer
	}
	return "", ""
}

// NormalizePolicyPath returns a human-readable location for a rule
// definition: the checks-root marker and everything after it. When the
// marker is absent the raw path is returned unchanged; a total function is
// preferred over failing loudly here, since policy paths are descriptive only.
func NormalizePolicyPath(path string) string {
	slashed := filepath.ToSlash(path)
	idx := strings.Index(slashed, "/"+checksRootMarker+"/")
	if idx < 0 {
		return path
	}
	return slashed[idx+1:]
}
