package guardrail

import "testing"

func TestSynthesizeMetadata_PathDecomposition(t *testing.T) {
	path := "/repo/src/guardrail/checks/server/domain/aggregate-boundary.go"
	meta := SynthesizeMetadata(path, map[string]string{"what": "Checks X"})

	if meta.Workspace != "server" {
		t.Errorf("workspace = %q, want %q", meta.Workspace, "server")
	}
	if meta.Layer != "domain" {
		t.Errorf("layer = %q, want %q", meta.Layer, "domain")
	}
	if meta.ID != "server/domain/aggregate-boundary" {
		t.Errorf("id = %q", meta.ID)
	}
	if meta.Name != "aggregate boundary" {
		t.Errorf("name = %q", meta.Name)
	}
	if meta.Description != "Checks X" || meta.What != "Checks X" {
		t.Errorf("description = %q, what = %q", meta.Description, meta.What)
	}
}

func TestSynthesizeMetadata_Deterministic(t *testing.T) {
	path := "/repo/src/guardrail/checks/server/domain/foo.go"
	a := SynthesizeMetadata(path, map[string]string{"what": "W"})
	b := SynthesizeMetadata(path, map[string]string{"what": "W"})
	if a != b {
		t.Errorf("metadata not deterministic: %+v vs %+v", a, b)
	}
}

func TestSynthesizeMetadata_NoMarker(t *testing.T) {
	meta := SynthesizeMetadata("/somewhere/else/foo-bar.go", nil)

	if meta.Workspace != "" || meta.Layer != "" {
		t.Errorf("workspace/layer = %q/%q, want empty", meta.Workspace, meta.Layer)
	}
	// Known degenerate shape: empty segments collapse to empty components.
	if meta.ID != "//foo-bar" {
		t.Errorf("id = %q, want %q", meta.ID, "//foo-bar")
	}
	if meta.Name != "foo bar" {
		t.Errorf("name = %q", meta.Name)
	}
}

func TestSynthesizeMetadata_EmptyPath(t *testing.T) {
	meta := SynthesizeMetadata("", nil)

	if meta.ID != "//" {
		t.Errorf("id = %q, want %q", meta.ID, "//")
	}
	if meta.What != "" || meta.Why != "" || meta.Failure != "" {
		t.Errorf("tags should be empty strings: %+v", meta)
	}
}

func TestSynthesizeMetadata_MissingLayer(t *testing.T) {
	meta := SynthesizeMetadata("checks/server/foo.go", nil)
	if meta.Workspace != "server" || meta.Layer != "" {
		t.Errorf("workspace/layer = %q/%q", meta.Workspace, meta.Layer)
	}
	if meta.ID != "server//foo" {
		t.Errorf("id = %q", meta.ID)
	}
}

func TestNormalizePolicyPath(t *testing.T) {
	got := NormalizePolicyPath("/repo/src/guardrail/checks/server/domain/foo.go")
	want := "checks/server/domain/foo.go"
	if got != want {
		t.Errorf("policy path = %q, want %q", got, want)
	}

	// No marker: raw path unchanged.
	raw := "/elsewhere/foo.go"
	if got := NormalizePolicyPath(raw); got != raw {
		t.Errorf("policy path = %q, want raw %q", got, raw)
	}
}
