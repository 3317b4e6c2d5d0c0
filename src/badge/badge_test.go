package badge

import (
	"strings"
	"testing"
)

func TestStatusColor(t *testing.T) {
	if got := StatusColor(2, 0); got != "#e05d44" {
		t.Errorf("errors = %q", got)
	}
	if got := StatusColor(0, 3); got != "#dfb317" {
		t.Errorf("warnings = %q", got)
	}
	if got := StatusColor(0, 0); got != "#4c1" {
		t.Errorf("clean = %q", got)
	}
}

func TestGenerate_EstimatedMetrics(t *testing.T) {
	e := New(EstimatedMetrics(11))
	svg := e.Generate(Badge{Label: "guardrails", Value: "passing", Color: "#4c1"})

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("not an svg document: %.60s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
	if strings.Count(svg, ">guardrails</text>") != 2 || strings.Count(svg, ">passing</text>") != 2 {
		t.Errorf("label and value should each render twice (shadow + fill):\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#4c1"`) {
		t.Error("status color missing")
	}
	// Estimated metrics carry no font bytes to embed.
	if strings.Contains(svg, "@font-face") {
		t.Error("estimated metrics must not embed a font")
	}
}

func TestGenerate_EscapesText(t *testing.T) {
	e := New(EstimatedMetrics(11))
	svg := e.Generate(Badge{Label: "a<b", Value: `"x" & 'y'`, Color: "#4c1"})

	if strings.Contains(svg, "a<b") {
		t.Error("label not escaped")
	}
	for _, want := range []string{"a&lt;b", "&quot;x&quot;", "&amp;", "&apos;y&apos;"} {
		if !strings.Contains(svg, want) {
			t.Errorf("escaped form %q missing", want)
		}
	}
}

func TestEstimatedMetrics_TextWidth(t *testing.T) {
	m := EstimatedMetrics(10)
	if got := m.TextWidth("abcd"); got != 4*6.0 {
		t.Errorf("width = %v, want 24", got)
	}
	if m.FontData() != nil {
		t.Error("estimated metrics should have no font data")
	}
}

func TestDetectFontFormat(t *testing.T) {
	if got := detectFontFormat([]byte("OTTOxxxx")); got != "otf" {
		t.Errorf("OTTO magic = %q", got)
	}
	if got := detectFontFormat([]byte{0x00, 0x01, 0x00, 0x00}); got != "ttf" {
		t.Errorf("ttf magic = %q", got)
	}
	if got := detectFontFormat([]byte{0x4F}); got != "ttf" {
		t.Errorf("short data = %q", got)
	}
}
