// Package badge generates shields.io-style SVG badges summarizing a run.
package badge

// Engine generates SVG badges using a specific font's metrics.
type Engine struct {
	metrics *FontMetrics
}

// New creates a badge engine with the given font metrics.
func New(metrics *FontMetrics) *Engine {
	return &Engine{metrics: metrics}
}

// Badge defines the content and appearance of a single badge.
type Badge struct {
	Label string // left side text
	Value string // right side text
	Color string // hex color for right side (e.g. "#4c1")
}

// Generate produces an SVG badge string.
func (e *Engine) Generate(b Badge) string {
	return e.renderSVG(b)
}

// StatusColor maps a run outcome to a badge hex color.
func StatusColor(errors, warnings int) string {
	switch {
	case errors > 0:
		return "#e05d44"
	case warnings > 0:
		return "#dfb317"
	default:
		return "#4c1"
	}
}
