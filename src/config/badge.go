package config

// BadgesConfig controls badge generation.
type BadgesConfig struct {
	Label    string  `yaml:"label"`     // left-side text
	Output   string  `yaml:"output"`    // output SVG path
	FontFile string  `yaml:"font_file"` // TTF/OTF path; estimated widths when empty
	FontSize float64 `yaml:"font_size"`
}

// DefaultBadgesConfig returns badge defaults.
func DefaultBadgesConfig() BadgesConfig {
	return BadgesConfig{
		Label:    "guardrails",
		Output:   ".guardrails/badge.svg",
		FontSize: 11,
	}
}
