package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tidyplan/guardrails/src/badge"
	"github.com/tidyplan/guardrails/src/guardrail"
	_ "github.com/tidyplan/guardrails/src/guardrail/checks"
)

var badgeOutput string

var badgeCmd = &cobra.Command{
	Use:   "badge [path]",
	Short: "Generate a violations badge",
	Long:  "Run all checks over the full tree and write an SVG badge with the violation count.",
	RunE:  runBadge,
}

func init() {
	badgeCmd.Flags().StringVar(&badgeOutput, "output", "", "output SVG path (default: from config)")
	rootCmd.AddCommand(badgeCmd)
}

func runBadge(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if len(args) > 0 {
		rootDir = args[0]
	}

	cache := &guardrail.Cache{
		Dir:     guardrail.ResolveCacheDir(rootDir, cfg.Guard.CacheDir),
		Enabled: true,
	}
	engine, err := guardrail.NewEngine(cfg.Guard, rootDir, nil, nil, verbose, cache)
	if err != nil {
		return err
	}
	files, err := engine.CollectFiles()
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	violations, runErr := engine.Run(context.Background(), files)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", runErr)
	}

	var errors, warnings int
	for _, v := range violations {
		switch v.Severity {
		case guardrail.SeverityError:
			errors++
		case guardrail.SeverityWarning:
			warnings++
		}
	}

	metrics, err := loadMetrics()
	if err != nil {
		return err
	}

	value := "clean"
	if len(violations) > 0 {
		value = fmt.Sprintf("%d violations", len(violations))
	}

	svg := badge.New(metrics).Generate(badge.Badge{
		Label: cfg.Badges.Label,
		Value: value,
		Color: badge.StatusColor(errors, warnings),
	})

	out := badgeOutput
	if out == "" {
		out = cfg.Badges.Output
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating badge dir: %w", err)
	}
	if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing badge: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "badge: %s (%d violations)\n", out, len(violations))
	}
	return nil
}

// loadMetrics loads measured metrics from the configured font file, or
// estimated metrics when none is set.
func loadMetrics() (*badge.FontMetrics, error) {
	if cfg.Badges.FontFile == "" {
		return badge.EstimatedMetrics(cfg.Badges.FontSize), nil
	}
	return badge.LoadFontFile(cfg.Badges.FontFile, cfg.Badges.FontSize)
}
