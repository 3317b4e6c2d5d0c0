package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidyplan/guardrails/src/guardrail"
	_ "github.com/tidyplan/guardrails/src/guardrail/checks"
	"github.com/tidyplan/guardrails/src/output"
)

var (
	checkLevel   string
	checkOnly    []string
	checkSkip    []string
	checkNoCache bool
	checkAll     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Run architectural checks",
	Long: `Run cache-aware, delta-only architectural checks.

By default, only changed files are analyzed (--level changed).
Use --level full or --all to analyze everything.

Checks run in parallel and results are cached by content hash.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkLevel, "level", "", "scan level: changed or full (default: from config, then changed)")
	checkCmd.Flags().StringSliceVar(&checkOnly, "check", nil, "run only these checks (comma-separated ids)")
	checkCmd.Flags().StringSliceVar(&checkSkip, "no-check", nil, "skip these checks (comma-separated ids)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable cache (clear and rescan)")
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "analyze all files (shorthand for --level full)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkAll {
		checkLevel = "full"
	}
	// CLI flag > config > default "changed"
	if checkLevel == "" && cfg.Guard.Level != "" {
		checkLevel = string(cfg.Guard.Level)
	}
	if checkLevel == "" {
		checkLevel = "changed"
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if len(args) > 0 {
		rootDir = args[0]
	}

	cache := &guardrail.Cache{
		Dir:     guardrail.ResolveCacheDir(rootDir, cfg.Guard.CacheDir),
		Enabled: !checkNoCache,
	}
	if checkNoCache {
		if err := cache.Clear(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "cache: clear failed: %v\n", err)
		}
	}

	engine, err := guardrail.NewEngine(cfg.Guard, rootDir, checkOnly, checkSkip, verbose, cache)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "checks: %v\n", engine.CheckIDs())
	}

	files, err := engine.CollectFiles()
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	// Delta filtering: only analyze changed files unless --level full.
	if checkLevel != "full" {
		delta := &guardrail.Delta{RootDir: rootDir, TargetBranch: cfg.Guard.TargetBranch, Verbose: verbose}
		changed, deltaErr := delta.ChangedFiles(context.Background())
		if deltaErr != nil && verbose {
			fmt.Fprintf(os.Stderr, "delta: %v, falling back to full scan\n", deltaErr)
		}
		if changed != nil {
			all := len(files)
			files = guardrail.FilterByDelta(files, changed)
			if verbose {
				fmt.Fprintf(os.Stderr, "delta: %d/%d files changed\n", len(files), all)
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "analyzing %d files\n", len(files))
	}

	ctx := context.Background()
	ci := output.IsCI()
	color := output.UseColor()
	w := os.Stdout

	start := time.Now()
	violations, stats, runErr := engine.RunWithStats(ctx, files)
	elapsed := time.Since(start)

	guardrail.SortViolations(violations)

	var errors, warnings int
	for _, v := range violations {
		switch v.Severity {
		case guardrail.SeverityError:
			errors++
		case guardrail.SeverityWarning:
			warnings++
		}
	}
	var totalFiles, totalCached int
	for _, s := range stats {
		totalFiles += s.Files
		totalCached += s.Cached
	}

	if ci {
		if jErr := output.WriteJUnit(".guardrails/reports", violations, files, engine.CheckIDs(), elapsed); jErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write junit report: %v\n", jErr)
		}
	}

	// ── Checks section ──
	output.SectionStart(w, "guardrails_checks", "Checks")
	sec := output.NewSection(w, "Checks", elapsed, color)
	output.StatsTable(w, stats, color)
	sec.Separator()
	sec.Row("%-42s%5d   %5d   %d violations (%d errors)",
		"total", totalFiles, totalCached, len(violations), errors)
	sec.Close()
	output.SectionEnd(w, "guardrails_checks")

	// ── Violations section (only when violations > 0) ──
	if len(violations) > 0 {
		output.SectionStart(w, "guardrails_violations", "Violations")
		vSec := output.NewSection(w, "Violations", 0, color)
		output.SectionViolations(vSec, violations, color)
		vSec.Separator()
		vSec.Row("%s", output.SummaryLine(len(violations), errors, warnings, len(files), color))
		vSec.Close()
		output.SectionEnd(w, "guardrails_violations")
	}

	if verbose && cache.Enabled {
		fmt.Fprintf(os.Stderr, "cache: %d hits, %d misses\n",
			engine.CacheHits.Load(), engine.CacheMisses.Load())
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", runErr)
	}

	if errors > 0 {
		return fmt.Errorf("guardrails failed: %d errors", errors)
	}
	return nil
}
