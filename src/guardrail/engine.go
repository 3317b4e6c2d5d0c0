package guardrail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/tidyplan/guardrails/src/config"
)

// FileRef is an on-disk source file queued for analysis.
type FileRef struct {
	Path    string // relative path from repo root
	AbsPath string // absolute path on disk
	Size    int64
}

// Engine orchestrates checks across the files of a program.
type Engine struct {
	Config  config.GuardConfig
	RootDir string
	Checks  []*Check
	Cache   *Cache
	Verbose bool

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
}

// NewEngine creates an engine with the selected checks. Explicit ids win
// over config; skip always wins. Config may disable a check or override its
// severity.
func NewEngine(cfg config.GuardConfig, rootDir string, checkIDs, skipIDs []string, verbose bool, cache *Cache) (*Engine, error) {
	skip := make(map[string]bool, len(skipIDs))
	for _, id := range skipIDs {
		skip[id] = true
	}

	var selected []*Check

	if len(checkIDs) > 0 {
		for _, id := range checkIDs {
			if skip[id] {
				continue
			}
			c, err := Get(id)
			if err != nil {
				return nil, err
			}
			c, err = applyCheckConfig(c, cfg)
			if err != nil {
				return nil, err
			}
			selected = append(selected, c)
		}
	} else {
		for _, c := range All() {
			if skip[c.Meta.ID] {
				continue
			}
			if cc, ok := cfg.Checks[c.Meta.ID]; ok && cc.Enabled != nil && !*cc.Enabled {
				continue
			}
			c, err := applyCheckConfig(c, cfg)
			if err != nil {
				return nil, err
			}
			selected = append(selected, c)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no checks selected")
	}

	return &Engine{
		Config:  cfg,
		RootDir: rootDir,
		Checks:  selected,
		Cache:   cache,
		Verbose: verbose,
	}, nil
}

// applyCheckConfig returns the check with any config severity override applied.
func applyCheckConfig(c *Check, cfg config.GuardConfig) (*Check, error) {
	cc, ok := cfg.Checks[c.Meta.ID]
	if !ok || cc.Severity == "" {
		return c, nil
	}
	sev, err := ParseSeverity(cc.Severity)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", c.Meta.ID, err)
	}
	return c.WithSeverity(sev), nil
}

// CheckStats holds per-check run statistics.
type CheckStats struct {
	ID         string
	Files      int
	Cached     int
	Violations int
	Errors     int
	Warnings   int
}

// Run executes all checks against the given files and returns violations.
func (e *Engine) Run(ctx context.Context, files []FileRef) ([]Violation, error) {
	violations, _, err := e.RunWithStats(ctx, files)
	return violations, err
}

// RunWithStats parses the files into one program, executes every applicable
// check against every file in parallel, and returns the aggregate violations
// plus per-check statistics. One failing check does not abort the others;
// failures are collected and surfaced as a single error alongside whatever
// violations were found.
func (e *Engine) RunWithStats(ctx context.Context, files []FileRef) ([]Violation, []CheckStats, error) {
	var (
		mu         sync.Mutex
		violations []Violation
		errs       []error
		wg         sync.WaitGroup
	)

	// Parse everything first: cross-file data (the entity index) needs the
	// complete program before any check runs.
	prog := NewProgram()
	contents := make(map[string][]byte, len(files))
	parsed := make([]*File, 0, len(files))
	for _, ref := range files {
		src, err := os.ReadFile(ref.AbsPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref.Path, err))
			continue
		}
		f, err := prog.Add(filepath.ToSlash(ref.Path), src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref.Path, err))
			continue
		}
		f.AbsPath = ref.AbsPath
		contents[f.Path] = src
		parsed = append(parsed, f)
	}

	stats := make([]CheckStats, len(e.Checks))
	for i, c := range e.Checks {
		stats[i].ID = c.Meta.ID
	}

	sem := semaphore.NewWeighted(int64(runtime.NumCPU() * 2))

	for _, file := range parsed {
		for ci, check := range e.Checks {
			if !check.Applicable(file.Path) {
				continue
			}

			wg.Add(1)
			if err := sem.Acquire(ctx, 1); err != nil {
				wg.Done()
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				break
			}
			go func(c *Check, f *File, idx int) {
				defer wg.Done()
				defer sem.Release(1)

				var key string
				if e.Cache != nil && e.Cache.Enabled {
					key = e.Cache.Key(contents[f.Path], c.Meta.ID, c.Severity().String())
					if cached, ok := e.Cache.Get(key); ok {
						e.CacheHits.Add(1)
						mu.Lock()
						stats[idx].Files++
						stats[idx].Cached++
						tallyStats(&stats[idx], cached)
						violations = append(violations, cached...)
						mu.Unlock()
						return
					}
					e.CacheMisses.Add(1)
				}

				results, runErr := e.runOne(c, f, prog)

				mu.Lock()
				defer mu.Unlock()
				stats[idx].Files++
				if runErr != nil {
					errs = append(errs, fmt.Errorf("%s: %s: %w", c.Meta.ID, f.Path, runErr))
					return
				}
				tallyStats(&stats[idx], results)
				violations = append(violations, results...)
				if key != "" {
					if cacheErr := e.Cache.Put(key, results); cacheErr != nil && e.Verbose {
						fmt.Fprintf(os.Stderr, "cache: write failed for %s/%s: %v\n", c.Meta.ID, f.Path, cacheErr)
					}
				}
			}(check, file, ci)
		}
	}

	wg.Wait()

	if len(errs) > 0 {
		return violations, stats, fmt.Errorf("%d check errors (first: %w)", len(errs), errs[0])
	}
	return violations, stats, nil
}

// runOne executes one check over one file, converting a visitor panic into
// an error so a broken rule cannot take the whole run down.
func (e *Engine) runOne(c *Check, f *File, prog *Program) (results []Violation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return c.Run(f, prog), nil
}

func tallyStats(s *CheckStats, vs []Violation) {
	for _, v := range vs {
		s.Violations++
		switch v.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		}
	}
}

// CollectFiles walks the root directory and returns every Go source file
// that is not excluded. Hidden directories, vendor, and testdata are skipped.
func (e *Engine) CollectFiles() ([]FileRef, error) {
	var files []FileRef

	err := filepath.WalkDir(e.RootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(e.RootDir, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			base := filepath.Base(rel)
			if (strings.HasPrefix(base, ".") && base != ".") || base == "vendor" || base == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(rel, ".go") {
			return nil
		}
		if e.isExcluded(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileRef{Path: rel, AbsPath: path, Size: info.Size()})
		return nil
	})

	return files, err
}

// CheckIDs returns the ids of all active checks in this engine.
func (e *Engine) CheckIDs() []string {
	ids := make([]string, len(e.Checks))
	for i, c := range e.Checks {
		ids[i] = c.Meta.ID
	}
	return ids
}

func (e *Engine) isExcluded(path string) bool {
	for _, pattern := range e.Config.Exclude {
		if matchExcludePattern(pattern, path) {
			return true
		}
	}
	return false
}
