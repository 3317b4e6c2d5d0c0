package guardrail

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultCacheDir = ".guardrails/cache"

	// engineVersion participates in cache keys so results computed by an
	// older engine are never replayed by a newer one.
	engineVersion = "0.1.0"
)

// Cache provides content-addressed result caching: a file's violations only
// depend on its bytes, the rule, and the rule's configuration, so a hash of
// those is a complete key.
type Cache struct {
	Dir     string
	Enabled bool
}

type cacheEntry struct {
	Violations []Violation `json:"violations"`
}

// ResolveCacheDir picks the cache directory: config override first, the
// default under the repo root otherwise.
func ResolveCacheDir(rootDir, configured string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(rootDir, defaultCacheDir)
}

// Key computes a cache key from file content, rule id, and config fingerprint.
func (c *Cache) Key(content []byte, ruleID, configFingerprint string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(ruleID))
	h.Write([]byte(configFingerprint))
	h.Write([]byte(engineVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached violations. Returns nil, false on miss.
func (c *Cache) Get(key string) ([]Violation, bool) {
	if !c.Enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return entry.Violations, true
}

// Put stores violations in the cache. Empty results are stored too; a
// clean pass is just as cacheable as a dirty one.
func (c *Cache) Put(key string, violations []Violation) error {
	if !c.Enabled {
		return nil
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.Marshal(cacheEntry{Violations: violations})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Clear removes the entire cache directory.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.Dir)
}

// path returns the file for a key, sharded by 2-char prefix to avoid huge
// flat directories.
func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key[:2], key+".json")
}
