package guardrail

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]*Check{}
)

// Register adds a check to the global registry, keyed by its metadata id.
// Called from init() in each check file.
func Register(c *Check) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[c.Meta.ID]; exists {
		panic(fmt.Sprintf("guardrail: duplicate check registration: %s", c.Meta.ID))
	}
	registry[c.Meta.ID] = c
}

// Get returns the check registered under id.
func Get(id string) (*Check, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("guardrail: unknown check: %s", id)
	}
	return c, nil
}

// All returns all registered checks sorted by id.
func All() []*Check {
	registryMu.RLock()
	defer registryMu.RUnlock()
	checks := make([]*Check, 0, len(registry))
	for _, c := range registry {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].Meta.ID < checks[j].Meta.ID })
	return checks
}
