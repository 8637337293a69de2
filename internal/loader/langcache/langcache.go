// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package langcache provides the process-wide, lazily-initialized
`language_id → Language` mapping the loader layer consults to resolve
localized fields without a join on every hydration query, populated
once per process lifetime.

The cache is single-assignment and read-mostly: initialization runs once
through a [sync.Once], so the full language list is fetched a single time
and concurrent first callers wait for that one fetch.
*/
package langcache

import (
	"context"
	"sync"

	"github.com/harmonia-catalog/harmonia/internal/entity/language"
)

// Cache is a process-wide language lookup populated on first use.
type Cache struct {
	repo language.Repository

	once sync.Once
	mu   sync.RWMutex
	byID map[int]*language.Language
}

// New constructs a [Cache] bound to repo. The cache performs no I/O until
// the first [Cache.Get] or [Cache.Warm] call.
func New(repo language.Repository) *Cache {
	return &Cache{repo: repo}
}

// Warm forces population of the cache, useful for doing the one-time
// fetch at startup instead of on the first request.
func (c *Cache) Warm(ctx context.Context) error {
	var loadErr error
	c.once.Do(func() {
		loadErr = c.load(ctx)
	})
	return loadErr
}

// Get resolves id to its [language.Language], populating the cache on
// first call. A miss (id not present in the reference table) returns nil.
func (c *Cache) Get(ctx context.Context, id int) (*language.Language, error) {
	if err := c.Warm(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id], nil
}

func (c *Cache) load(ctx context.Context) error {
	langs, err := c.repo.ListLanguages(ctx)
	if err != nil {
		return err
	}

	byID := make(map[int]*language.Language, len(langs))
	for _, l := range langs {
		byID[l.ID] = l
	}

	c.mu.Lock()
	c.byID = byID
	c.mu.Unlock()
	return nil
}
