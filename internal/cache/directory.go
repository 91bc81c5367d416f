// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"slices"

	"github.com/oschwald/travis-build/internal/shell"
)

// DirectoryCache records directories to persist under a slug.
type DirectoryCache struct {
	slug string
	dirs []string
}

// NewDirectoryCache creates an empty cache named by slug.
func NewDirectoryCache(slug string) *DirectoryCache {
	return &DirectoryCache{slug: slug}
}

// Add registers dir with the cache and emits the directive creating it on the
// worker. Registering the same directory twice is a no-op.
func (c *DirectoryCache) Add(sh *shell.Builder, dir string) {
	if slices.Contains(c.dirs, dir) {
		return
	}
	c.dirs = append(c.dirs, dir)
	sh.Cmd("travis_cache_add "+dir, shell.WithTiming(false))
}

// Slug returns the cache key.
func (c *DirectoryCache) Slug() string {
	return c.slug
}

// Directories returns the registered directories in insertion order.
func (c *DirectoryCache) Directories() []string {
	return slices.Clone(c.dirs)
}
