// Package cache stores downloaded colour sources on disk so repeated runs
// over the same URLs do not refetch them.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Cache.
type Options struct {
	// Dir is the directory where sources are cached.
	// If empty, defaults to DefaultDir.
	Dir string

	// Refresh refetches URLs even when a cached copy exists.
	Refresh bool
}

// Cache is a Fetcher that keeps a copy of every fetched body in a directory.
type Cache struct {
	dir     string
	refresh bool
	next    Fetcher
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "palex", "sources"), nil
	}
	return filepath.Join(cacheDir, "palex", "sources"), nil
}

// New returns a Cache in front of next.
func New(next Fetcher, opts Options) (*Cache, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, refresh: opts.Refresh, next: next}, nil
}

// Key returns the cache filename for url: a hash of the URL plus its
// extensions, so compressed palettes keep both suffixes.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", hash[:16])

	base := url
	if idx := strings.IndexAny(base, "?#"); idx != -1 {
		base = base[:idx]
	}
	base = base[strings.LastIndexByte(base, '/')+1:]
	if idx := strings.IndexByte(base, '.'); idx != -1 && len(base)-idx <= 12 {
		name += base[idx:]
	}
	return name
}

// Path returns where url is cached.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, Key(url))
}

// Fetch returns the cached body of url, fetching and storing it on a miss.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	path := c.Path(url)

	if !c.refresh {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}

	data, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(c.dir, ".fetch-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to store cache file: %w", err)
	}

	return data, nil
}
