// Package index maintains the locally cached wallpaper metadata index.
// Each selection scope (catalog, tag or search term) is cached as its own
// record file and replaced wholesale on refresh.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/errors"
)

// Record holds the metadata for a single wallpaper. Records are immutable
// once fetched; a refresh replaces the whole collection.
type Record struct {
	ID      string   `json:"id"`
	Catalog string   `json:"catalog"`
	Tags    []string `json:"tags"`
	Score   float64  `json:"score"`
}

// Index is the cached record collection for one scope.
type Index struct {
	Scope     string    `json:"scope"`
	FetchedAt time.Time `json:"fetched_at"`
	Records   []Record  `json:"records"`
}

// Query returns the indexed records.
func (i *Index) Query() []Record {
	return i.Records
}

// FetchFunc fetches the full record collection for a scope.
type FetchFunc func(ctx context.Context, scope string) ([]Record, error)

// Cache manages the per-scope index files on disk.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// NewCache creates an index cache rooted at dir.
func NewCache(dir string, logger *slog.Logger) *Cache {
	return &Cache{dir: filepath.Join(dir, constants.IndexCacheDir), logger: logger}
}

// Load reads the cached index for a scope. A missing or unparseable cache
// file reports errors.ErrNoIndex: the index can always be rebuilt with a
// refresh, so unlike judgments and history it is safe to treat as absent.
func (c *Cache) Load(scope string) (*Index, error) {
	data, err := os.ReadFile(c.path(scope))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrNoIndex
		}
		return nil, fmt.Errorf("failed to read index cache: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		c.logger.Warn("Index cache is unparseable, treating as absent", "scope", scope, "error", err)
		return nil, errors.ErrNoIndex
	}
	return &idx, nil
}

// Refresh fetches the record collection for a scope and atomically replaces
// the cached index. If the fetch fails the previous cache file is left
// untouched.
func (c *Cache) Refresh(ctx context.Context, scope string, fetch FetchFunc) (*Index, error) {
	records, err := fetch(ctx, scope)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Scope:     scope,
		FetchedAt: time.Now(),
		Records:   records,
	}

	if err := c.write(scope, idx); err != nil {
		return nil, err
	}

	c.logger.Info("Refreshed wallpaper index", "scope", scope, "records", len(records))
	return idx, nil
}

// write persists the index with write-to-temp-then-rename so a crash can
// never leave a half-written cache file behind.
func (c *Cache) write(scope string, idx *Index) error {
	if err := os.MkdirAll(c.dir, constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create index cache directory: %w", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".index-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close index file: %w", err)
	}

	// CreateTemp files are 0600; the cache should be a regular file.
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set index permissions: %w", err)
	}

	if err := os.Rename(tmpName, c.path(scope)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace index cache: %w", err)
	}
	return nil
}

// path maps a scope string like "catalog/city" to its cache file.
func (c *Cache) path(scope string) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(scope)
	return filepath.Join(c.dir, name+".json")
}
