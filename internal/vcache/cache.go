package vcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"librarian/internal/hashing"
)

// ErrMalformed indicates that a cache file exists but does not parse as the
// expected filename-to-entry object.
var ErrMalformed = errors.New("malformed cache file")

const workInProgressFileSuffix = ".wip"

// Entry records when a resource's digest was last verified against its
// content. It is only trustworthy while the resource's modification time does
// not exceed LastVerified.
type Entry struct {
	LastVerified int64  `json:"last_verified"`
	Checksum     string `json:"checksum"`
}

// HashFunc computes the content digest of the resource at path.
type HashFunc func(path string) (hashing.Digest, error)

// Cache is the verification cache: a persisted mapping from a resource's
// on-disk name to its last verified digest. It exists purely to skip
// re-hashing of unchanged resources between runs.
type Cache struct {
	entries  map[string]Entry
	disabled bool
	hash     HashFunc
	log      *zap.Logger
}

// Load reads the cache file at path. A missing or empty file yields an empty
// cache; the file itself is only (re)written by Save.
func Load(path string, disabled bool, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := &Cache{
		entries:  make(map[string]Entry),
		disabled: disabled,
		hash:     hashing.Resource,
		log:      logger,
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cache, nil
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	if len(content) == 0 {
		return cache, nil
	}
	if err := json.Unmarshal(content, &cache.entries); err != nil {
		return nil, fmt.Errorf("%w (%s): %s", ErrMalformed, path, err)
	}
	return cache, nil
}

// Get returns the entry stored for the given resource name.
func (c *Cache) Get(name string) (Entry, bool) {
	entry, ok := c.entries[name]
	return entry, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// LookupOrCompute returns the digest of the resource at path, reusing the
// cached digest for name when its verification time covers the resource's
// modification time. On a recompute the entry is stored under name if the
// resource is already cataloged, and under the digest itself otherwise: a
// brand-new resource is about to be renamed to its digest, so its current
// name would be a dead key by the next run. The key charged is returned
// alongside the digest.
func (c *Cache) LookupOrCompute(name string, path string, modified time.Time, now time.Time, cataloged bool) (hashing.Digest, string, error) {
	if !c.disabled {
		if entry, ok := c.entries[name]; ok && modified.Unix() <= entry.LastVerified {
			c.log.Debug("cache hit, skipping hash",
				zap.String("name", name),
				zap.String("checksum", entry.Checksum))
			return hashing.Digest(entry.Checksum), name, nil
		}
	}

	digest, err := c.hash(path)
	if err != nil {
		return "", "", err
	}
	key := name
	if !cataloged {
		key = string(digest)
	}
	c.entries[key] = Entry{LastVerified: now.Unix(), Checksum: string(digest)}
	c.log.Debug("verified resource checksum",
		zap.String("name", name),
		zap.String("cache_key", key),
		zap.String("checksum", string(digest)))
	return digest, key, nil
}

// Prune drops every entry whose key is not present in seen. Keys that
// disappear this way belonged to resources deleted since the last run.
func (c *Cache) Prune(seen map[string]bool) {
	for key := range c.entries {
		if !seen[key] {
			c.log.Debug("pruning orphaned cache entry", zap.String("name", key))
			delete(c.entries, key)
		}
	}
}

// Save rewrites the cache file completely. Keys are emitted in sorted order
// so consecutive runs without changes produce identical bytes.
func (c *Cache) Save(path string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("saving cache failed: %w", err)
		}
	}()

	content, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	tempPath := path + workInProgressFileSuffix
	if err = os.WriteFile(tempPath, append(content, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}
