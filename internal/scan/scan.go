package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"librarian/internal/hashing"
	"librarian/internal/vcache"
)

// Snapshot maps each distinct content digest found in the resources
// directory to the path holding it. Built fresh every run, never persisted.
type Snapshot map[hashing.Digest]string

// Directory enumerates the immediate children of the resources directory and
// digests each one through the cache. Directories are atomic resources:
// hashed recursively, never descended into for separate cataloging. When two
// children carry identical content the later-encountered one is deleted on
// the spot and only the first enters the snapshot.
//
// The returned set holds every cache key that is still backed by a resource
// and is meant to be passed to the cache's Prune.
func Directory(dir string, cache *vcache.Cache, cataloged map[string]bool, logger *zap.Logger) (Snapshot, map[string]bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading resources directory: %w", err)
	}

	snapshot := make(Snapshot, len(entries))
	seen := make(map[string]bool, len(entries))
	now := time.Now()

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		info, err := entry.Info()
		if err != nil {
			return nil, nil, fmt.Errorf("inspecting resource %s: %w", path, err)
		}

		digest, key, err := cache.LookupOrCompute(name, path, info.ModTime(), now, cataloged[name])
		if err != nil {
			return nil, nil, err
		}
		seen[name] = true
		seen[key] = true

		if existing, duplicate := snapshot[digest]; duplicate {
			logger.Info("removing duplicate resource",
				zap.String("path", path),
				zap.String("duplicate_of", existing),
				zap.String("checksum", string(digest)))
			if err := remove(path, entry.IsDir()); err != nil {
				return nil, nil, err
			}
			continue
		}
		snapshot[digest] = path
	}

	return snapshot, seen, nil
}

func remove(path string, isDir bool) error {
	var err error
	if isDir {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("removing duplicate resource %s: %w", path, err)
	}
	return nil
}
