package hashing

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Digest is the hex-encoded SHA-1 identity of a resource's content.
// For directories it covers the relative path and content of every
// descendant, so two structurally identical trees share a digest no
// matter where they live in the filesystem.
type Digest string

// chunked reads bound peak memory regardless of resource size
const readChunkSize = 0x4000

// Resource computes the content digest of the file or directory at path.
func Resource(path string) (Digest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("inspecting resource: %w", err)
	}
	hasher := sha1.New()
	if info.IsDir() {
		err = hashTree(path, hasher)
	} else {
		err = hashFileContent(path, hasher)
	}
	if err != nil {
		return "", err
	}
	return Digest(hex.EncodeToString(hasher.Sum(nil))), nil
}

func hashFileContent(path string, hasher hash.Hash) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening resource content: %w", err)
	}
	defer file.Close()
	if _, err := io.CopyBuffer(hasher, file, make([]byte, readChunkSize)); err != nil {
		return fmt.Errorf("reading resource content (%s): %w", path, err)
	}
	return nil
}

// hashTree folds every descendant of root into the hasher, feeding the
// slash-separated relative path first and, for regular files, the content
// after it. Entries are visited in lexicographic relative-path order so the
// digest does not depend on filesystem enumeration order.
func hashTree(root string, hasher hash.Hash) error {
	type treeEntry struct {
		relativePath string
		isFile       bool
	}
	var entries []treeEntry
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, treeEntry{
			relativePath: filepath.ToSlash(relative),
			isFile:       d.Type().IsRegular(),
		})
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("traversing resource directory (%s): %w", root, walkErr)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].relativePath < entries[j].relativePath
	})
	for _, entry := range entries {
		hasher.Write([]byte(entry.relativePath))
		if entry.isFile {
			// a racing delete between enumeration and read surfaces here
			if err := hashFileContent(filepath.Join(root, filepath.FromSlash(entry.relativePath)), hasher); err != nil {
				return err
			}
		}
	}
	return nil
}
