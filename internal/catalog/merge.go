package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"librarian/internal/hashing"
)

// ResolveOrphan decides whether a cataloged resource that no longer has a
// backing file should be removed from the catalog. The name passed is the
// resource's original checksum.
type ResolveOrphan func(name string) (remove bool, err error)

// KeepAllOrphans retains every orphaned catalog entry.
func KeepAllOrphans(string) (bool, error) { return false, nil }

// RemoveAllOrphans drops every orphaned catalog entry.
func RemoveAllOrphans(string) (bool, error) { return true, nil }

// Update merges the scanned resources (digest to path) into the catalog:
//
//  1. A resource whose filename equals a cataloged original checksum is that
//     catalog entry; a changed digest is appended to its history.
//  2. A digest with no matching entry is new content: a catalog entry is
//     created with defaulted metadata and the file is renamed to its digest.
//  3. Entries left unmatched have lost their backing file and are resolved
//     by the injected orphan decision.
//
// The surviving resources are re-sorted into the catalog's total order.
// Any filesystem error aborts the merge and is returned to the caller.
func (c *Catalog) Update(resources map[hashing.Digest]string, resolveOrphan ResolveOrphan, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	matched := make(map[hashing.Digest]*Resource, len(c.Resources))
	orphaned := make(map[hashing.Digest]bool, len(c.Resources))
	for i := range c.Resources {
		original := c.Resources[i].OriginalChecksum()
		matched[original] = &c.Resources[i]
		orphaned[original] = true
	}

	// extension (lower-cased) to document type name, for metadata defaulting
	extensionTypes := make(map[string]string, len(c.DocumentTypes))
	for name, documentType := range c.DocumentTypes {
		extensionTypes[strings.ToLower(documentType.Extension)] = name
	}

	digests := make([]hashing.Digest, 0, len(resources))
	for digest := range resources {
		digests = append(digests, digest)
	}
	sort.Slice(digests, func(i, j int) bool { return digests[i] < digests[j] })

	var created []Resource
	for _, digest := range digests {
		path := resources[digest]
		name := filepath.Base(path)

		if entry, cataloged := matched[hashing.Digest(name)]; cataloged {
			if entry.Checksum != digest {
				entry.HistoricalChecksums = append(entry.HistoricalChecksums, digest)
				entry.Checksum = digest
				logger.Info("resource content changed",
					zap.String("resource", name),
					zap.String("checksum", string(digest)))
			}
			delete(orphaned, hashing.Digest(name))
			continue
		}

		resource := newResource(name, digest, extensionTypes)
		renamed := filepath.Join(filepath.Dir(path), string(digest))
		if renamed != path {
			if err := os.Rename(path, renamed); err != nil {
				return fmt.Errorf("renaming new resource %s: %w", path, err)
			}
		}
		logger.Info("cataloged new resource",
			zap.String("title", resource.Title),
			zap.String("checksum", string(digest)))
		created = append(created, resource)
	}

	survivors := make([]Resource, 0, len(c.Resources)+len(created))
	for i := range c.Resources {
		resource := c.Resources[i]
		if orphaned[resource.OriginalChecksum()] {
			remove, err := resolveOrphan(string(resource.OriginalChecksum()))
			if err != nil {
				return err
			}
			if remove {
				logger.Info("removed orphaned catalog entry",
					zap.String("title", resource.Title),
					zap.String("original_checksum", string(resource.OriginalChecksum())))
				continue
			}
		}
		survivors = append(survivors, resource)
	}
	c.Resources = append(survivors, created...)

	sortResources(c.Resources)
	return nil
}

// newResource initializes a catalog entry for first-seen content. The title
// defaults to the filename; if the extension maps to a known document type
// the extension is stripped from the title and the type recorded.
func newResource(name string, digest hashing.Digest, extensionTypes map[string]string) Resource {
	title := name
	var documentType *string
	if extension := strings.TrimPrefix(filepath.Ext(name), "."); extension != "" {
		if typeName, known := extensionTypes[strings.ToLower(extension)]; known {
			documentType = &typeName
			title = strings.TrimSuffix(name, filepath.Ext(name))
		}
	}
	return Resource{
		Title:               title,
		Authors:             []Name{},
		Tags:                []string{},
		DocumentType:        documentType,
		Checksum:            digest,
		HistoricalChecksums: []hashing.Digest{digest},
	}
}
