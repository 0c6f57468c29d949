package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMalformed indicates that a catalog file exists but does not parse
// against the expected shape.
var ErrMalformed = errors.New("malformed catalog file")

const workInProgressFileSuffix = ".wip"

// Load reads the catalog file at path. A missing or empty file is treated as
// a fresh library and yields an empty catalog; anything else must parse
// exactly against the catalog schema.
func Load(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewCatalog(), nil
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	if len(content) == 0 {
		return NewCatalog(), nil
	}

	catalog := NewCatalog()
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(catalog); err != nil {
		return nil, fmt.Errorf("%w (%s): %s", ErrMalformed, path, err)
	}
	if err := validateResources(catalog.Resources); err != nil {
		return nil, fmt.Errorf("%w (%s): %s", ErrMalformed, path, err)
	}
	if catalog.DocumentTypes == nil {
		catalog.DocumentTypes = make(map[string]DocumentType)
	}
	if catalog.ContentTypes == nil {
		catalog.ContentTypes = make(map[string]BibtexType)
	}
	if catalog.Resources == nil {
		catalog.Resources = []Resource{}
	}
	return catalog, nil
}

// validateResources enforces the checksum invariants the rest of the catalog
// relies on: every resource carries at least its original checksum, and the
// current checksum is the last historical one.
func validateResources(resources []Resource) error {
	for i := range resources {
		resource := &resources[i]
		if len(resource.HistoricalChecksums) == 0 {
			return fmt.Errorf("resource %q has no historical checksums", resource.Title)
		}
		if last := resource.HistoricalChecksums[len(resource.HistoricalChecksums)-1]; resource.Checksum != last {
			return fmt.Errorf("resource %q checksum %s does not match last historical checksum %s",
				resource.Title, resource.Checksum, last)
		}
	}
	return nil
}

// Save rewrites the catalog file completely. Map keys marshal in sorted
// order, so an unchanged catalog produces identical bytes on every save.
func (c *Catalog) Save(path string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("saving catalog failed: %w", err)
		}
	}()

	content, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tempPath := path + workInProgressFileSuffix
	if err = os.WriteFile(tempPath, append(content, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}
