package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/hashing"
)

func TestUpdateCatalogsNewResource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	catalog := NewCatalog()
	catalog.DocumentTypes["pdf"] = DocumentType{Extension: "PDF"}

	resources := map[hashing.Digest]string{"abc123": path}
	require.NoError(t, catalog.Update(resources, KeepAllOrphans, nil))

	require.Len(t, catalog.Resources, 1)
	entry := catalog.Resources[0]
	assert.Equal(t, "report", entry.Title)
	require.NotNil(t, entry.DocumentType)
	assert.Equal(t, "pdf", *entry.DocumentType)
	assert.Equal(t, hashing.Digest("abc123"), entry.Checksum)
	assert.Equal(t, []hashing.Digest{"abc123"}, entry.HistoricalChecksums)

	// the file now carries its original checksum as name
	assert.NoFileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "abc123"))
}

func TestUpdateKeepsUnknownExtensionInTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.xyz")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	catalog := NewCatalog()
	require.NoError(t, catalog.Update(map[hashing.Digest]string{"abc123": path}, KeepAllOrphans, nil))

	require.Len(t, catalog.Resources, 1)
	assert.Equal(t, "notes.xyz", catalog.Resources[0].Title)
	assert.Nil(t, catalog.Resources[0].DocumentType)
}

func TestUpdateAppendsChangedChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123")
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0644))

	catalog := NewCatalog()
	catalog.Resources = append(catalog.Resources, Resource{
		Title:               "report",
		Authors:             []Name{},
		Tags:                []string{},
		Checksum:            "abc123",
		HistoricalChecksums: []hashing.Digest{"abc123"},
	})

	require.NoError(t, catalog.Update(map[hashing.Digest]string{"def456": path}, KeepAllOrphans, nil))

	require.Len(t, catalog.Resources, 1)
	entry := catalog.Resources[0]
	assert.Equal(t, hashing.Digest("def456"), entry.Checksum)
	assert.Equal(t, []hashing.Digest{"abc123", "def456"}, entry.HistoricalChecksums)
	assert.Equal(t, hashing.Digest("abc123"), entry.OriginalChecksum())

	// matched by name, so no rename takes place
	assert.FileExists(t, path)
}

func TestUpdateUnchangedResourceIsUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0644))

	catalog := NewCatalog()
	catalog.Resources = append(catalog.Resources, Resource{
		Title:               "report",
		Authors:             []Name{},
		Tags:                []string{},
		Checksum:            "abc123",
		HistoricalChecksums: []hashing.Digest{"abc123"},
	})

	require.NoError(t, catalog.Update(map[hashing.Digest]string{"abc123": path}, RemoveAllOrphans, nil))

	require.Len(t, catalog.Resources, 1)
	assert.Equal(t, []hashing.Digest{"abc123"}, catalog.Resources[0].HistoricalChecksums)
}

func TestUpdateResolvesOrphans(t *testing.T) {
	keepers := []string{"keep-me"}
	catalog := NewCatalog()
	for _, original := range []string{"keep-me", "remove-me"} {
		catalog.Resources = append(catalog.Resources, Resource{
			Title:               original,
			Authors:             []Name{},
			Tags:                []string{},
			Checksum:            hashing.Digest(original),
			HistoricalChecksums: []hashing.Digest{hashing.Digest(original)},
		})
	}

	var asked []string
	resolve := func(name string) (bool, error) {
		asked = append(asked, name)
		for _, keeper := range keepers {
			if name == keeper {
				return false, nil
			}
		}
		return true, nil
	}

	require.NoError(t, catalog.Update(map[hashing.Digest]string{}, resolve, nil))

	assert.ElementsMatch(t, []string{"keep-me", "remove-me"}, asked)
	require.Len(t, catalog.Resources, 1)
	assert.Equal(t, "keep-me", catalog.Resources[0].Title)
}

func TestUpdateDoesNotAskForBackedResources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	catalog := NewCatalog()
	catalog.Resources = append(catalog.Resources, Resource{
		Title:               "report",
		Authors:             []Name{},
		Tags:                []string{},
		Checksum:            "abc123",
		HistoricalChecksums: []hashing.Digest{"abc123"},
	})

	resolve := func(name string) (bool, error) {
		t.Fatalf("unexpected orphan decision requested for %s", name)
		return false, nil
	}
	require.NoError(t, catalog.Update(map[hashing.Digest]string{"abc123": path}, resolve, nil))
}

func TestUpdateSortsResult(t *testing.T) {
	dir := t.TempDir()
	pathB := filepath.Join(dir, "beta.txt")
	pathA := filepath.Join(dir, "alpha.txt")
	require.NoError(t, os.WriteFile(pathB, []byte("b"), 0644))
	require.NoError(t, os.WriteFile(pathA, []byte("a"), 0644))

	catalog := NewCatalog()
	resources := map[hashing.Digest]string{
		"bbb": pathB,
		"aaa": pathA,
	}
	require.NoError(t, catalog.Update(resources, KeepAllOrphans, nil))

	require.Len(t, catalog.Resources, 2)
	assert.Equal(t, "alpha.txt", catalog.Resources[0].Title)
	assert.Equal(t, "beta.txt", catalog.Resources[1].Title)
}

func TestUpdateRecoversDigestNamedUncatalogedFile(t *testing.T) {
	// a previous run may have renamed the file before persisting the catalog
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	catalog := NewCatalog()
	require.NoError(t, catalog.Update(map[hashing.Digest]string{"abc123": path}, KeepAllOrphans, nil))

	require.Len(t, catalog.Resources, 1)
	assert.Equal(t, "abc123", catalog.Resources[0].Title)
	assert.FileExists(t, path)
}
