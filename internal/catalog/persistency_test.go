package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/hashing"
)

func TestLoadMissingFileYieldsEmptyCatalog(t *testing.T) {
	catalog, err := Load(filepath.Join(t.TempDir(), "catalog.json"))
	require.NoError(t, err)
	assert.NotNil(t, catalog.DocumentTypes)
	assert.NotNil(t, catalog.ContentTypes)
	assert.Empty(t, catalog.Resources)
}

func TestLoadEmptyFileYieldsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	catalog, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, catalog.Resources)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resources": 42}`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"documents": []}`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadRejectsEmptyChecksumHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"resources": [{"title": "ghost", "checksum": "abc123", "historical_checksums": []}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadRejectsChecksumHistoryMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"resources": [{"title": "drifted", "checksum": "abc123", "historical_checksums": ["def456"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	catalog := NewCatalog()
	catalog.DocumentTypes["pdf"] = DocumentType{
		Extension: "pdf",
		MIME:      &MediaType{Type: "application", Subtype: "pdf"},
	}
	catalog.ContentTypes["book"] = BibtexBook
	book := "book"
	catalog.Resources = append(catalog.Resources, Resource{
		Title:               "A Book",
		Authors:             []Name{},
		Tags:                []string{"reference"},
		ContentType:         &book,
		Checksum:            "abc123",
		HistoricalChecksums: []hashing.Digest{"abc123"},
	})
	require.NoError(t, catalog.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog, reloaded)
}

func TestSaveIsDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	catalog := NewCatalog()
	catalog.ContentTypes["b"] = BibtexBook
	catalog.ContentTypes["a"] = BibtexArticle

	require.NoError(t, catalog.Save(path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, catalog.Save(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
