package hashing

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.txt")
	writeFile(t, path, []byte("hello world"))

	digest, err := Resource(path)
	require.NoError(t, err)
	assert.Equal(t, Digest("2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"), digest)
}

func TestFileDigestSpansChunks(t *testing.T) {
	content := bytes.Repeat([]byte("x"), readChunkSize*2+17)
	path := filepath.Join(t.TempDir(), "big.bin")
	writeFile(t, path, content)

	digest, err := Resource(path)
	require.NoError(t, err)
	expected := sha1.Sum(content)
	assert.Equal(t, Digest(hex.EncodeToString(expected[:])), digest)
}

func TestEmptyFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	writeFile(t, path, nil)

	digest, err := Resource(path)
	require.NoError(t, err)
	assert.Equal(t, Digest("da39a3ee5e6b4b0d3255bfef95601890afd80709"), digest)
}

func TestDirectoryDigestIgnoresLocation(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "here", "pages")
	second := filepath.Join(base, "elsewhere", "pages-copy")
	for _, root := range []string{first, second} {
		writeFile(t, filepath.Join(root, "index.html"), []byte("<html></html>"))
		writeFile(t, filepath.Join(root, "assets", "style.css"), []byte("body {}"))
	}

	digestFirst, err := Resource(first)
	require.NoError(t, err)
	digestSecond, err := Resource(second)
	require.NoError(t, err)
	assert.Equal(t, digestFirst, digestSecond)
}

func TestDirectoryDigestCoversPathsAndContent(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "site")
	writeFile(t, filepath.Join(root, "index.html"), []byte("<html></html>"))
	writeFile(t, filepath.Join(root, "assets", "style.css"), []byte("body {}"))

	original, err := Resource(root)
	require.NoError(t, err)

	// same bytes under a different internal name must change the digest
	renamed := filepath.Join(base, "site-renamed")
	writeFile(t, filepath.Join(renamed, "index.html"), []byte("<html></html>"))
	writeFile(t, filepath.Join(renamed, "assets", "main.css"), []byte("body {}"))
	renamedDigest, err := Resource(renamed)
	require.NoError(t, err)
	assert.NotEqual(t, original, renamedDigest)

	// a content change must change the digest as well
	edited := filepath.Join(base, "site-edited")
	writeFile(t, filepath.Join(edited, "index.html"), []byte("<html>!</html>"))
	writeFile(t, filepath.Join(edited, "assets", "style.css"), []byte("body {}"))
	editedDigest, err := Resource(edited)
	require.NoError(t, err)
	assert.NotEqual(t, original, editedDigest)
}

func TestDirectoryDigestStableAcrossRuns(t *testing.T) {
	root := filepath.Join(t.TempDir(), "bundle")
	writeFile(t, filepath.Join(root, "b.txt"), []byte("second"))
	writeFile(t, filepath.Join(root, "a.txt"), []byte("first"))
	writeFile(t, filepath.Join(root, "nested", "c.txt"), []byte("third"))

	first, err := Resource(root)
	require.NoError(t, err)
	second, err := Resource(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMissingResource(t *testing.T) {
	_, err := Resource(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}
