package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocalFilesFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "readme.md", "binary.exe", "doc.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644))
	}
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.txt"), []byte("deep"), 0o644))

	files, err := LoadLocalFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	assert.ElementsMatch(t, []string{"notes.txt", "readme.md", "doc.pdf", "deep.txt"}, names)
}

func TestLoadLocalDocumentsExtractsText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world"), 0o644))

	docs, err := LoadLocalDocuments(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.txt", docs[0].Name)
	assert.Equal(t, OriginLocal, docs[0].Origin)
	assert.Equal(t, "hello world", docs[0].Text)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00}, 0o644))

	_, err := ExtractText(path)
	assert.Error(t, err)
}
