package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/types"
)

func newTestLoader() *LoaderService {
	return NewLoaderService(&config.Config{CSVSourceColumn: "Job Title"}, zap.NewNop())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingDirectory(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrDataDirNotFound)
}

func TestLoadPathIsNotADirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.txt", "content")
	loader := newTestLoader()

	_, err := loader.Load(path)
	assert.ErrorIs(t, err, ErrDataDirNotFound)
}

func TestLoadEmptyDirectory(t *testing.T) {
	loader := newTestLoader()

	docs, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadIgnoresUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "# not a document")
	writeFile(t, dir, "data.json", `{"k":"v"}`)
	loader := newTestLoader()

	docs, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "  Some plain text notes.\n")
	loader := newTestLoader()

	docs, err := loader.Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Some plain text notes.", docs[0].Content)
	assert.Equal(t, path, docs[0].Metadata[types.MetaSource])
}

func TestLoadCSVRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jobs.csv",
		"Job Title,Description\nEngineer,Builds things\nAnalyst,Reads things\n")
	loader := newTestLoader()

	docs, err := loader.Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Job Title: Engineer\nDescription: Builds things", docs[0].Content)
	assert.Equal(t, "Engineer", docs[0].Metadata[types.MetaSource])
	assert.Equal(t, "0", docs[0].Metadata[types.MetaRow])
	assert.Equal(t, "Analyst", docs[1].Metadata[types.MetaSource])
	assert.Equal(t, "1", docs[1].Metadata[types.MetaRow])
}

func TestLoadCSVWithoutSourceColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.csv", "Name,Age\nAda,36\n")
	loader := newTestLoader()

	docs, err := loader.Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, path, docs[0].Metadata[types.MetaSource], "source falls back to the file path")
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.csv", "Job Title,Description\n")
	loader := newTestLoader()

	docs, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.csv", "a,b\n\"unterminated quote\n")
	writeFile(t, dir, "fine.txt", "still loads")
	loader := newTestLoader()

	docs, err := loader.Load(dir)
	require.NoError(t, err, "one broken file must not abort the batch")
	require.Len(t, docs, 1)
	assert.Equal(t, "still loads", docs[0].Content)
}
