package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isEventFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".yaml", ".yml":
		return true
	}
	return false
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	}
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir(), isEventFile).Scan()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	_, err := NewFileScanner(filepath.Join(t.TempDir(), "missing"), isEventFile).Scan()
	assert.Error(t, err)
}

func TestFileScannerScanMixedFileTypes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.jsonl", "a.json", "notes.txt", "plan.YAML", "image.png")

	files, err := NewFileScanner(dir, isEventFile).Scan()

	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"a.json", "b.jsonl", "plan.YAML"}, names)
}

func TestFileScannerScanNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2024/q1/events.json", "2024/q2/events.yml", "top.jsonl")

	files, err := NewFileScanner(dir, isEventFile).Scan()

	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.True(t, strings.HasSuffix(files[0], filepath.Join("2024", "q1", "events.json")))
}

func TestFileScannerNilMatchKeepsEverything(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.json")

	files, err := NewFileScanner(dir, nil).Scan()

	require.NoError(t, err)
	assert.Len(t, files, 2)
}
