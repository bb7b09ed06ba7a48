package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "events.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("[]"), 0644))

	fw, err := NewFileWatcher([]string{watched})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(watched, []byte(`[{"id":"a"}]`), 0644))

	select {
	case ev := <-fw.Events():
		abs, _ := filepath.Abs(watched)
		got, _ := filepath.Abs(ev.Path)
		assert.Equal(t, abs, got)
		assert.NotEmpty(t, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for watched file")
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "gone", "events.json")})
	assert.Error(t, err)
}

func TestFileWatcherClose(t *testing.T) {
	fw, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "events.json")})
	require.NoError(t, err)

	assert.NoError(t, fw.Close())
}
