package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsContentChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"op":"play"}`+"\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// Other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.jsonl"), []byte("x"), 0o644))
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"op":"pause"}`+"\n"), 0o644))
	select {
	case ev := <-w.Events():
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, ev.Path)
		assert.NotEmpty(t, ev.Operation)
	case <-time.After(3 * time.Second):
		t.Fatal("no event after rewriting the script")
	}
}

func TestWatcherClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed")
	}
}
