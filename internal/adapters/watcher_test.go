package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSWatcherAdapterReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("flask==3.0.3\n"), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	watcher := FSWatcherAdapter{Debounce: 50 * time.Millisecond}
	go func() {
		done <- watcher.Watch(ctx, path, func() {
			changes.Add(1)
			cancel()
		})
	}()

	// Give the watch a moment to attach before touching the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("flask==3.0.4\n"), 0o644))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
	assert.Equal(t, int32(1), changes.Load())
}

func TestFSWatcherAdapterIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("flask==3.0.3\n"), 0o644))

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	watcher := FSWatcherAdapter{Debounce: 50 * time.Millisecond}
	go func() {
		done <- watcher.Watch(ctx, path, func() {
			changes.Add(1)
		})
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x\n"), 0o644))

	require.NoError(t, <-done)
	assert.Equal(t, int32(0), changes.Load())
}

func TestFSWatcherAdapterMissingDir(t *testing.T) {
	watcher := NewFSWatcherAdapter()
	err := watcher.Watch(t.Context(), filepath.Join(t.TempDir(), "missing", "requirements.txt"), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot watch")
}

func TestFSWatcherAdapterStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("flask==3.0.3\n"), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- NewFSWatcherAdapter().Watch(ctx, path, func() {})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
