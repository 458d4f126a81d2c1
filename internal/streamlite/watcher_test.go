package streamlite

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("Title\n"), 0644))

	var calls atomic.Int32
	fired := make(chan struct{}, 10)
	w := NewFileWatcher(path, 50*time.Millisecond, func() error {
		calls.Add(1)
		fired <- struct{}{}
		return nil
	}, zerolog.Nop())

	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()
	assert.False(t, w.StartedAt().IsZero())

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("Title\nrow\n"), 0644))
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("onChange was not called")
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.csv")

	var calls atomic.Int32
	w := NewFileWatcher(path, 20*time.Millisecond, func() error {
		calls.Add(1)
		return nil
	}, zerolog.Nop())

	require.NoError(t, w.Start())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, w.Stop())

	assert.Equal(t, int32(0), calls.Load())
}

func TestFileWatcherSeesRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	fired := make(chan struct{}, 10)
	w := NewFileWatcher(path, 20*time.Millisecond, func() error {
		fired <- struct{}{}
		return errors.New("handler errors are logged, not fatal")
	}, zerolog.Nop())
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	tmp := filepath.Join(dir, "books.csv.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("new\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("onChange was not called after rename")
	}
}

func TestFileWatcherStopIsIdempotent(t *testing.T) {
	w := NewFileWatcher(filepath.Join(t.TempDir(), "books.csv"), 0, func() error { return nil }, zerolog.Nop())
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestFileWatcherStartMissingDir(t *testing.T) {
	w := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "books.csv"), 0, func() error { return nil }, zerolog.Nop())
	assert.Error(t, w.Start())
}
