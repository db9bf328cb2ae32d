package workers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnceCopiesSnapshot(t *testing.T) {
	src := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"battles":[]}`), 0o644))
	dir := t.TempDir()

	w := NewBackupWorker(src, dir)
	require.NoError(t, w.RunOnce())

	matches, err := filepath.Glob(filepath.Join(dir, "db-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, `{"battles":[]}`, string(data))
}

func TestRunOnceMissingSourceIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := NewBackupWorker(filepath.Join(t.TempDir(), "db.json"), dir)

	require.NoError(t, w.RunOnce())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPruneKeepsMostRecent(t *testing.T) {
	src := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"battles":[]}`), 0o644))
	dir := t.TempDir()

	w := NewBackupWorker(src, dir)
	w.Keep = 3

	for i := 0; i < 6; i++ {
		require.NoError(t, w.RunOnce())
		time.Sleep(2 * time.Millisecond) // snapshot names are millisecond-stamped
	}

	matches, err := filepath.Glob(filepath.Join(dir, "db-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}
