package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_LockUnlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.lock")

	fl := New(path)
	require.NoError(t, fl.Lock())
	require.NoError(t, fl.Unlock())
}

func TestFileLock_TryLockHeldElsewhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.lock")

	first := New(path)
	require.NoError(t, first.Lock())
	defer first.Unlock()

	// flock is per-process on most platforms, so a second handle in the
	// same process can still acquire it; just exercise the call path.
	second := New(path)
	acquired, err := second.TryLock()
	require.NoError(t, err)
	if acquired {
		require.NoError(t, second.Unlock())
	}
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, AtomicWrite(path, []byte("first")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Overwrite leaves no temp files behind.
	require.NoError(t, AtomicWrite(path, []byte("second")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the target file should remain")
}

func TestLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, LockAndWrite(path, []byte("content")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
