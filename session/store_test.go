package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("mode", "builder"))
	v, ok := s.Get("mode")
	assert.True(t, ok)
	assert.Equal(t, "builder", v)

	require.NoError(t, s.Delete("mode"))
	_, ok = s.Get("mode")
	assert.False(t, ok)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("mode", "raw"))
	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Delete("theme"))

	// A second store instance sees the persisted state.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)

	v, ok := reloaded.Get("mode")
	assert.True(t, ok)
	assert.Equal(t, "raw", v)

	_, ok = reloaded.Get("theme")
	assert.False(t, ok)
}

func TestNewFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestNewFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[not: a: map"), 0o600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
