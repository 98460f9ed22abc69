package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get(KeyTheme)
	assert.False(t, ok)

	// A missing file must not be created by reads alone
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(KeyTheme, "light"))

	v, ok := s.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	require.NoError(t, s.Close())

	// Reopen and verify persistence
	s2, err := NewFileStore(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok = s2.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestFileStore_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(KeyTheme, "light"))
	require.NoError(t, s.Set(KeyTheme, "dark"))

	v, _ := s.Get(KeyTheme)
	assert.Equal(t, "dark", v)
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(KeyTheme, "light"))
	require.NoError(t, s.Delete(KeyTheme))

	_, ok := s.Get(KeyTheme)
	assert.False(t, ok)

	// Deleting an absent key is fine
	require.NoError(t, s.Delete("nonexistent"))
}

func TestFileStore_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", "v"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("not json ["), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStore_SetAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Set(KeyTheme, "light")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	_, ok := s.Get(KeyTheme)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyTheme, "light"))
	v, ok := s.Get(KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Delete(KeyTheme))
	_, ok = s.Get(KeyTheme)
	assert.False(t, ok)
}
