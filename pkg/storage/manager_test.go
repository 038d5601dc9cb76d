package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "album", "nested")

		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, m.Dir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("reuses existing directory", func(t *testing.T) {
		dir := t.TempDir()

		_, err := NewManager(dir)
		require.NoError(t, err)
		_, err = NewManager(dir)
		require.NoError(t, err)
	})

	t.Run("records existing base names without extensions", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "0000-sunset.jpg"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "0001-beach.mp4"), []byte("x"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0755))

		m, err := NewManager(dir)
		require.NoError(t, err)

		existing := m.Existing()
		assert.ElementsMatch(t, []string{"0000-sunset", "0001-beach"}, existing)
	})
}

func TestSaveStream(t *testing.T) {
	t.Run("writes stream contents", func(t *testing.T) {
		dir := t.TempDir()
		m, err := NewManager(dir)
		require.NoError(t, err)

		err = m.SaveStream(strings.NewReader("image bytes"), "photo.jpg")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "photo.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "image bytes", string(data))
	})

	t.Run("leaves no temporary file behind", func(t *testing.T) {
		dir := t.TempDir()
		m, err := NewManager(dir)
		require.NoError(t, err)

		require.NoError(t, m.SaveStream(strings.NewReader("data"), "photo.jpg"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "photo.jpg", entries[0].Name())
	})

	t.Run("failed read removes the temporary file", func(t *testing.T) {
		dir := t.TempDir()
		m, err := NewManager(dir)
		require.NoError(t, err)

		err = m.SaveStream(failingReader{}, "photo.jpg")
		assert.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestWriteTextFile(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	err = m.WriteTextFile("album-metadata.txt", "Title: Test\n")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "album-metadata.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Title: Test\n", string(data))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}
