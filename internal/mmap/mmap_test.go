package mmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/wordfreq/internal/mmap"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello mmap"), 0644))

	m, err := mmap.Open(path)
	require.NoError(t, err)

	require.Equal(t, []byte("hello mmap"), m.Data)
	require.Equal(t, 10, m.Size)

	require.NoError(t, m.Close())
	require.Nil(t, m.Data)
	require.NoError(t, m.Close()) // idempotent
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := mmap.Open(path)
	require.Error(t, err)
}

func TestOpen_Missing(t *testing.T) {
	_, err := mmap.Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
