package surface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_ReadAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.txt")
	require.NoError(t, os.WriteFile(path, []byte("Buy bread\nCall mum\n"), 0o600))
	f := NewFile(path)

	content, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "Buy bread\nCall mum\n", content)

	require.NoError(t, f.Clear())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFile_Missing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "missing.txt"))

	_, err := f.Read()
	assert.Error(t, err)
	assert.Error(t, f.Clear())
}
