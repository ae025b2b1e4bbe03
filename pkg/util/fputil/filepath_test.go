package fputil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIsWritableDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, IsWritableDir(dir))

	_, err := os.Stat(filepath.Join(dir, touchFileName))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsWritableDir_NotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte{'a'}, 0600))

	assert.Error(t, IsWritableDir(file))
	assert.Error(t, IsWritableDir(filepath.Join(dir, "missing")))
}
