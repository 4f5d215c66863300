package resource

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "geosite.srs")
	err := SafeWrite(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "SRS\x03")
		return err
	})
	require.NoError(t, err)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SRS\x03", string(buf))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSafeWriteFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geosite.srs")
	writeErr := errors.New("encode failed")

	err := SafeWrite(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "SRS")
		return writeErr
	})
	assert.ErrorIs(t, err, writeErr)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSafeWriteKeepsOldFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geosite.srs")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := SafeWrite(path, func(w io.Writer) error {
		return errors.New("boom")
	})
	assert.Error(t, err)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(buf))
}
