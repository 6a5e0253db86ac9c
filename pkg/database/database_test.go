package database

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDatabase_NewAndClose(t *testing.T) {
	db, err := New(WithPath(":memory:"), WithLogger(discardLogger()))
	require.NoError(t, err)

	conn, err := db.Get()
	require.NoError(t, err)
	require.NoError(t, conn.Exec("SELECT 1").Error)
	require.NoError(t, db.Close())
}

func TestDatabase_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "bitfolio.db")

	db, err := New(WithPath(path), WithLogger(discardLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, path, db.Path())
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDatabase_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	db, err := New(WithPath(""), WithLogger(discardLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, DefaultPath, db.Path())
	_, err = os.Stat(DefaultPath)
	assert.NoError(t, err)
}

func TestDatabase_DirectoryIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := New(WithPath(filepath.Join(blocker, "bitfolio.db")), WithLogger(discardLogger()))
	assert.Error(t, err)
}

func TestDatabase_NilLogger(t *testing.T) {
	_, err := New(WithLogger(nil))
	assert.Error(t, err)
}

func TestDatabase_GetUninitialized(t *testing.T) {
	var db Database
	_, err := db.Get()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, db.Close())
}
