package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/config"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

func TestLocalStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	store := NewLocalStore(dir, "/uploads")

	url, err := store.Save(context.Background(), strings.NewReader("png-bytes"), "photo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.Equal(t, ".png", filepath.Ext(url))

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestLocalStoreNamesAreUnique(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "uploads/")

	a, err := store.Save(context.Background(), strings.NewReader("a"), "doc.pdf")
	require.NoError(t, err)
	b, err := store.Save(context.Background(), strings.NewReader("b"), "doc.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "/uploads/"))
}

func TestLocalStoreIgnoresDirectoriesInName(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "")

	url, err := store.Save(context.Background(), strings.NewReader("x"), "../../etc/passwd.txt")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".txt", filepath.Ext(entries[0].Name()))
	assert.Equal(t, "/uploads/"+entries[0].Name(), url)
}

func TestLocalStoreNoExtension(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	url, err := store.Save(context.Background(), strings.NewReader("x"), "README")
	require.NoError(t, err)
	assert.Equal(t, "", filepath.Ext(url))
}

func TestLocalStoreFailureIsStorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewLocalStore(filepath.Join(blocker, "uploads"), "/uploads")
	_, err := store.Save(context.Background(), strings.NewReader("x"), "a.png")

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStorage))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStoreRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	_, err := store.Save(context.Background(), failingReader{}, "a.png")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStorage))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalStore(t.TempDir(), "/uploads").Save(ctx, strings.NewReader("x"), "a.png")
	assert.True(t, apperrors.IsKind(err, apperrors.KindStorage))
}

func TestNewSelectsDriver(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Driver: config.StorageDriverLocal, LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
