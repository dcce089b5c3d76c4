package blob

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(t.TempDir(), logger)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
	}

	return store, cleanup
}

func TestPutGet(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	key, err := s.Put(ctx, []byte("<html>archived</html>"))
	require.NoError(t, err)
	require.NotEmpty(t, key)

	data, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("<html>archived</html>"), data)
}

func TestPut_FreshKeys(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Identical content still gets distinct keys; Put never overwrites.
	first, err := s.Put(ctx, []byte("same"))
	require.NoError(t, err)
	second, err := s.Put(ctx, []byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGet_Missing(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	data, found, err := s.Get(ctx, "no-such-key")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)

	// Empty keys report absence without touching the database.
	_, found, err = s.Get(ctx, "")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	key, err := s.Put(ctx, []byte("doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, key))

	_, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again, or deleting unknown and empty keys, stays a no-op.
	require.NoError(t, s.Delete(ctx, key, "never-existed", ""))
}

func TestDataURI(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	key, err := s.Put(ctx, []byte{0x89, 0x50, 0x4E, 0x47})
	require.NoError(t, err)

	uri, found, err := s.DataURI(ctx, key, "image/png")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, found, err = s.DataURI(ctx, "missing", "image/png")
	require.NoError(t, err)
	assert.False(t, found)
}
