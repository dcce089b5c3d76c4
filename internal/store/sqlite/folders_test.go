package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webvault/webvault-server/internal/store"
)

func TestCreateFolder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder, err := s.CreateFolder(ctx, "Research")
	require.NoError(t, err)
	assert.NotZero(t, folder.ID)
	assert.Equal(t, "Research", folder.Name)
	assert.False(t, folder.IsDeleted)

	retrieved, err := s.GetFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, folder.ID, retrieved.ID)
	assert.Equal(t, "Research", retrieved.Name)
	assert.Nil(t, retrieved.DeletedAt)
}

func TestCreateFolder_DuplicateName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.CreateFolder(ctx, "Research")
	require.NoError(t, err)

	_, err = s.CreateFolder(ctx, "Research")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateFolder_NameFreedBySoftDelete(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")

	_, err := s.SoftDeleteFolder(ctx, folder.ID)
	require.NoError(t, err)

	// The name is free again while the old folder sits in the recycle bin.
	replacement, err := s.CreateFolder(ctx, "Research")
	require.NoError(t, err)
	assert.NotEqual(t, folder.ID, replacement.ID)

	// Restoring the old folder would put two live folders on one name.
	err = s.RestoreFolder(ctx, folder.ID)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetFolder_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetFolder(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRenameFolder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Old Name")

	err := s.RenameFolder(ctx, folder.ID, "New Name")
	require.NoError(t, err)

	retrieved, err := s.GetFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", retrieved.Name)
}

func TestRenameFolder_ConflictWithLiveName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	mustFolder(t, s, "Taken")
	folder := mustFolder(t, s, "Original")

	err := s.RenameFolder(ctx, folder.ID, "Taken")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRenameFolder_DeletedFolderNotRenameable(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	_, err := s.SoftDeleteFolder(ctx, folder.ID)
	require.NoError(t, err)

	err = s.RenameFolder(ctx, folder.ID, "Renamed")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSoftDeleteFolder_CascadesToLivePages(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	pageA := mustPage(t, s, folder.ID, "a")
	pageB := mustPage(t, s, folder.ID, "b")
	pageC := mustPage(t, s, folder.ID, "c")

	// One page is already deleted; the cascade must not count it twice.
	require.NoError(t, s.SoftDeletePage(ctx, pageC.ID))

	affected, err := s.SoftDeleteFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	for _, id := range []int64{pageA.ID, pageB.ID, pageC.ID} {
		page, err := s.GetPage(ctx, id)
		require.NoError(t, err)
		assert.True(t, page.IsDeleted)
		assert.NotNil(t, page.DeletedAt)
	}
}

func TestSoftDeleteFolder_AlreadyDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	_, err := s.SoftDeleteFolder(ctx, folder.ID)
	require.NoError(t, err)

	_, err = s.SoftDeleteFolder(ctx, folder.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRestoreFolder_DoesNotRestorePages(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	page := mustPage(t, s, folder.ID, "a")

	_, err := s.SoftDeleteFolder(ctx, folder.ID)
	require.NoError(t, err)

	require.NoError(t, s.RestoreFolder(ctx, folder.ID))

	restored, err := s.GetFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	// The cascaded page stays in the recycle bin until restored individually.
	cascaded, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.True(t, cascaded.IsDeleted)
}

func TestRestoreFolder_NotDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	folder := mustFolder(t, s, "Research")

	err := s.RestoreFolder(context.Background(), folder.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestListFolders(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first := mustFolder(t, s, "First")
	second := mustFolder(t, s, "Second")
	third := mustFolder(t, s, "Third")

	_, err := s.SoftDeleteFolder(ctx, second.ID)
	require.NoError(t, err)

	active, err := s.ListActiveFolders(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, third.ID, active[1].ID)

	deleted, err := s.ListDeletedFolders(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, second.ID, deleted[0].ID)

	count, err := s.CountDeletedFolders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
