package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

func TestCreatePage(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")

	page := &domain.Page{
		Title:                 "Go Proverbs",
		Description:           "A talk",
		PageURL:               "https://go-proverbs.github.io/",
		ContentKey:            "content-key",
		ScreenshotKey:         "screenshot-key",
		ScreenshotPlaceholder: "LKO2?U%2Tw=w",
		FolderID:              folder.ID,
		IsShowcased:           true,
	}
	require.NoError(t, s.CreatePage(ctx, page))
	require.NotZero(t, page.ID)

	retrieved, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, page.Title, retrieved.Title)
	assert.Equal(t, page.Description, retrieved.Description)
	assert.Equal(t, page.PageURL, retrieved.PageURL)
	assert.Equal(t, page.ContentKey, retrieved.ContentKey)
	assert.Equal(t, page.ScreenshotKey, retrieved.ScreenshotKey)
	assert.Equal(t, page.ScreenshotPlaceholder, retrieved.ScreenshotPlaceholder)
	assert.Equal(t, folder.ID, retrieved.FolderID)
	assert.True(t, retrieved.IsShowcased)
	assert.False(t, retrieved.IsDeleted)
}

func TestGetPage_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetPage(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdatePage(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	other := mustFolder(t, s, "Archive")
	page := mustPage(t, s, folder.ID, "original")

	page.Title = "updated"
	page.Description = "new description"
	page.PageURL = "https://example.com/updated"
	page.FolderID = other.ID
	page.IsShowcased = true
	require.NoError(t, s.UpdatePage(ctx, page))

	retrieved, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", retrieved.Title)
	assert.Equal(t, "new description", retrieved.Description)
	assert.Equal(t, "https://example.com/updated", retrieved.PageURL)
	assert.Equal(t, other.ID, retrieved.FolderID)
	assert.True(t, retrieved.IsShowcased)

	// Blob keys never change through update.
	assert.Equal(t, page.ContentKey, retrieved.ContentKey)
}

func TestUpdatePage_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	folder := mustFolder(t, s, "Research")

	err := s.UpdatePage(context.Background(), &domain.Page{ID: 999, FolderID: folder.ID, Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	page := mustPage(t, s, folder.ID, "a")

	before, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)

	require.NoError(t, s.SoftDeletePage(ctx, page.ID))

	deleted, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.NotNil(t, deleted.DeletedAt)

	require.NoError(t, s.RestorePage(ctx, page.ID))

	after, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.False(t, after.IsDeleted)
	assert.Nil(t, after.DeletedAt)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.ContentKey, after.ContentKey)
	assert.Equal(t, before.FolderID, after.FolderID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestSoftDeletePage_AlreadyDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	page := mustPage(t, s, folder.ID, "a")

	require.NoError(t, s.SoftDeletePage(ctx, page.ID))
	assert.ErrorIs(t, s.SoftDeletePage(ctx, page.ID), store.ErrNotFound)
}

func TestRestorePage_NotDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	folder := mustFolder(t, s, "Research")
	page := mustPage(t, s, folder.ID, "a")

	assert.ErrorIs(t, s.RestorePage(context.Background(), page.ID), store.ErrNotFound)
}

func TestListPages_Pagination(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		mustPage(t, s, folder.ID, title)
	}

	result, err := s.ListPages(ctx, domain.PageFilter{}, store.PageParams{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Size)

	last, err := s.ListPages(ctx, domain.PageFilter{}, store.PageParams{Page: 3, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, last.Total)
	assert.Len(t, last.Items, 1)
}

func TestListPages_WindowOrdering(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")

	// 25 pages with strictly increasing creation times: ids[i] was archived
	// i minutes after ids[0], so newest-first order is ids reversed.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]int64, 25)
	for i := range ids {
		page := mustPage(t, s, folder.ID, fmt.Sprintf("page-%02d", i))
		_, err := s.db.ExecContext(ctx,
			`UPDATE pages SET created_at = ? WHERE id = ?`,
			formatTime(base.Add(time.Duration(i)*time.Minute)), page.ID)
		require.NoError(t, err)
		ids[i] = page.ID
	}

	result, err := s.ListPages(ctx, domain.PageFilter{}, store.PageParams{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, result.Total)
	require.Len(t, result.Items, 10)

	// Page 2 of 10 over 25 holds the 11th through 20th newest.
	want := make([]int64, 0, 10)
	for i := 14; i >= 5; i-- {
		want = append(want, ids[i])
	}
	got := make([]int64, 0, 10)
	for _, p := range result.Items {
		got = append(got, p.ID)
	}
	assert.Equal(t, want, got)
}

func TestListPages_FolderFilter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	research := mustFolder(t, s, "Research")
	archive := mustFolder(t, s, "Archive")
	mustPage(t, s, research.ID, "a")
	mustPage(t, s, research.ID, "b")
	mustPage(t, s, archive.ID, "c")

	result, err := s.ListPages(ctx, domain.PageFilter{FolderID: research.ID}, store.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestListPages_KeywordFilter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	mustPage(t, s, folder.ID, "go concurrency patterns")
	mustPage(t, s, folder.ID, "advanced go tooling")
	mustPage(t, s, folder.ID, "rust ownership")

	// Substring match.
	result, err := s.ListPages(ctx, domain.PageFilter{Keyword: "go"}, store.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	// Prefix match only hits titles starting with the keyword.
	result, err = s.ListPages(ctx, domain.PageFilter{Keyword: "go", Prefix: true}, store.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "go concurrency patterns", result.Items[0].Title)
}

func TestListPages_TagFilterSkipsTombstones(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	bound := mustPage(t, s, folder.ID, "bound")
	unbound := mustPage(t, s, folder.ID, "unbound")

	require.NoError(t, s.BindTag(ctx, "golang", []int64{bound.ID, unbound.ID}))
	require.NoError(t, s.UnbindTag(ctx, "golang", []int64{unbound.ID}))

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	result, err := s.ListPages(ctx, domain.PageFilter{TagID: tags[0].ID}, store.DefaultPageParams())
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, bound.ID, result.Items[0].ID)
}

func TestListPages_ExcludesDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	mustPage(t, s, folder.ID, "live")
	gone := mustPage(t, s, folder.ID, "gone")
	require.NoError(t, s.SoftDeletePage(ctx, gone.ID))

	result, err := s.ListPages(ctx, domain.PageFilter{}, store.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	count, err := s.CountPages(ctx, domain.PageFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetPagesByURL(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	page := &domain.Page{
		Title:      "Saved Twice",
		PageURL:    "https://example.com/article",
		ContentKey: "k1",
		FolderID:   folder.ID,
	}
	require.NoError(t, s.CreatePage(ctx, page))

	again := &domain.Page{
		Title:      "Saved Twice",
		PageURL:    "https://example.com/article",
		ContentKey: "k2",
		FolderID:   folder.ID,
	}
	require.NoError(t, s.CreatePage(ctx, again))

	pages, err := s.GetPagesByURL(ctx, "https://example.com/article")
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	// Soft-deleted archives do not count as saved.
	require.NoError(t, s.SoftDeletePage(ctx, page.ID))
	pages, err = s.GetPagesByURL(ctx, "https://example.com/article")
	require.NoError(t, err)
	assert.Len(t, pages, 1)

	pages, err = s.GetPagesByURL(ctx, "https://example.com/other")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestDeletePages(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	pageA := mustPage(t, s, folder.ID, "a")
	pageB := mustPage(t, s, folder.ID, "b")

	n, err := s.DeletePages(ctx, []int64{pageA.ID, pageB.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.GetPage(ctx, pageA.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Re-running with already-removed ids is not an error.
	n, err = s.DeletePages(ctx, []int64{pageA.ID, pageB.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = s.DeletePages(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPageIDsInFolder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	pageA := mustPage(t, s, folder.ID, "a")
	pageB := mustPage(t, s, folder.ID, "b")
	require.NoError(t, s.SoftDeletePage(ctx, pageB.ID))

	ids, err := s.PageIDsInFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{pageA.ID}, ids)
}

func TestListDeletedPages(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	mustPage(t, s, folder.ID, "live")
	gone := mustPage(t, s, folder.ID, "gone")
	require.NoError(t, s.SoftDeletePage(ctx, gone.ID))

	deleted, err := s.ListDeletedPages(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, gone.ID, deleted[0].ID)

	count, err := s.CountDeletedPages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdatePageWithTags(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")
	page := mustPage(t, s, folder.ID, "a")

	page.Title = "retitled"
	err := s.UpdatePageWithTags(ctx, page,
		[]domain.TagBinding{{TagName: "golang", PageIDs: []int64{page.ID}}},
		nil,
	)
	require.NoError(t, err)

	retrieved, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "retitled", retrieved.Title)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, []int64{page.ID}, tags[0].PageIDs)
}

func TestUpdatePageWithTags_PageMissing(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	folder := mustFolder(t, s, "Research")

	// No tag work: plain not-found comes straight back.
	err := s.UpdatePageWithTags(ctx, &domain.Page{ID: 999, FolderID: folder.ID, Title: "x"}, nil, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// With tag work the tag half still applies and the outcome is partial.
	err = s.UpdatePageWithTags(ctx, &domain.Page{ID: 999, FolderID: folder.ID, Title: "x"},
		[]domain.TagBinding{{TagName: "golang", PageIDs: []int64{1}}},
		nil,
	)
	require.Error(t, err)

	var partial *store.PartialFailure
	require.ErrorAs(t, err, &partial)
	assert.Contains(t, partial.Failed, "page update")
	assert.Contains(t, partial.Completed, "bind golang")
}
