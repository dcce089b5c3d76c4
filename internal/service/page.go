package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/webvault/webvault-server/internal/archive"
	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/media/images"
	"github.com/webvault/webvault-server/internal/store"
	"github.com/webvault/webvault-server/internal/util"
)

// purgeConcurrency bounds the blob-deletion fan-out during purge. Blob keys
// are independent, so deletions can overlap, but an unbounded fan-out over a
// large recycle bin would swamp the blob store.
const purgeConcurrency = 4

// PageService orchestrates the page lifecycle: blob writes, row writes, tag
// bindings, soft delete, restore and purge. It is the only component that
// writes blob keys onto page rows.
type PageService struct {
	store  store.Store
	blobs  BlobStore
	logger *slog.Logger
}

// NewPageService creates a new page service.
func NewPageService(store store.Store, blobs BlobStore, logger *slog.Logger) *PageService {
	return &PageService{store: store, blobs: blobs, logger: logger}
}

// CreatePageInput carries everything needed to archive one page.
type CreatePageInput struct {
	Title       string
	Description string
	PageURL     string
	FolderID    int64
	IsShowcased bool
	Content     []byte // archived HTML, required
	Screenshot  []byte // optional
}

// UpdatePageInput carries a full set of mutable fields plus a tag batch.
type UpdatePageInput struct {
	ID          int64
	Title       string
	Description string
	PageURL     string
	FolderID    int64
	IsShowcased bool
	BindTags    []domain.TagBinding
	UnbindTags  []domain.TagBinding
}

// PurgeResult reports what a purge run accomplished.
type PurgeResult struct {
	PagesPurged  int `json:"pages_purged"`
	BlobsDeleted int `json:"blobs_deleted"`
	BlobFailures int `json:"blob_failures"`
}

// Create archives a page: blobs first, then the row referencing their keys.
// Missing title and description are derived from the archived HTML.
//
// If the row insert fails after the blobs were written, the blobs are
// orphaned: they are logged and the error is returned, but the writes are
// not compensated.
func (s *PageService) Create(ctx context.Context, input CreatePageInput) (*domain.Page, error) {
	if len(input.Content) == 0 {
		return nil, store.ErrInvalidInput.WithMessage("page content is required")
	}
	if input.FolderID == 0 {
		return nil, store.ErrInvalidInput.WithMessage("folder is required")
	}
	if _, err := s.store.GetFolder(ctx, input.FolderID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = archive.Title(string(input.Content))
	}
	if title == "" {
		title = input.PageURL
	}

	desc := strings.TrimSpace(input.Description)
	if desc == "" {
		desc = archive.Summarize(string(input.Content))
	}

	contentKey, err := s.blobs.Put(ctx, input.Content)
	if err != nil {
		return nil, err
	}

	var screenshotKey, placeholder string
	if len(input.Screenshot) > 0 {
		screenshotKey, err = s.blobs.Put(ctx, input.Screenshot)
		if err != nil {
			// The content blob is already written; report it as an orphan.
			s.logger.Error("screenshot blob write failed, content blob orphaned",
				"orphan_key", contentKey, "error", err)
			return nil, err
		}

		placeholder, err = images.ComputeBlurHash(input.Screenshot)
		if err != nil {
			// The placeholder is a nicety, not part of the archive.
			s.logger.Warn("blurhash failed", "error", err)
			placeholder = ""
		}
	}

	page := &domain.Page{
		Title:                 title,
		Description:           desc,
		PageURL:               input.PageURL,
		ContentKey:            contentKey,
		ScreenshotKey:         screenshotKey,
		ScreenshotPlaceholder: placeholder,
		FolderID:              input.FolderID,
		IsShowcased:           input.IsShowcased,
	}

	if err := s.store.CreatePage(ctx, page); err != nil {
		orphans := []string{contentKey}
		if screenshotKey != "" {
			orphans = append(orphans, screenshotKey)
		}
		s.logger.Error("page insert failed, blobs orphaned",
			"orphan_keys", strings.Join(orphans, ","), "error", err)
		return nil, fmt.Errorf("insert page (orphaned blobs %v): %w", orphans, err)
	}

	s.logger.Info("page archived", "page_id", page.ID, "folder_id", page.FolderID, "title", page.Title)
	return page, nil
}

// Update rewrites a page's mutable fields and applies its tag batch. Tag
// names are normalized before they reach the store so binds and unbinds
// addressing the same tag collide on the same row.
//
// A partial outcome (row updated but a tag patch failed, or vice versa) is
// returned as store.ErrPartialFailure; re-issuing the same call is safe.
func (s *PageService) Update(ctx context.Context, input UpdatePageInput) error {
	page := &domain.Page{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		PageURL:     input.PageURL,
		FolderID:    input.FolderID,
		IsShowcased: input.IsShowcased,
	}

	return s.store.UpdatePageWithTags(ctx, page,
		normalizeBindings(input.BindTags),
		normalizeBindings(input.UnbindTags))
}

// Get retrieves a page by id regardless of deletion state.
func (s *PageService) Get(ctx context.Context, id int64) (*domain.Page, error) {
	return s.store.GetPage(ctx, id)
}

// Content returns the archived HTML for a page.
func (s *PageService) Content(ctx context.Context, id int64) ([]byte, error) {
	page, err := s.store.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}

	data, found, err := s.blobs.Get(ctx, page.ContentKey)
	if err != nil {
		return nil, err
	}
	if !found {
		// The row invariant says this cannot happen short of external blob
		// loss; surface it as a missing resource rather than a crash.
		s.logger.Error("content blob missing for live page", "page_id", id, "key", page.ContentKey)
		return nil, store.ErrNotFound.WithMessage("archived content missing")
	}
	return data, nil
}

// ScreenshotDataURI returns the page screenshot as an inline data URI, with
// found=false when the page has no screenshot.
func (s *PageService) ScreenshotDataURI(ctx context.Context, id int64) (string, bool, error) {
	page, err := s.store.GetPage(ctx, id)
	if err != nil {
		return "", false, err
	}
	return s.blobs.DataURI(ctx, page.ScreenshotKey, "image/png")
}

// List returns one window of live pages matching the filter.
func (s *PageService) List(ctx context.Context, filter domain.PageFilter, params store.PageParams) (*store.PaginatedResult[*domain.Page], error) {
	return s.store.ListPages(ctx, filter, params)
}

// QueryByURL returns live pages archived from the given source URL.
func (s *PageService) QueryByURL(ctx context.Context, pageURL string) ([]*domain.Page, error) {
	return s.store.GetPagesByURL(ctx, pageURL)
}

// ListDeleted returns the page recycle bin.
func (s *PageService) ListDeleted(ctx context.Context) ([]*domain.Page, error) {
	return s.store.ListDeletedPages(ctx)
}

// CountDeleted returns the page recycle bin size.
func (s *PageService) CountDeleted(ctx context.Context) (int, error) {
	return s.store.CountDeletedPages(ctx)
}

// SoftDelete moves a page to the recycle bin. Its blobs stay for restore.
func (s *PageService) SoftDelete(ctx context.Context, id int64) error {
	if err := s.store.SoftDeletePage(ctx, id); err != nil {
		return err
	}
	s.logger.Info("page soft-deleted", "page_id", id)
	return nil
}

// Restore brings a soft-deleted page back to active.
func (s *PageService) Restore(ctx context.Context, id int64) error {
	if err := s.store.RestorePage(ctx, id); err != nil {
		return err
	}
	s.logger.Info("page restored", "page_id", id)
	return nil
}

// Purge permanently removes every soft-deleted page and its blobs.
//
// Blob deletions run first with a bounded fan-out; each failure is counted
// but never stops the rest. A row is removed only once its blob cleanup
// succeeded: the blob keys live on that row, so deleting it early would
// orphan the blobs for good. Pages whose cleanup failed stay soft-deleted
// and a re-run retries them, which makes purge idempotent end to end. A
// canceled context stops scheduling further pages but still deletes rows
// for pages whose blobs are already gone.
func (s *PageService) Purge(ctx context.Context) (*PurgeResult, error) {
	pages, err := s.store.ListDeletedPages(ctx)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return &PurgeResult{}, nil
	}

	var (
		mu        sync.Mutex
		purgeable []int64
		deleted   int
		failures  []string
	)

	g := &errgroup.Group{}
	g.SetLimit(purgeConcurrency)

	for _, page := range pages {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			keys := page.BlobKeys()
			err := s.blobs.Delete(ctx, keys...)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("blob cleanup failed during purge, page kept for retry",
					"page_id", page.ID, "error", err)
				failures = append(failures, fmt.Sprintf("page %d blobs", page.ID))
			} else {
				purgeable = append(purgeable, page.ID)
				deleted += len(keys)
			}
			return nil
		})
	}
	_ = g.Wait()

	purged, err := s.store.DeletePages(ctx, purgeable)
	if err != nil {
		return nil, err
	}

	result := &PurgeResult{
		PagesPurged:  purged,
		BlobsDeleted: deleted,
		BlobFailures: len(failures),
	}

	s.logger.Info("purge complete",
		"pages_purged", result.PagesPurged,
		"blobs_deleted", result.BlobsDeleted,
		"blob_failures", result.BlobFailures)

	if len(failures) > 0 {
		return result, store.NewPartialFailure(
			[]string{fmt.Sprintf("%d pages purged", purged)}, failures)
	}
	return result, nil
}

// normalizeBindings canonicalizes tag names and drops empty records.
func normalizeBindings(bindings []domain.TagBinding) []domain.TagBinding {
	out := make([]domain.TagBinding, 0, len(bindings))
	for _, b := range bindings {
		name := util.NormalizeTagName(b.TagName)
		if name == "" || len(b.PageIDs) == 0 {
			continue
		}
		out = append(out, domain.TagBinding{TagName: name, PageIDs: b.PageIDs})
	}
	return out
}
