package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// pageColumns is the ordered list of columns selected in page queries.
// Must match the scan order in scanPage.
const pageColumns = `id, title, description, page_url, content_key, screenshot_key,
	screenshot_placeholder, folder_id, is_showcased, is_deleted, created_at, updated_at, deleted_at`

// scanPage scans a sql.Row (or sql.Rows via its Scan method) into a domain.Page.
func scanPage(scanner interface{ Scan(dest ...any) error }) (*domain.Page, error) {
	var p domain.Page

	var (
		isShowcased int
		isDeleted   int
		createdAt   string
		updatedAt   string
		deletedAt   sql.NullString
	)

	err := scanner.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.PageURL,
		&p.ContentKey,
		&p.ScreenshotKey,
		&p.ScreenshotPlaceholder,
		&p.FolderID,
		&isShowcased,
		&isDeleted,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	p.IsShowcased = isShowcased != 0
	p.IsDeleted = isDeleted != 0
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePage inserts a page row referencing already-stored blob keys and sets
// page.ID. Blob writes happen before this call; if the insert fails the caller
// owns the resulting orphan keys.
func (s *Store) CreatePage(ctx context.Context, page *domain.Page) error {
	if page.CreatedAt.IsZero() {
		page.CreatedAt = time.Now()
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = page.CreatedAt
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (title, description, page_url, content_key, screenshot_key,
			screenshot_placeholder, folder_id, is_showcased, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		page.Title,
		page.Description,
		page.PageURL,
		page.ContentKey,
		page.ScreenshotKey,
		page.ScreenshotPlaceholder,
		page.FolderID,
		boolToInt(page.IsShowcased),
		formatTime(page.CreatedAt),
		formatTime(page.UpdatedAt),
	)
	if err != nil {
		return err
	}

	page.ID, err = res.LastInsertId()
	return err
}

// GetPage retrieves a page by id regardless of deletion state.
// Returns store.ErrNotFound if the page does not exist.
func (s *Store) GetPage(ctx context.Context, id int64) (*domain.Page, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)

	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound.WithMessage("page not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePage rewrites a page's mutable fields: folder, title, showcase flag,
// description and source URL. Blob keys are immutable after creation and the
// lifecycle flags have their own operations.
func (s *Store) UpdatePage(ctx context.Context, page *domain.Page) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET folder_id = ?, title = ?, is_showcased = ?, description = ?, page_url = ?, updated_at = ?
		WHERE id = ?`,
		page.FolderID,
		page.Title,
		boolToInt(page.IsShowcased),
		page.Description,
		page.PageURL,
		formatTime(time.Now()),
		page.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("page not found")
	}
	return nil
}

// UpdatePageWithTags updates a page's mutable fields and applies a tag
// bind/unbind batch for it. The row update and the tag patches are independent
// storage operations: the call succeeds only when the row update affected a
// row and every tag patch applied. A mixed outcome reports which steps
// committed; there is no compensation, the caller retries the whole call
// (both halves are idempotent).
func (s *Store) UpdatePageWithTags(ctx context.Context, page *domain.Page, bind, unbind []domain.TagBinding) error {
	pageErr := s.UpdatePage(ctx, page)
	if pageErr != nil && len(bind)+len(unbind) == 0 {
		return pageErr
	}

	tagErr := s.ApplyTagBindings(ctx, bind, unbind)
	if pageErr == nil && tagErr == nil {
		return nil
	}

	var completed, failed []string
	if pageErr == nil {
		completed = append(completed, "page update")
	} else {
		failed = append(failed, "page update")
	}

	var detail *store.PartialFailure
	if errors.As(tagErr, &detail) {
		completed = append(completed, detail.Completed...)
		failed = append(failed, detail.Failed...)
	} else if tagErr != nil {
		failed = append(failed, "tag bindings")
	} else {
		completed = append(completed, "tag bindings")
	}

	return store.NewPartialFailure(completed, failed)
}

// SoftDeletePage marks a page deleted; blobs stay intact for restore.
// Only the lifecycle columns change, so a soft-delete/restore round trip
// returns the row to exactly its prior state.
func (s *Store) SoftDeletePage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET is_deleted = 1, deleted_at = ?
		WHERE id = ? AND is_deleted = 0`,
		formatTime(time.Now()), id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("page not found")
	}
	return nil
}

// RestorePage clears a page's soft-delete flags.
// Returns store.ErrNotFound if the page is not currently soft-deleted.
func (s *Store) RestorePage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET is_deleted = 0, deleted_at = NULL
		WHERE id = ? AND is_deleted = 1`,
		id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("page is not in the recycle bin")
	}
	return nil
}

// filterClause renders a PageFilter as SQL conditions over live pages.
func filterClause(filter domain.PageFilter) (string, []any) {
	clause := ` WHERE is_deleted = 0`
	var args []any

	if filter.FolderID != 0 {
		clause += ` AND folder_id = ?`
		args = append(args, filter.FolderID)
	}
	if filter.Keyword != "" {
		clause += ` AND title LIKE ?`
		if filter.Prefix {
			args = append(args, filter.Keyword+"%")
		} else {
			args = append(args, "%"+filter.Keyword+"%")
		}
	}
	if filter.TagID != 0 {
		// Membership in the tag's derived set: json_each walks the persisted
		// dictionary, tombstones carry NULL values and never match.
		clause += ` AND id IN (
			SELECT value FROM json_each((SELECT page_ids FROM tags WHERE id = ?))
			WHERE value IS NOT NULL)`
		args = append(args, filter.TagID)
	}

	return clause, args
}

// ListPages returns one window of live pages matching the filter, newest first.
func (s *Store) ListPages(ctx context.Context, filter domain.PageFilter, params store.PageParams) (*store.PaginatedResult[*domain.Page], error) {
	params.Validate()

	total, err := s.CountPages(ctx, filter)
	if err != nil {
		return nil, err
	}

	clause, args := filterClause(filter)
	query := `SELECT ` + pageColumns + ` FROM pages` + clause +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, params.Size, params.Offset())

	pages, err := s.listPages(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &store.PaginatedResult[*domain.Page]{
		Items: pages,
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
	}, nil
}

// CountPages counts live pages matching the filter.
func (s *Store) CountPages(ctx context.Context, filter domain.PageFilter) (int, error) {
	clause, args := filterClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages`+clause, args...).Scan(&count)
	return count, err
}

// GetPagesByURL returns live pages archived from the given source URL.
// The extension uses this to tell whether a page was already saved.
func (s *Store) GetPagesByURL(ctx context.Context, pageURL string) ([]*domain.Page, error) {
	return s.listPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE page_url = ? AND is_deleted = 0 ORDER BY created_at DESC`,
		pageURL)
}

// ListRecentPages returns the most recently archived live pages.
func (s *Store) ListRecentPages(ctx context.Context, limit int) ([]*domain.Page, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.listPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE is_deleted = 0 ORDER BY created_at DESC LIMIT ?`,
		limit)
}

// ListDeletedPages returns the recycle bin, most recently deleted first.
func (s *Store) ListDeletedPages(ctx context.Context) ([]*domain.Page, error) {
	return s.listPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE is_deleted = 1 ORDER BY deleted_at DESC`)
}

// CountDeletedPages returns how many pages are in the recycle bin.
func (s *Store) CountDeletedPages(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE is_deleted = 1`).Scan(&count)
	return count, err
}

// PageIDsInFolder returns ids of live pages in a folder.
func (s *Store) PageIDsInFolder(ctx context.Context, folderID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM pages WHERE folder_id = ? AND is_deleted = 0`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeletePages permanently removes page rows. Purge calls this only for
// pages whose blob cleanup succeeded; deleting an id that is already gone
// is not an error, which keeps purge re-runnable.
func (s *Store) DeletePages(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM pages WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) listPages(ctx context.Context, query string, args ...any) ([]*domain.Page, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*domain.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
