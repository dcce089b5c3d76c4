package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// ListShowcasePages returns one window of showcased live pages, newest first.
func (s *Store) ListShowcasePages(ctx context.Context, params store.PageParams) (*store.PaginatedResult[*domain.Page], error) {
	params.Validate()

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE is_showcased = 1 AND is_deleted = 0`).Scan(&total)
	if err != nil {
		return nil, err
	}

	pages, err := s.listPages(ctx,
		`SELECT `+pageColumns+` FROM pages
		WHERE is_showcased = 1 AND is_deleted = 0
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		params.Size, params.Offset())
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

// GetShowcasePage retrieves one page that is showcased and live.
// Returns store.ErrNotFound otherwise: non-showcased pages are invisible here.
func (s *Store) GetShowcasePage(ctx context.Context, id int64) (*domain.Page, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages
		WHERE is_showcased = 1 AND is_deleted = 0 AND id = ?`, id)

	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound.WithMessage("showcase page not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NextShowcaseID returns the smallest showcased live page id greater than
// after, wrapping to the smallest showcased id when none is greater. The
// browsing order is circular; store.ErrNotFound means nothing is showcased
// at all.
func (s *Store) NextShowcaseID(ctx context.Context, after int64) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM pages
		WHERE is_showcased = 1 AND is_deleted = 0 AND id > ?
		ORDER BY id ASC LIMIT 1`, after).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	// Wrap around to the start of the circle.
	err = s.db.QueryRowContext(ctx, `
		SELECT id FROM pages
		WHERE is_showcased = 1 AND is_deleted = 0
		ORDER BY id ASC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, store.ErrNotFound.WithMessage("no showcased pages")
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SetShowcased flips a live page's showcase flag.
func (s *Store) SetShowcased(ctx context.Context, id int64, showcased bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pages SET is_showcased = ?, updated_at = ?
		WHERE id = ? AND is_deleted = 0`,
		boolToInt(showcased),
		formatTime(time.Now()),
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
		return store.ErrNotFound.WithMessage("page not found")
	}
	return nil
}
