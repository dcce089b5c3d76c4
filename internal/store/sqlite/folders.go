package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// folderColumns is the ordered list of columns selected in folder queries.
// Must match the scan order in scanFolder.
const folderColumns = `id, name, is_deleted, created_at, updated_at, deleted_at`

// scanFolder scans a sql.Row (or sql.Rows via its Scan method) into a domain.Folder.
func scanFolder(scanner interface{ Scan(dest ...any) error }) (*domain.Folder, error) {
	var f domain.Folder

	var (
		isDeleted int
		createdAt string
		updatedAt string
		deletedAt sql.NullString
	)

	err := scanner.Scan(
		&f.ID,
		&f.Name,
		&isDeleted,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	f.IsDeleted = isDeleted != 0
	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	f.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	f.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// CreateFolder inserts a new folder.
// Returns store.ErrAlreadyExists when a non-deleted folder holds the same name;
// names of soft-deleted folders are free for reuse.
func (s *Store) CreateFolder(ctx context.Context, name string) (*domain.Folder, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO folders (name, created_at, updated_at)
		VALUES (?, ?, ?)`,
		name,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists.WithMessage(fmt.Sprintf("folder %q already exists", name))
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &domain.Folder{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetFolder retrieves a folder by id regardless of deletion state.
// Returns store.ErrNotFound if the folder does not exist.
func (s *Store) GetFolder(ctx context.Context, id int64) (*domain.Folder, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)

	f, err := scanFolder(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound.WithMessage("folder not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// RenameFolder changes a live folder's name.
// The active-name uniqueness invariant is re-checked here via the partial
// unique index, so renaming onto a live folder's name is a conflict.
func (s *Store) RenameFolder(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE folders
		SET name = ?, updated_at = ?
		WHERE id = ? AND is_deleted = 0`,
		name,
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("folder %q already exists", name))
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("folder not found")
	}
	return nil
}

// SoftDeleteFolder marks a folder deleted and, in the same transaction, marks
// every live page in it deleted too. The cascade is one-way: RestoreFolder
// does not touch pages.
// Returns the number of pages that were cascaded.
func (s *Store) SoftDeleteFolder(ctx context.Context, id int64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())

	res, err := tx.ExecContext(ctx, `
		UPDATE folders
		SET is_deleted = 1, deleted_at = ?, updated_at = ?
		WHERE id = ? AND is_deleted = 0`,
		now, now, id,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, store.ErrNotFound.WithMessage("folder not found")
	}

	// Cascaded pages change lifecycle columns only, same as SoftDeletePage,
	// so restoring one later returns it to exactly its prior state.
	pageRes, err := tx.ExecContext(ctx, `
		UPDATE pages
		SET is_deleted = 1, deleted_at = ?
		WHERE folder_id = ? AND is_deleted = 0`,
		now, id,
	)
	if err != nil {
		return 0, err
	}
	pages, err := pageRes.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(pages), nil
}

// RestoreFolder clears a folder's soft-delete flags. Pages cascaded by
// SoftDeleteFolder stay deleted and must be restored individually.
// Returns store.ErrNotFound if the folder is not currently soft-deleted, and
// store.ErrAlreadyExists when its name was taken by a live folder meanwhile.
func (s *Store) RestoreFolder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE folders
		SET is_deleted = 0, deleted_at = NULL, updated_at = ?
		WHERE id = ? AND is_deleted = 1`,
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("a live folder already holds this name")
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("folder is not in the recycle bin")
	}
	return nil
}

// ListActiveFolders returns all non-deleted folders ordered by creation time.
func (s *Store) ListActiveFolders(ctx context.Context) ([]*domain.Folder, error) {
	return s.listFolders(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE is_deleted = 0 ORDER BY created_at ASC`)
}

// ListDeletedFolders returns soft-deleted folders, most recently deleted first.
func (s *Store) ListDeletedFolders(ctx context.Context) ([]*domain.Folder, error) {
	return s.listFolders(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE is_deleted = 1 ORDER BY deleted_at DESC`)
}

func (s *Store) listFolders(ctx context.Context, query string, args ...any) ([]*domain.Folder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*domain.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// CountDeletedFolders returns how many folders are in the recycle bin.
func (s *Store) CountDeletedFolders(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM folders WHERE is_deleted = 1`).Scan(&count)
	return count, err
}
