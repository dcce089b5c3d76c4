package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, color, page_ids, created_at, updated_at`

// pageIDDict is the persisted association map for one tag: page id (as a
// string key) -> the same id when bound, nil when unbound. Unbinding writes a
// tombstone instead of removing the key so that the write stays a pure merge;
// tombstones are never compacted.
type pageIDDict map[string]*int64

// derivedIDs returns the externally visible page set: the non-tombstoned
// values, ascending.
func (d pageIDDict) derivedIDs() []int64 {
	ids := make([]int64, 0, len(d))
	for _, v := range d {
		if v != nil {
			ids = append(ids, *v)
		}
	}
	slices.Sort(ids)
	return ids
}

// bindPatch encodes page ids as a JSON merge that binds them: {"5": 5}.
func bindPatch(pageIDs []int64) (string, error) {
	dict := make(pageIDDict, len(pageIDs))
	for _, id := range pageIDs {
		v := id
		dict[strconv.FormatInt(id, 10)] = &v
	}
	b, err := json.Marshal(dict)
	return string(b), err
}

// unbindPatch encodes page ids as a JSON merge that tombstones them: {"5": null}.
func unbindPatch(pageIDs []int64) (string, error) {
	dict := make(pageIDDict, len(pageIDs))
	for _, id := range pageIDs {
		dict[strconv.FormatInt(id, 10)] = nil
	}
	b, err := json.Marshal(dict)
	return string(b), err
}

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag,
// projecting the persisted dictionary down to the derived page-id set.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		pageIDs   string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Color,
		&pageIDs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	var dict pageIDDict
	if err := json.Unmarshal([]byte(pageIDs), &dict); err != nil {
		return nil, fmt.Errorf("decode page_ids for tag %d: %w", t.ID, err)
	}
	t.PageIDs = dict.derivedIDs()

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag with an empty association set.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		name,
		color,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %q already exists", name))
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &domain.Tag{
		ID:        id,
		Name:      name,
		Color:     color,
		PageIDs:   []int64{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetTag retrieves one tag with its derived page-id set.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTag renames and/or recolors a tag. Empty arguments leave the field
// unchanged; at least one must be set.
func (s *Store) UpdateTag(ctx context.Context, id int64, name, color string) error {
	if name == "" && color == "" {
		return store.ErrInvalidInput.WithMessage("at least one of name or color is required")
	}

	query := `UPDATE tags SET updated_at = ?`
	args := []any{formatTime(time.Now())}
	if name != "" {
		query += `, name = ?`
		args = append(args, name)
	}
	if color != "" {
		query += `, color = ?`
		args = append(args, color)
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %q already exists", name))
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("tag not found")
	}
	return nil
}

// DeleteTag removes the tag row entirely. Tags have no recycle bin.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage("tag not found")
	}
	return nil
}

// ListTags returns all tags with their derived page-id sets, ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// BindTag adds page ids to a tag's association set, creating the tag if it
// does not exist. Binding an already-bound id is a no-op for that id.
func (s *Store) BindTag(ctx context.Context, tagName string, pageIDs []int64) error {
	return s.ApplyTagBindings(ctx, []domain.TagBinding{{TagName: tagName, PageIDs: pageIDs}}, nil)
}

// UnbindTag tombstones page ids in a tag's association set. Unbinding from a
// tag that does not exist upserts an all-tombstone tag rather than erroring.
func (s *Store) UnbindTag(ctx context.Context, tagName string, pageIDs []int64) error {
	return s.ApplyTagBindings(ctx, nil, []domain.TagBinding{{TagName: tagName, PageIDs: pageIDs}})
}

// ApplyTagBindings applies a batch of bind and unbind records. Unbinds run
// before binds so that a bind listed for the same page id wins within one
// batch.
//
// Each record is one storage-level merge: an upsert whose conflict branch
// patches the persisted dictionary with SQLite's json_patch. The read-modify-
// write happens inside the engine, so two racing binds on the same tag cannot
// lose each other's ids. There is deliberately no cross-record transaction:
// records are idempotent, and a failed batch is reported (not rolled back) so
// the caller can retry it wholesale.
func (s *Store) ApplyTagBindings(ctx context.Context, bind, unbind []domain.TagBinding) error {
	type patchOp struct {
		label   string
		tagName string
		patch   string
	}

	ops := make([]patchOp, 0, len(bind)+len(unbind))
	for _, rec := range unbind {
		patch, err := unbindPatch(rec.PageIDs)
		if err != nil {
			return err
		}
		ops = append(ops, patchOp{"unbind " + rec.TagName, rec.TagName, patch})
	}
	for _, rec := range bind {
		patch, err := bindPatch(rec.PageIDs)
		if err != nil {
			return err
		}
		ops = append(ops, patchOp{"bind " + rec.TagName, rec.TagName, patch})
	}

	var completed, failed []string
	for _, op := range ops {
		now := formatTime(time.Now())
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO tags (name, page_ids, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				page_ids = json_patch(page_ids, ?),
				updated_at = ?`,
			op.tagName, op.patch, now, now,
			op.patch, now,
		)
		if err != nil {
			s.logger.Warn("tag patch failed", "op", op.label, "error", err)
			failed = append(failed, op.label)
			continue
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			failed = append(failed, op.label)
			continue
		}
		completed = append(completed, op.label)
	}

	if len(failed) > 0 {
		return store.NewPartialFailure(completed, failed)
	}
	return nil
}
