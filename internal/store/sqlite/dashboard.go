package sqlite

import (
	"context"

	"github.com/webvault/webvault-server/internal/domain"
)

// TopFoldersByPageCount returns the busiest live folders by live page count,
// one aggregate query instead of a count per folder.
func (s *Store) TopFoldersByPageCount(ctx context.Context, limit int) ([]domain.FolderPageCount, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.name, COUNT(p.id) AS page_count
		FROM folders f
		LEFT JOIN pages p ON p.folder_id = f.id AND p.is_deleted = 0
		WHERE f.is_deleted = 0
		GROUP BY f.id, f.name
		ORDER BY page_count DESC, f.id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.FolderPageCount
	for rows.Next() {
		var c domain.FolderPageCount
		if err := rows.Scan(&c.ID, &c.Name, &c.PageCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
