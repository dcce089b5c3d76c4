package domain

import "time"

// Folder groups archived pages. Folder names are unique among folders that are
// not soft-deleted; a name held by a soft-deleted folder may be reused.
type Folder struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (f *Folder) Touch() {
	f.UpdatedAt = time.Now()
}

// FolderPageCount is a dashboard aggregate: a folder and how many live pages it holds.
type FolderPageCount struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	PageCount int    `json:"page_count"`
}
