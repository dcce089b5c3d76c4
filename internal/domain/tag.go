package domain

import "time"

// Tag labels archived pages. Names are globally unique and normalized before
// storage ("Slow Reads" → "slow-reads").
//
// The association to pages is persisted as a JSON dictionary keyed by page id:
// a bound page maps to its own id, an unbound page maps to JSON null (a
// tombstone awaiting physical removal). PageIDs is the derived set of
// non-null values and is what every caller outside the store sees.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	PageIDs   []int64   `json:"page_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// HasPage reports whether a page id is in the derived page set.
func (t *Tag) HasPage(pageID int64) bool {
	for _, id := range t.PageIDs {
		if id == pageID {
			return true
		}
	}
	return false
}

// TagBinding names a tag and the page ids to bind to (or unbind from) it.
// The tag is addressed by name so a binding can create the tag on first use.
type TagBinding struct {
	TagName string  `json:"tag_name"`
	PageIDs []int64 `json:"page_ids"`
}
