package domain

import "time"

// Page is one archived web page. The HTML snapshot and the optional screenshot
// live in the blob store; the page row only carries their opaque keys.
//
// Lifecycle: active → soft-deleted → purged. Soft-delete keeps the row and the
// blobs so the page can be restored; purge removes both and is terminal.
type Page struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PageURL     string `json:"page_url"`

	// ContentKey references the archived HTML blob. It is set once at creation
	// and always points at a live blob until the page is purged.
	ContentKey string `json:"content_key"`

	// ScreenshotKey references the screenshot blob, empty if none was captured.
	ScreenshotKey string `json:"screenshot_key,omitempty"`

	// ScreenshotPlaceholder is a BlurHash of the screenshot for instant display
	// in listings. Empty when there is no screenshot or encoding failed.
	ScreenshotPlaceholder string `json:"screenshot_placeholder,omitempty"`

	FolderID    int64      `json:"folder_id"`
	IsShowcased bool       `json:"is_showcased"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (p *Page) Touch() {
	p.UpdatedAt = time.Now()
}

// BlobKeys returns the blob keys owned by this page, skipping the optional
// screenshot when absent. Used by purge to know what to garbage-collect.
func (p *Page) BlobKeys() []string {
	keys := []string{p.ContentKey}
	if p.ScreenshotKey != "" {
		keys = append(keys, p.ScreenshotKey)
	}
	return keys
}

// PageFilter narrows page listings and counts. Zero values mean "no filter".
// All set filters combine with logical AND.
type PageFilter struct {
	FolderID int64  // match pages in this folder (0 = any)
	Keyword  string // match against title
	Prefix   bool   // keyword is a title prefix instead of a substring
	TagID    int64  // membership in a tag's derived page set (0 = any)
}
