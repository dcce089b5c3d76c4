// Package store defines the persistence interface for the WebVault server.
package store

import (
	"context"

	"github.com/webvault/webvault-server/internal/domain"
)

// Store defines the interface for all relational persistence operations.
// Blob content is not stored here; pages carry opaque blob keys into the blob
// store and this interface only ever reads or writes those keys as strings.
type Store interface {
	// Lifecycle
	Close() error

	// Folders
	CreateFolder(ctx context.Context, name string) (*domain.Folder, error)
	GetFolder(ctx context.Context, id int64) (*domain.Folder, error)
	RenameFolder(ctx context.Context, id int64, name string) error
	SoftDeleteFolder(ctx context.Context, id int64) (pagesAffected int, err error)
	RestoreFolder(ctx context.Context, id int64) error
	ListActiveFolders(ctx context.Context) ([]*domain.Folder, error)
	ListDeletedFolders(ctx context.Context) ([]*domain.Folder, error)
	CountDeletedFolders(ctx context.Context) (int, error)

	// Pages
	CreatePage(ctx context.Context, page *domain.Page) error
	GetPage(ctx context.Context, id int64) (*domain.Page, error)
	UpdatePage(ctx context.Context, page *domain.Page) error
	UpdatePageWithTags(ctx context.Context, page *domain.Page, bind, unbind []domain.TagBinding) error
	SoftDeletePage(ctx context.Context, id int64) error
	RestorePage(ctx context.Context, id int64) error
	ListPages(ctx context.Context, filter domain.PageFilter, params PageParams) (*PaginatedResult[*domain.Page], error)
	CountPages(ctx context.Context, filter domain.PageFilter) (int, error)
	GetPagesByURL(ctx context.Context, pageURL string) ([]*domain.Page, error)
	ListRecentPages(ctx context.Context, limit int) ([]*domain.Page, error)
	ListDeletedPages(ctx context.Context) ([]*domain.Page, error)
	CountDeletedPages(ctx context.Context) (int, error)
	PageIDsInFolder(ctx context.Context, folderID int64) ([]int64, error)
	DeletePages(ctx context.Context, ids []int64) (int, error)

	// Tags
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, name, color string) error
	DeleteTag(ctx context.Context, id int64) error
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	BindTag(ctx context.Context, tagName string, pageIDs []int64) error
	UnbindTag(ctx context.Context, tagName string, pageIDs []int64) error
	ApplyTagBindings(ctx context.Context, bind, unbind []domain.TagBinding) error

	// Showcase
	ListShowcasePages(ctx context.Context, params PageParams) (*PaginatedResult[*domain.Page], error)
	GetShowcasePage(ctx context.Context, id int64) (*domain.Page, error)
	NextShowcaseID(ctx context.Context, after int64) (int64, error)
	SetShowcased(ctx context.Context, id int64, showcased bool) error

	// Dashboard
	TopFoldersByPageCount(ctx context.Context, limit int) ([]domain.FolderPageCount, error)

	// Settings
	GetAdminTokenHash(ctx context.Context) (string, error)
	SetAdminTokenHash(ctx context.Context, hash string) error
	GetShouldShowRecent(ctx context.Context) (bool, error)
	SetShouldShowRecent(ctx context.Context, value bool) error
	GetAITagConfig(ctx context.Context) (*domain.AITagConfig, error)
	SetAITagConfig(ctx context.Context, cfg *domain.AITagConfig) error
}
