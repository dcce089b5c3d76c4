package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// FolderService orchestrates folder lifecycle operations.
type FolderService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(store store.Store, logger *slog.Logger) *FolderService {
	return &FolderService{store: store, logger: logger}
}

// Create makes a new folder. The name must be unique among live folders;
// names held only by soft-deleted folders are free.
func (s *FolderService) Create(ctx context.Context, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, store.ErrInvalidInput.WithMessage("folder name is required")
	}

	folder, err := s.store.CreateFolder(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "folder_id", folder.ID, "name", folder.Name)
	return folder, nil
}

// Rename changes a live folder's name, under the same uniqueness rule as Create.
func (s *FolderService) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.ErrInvalidInput.WithMessage("folder name is required")
	}
	return s.store.RenameFolder(ctx, id, name)
}

// Get retrieves a folder by id regardless of deletion state.
func (s *FolderService) Get(ctx context.Context, id int64) (*domain.Folder, error) {
	return s.store.GetFolder(ctx, id)
}

// SoftDelete moves a folder and every live page in it to the recycle bin.
// The pages move with the folder; restoring the folder later does not bring
// them back.
func (s *FolderService) SoftDelete(ctx context.Context, id int64) (int, error) {
	pages, err := s.store.SoftDeleteFolder(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.Info("folder soft-deleted", "folder_id", id, "pages_cascaded", pages)
	return pages, nil
}

// Restore brings a soft-deleted folder back. Its pages stay in the recycle
// bin and must be restored one by one.
func (s *FolderService) Restore(ctx context.Context, id int64) error {
	if err := s.store.RestoreFolder(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder restored", "folder_id", id)
	return nil
}

// ListActive returns all live folders.
func (s *FolderService) ListActive(ctx context.Context) ([]*domain.Folder, error) {
	return s.store.ListActiveFolders(ctx)
}

// ListDeleted returns the folder recycle bin, most recently deleted first.
func (s *FolderService) ListDeleted(ctx context.Context) ([]*domain.Folder, error) {
	return s.store.ListDeletedFolders(ctx)
}

// CountDeleted returns the folder recycle bin size.
func (s *FolderService) CountDeleted(ctx context.Context) (int, error) {
	return s.store.CountDeletedFolders(ctx)
}
