package service

import (
	"context"
	"log/slog"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// recentPageLimit is how many pages the dashboard's recent strip shows.
const recentPageLimit = 10

// HomeStats is the aggregate snapshot the dashboard renders.
type HomeStats struct {
	TotalPages     int                      `json:"total_pages"`
	TotalFolders   int                      `json:"total_folders"`
	DeletedPages   int                      `json:"deleted_pages"`
	DeletedFolders int                      `json:"deleted_folders"`
	TopFolders     []domain.FolderPageCount `json:"top_folders"`
	RecentPages    []*domain.Page           `json:"recent_pages,omitempty"`
}

// DashboardService aggregates counts and recent activity for the home view.
type DashboardService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store store.Store, logger *slog.Logger) *DashboardService {
	return &DashboardService{store: store, logger: logger}
}

// Home builds the dashboard snapshot. The recent-pages strip is only
// populated when the show-recent setting is on.
func (s *DashboardService) Home(ctx context.Context) (*HomeStats, error) {
	totalPages, err := s.store.CountPages(ctx, domain.PageFilter{})
	if err != nil {
		return nil, err
	}

	folders, err := s.store.ListActiveFolders(ctx)
	if err != nil {
		return nil, err
	}

	deletedPages, err := s.store.CountDeletedPages(ctx)
	if err != nil {
		return nil, err
	}

	deletedFolders, err := s.store.CountDeletedFolders(ctx)
	if err != nil {
		return nil, err
	}

	topFolders, err := s.store.TopFoldersByPageCount(ctx, 5)
	if err != nil {
		return nil, err
	}

	stats := &HomeStats{
		TotalPages:     totalPages,
		TotalFolders:   len(folders),
		DeletedPages:   deletedPages,
		DeletedFolders: deletedFolders,
		TopFolders:     topFolders,
	}

	showRecent, err := s.store.GetShouldShowRecent(ctx)
	if err != nil {
		return nil, err
	}
	if showRecent {
		recent, err := s.store.ListRecentPages(ctx, recentPageLimit)
		if err != nil {
			return nil, err
		}
		stats.RecentPages = recent
	}

	return stats, nil
}
