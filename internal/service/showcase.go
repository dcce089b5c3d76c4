package service

import (
	"context"
	"log/slog"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// ShowcaseService serves the public, unauthenticated showcase surface. Only
// live pages flagged as showcased are ever visible through it.
type ShowcaseService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShowcaseService creates a new showcase service.
func NewShowcaseService(store store.Store, logger *slog.Logger) *ShowcaseService {
	return &ShowcaseService{store: store, logger: logger}
}

// List returns one window of showcased pages.
func (s *ShowcaseService) List(ctx context.Context, params store.PageParams) (*store.PaginatedResult[*domain.Page], error) {
	return s.store.ListShowcasePages(ctx, params)
}

// Get returns one showcased page. A page that exists but is not showcased,
// or is soft-deleted, reads as not found.
func (s *ShowcaseService) Get(ctx context.Context, id int64) (*domain.Page, error) {
	return s.store.GetShowcasePage(ctx, id)
}

// Next returns the showcased page that follows the given id, wrapping to the
// smallest showcased id after the largest.
func (s *ShowcaseService) Next(ctx context.Context, after int64) (*domain.Page, error) {
	id, err := s.store.NextShowcaseID(ctx, after)
	if err != nil {
		return nil, err
	}
	return s.store.GetShowcasePage(ctx, id)
}

// SetShowcased toggles a page's showcase flag.
func (s *ShowcaseService) SetShowcased(ctx context.Context, id int64, showcased bool) error {
	if err := s.store.SetShowcased(ctx, id, showcased); err != nil {
		return err
	}
	s.logger.Info("showcase flag changed", "page_id", id, "showcased", showcased)
	return nil
}
