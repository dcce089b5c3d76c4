package service

import (
	"context"
	"log/slog"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// SettingsService reads and writes server-level settings.
type SettingsService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store store.Store, logger *slog.Logger) *SettingsService {
	return &SettingsService{store: store, logger: logger}
}

// ShouldShowRecent reports whether the dashboard shows recent pages.
func (s *SettingsService) ShouldShowRecent(ctx context.Context) (bool, error) {
	return s.store.GetShouldShowRecent(ctx)
}

// SetShouldShowRecent toggles the recent-pages strip on the dashboard.
func (s *SettingsService) SetShouldShowRecent(ctx context.Context, value bool) error {
	if err := s.store.SetShouldShowRecent(ctx, value); err != nil {
		return err
	}
	s.logger.Info("show-recent setting changed", "value", value)
	return nil
}

// AITagConfig returns the AI tagging configuration, falling back to the
// defaults when nothing has been saved yet.
func (s *SettingsService) AITagConfig(ctx context.Context) (*domain.AITagConfig, error) {
	return s.store.GetAITagConfig(ctx)
}

// SetAITagConfig replaces the AI tagging configuration.
func (s *SettingsService) SetAITagConfig(ctx context.Context, cfg *domain.AITagConfig) error {
	if cfg == nil {
		return store.ErrInvalidInput.WithMessage("config is required")
	}
	if err := s.store.SetAITagConfig(ctx, cfg); err != nil {
		return err
	}
	s.logger.Info("ai tag config updated", "tag_language", cfg.TagLanguage, "type", cfg.Type)
	return nil
}
