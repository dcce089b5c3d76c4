package service

import (
	"context"
	"log/slog"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
	"github.com/webvault/webvault-server/internal/util"
)

// TagService manages tags and their page-id associations.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// Create makes a new tag. The name is normalized to its canonical form so
// "Deep Learning" and "deep-learning" land on the same record.
func (s *TagService) Create(ctx context.Context, name, color string) (*domain.Tag, error) {
	name = util.NormalizeTagName(name)
	if name == "" {
		return nil, store.ErrInvalidInput.WithMessage("tag name is required")
	}

	tag, err := s.store.CreateTag(ctx, name, color)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

// Get returns one tag with its derived page-id set.
func (s *TagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.store.GetTag(ctx, id)
}

// List returns every tag.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// Update renames or recolors a tag. Empty fields are left unchanged.
func (s *TagService) Update(ctx context.Context, id int64, name, color string) error {
	if name != "" {
		name = util.NormalizeTagName(name)
		if name == "" {
			return store.ErrInvalidInput.WithMessage("tag name is invalid")
		}
	}

	if err := s.store.UpdateTag(ctx, id, name, color); err != nil {
		return err
	}

	s.logger.Info("tag updated", "tag_id", id)
	return nil
}

// Delete removes a tag record entirely, associations included. Pages the tag
// pointed at are untouched.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}

	s.logger.Info("tag deleted", "tag_id", id)
	return nil
}

// Bind associates pages with a tag, creating the tag on first use.
func (s *TagService) Bind(ctx context.Context, name string, pageIDs []int64) error {
	name = util.NormalizeTagName(name)
	if name == "" {
		return store.ErrInvalidInput.WithMessage("tag name is required")
	}
	if len(pageIDs) == 0 {
		return store.ErrInvalidInput.WithMessage("page ids are required")
	}
	return s.store.BindTag(ctx, name, pageIDs)
}

// Unbind removes page associations from a tag. Unbinding pages that were
// never bound, or from a tag that does not exist, is a no-op.
func (s *TagService) Unbind(ctx context.Context, name string, pageIDs []int64) error {
	name = util.NormalizeTagName(name)
	if name == "" {
		return store.ErrInvalidInput.WithMessage("tag name is required")
	}
	if len(pageIDs) == 0 {
		return store.ErrInvalidInput.WithMessage("page ids are required")
	}
	return s.store.UnbindTag(ctx, name, pageIDs)
}

// Apply runs a batch of binds and unbinds. Names are normalized first so a
// bind and unbind spelled differently still target the same record.
func (s *TagService) Apply(ctx context.Context, bind, unbind []domain.TagBinding) error {
	return s.store.ApplyTagBindings(ctx, normalizeBindings(bind), normalizeBindings(unbind))
}
