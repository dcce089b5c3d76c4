package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"errors"
	"time"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

// Settings keys. The stores table is a process-wide key-value namespace with
// typed accessors only; nothing in it references folders, pages or tags.
const (
	settingAdminToken       = "ADMIN_TOKEN"
	settingShouldShowRecent = "SHOULD_SHOW_RECENT"
	settingAITagConfig      = "AI_TAG_CONFIG"
)

func (s *Store) getSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM stores WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", store.ErrNotFound
	}
	return value, err
}

func (s *Store) upsertSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, formatTime(time.Now()))
	return err
}

// GetAdminTokenHash returns the stored admin token hash.
// Returns store.ErrNotFound when no admin token has been configured yet.
func (s *Store) GetAdminTokenHash(ctx context.Context) (string, error) {
	hash, err := s.getSetting(ctx, settingAdminToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", store.ErrNotFound.WithMessage("admin token not configured")
	}
	return hash, err
}

// SetAdminTokenHash stores the admin token hash once. The token is
// first-write-wins: replacing an existing token is a conflict, not an update.
func (s *Store) SetAdminTokenHash(ctx context.Context, hash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (key, value, updated_at) VALUES (?, ?, ?)`,
		settingAdminToken, hash, formatTime(time.Now()))
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("admin token already configured")
	}
	return err
}

// GetShouldShowRecent reports whether the dashboard shows the recent-saves
// strip. Defaults to true before the admin ever sets it.
func (s *Store) GetShouldShowRecent(ctx context.Context) (bool, error) {
	value, err := s.getSetting(ctx, settingShouldShowRecent)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// SetShouldShowRecent stores the recent-saves display flag.
func (s *Store) SetShouldShowRecent(ctx context.Context, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	return s.upsertSetting(ctx, settingShouldShowRecent, str)
}

// GetAITagConfig returns the automatic-tagging configuration, falling back to
// defaults when none was saved.
func (s *Store) GetAITagConfig(ctx context.Context) (*domain.AITagConfig, error) {
	value, err := s.getSetting(ctx, settingAITagConfig)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DefaultAITagConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg domain.AITagConfig
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetAITagConfig stores the automatic-tagging configuration as one JSON value.
func (s *Store) SetAITagConfig(ctx context.Context, cfg *domain.AITagConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.upsertSetting(ctx, settingAITagConfig, string(b))
}
