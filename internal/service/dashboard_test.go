package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

func TestDashboardHome(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	research, err := env.folders.Create(ctx, "Research")
	require.NoError(t, err)
	reading, err := env.folders.Create(ctx, "Reading")
	require.NoError(t, err)

	env.archivePage(t, research.ID, "a")
	env.archivePage(t, research.ID, "b")
	env.archivePage(t, reading.ID, "c")

	gone := env.archivePage(t, reading.ID, "gone")
	require.NoError(t, env.pages.SoftDelete(ctx, gone.ID))

	stats, err := env.dashboard.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPages)
	assert.Equal(t, 2, stats.TotalFolders)
	assert.Equal(t, 1, stats.DeletedPages)
	assert.Equal(t, 0, stats.DeletedFolders)

	require.NotEmpty(t, stats.TopFolders)
	assert.Equal(t, research.ID, stats.TopFolders[0].ID)
	assert.Equal(t, 2, stats.TopFolders[0].PageCount)

	// Recent strip shows by default.
	assert.Len(t, stats.RecentPages, 3)
}

func TestDashboardHome_RecentStripHidden(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "Research")
	require.NoError(t, err)
	env.archivePage(t, folder.ID, "a")

	require.NoError(t, env.settings.SetShouldShowRecent(ctx, false))

	stats, err := env.dashboard.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPages)
	assert.Nil(t, stats.RecentPages)
}

func TestSettingsAITagConfig(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	assert.ErrorIs(t, env.settings.SetAITagConfig(ctx, nil), store.ErrInvalidInput)

	want := &domain.AITagConfig{Type: "cloudflare", TagLanguage: "en"}
	require.NoError(t, env.settings.SetAITagConfig(ctx, want))

	got, err := env.settings.AITagConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.TagLanguage, got.TagLanguage)
}

func TestShowcaseNextWraps(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	folder, err := env.folders.Create(ctx, "Research")
	require.NoError(t, err)

	first := env.archivePage(t, folder.ID, "first")
	env.archivePage(t, folder.ID, "middle")
	last := env.archivePage(t, folder.ID, "last")

	require.NoError(t, env.showcase.SetShowcased(ctx, first.ID, true))
	require.NoError(t, env.showcase.SetShowcased(ctx, last.ID, true))

	next, err := env.showcase.Next(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, last.ID, next.ID)

	// Past the end the circle wraps.
	next, err = env.showcase.Next(ctx, last.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, next.ID)

	// Non-showcased pages are invisible through the public surface.
	middlePages, err := env.showcase.List(ctx, store.DefaultPageParams())
	require.NoError(t, err)
	assert.Equal(t, 2, middlePages.Total)
}
