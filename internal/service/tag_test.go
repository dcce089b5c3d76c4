package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webvault/webvault-server/internal/domain"
	"github.com/webvault/webvault-server/internal/store"
)

func TestTagCreate_NormalizesName(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "Deep Learning", "#112233")
	require.NoError(t, err)
	assert.Equal(t, "deep-learning", tag.Name)

	// A differently spelled duplicate collides after normalization.
	_, err = env.tags.Create(ctx, "deep_learning", "")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = env.tags.Create(ctx, "  ", "")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestTagBindUnbind(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	// Bind creates the tag on first use.
	require.NoError(t, env.tags.Bind(ctx, "Slow Reads", []int64{1, 2, 3}))

	tags, err := env.tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "slow-reads", tags[0].Name)
	assert.Equal(t, []int64{1, 2, 3}, tags[0].PageIDs)

	require.NoError(t, env.tags.Unbind(ctx, "slow_reads", []int64{2}))

	tag, err := env.tags.Get(ctx, tags[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, tag.PageIDs)
}

func TestTagBindUnbind_Validation(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	assert.ErrorIs(t, env.tags.Bind(ctx, "", []int64{1}), store.ErrInvalidInput)
	assert.ErrorIs(t, env.tags.Bind(ctx, "golang", nil), store.ErrInvalidInput)
	assert.ErrorIs(t, env.tags.Unbind(ctx, "", []int64{1}), store.ErrInvalidInput)
	assert.ErrorIs(t, env.tags.Unbind(ctx, "golang", nil), store.ErrInvalidInput)
}

func TestTagApply(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, env.tags.Bind(ctx, "golang", []int64{1, 2}))

	err := env.tags.Apply(ctx,
		[]domain.TagBinding{{TagName: "Databases", PageIDs: []int64{2}}},
		[]domain.TagBinding{{TagName: "GOLANG", PageIDs: []int64{1}}},
	)
	require.NoError(t, err)

	tags, err := env.tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "databases", tags[0].Name)
	assert.Equal(t, []int64{2}, tags[0].PageIDs)
	assert.Equal(t, "golang", tags[1].Name)
	assert.Equal(t, []int64{2}, tags[1].PageIDs)
}

func TestTagUpdateDelete(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	tag, err := env.tags.Create(ctx, "golang", "#00ADD8")
	require.NoError(t, err)

	require.NoError(t, env.tags.Update(ctx, tag.ID, "Go Lang", ""))

	updated, err := env.tags.Get(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-lang", updated.Name)
	assert.Equal(t, "#00ADD8", updated.Color)

	require.NoError(t, env.tags.Delete(ctx, tag.ID))
	_, err = env.tags.Get(ctx, tag.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
