package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_FollowAndUnfollow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createUser(t, db, "reader")
	author := createUser(t, db, "author")

	following, err := repo.IsFollowing(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, repo.Follow(ctx, reader.ID, author.ID))

	following, err = repo.IsFollowing(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// direction matters: the author does not follow the reader back
	following, err = repo.IsFollowing(ctx, author.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, repo.Unfollow(ctx, reader.ID, author.ID))

	count, err := repo.CountBetween(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFollowRepository_DuplicateFollowIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createUser(t, db, "reader")
	author := createUser(t, db, "author")

	require.NoError(t, repo.Follow(ctx, reader.ID, author.ID))
	require.NoError(t, repo.Follow(ctx, reader.ID, author.ID))

	count, err := repo.CountBetween(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepository_UnfollowMissingIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createUser(t, db, "reader")
	author := createUser(t, db, "author")

	assert.NoError(t, repo.Unfollow(ctx, reader.ID, author.ID))
}

func TestFollowRepository_FollowThenImmediateUnfollow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createUser(t, db, "reader")
	author := createUser(t, db, "author")

	require.NoError(t, repo.Follow(ctx, reader.ID, author.ID))
	require.NoError(t, repo.Unfollow(ctx, reader.ID, author.ID))

	count, err := repo.CountBetween(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
