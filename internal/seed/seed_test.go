package seed

import (
	"testing"

	"quill/internal/database"
	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeed_PopulatesAllTables(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{NumUsers: 5, NumPosts: 20, NumComments: 10})
	require.NoError(t, err)

	var users, groups, posts, comments, follows int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Group{}).Count(&groups).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&follows).Error)

	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(len(groupSeeds)), groups)
	assert.Equal(t, int64(20), posts)
	assert.Equal(t, int64(10), comments)
	assert.Greater(t, follows, int64(0))
}

func TestSeed_FollowMeshHasNoSelfFollows(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 8, NumPosts: 5}))

	var selfFollows int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("user_id = author_id").Count(&selfFollows).Error)
	assert.Equal(t, int64(0), selfFollows)
}

func TestGroups_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	_, err := Groups(db)
	require.NoError(t, err)
	_, err = Groups(db)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Group{}).Count(&count).Error)
	assert.Equal(t, int64(len(groupSeeds)), count)
}

func TestSeed_CleanRemovesExistingRows(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumPosts: 6}))
	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 4, ShouldClean: true}))

	var users, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(2), users)
	assert.Equal(t, int64(4), posts)
}
