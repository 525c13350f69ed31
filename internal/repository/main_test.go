package repository

import (
	"fmt"
	"testing"
	"time"

	"quill/internal/database"
	"quill/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s%d@example.com", username, userSeq),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "test group",
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, group *models.Group, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: createdAt,
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
