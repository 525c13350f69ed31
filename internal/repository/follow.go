package repository

import (
	"context"

	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow relationship operations.
// Follow and Unfollow are idempotent: a duplicate follow inserts nothing
// and removing a missing follow is a no-op.
type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID uint) error
	Unfollow(ctx context.Context, userID, authorID uint) error
	IsFollowing(ctx context.Context, userID, authorID uint) (bool, error)
	CountBetween(ctx context.Context, userID, authorID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, userID, authorID uint) error {
	follow := &models.Follow{UserID: userID, AuthorID: authorID}
	// ON CONFLICT DO NOTHING rides on the (user_id, author_id) unique
	// index so concurrent duplicate follows cannot error.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

func (r *followRepository) Unfollow(ctx context.Context, userID, authorID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	count, err := r.CountBetween(ctx, userID, authorID)
	return count > 0, err
}

func (r *followRepository) CountBetween(ctx context.Context, userID, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count, err
}
