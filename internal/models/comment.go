package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply on a post. Comments are immutable once created;
// there is no edit or delete surface for them.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"not null" json:"text"`
	AuthorID  uint           `gorm:"not null" json:"author_id"`
	PostID    uint           `gorm:"not null" json:"post_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Post      Post           `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
