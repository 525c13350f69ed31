package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single blog entry. AuthorID and CreatedAt are set once at
// creation and never change; edits may only touch Text, GroupID and Image.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"not null" json:"text"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID  *uint  `json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	// Image is the stored media path of the optional attachment.
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
