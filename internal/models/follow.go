package models

import "time"

// Follow is a directed subscription from one user to an author.
// The (user_id, author_id) pair is unique; self-follows are rejected
// at the handler level and the index backstops races.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
