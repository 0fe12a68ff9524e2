package models

import "time"

// Post represents an entry in the community feed.
// The like/comment/share counters are persisted and never go negative; the
// like counter is only changed through an atomic store-level update.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	// Deleting a user who still owns posts is rejected by the store.
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author"`
	Likes    int  `gorm:"default:0" json:"likes"`
	Comments int  `gorm:"default:0" json:"comments"`
	Shares   int  `gorm:"default:0" json:"shares"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
