package models

import "time"

// Reaction represents a like on a post. One per user per post.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex:idx_reactions_post_user"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_reactions_post_user"`
	CreatedAt time.Time `json:"created_at"`
}
