package models

import "time"

// Post represents a bulletin board post (PostgreSQL)
type Post struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	BoardID      uint      `json:"board_id" gorm:"index"`
	UserID       uint      `json:"user_id" gorm:"index"` // author
	Title        string    `json:"title" gorm:"size:200"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"like_count" gorm:"default:0"`
	CommentCount int       `json:"comment_count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// PostView is a post joined with its author's display identity. On anonymous
// boards AuthorNickname carries the masked label, never the real nickname.
type PostView struct {
	Post
	AuthorNickname string `json:"author_nickname"`
}
