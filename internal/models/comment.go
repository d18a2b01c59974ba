package models

import "time"

// Comment represents a comment on a post. A non-zero ParentID makes it a
// reply to another comment.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"` // author
	ParentID  uint      `json:"parent_id,omitempty" gorm:"index;default:0"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID uint   `json:"parent_id,omitempty"`
}

// CommentView is a comment joined with its author's display identity,
// masked on anonymous boards.
type CommentView struct {
	Comment
	AuthorNickname string `json:"author_nickname"`
}
