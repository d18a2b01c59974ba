package models

import "time"

// Poll is attached to a post. At most one poll per post.
type Poll struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	PostID    uint         `json:"post_id" gorm:"uniqueIndex"`
	Question  string       `json:"question" gorm:"size:200"`
	CreatedAt time.Time    `json:"created_at"`
	Options   []PollOption `json:"options" gorm:"foreignKey:PollID"`
}

// PollOption is one selectable answer of a poll
type PollOption struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PollID uint   `json:"poll_id" gorm:"index"`
	Text   string `json:"text" gorm:"size:100"`
}

// PollVote records one user's vote. One per user per poll.
type PollVote struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	PollID   uint `json:"poll_id" gorm:"uniqueIndex:idx_poll_votes_poll_user"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_poll_votes_poll_user"`
	OptionID uint `json:"option_id" gorm:"index"`
}

// CreatePollRequest defines the request body for attaching a poll to a post
type CreatePollRequest struct {
	Question string   `json:"question" validate:"required,min=1,max=200"`
	Options  []string `json:"options" validate:"required,min=2,max=10,dive,required,max=100"`
}

// VoteRequest defines the request body for casting a vote
type VoteRequest struct {
	OptionID uint `json:"option_id" validate:"required"`
}

// PollResult is one option with its vote count
type PollResult struct {
	OptionID uint   `json:"option_id"`
	Text     string `json:"text"`
	Votes    int64  `json:"votes"`
}
