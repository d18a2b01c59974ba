package models

import "time"

// Notification actions
const (
	ActionComment = "comment"
	ActionReply   = "reply"
	ActionHotPost = "hot_post"
)

// Notification target types
const (
	TargetTypePost    = "post"
	TargetTypeComment = "comment"
)

// Notification is the durable record of an event a recipient should be
// informed about. Reading one deletes it (mark-read is delete-on-read), so
// IsRead stays false for every stored row; the column is kept because the
// wire format exposes it.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Action      string    `json:"action" gorm:"size:20"`
	TargetType  string    `json:"target_type" gorm:"size:20"` // post, comment
	TargetID    uint      `json:"target_id"`
	PostID      uint      `json:"post_id"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
}

// HotPostMark is the at-most-once guard for hot-post notifications: inserting
// it with ON CONFLICT DO NOTHING decides atomically whether a post's
// popularity threshold crossing has already been announced.
type HotPostMark struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

// NotificationView is the read-side projection returned by the polling list
// endpoint: a notification joined with the actor's display identity and the
// related post's board, the anonymization rule applied at read time.
type NotificationView struct {
	ID            uint      `json:"id"`
	Action        string    `json:"action"`
	ActorNickname string    `json:"actor_nickname"`
	PostID        uint      `json:"post_id"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
	BoardID       uint      `json:"board_id"`
}
