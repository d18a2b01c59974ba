package notify

import (
	"log"
	"strconv"
	"time"

	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/repositories"
)

// HotPostWindow is how long after its creation a post remains eligible for
// a hot-post notification.
const HotPostWindow = 24 * time.Hour

// Pusher delivers a push message to one device. Optional: a nil Pusher
// disables the push fallback.
type Pusher interface {
	Push(deviceToken, title string, data map[string]string) error
}

// Writer is the single entry point collaborators use to emit a notification.
// It persists first (durable, at-least-once via polling), then publishes to
// the registry (best-effort live), and falls back to a device push when the
// recipient has no open stream.
type Writer struct {
	store    repositories.NotificationRepository
	users    repositories.UserRepository
	posts    repositories.PostRepository
	boards   repositories.BoardRepository
	registry *Registry
	pusher   Pusher
}

// NewWriter creates a Writer. pusher may be nil.
func NewWriter(store repositories.NotificationRepository, users repositories.UserRepository,
	posts repositories.PostRepository, boards repositories.BoardRepository,
	registry *Registry, pusher Pusher) *Writer {
	return &Writer{
		store:    store,
		users:    users,
		posts:    posts,
		boards:   boards,
		registry: registry,
		pusher:   pusher,
	}
}

// Notify persists and publishes one notification. Self-notifications are a
// silent no-op. A persistence failure is returned to the caller; nothing
// after the persist step can fail the call.
func (w *Writer) Notify(recipientID, actorID uint, action, targetType string, targetID, postID uint) error {
	if recipientID == actorID {
		return nil
	}

	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		PostID:      postID,
	}
	if err := w.store.Create(n); err != nil {
		return err
	}

	w.deliver(recipientID, w.buildPayload(n))
	return nil
}

// NotifyHotPost announces that a post's like count reached the popularity
// threshold. At-most-once per post and the eligibility window are enforced
// atomically in the store, so callers may invoke this on every qualifying
// like. actorID is the liking user whose action crossed the threshold.
func (w *Writer) NotifyHotPost(postID, actorID uint) error {
	post, err := w.posts.GetPostByID(postID)
	if err != nil {
		return err
	}
	if post.UserID == actorID {
		return nil
	}

	n := &models.Notification{
		RecipientID: post.UserID,
		ActorID:     actorID,
		Action:      models.ActionHotPost,
		TargetType:  models.TargetTypePost,
		TargetID:    postID,
		PostID:      postID,
	}
	created, err := w.store.CreateHotPostOnce(n, post.CreatedAt, HotPostWindow)
	if err != nil || !created {
		return err
	}

	w.deliver(post.UserID, w.buildPayload(n))
	return nil
}

// buildPayload resolves the display identity for the live message. Lookup
// failures degrade to the anonymous label rather than failing the write:
// the durable row is already committed at this point.
func (w *Writer) buildPayload(n *models.Notification) Payload {
	name := models.AnonymousLabel
	if post, err := w.posts.GetPostByID(n.PostID); err == nil {
		category := models.BoardCategoryAnonymous
		if board, err := w.boards.GetBoardByID(post.BoardID); err == nil {
			category = board.Category
		}
		if category != models.BoardCategoryAnonymous {
			if actor, err := w.users.GetUserByID(n.ActorID); err == nil {
				name = models.DisplayName(category, actor.Role, actor.Nickname)
			}
		}
	}
	return Payload{
		Action:        n.Action,
		ActorNickname: name,
		PostID:        n.PostID,
		IsRead:        0,
		ID:            n.ID,
	}
}

// deliver publishes to the recipient's live channel; when no channel takes
// the message, it falls back to a best-effort device push. Neither path
// reports failure to the caller.
func (w *Writer) deliver(recipientID uint, payload Payload) {
	if w.registry.Publish(recipientID, payload) {
		return
	}
	if w.pusher == nil {
		return
	}
	recipient, err := w.users.GetUserByID(recipientID)
	if err != nil || recipient.DeviceToken == "" {
		return
	}
	data := map[string]string{
		"action":  payload.Action,
		"post_id": strconv.FormatUint(uint64(payload.PostID), 10),
		"id":      strconv.FormatUint(uint64(payload.ID), 10),
	}
	if err := w.pusher.Push(recipient.DeviceToken, payload.ActorNickname, data); err != nil {
		log.Printf("push delivery to user %d failed: %v", recipientID, err)
	}
}
