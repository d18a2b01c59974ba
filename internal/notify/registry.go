// Package notify holds the real-time notification core: the in-process
// pub/sub registry feeding open event streams, and the writer that persists
// notifications and publishes them to the registry.
package notify

import "sync"

// channelBuffer bounds the pending messages of one stream. Publish never
// blocks; a full buffer drops the live copy, the durable row still exists.
const channelBuffer = 32

// Payload is the display-ready projection of a notification pushed over a
// stream. It is computed once at publish time and never recomputed.
type Payload struct {
	Action        string `json:"action"`
	ActorNickname string `json:"actor_nickname"`
	PostID        uint   `json:"post_id"`
	IsRead        int    `json:"is_read"`
	ID            uint   `json:"id"`
}

// Registry maps recipient ids to their live delivery channel. One channel
// per recipient: a second subscribe closes and replaces the first, so the
// superseded stream observes the close and terminates instead of holding an
// orphaned mailbox. All map mutations and channel sends happen under one
// lock, which is what makes closing a channel here safe.
type Registry struct {
	mu       sync.Mutex
	channels map[uint]chan Payload
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{channels: make(map[uint]chan Payload)}
}

// Subscribe returns a fresh channel for the recipient, closing and replacing
// any existing one. Only the most recently connected stream receives pushes.
func (r *Registry) Subscribe(recipientID uint) chan Payload {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.channels[recipientID]; ok {
		close(old)
	}
	ch := make(chan Payload, channelBuffer)
	r.channels[recipientID] = ch
	return ch
}

// Unsubscribe removes the recipient's channel, but only if ch is still the
// current one: a session that was replaced by a newer subscribe must not
// tear down its successor. Idempotent.
func (r *Registry) Unsubscribe(recipientID uint, ch chan Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.channels[recipientID]; ok && current == ch {
		delete(r.channels, recipientID)
	}
}

// Publish enqueues the payload for the recipient without blocking. Returns
// false when the recipient has no open channel or its buffer is full; the
// live copy is then dropped and the durable row remains the source of truth.
func (r *Registry) Publish(recipientID uint, payload Payload) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[recipientID]
	if !ok {
		return false
	}
	select {
	case ch <- payload:
		return true
	default:
		return false
	}
}
