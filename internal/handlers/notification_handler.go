package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/notify"
	"github.com/minseo-lab/daon/backend/internal/repositories"
)

const (
	// defaultHeartbeat is the idle cadence of the stream's comment frames,
	// chosen to defeat intermediary proxy idle timeouts.
	defaultHeartbeat = 20 * time.Second
	// recentListLimit caps the polling list endpoint
	recentListLimit = 10
)

// NotificationHandler serves the live notification stream and the polling
// endpoints over the durable store.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	registry               *notify.Registry
	heartbeat              time.Duration
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, registry *notify.Registry) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		registry:               registry,
		heartbeat:              defaultHeartbeat,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.GET("/notifications/stream", h.StreamNotifications)
}

// StreamNotifications holds a text/event-stream response open and pushes
// every notification published for the caller, a heartbeat comment frame
// filling idle gaps. The recipient id is captured from the claims before
// the loop starts; nothing inside the loop touches the request context
// except its done channel.
func (h *NotificationHandler) StreamNotifications(c echo.Context) error {
	recipientID := getUserIDFromContext(c)
	if recipientID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ch := h.registry.Subscribe(recipientID)
	// Runs on every exit path; the channel guard inside Unsubscribe keeps a
	// replaced session from removing its successor's channel.
	defer h.registry.Unsubscribe(recipientID, ch)

	done := c.Request().Context().Done()
	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				// Replaced by a newer stream for the same recipient
				return nil
			}
			data, err := json.Marshal(payload)
			if err != nil {
				log.Printf("failed to serialize notification %d: %v", payload.ID, err)
				continue
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
				return nil
			}
			res.Flush()
		case <-time.After(h.heartbeat):
			if _, err := fmt.Fprint(res, ":heartbeat\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case <-done:
			return nil
		}
	}
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notificationRepository.CountUnread(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// GetNotifications returns the caller's most recent notifications, actor
// identities masked by the related board's current category
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	views, err := h.notificationRepository.ListRecent(currentUserID, recentListLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, views)
}

// MarkAsRead consumes a notification. Reading deletes the row; a missing or
// foreign id is still a success so the endpoint leaks nothing about other
// users' notifications.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.DeleteOwned(uint(notifID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}
