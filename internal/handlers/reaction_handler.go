package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/notify"
	"github.com/minseo-lab/daon/backend/internal/repositories"
)

// HotPostThreshold is the like count at which a post is announced to its
// author as hot.
const HotPostThreshold = 10

// ReactionHandler handles HTTP requests related to post likes
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
	notifier           *notify.Writer
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository, notifier *notify.Writer) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
		notifier:           notifier,
	}
}

// RegisterReactionRoutes registers like-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes/count", h.GetLikeCount)
}

// LikePost records a like. When the like lifts the post's count to the hot
// threshold, the author is notified; the at-most-once guard and the
// eligibility window live in the store, so this call is safe to repeat.
func (h *ReactionHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(uint(postID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	reaction := &models.Reaction{PostID: uint(postID), UserID: currentUserID}
	created, err := h.reactionRepository.CreateReaction(reaction)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !created {
		return echo.NewHTTPError(http.StatusConflict, "Post already liked by this user")
	}

	if err := h.postRepository.IncrementLikeCount(uint(postID)); err != nil {
		log.Printf("failed to increment like count for post %d: %v", postID, err)
	}

	count, err := h.reactionRepository.CountByPostID(uint(postID))
	if err == nil && count >= HotPostThreshold {
		if err := h.notifier.NotifyHotPost(uint(postID), currentUserID); err != nil {
			log.Printf("failed to write hot-post notification for post %d: %v", postID, err)
		}
	}

	return c.JSON(http.StatusCreated, reaction)
}

// UnlikePost removes the caller's like from a post
func (h *ReactionHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	removed, err := h.reactionRepository.DeleteReaction(uint(postID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "Like not found")
	}

	if err := h.postRepository.DecrementLikeCount(uint(postID)); err != nil {
		log.Printf("failed to decrement like count for post %d: %v", postID, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetLikeCount returns the like count of a post
func (h *ReactionHandler) GetLikeCount(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	count, err := h.reactionRepository.CountByPostID(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
