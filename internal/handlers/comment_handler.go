package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/notify"
	"github.com/minseo-lab/daon/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	boardRepository   repositories.BoardRepository
	userRepository    repositories.UserRepository
	notifier          *notify.Writer
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository,
	boardRepo repositories.BoardRepository, userRepo repositories.UserRepository, notifier *notify.Writer) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		boardRepository:   boardRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment (or, with parent_id set, a reply) and
// notifies the post author or the parent comment's author. A notification
// write failure is logged but does not roll the comment back.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	var parent *models.Comment
	if req.ParentID != 0 {
		parent, err = h.commentRepository.GetCommentByID(req.ParentID)
		if err != nil || parent.PostID != uint(postID) {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
	}

	comment := &models.Comment{
		PostID:   uint(postID),
		UserID:   currentUserID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.IncrementCommentCount(uint(postID))
	go h.userRepository.IncrementCommentCount(currentUserID)

	if parent != nil {
		err = h.notifier.Notify(parent.UserID, currentUserID, models.ActionReply,
			models.TargetTypeComment, parent.ID, post.ID)
	} else {
		err = h.notifier.Notify(post.UserID, currentUserID, models.ActionComment,
			models.TargetTypePost, post.ID, post.ID)
	}
	if err != nil {
		log.Printf("failed to write notification for comment %d: %v", comment.ID, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments of a post, authors masked on
// anonymous boards
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	category := models.BoardCategoryNormal
	if board, err := h.boardRepository.GetBoardByID(post.BoardID); err == nil {
		category = board.Category
	}

	comments, err := h.commentRepository.GetCommentsByPostID(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]models.CommentView, len(comments))
	authorCache := make(map[uint]string)
	for i, comment := range comments {
		name, ok := authorCache[comment.UserID]
		if !ok {
			name = models.AnonymousLabel
			if category != models.BoardCategoryAnonymous {
				if author, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
					name = models.DisplayName(category, author.Role, author.Nickname)
				}
			}
			authorCache[comment.UserID] = name
		}
		views[i] = models.CommentView{Comment: comment, AuthorNickname: name}
	}

	return c.JSON(http.StatusOK, views)
}

// DeleteComment deletes a comment owned by the caller (admins may delete any)
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.DecrementCommentCount(comment.PostID)

	return c.NoContent(http.StatusNoContent)
}
