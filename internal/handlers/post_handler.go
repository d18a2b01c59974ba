package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	boardRepository repositories.BoardRepository
	userRepository  repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, boardRepo repositories.BoardRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		boardRepository: boardRepo,
		userRepository:  userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/boards/:board_id/posts", h.CreatePost)
	g.GET("/boards/:board_id/posts", h.GetPostsByBoard)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// authorName resolves the display name of a post's author against the
// board's category
func (h *PostHandler) authorName(boardCategory string, authorID uint) string {
	if boardCategory == models.BoardCategoryAnonymous {
		return models.AnonymousLabel
	}
	author, err := h.userRepository.GetUserByID(authorID)
	if err != nil {
		return models.AnonymousLabel
	}
	return models.DisplayName(boardCategory, author.Role, author.Nickname)
}

// CreatePost creates a new post on a board
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	boardID, err := strconv.ParseUint(c.Param("board_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid board ID")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify board exists
	if _, err := h.boardRepository.GetBoardByID(uint(boardID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Board not found")
	}

	post := &models.Post{
		BoardID: uint(boardID),
		UserID:  currentUserID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.userRepository.IncrementPostCount(currentUserID)

	return c.JSON(http.StatusCreated, post)
}

// GetPostsByBoard returns paginated posts of a board, authors masked on
// anonymous boards
func (h *PostHandler) GetPostsByBoard(c echo.Context) error {
	boardID, err := strconv.ParseUint(c.Param("board_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid board ID")
	}

	board, err := h.boardRepository.GetBoardByID(uint(boardID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Board not found")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, total, err := h.postRepository.GetPostsByBoardID(uint(boardID), page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]models.PostView, len(posts))
	for i, post := range posts {
		views[i] = models.PostView{
			Post:           post,
			AuthorNickname: h.authorName(board.Category, post.UserID),
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"posts": views,
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// GetPost returns one post, author masked on anonymous boards
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	category := models.BoardCategoryNormal
	if board, err := h.boardRepository.GetBoardByID(post.BoardID); err == nil {
		category = board.Category
	}

	return c.JSON(http.StatusOK, models.PostView{
		Post:           *post,
		AuthorNickname: h.authorName(category, post.UserID),
	})
}

// DeletePost deletes a post owned by the caller (admins may delete any)
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
