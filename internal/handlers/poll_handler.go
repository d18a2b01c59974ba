package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/repositories"
	"gorm.io/gorm"
)

// PollHandler handles HTTP requests related to polls
type PollHandler struct {
	pollRepository repositories.PollRepository
	postRepository repositories.PostRepository
}

// NewPollHandler creates a new PollHandler
func NewPollHandler(pollRepo repositories.PollRepository, postRepo repositories.PostRepository) *PollHandler {
	return &PollHandler{
		pollRepository: pollRepo,
		postRepository: postRepo,
	}
}

// RegisterPollRoutes registers poll-related routes
func (h *PollHandler) RegisterPollRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/poll", h.CreatePoll)
	g.GET("/posts/:post_id/poll", h.GetPoll)
	g.POST("/polls/:id/vote", h.Vote)
}

// CreatePoll attaches a poll to the caller's post
func (h *PollHandler) CreatePoll(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreatePollRequest
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
	if post.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the post author can attach a poll")
	}

	poll := &models.Poll{
		PostID:   uint(postID),
		Question: req.Question,
	}
	for _, text := range req.Options {
		poll.Options = append(poll.Options, models.PollOption{Text: text})
	}
	if err := h.pollRepository.CreatePoll(poll); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, poll)
}

// GetPoll returns a post's poll with results and the caller's own vote
func (h *PollHandler) GetPoll(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	poll, err := h.pollRepository.GetPollByPostID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results, err := h.pollRepository.GetResults(poll.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var votedOption uint
	if vote, err := h.pollRepository.GetUserVote(poll.ID, currentUserID); err == nil {
		votedOption = vote.OptionID
	}

	return c.JSON(http.StatusOK, echo.Map{
		"poll":         poll,
		"results":      results,
		"voted_option": votedOption,
	})
}

// Vote casts the caller's vote; voting twice on the same poll is rejected
func (h *PollHandler) Vote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pollID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid poll ID")
	}

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	poll, err := h.pollRepository.GetPollByID(uint(pollID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The option must be one of this poll's own; otherwise a vote cast with
	// a foreign option id would be counted in the other poll's results.
	validOption := false
	for _, option := range poll.Options {
		if option.ID == req.OptionID {
			validOption = true
			break
		}
	}
	if !validOption {
		return echo.NewHTTPError(http.StatusBadRequest, "Option does not belong to this poll")
	}

	vote := &models.PollVote{
		PollID:   uint(pollID),
		UserID:   currentUserID,
		OptionID: req.OptionID,
	}
	voted, err := h.pollRepository.Vote(vote)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !voted {
		return echo.NewHTTPError(http.StatusConflict, "Already voted on this poll")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}
