package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPollRepo serves polls from a map and records votes
type stubPollRepo struct {
	polls map[uint]*models.Poll
	votes []*models.PollVote
}

func (s *stubPollRepo) CreatePoll(poll *models.Poll) error { return nil }

func (s *stubPollRepo) GetPollByID(id uint) (*models.Poll, error) {
	poll, ok := s.polls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return poll, nil
}

func (s *stubPollRepo) GetPollByPostID(postID uint) (*models.Poll, error) {
	for _, poll := range s.polls {
		if poll.PostID == postID {
			return poll, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPollRepo) Vote(vote *models.PollVote) (bool, error) {
	for _, v := range s.votes {
		if v.PollID == vote.PollID && v.UserID == vote.UserID {
			return false, nil
		}
	}
	s.votes = append(s.votes, vote)
	return true, nil
}

func (s *stubPollRepo) GetResults(pollID uint) ([]models.PollResult, error) { return nil, nil }

func (s *stubPollRepo) GetUserVote(pollID, userID uint) (*models.PollVote, error) {
	return nil, gorm.ErrRecordNotFound
}

// poll 1 belongs to post 10 and owns options 11 and 12
func newPollFixture() (*stubPollRepo, *PollHandler) {
	repo := &stubPollRepo{polls: map[uint]*models.Poll{
		1: {ID: 1, PostID: 10, Question: "lunch menu?", Options: []models.PollOption{
			{ID: 11, PollID: 1, Text: "ramen"},
			{ID: 12, PollID: 1, Text: "curry"},
		}},
	}}
	posts := &stubPostRepo{posts: map[uint]*models.Post{
		10: {ID: 10, BoardID: 100, UserID: 2},
	}}
	return repo, NewPollHandler(repo, posts)
}

func newVoteContext(userID uint, pollID, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/polls/"+pollID+"/vote", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(pollID)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID, Role: models.RoleStudent})
	}
	return c, rec
}

func TestVoteRecordsOwnOption(t *testing.T) {
	repo, h := newPollFixture()
	c, rec := newVoteContext(1, "1", `{"option_id":11}`)

	require.NoError(t, h.Vote(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.votes, 1)
	assert.Equal(t, uint(1), repo.votes[0].PollID)
	assert.Equal(t, uint(11), repo.votes[0].OptionID)
}

func TestVoteRejectsForeignOption(t *testing.T) {
	repo, h := newPollFixture()
	c, _ := newVoteContext(1, "1", `{"option_id":999}`)

	err := h.Vote(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Empty(t, repo.votes, "a vote with another poll's option must not be recorded")
}

func TestVoteOnMissingPoll(t *testing.T) {
	_, h := newPollFixture()
	c, _ := newVoteContext(1, "7", `{"option_id":11}`)

	err := h.Vote(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestVoteTwiceConflicts(t *testing.T) {
	repo, h := newPollFixture()
	c, _ := newVoteContext(1, "1", `{"option_id":11}`)
	require.NoError(t, h.Vote(c))

	c2, _ := newVoteContext(1, "1", `{"option_id":12}`)
	err := h.Vote(c2)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Len(t, repo.votes, 1)
}
