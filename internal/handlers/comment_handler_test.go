package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPostRepo serves posts from a map; the counter methods are no-ops
// because the handlers fire them on goroutines.
type stubPostRepo struct {
	posts map[uint]*models.Post
}

func (s *stubPostRepo) CreatePost(post *models.Post) error { return nil }

func (s *stubPostRepo) GetPostByID(id uint) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (s *stubPostRepo) GetPostsByBoardID(boardID uint, page, limit int) ([]models.Post, int64, error) {
	return nil, 0, nil
}
func (s *stubPostRepo) DeletePost(id uint) error                { return nil }
func (s *stubPostRepo) IncrementLikeCount(postID uint) error    { return nil }
func (s *stubPostRepo) DecrementLikeCount(postID uint) error    { return nil }
func (s *stubPostRepo) IncrementCommentCount(postID uint) error { return nil }
func (s *stubPostRepo) DecrementCommentCount(postID uint) error { return nil }

type stubBoardRepo struct {
	boards map[uint]*models.Board
}

func (s *stubBoardRepo) GetAllBoards() ([]models.Board, error) { return nil, nil }

func (s *stubBoardRepo) GetBoardByID(id uint) (*models.Board, error) {
	board, ok := s.boards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return board, nil
}

func (s *stubBoardRepo) SeedDefaultBoards() error { return nil }

type stubCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func (s *stubCommentRepo) CreateComment(comment *models.Comment) error {
	s.nextID++
	comment.ID = s.nextID
	s.comments[comment.ID] = comment
	return nil
}

func (s *stubCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (s *stubCommentRepo) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *stubCommentRepo) DeleteComment(id uint) error {
	delete(s.comments, id)
	return nil
}

type commentFixture struct {
	notifStore *stubNotificationRepo
	users      *stubUserRepo
	posts      *stubPostRepo
	boards     *stubBoardRepo
	comments   *stubCommentRepo
	registry   *notify.Registry
	handler    *CommentHandler
}

// user 2 owns post 10 on a normal board; user 1 and guest 3 interact with it
func newCommentFixture() *commentFixture {
	f := &commentFixture{
		notifStore: &stubNotificationRepo{},
		users:      newStubUserRepo(),
		posts: &stubPostRepo{posts: map[uint]*models.Post{
			10: {ID: 10, BoardID: 100, UserID: 2, CreatedAt: time.Now()},
		}},
		boards: &stubBoardRepo{boards: map[uint]*models.Board{
			100: {ID: 100, Category: models.BoardCategoryNormal},
		}},
		comments: &stubCommentRepo{comments: make(map[uint]*models.Comment)},
		registry: notify.NewRegistry(),
	}
	f.users.byID[1] = &models.User{ID: 1, Nickname: "alice", Role: models.RoleStudent}
	f.users.byID[2] = &models.User{ID: 2, Nickname: "bob", Role: models.RoleStudent}
	f.users.byID[3] = &models.User{ID: 3, Nickname: "visitor", Role: models.RoleGuest}

	notifier := notify.NewWriter(f.notifStore, f.users, f.posts, f.boards, f.registry, nil)
	f.handler = NewCommentHandler(f.comments, f.posts, f.boards, f.users, notifier)
	return f
}

func newCommentContext(userID uint, postID, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID+"/comments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("post_id")
	c.SetParamValues(postID)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID, Role: models.RoleStudent})
	}
	return c, rec
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	f := newCommentFixture()
	ch := f.registry.Subscribe(2)
	c, rec := newCommentContext(1, "10", `{"content":"nice post"}`)

	require.NoError(t, f.handler.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, f.notifStore.stored, 1)
	n := f.notifStore.stored[0]
	assert.Equal(t, uint(2), n.RecipientID)
	assert.Equal(t, uint(1), n.ActorID)
	assert.Equal(t, models.ActionComment, n.Action)
	assert.Equal(t, models.TargetTypePost, n.TargetType)
	assert.Equal(t, uint(10), n.PostID)

	payload := <-ch
	assert.Equal(t, models.ActionComment, payload.Action)
	assert.Equal(t, "alice", payload.ActorNickname)
	assert.Equal(t, uint(10), payload.PostID)
}

func TestCreateReplyNotifiesParentAuthor(t *testing.T) {
	f := newCommentFixture()
	parent := &models.Comment{PostID: 10, UserID: 1, Content: "first"}
	require.NoError(t, f.comments.CreateComment(parent))
	ch := f.registry.Subscribe(1)

	c, _ := newCommentContext(3, "10", `{"content":"welcome","parent_id":1}`)
	require.NoError(t, f.handler.CreateComment(c))

	require.Len(t, f.notifStore.stored, 1)
	n := f.notifStore.stored[0]
	assert.Equal(t, uint(1), n.RecipientID, "a reply notifies the parent comment's author, not the post author")
	assert.Equal(t, models.ActionReply, n.Action)
	assert.Equal(t, models.TargetTypeComment, n.TargetType)
	assert.Equal(t, parent.ID, n.TargetID)

	payload := <-ch
	assert.Equal(t, models.ActionReply, payload.Action)
	assert.Equal(t, models.GuestLabel, payload.ActorNickname)
}

func TestCreateCommentOnOwnPostIsSilent(t *testing.T) {
	f := newCommentFixture()
	c, rec := newCommentContext(2, "10", `{"content":"bump"}`)

	require.NoError(t, f.handler.CreateComment(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, f.notifStore.stored)
}

func TestCreateReplyRejectsForeignParent(t *testing.T) {
	f := newCommentFixture()
	f.posts.posts[11] = &models.Post{ID: 11, BoardID: 100, UserID: 2}
	other := &models.Comment{PostID: 11, UserID: 1, Content: "elsewhere"}
	require.NoError(t, f.comments.CreateComment(other))

	c, _ := newCommentContext(1, "10", `{"content":"reply","parent_id":1}`)
	err := f.handler.CreateComment(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateCommentSurvivesNotificationFailure(t *testing.T) {
	f := newCommentFixture()
	f.notifStore.createErr = errors.New("db down")
	c, rec := newCommentContext(1, "10", `{"content":"nice post"}`)

	require.NoError(t, f.handler.CreateComment(c))

	assert.Equal(t, http.StatusCreated, rec.Code, "a notification write failure must not fail the comment")
	require.Len(t, f.comments.comments, 1)
}
