package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeNotificationStore records writes in memory
type fakeNotificationStore struct {
	created   []*models.Notification
	marks     map[uint]bool
	nextID    uint
	createErr error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{marks: make(map[uint]bool)}
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	n.ID = f.nextID
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationStore) CreateHotPostOnce(n *models.Notification, postCreatedAt time.Time, window time.Duration) (bool, error) {
	if time.Since(postCreatedAt) > window {
		return false, nil
	}
	if f.marks[n.PostID] {
		return false, nil
	}
	f.marks[n.PostID] = true
	return true, f.Create(n)
}

func (f *fakeNotificationStore) CountUnread(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) ListRecent(recipientID uint, limit int) ([]models.NotificationView, error) {
	return nil, nil
}

func (f *fakeNotificationStore) DeleteOwned(id, recipientID uint) error { return nil }

// fakeUserRepo serves lookups from a map
type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) CreateUser(user *models.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByLoginID(loginID string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) CountByLoginID(loginID string) (int64, error)             { return 0, nil }
func (f *fakeUserRepo) CountByNickname(nickname string) (int64, error)           { return 0, nil }
func (f *fakeUserRepo) CountByStudentNumber(studentNumber string) (int64, error) { return 0, nil }
func (f *fakeUserRepo) UpdateDeviceToken(userID uint, token string) error        { return nil }
func (f *fakeUserRepo) IncrementPostCount(userID uint) error                     { return nil }
func (f *fakeUserRepo) IncrementCommentCount(userID uint) error                  { return nil }

// fakePostRepo serves lookups from a map
type fakePostRepo struct {
	posts map[uint]*models.Post
}

func (f *fakePostRepo) CreatePost(post *models.Post) error { return nil }

func (f *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetPostsByBoardID(boardID uint, page, limit int) ([]models.Post, int64, error) {
	return nil, 0, nil
}
func (f *fakePostRepo) DeletePost(id uint) error                { return nil }
func (f *fakePostRepo) IncrementLikeCount(postID uint) error    { return nil }
func (f *fakePostRepo) DecrementLikeCount(postID uint) error    { return nil }
func (f *fakePostRepo) IncrementCommentCount(postID uint) error { return nil }
func (f *fakePostRepo) DecrementCommentCount(postID uint) error { return nil }

// fakeBoardRepo serves lookups from a map
type fakeBoardRepo struct {
	boards map[uint]*models.Board
}

func (f *fakeBoardRepo) GetAllBoards() ([]models.Board, error) { return nil, nil }

func (f *fakeBoardRepo) GetBoardByID(id uint) (*models.Board, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return board, nil
}

func (f *fakeBoardRepo) SeedDefaultBoards() error { return nil }

// fakePusher records pushed messages
type fakePusher struct {
	tokens []string
}

func (f *fakePusher) Push(deviceToken, title string, data map[string]string) error {
	f.tokens = append(f.tokens, deviceToken)
	return nil
}

type writerFixture struct {
	store    *fakeNotificationStore
	users    *fakeUserRepo
	posts    *fakePostRepo
	boards   *fakeBoardRepo
	registry *Registry
	pusher   *fakePusher
	writer   *Writer
}

func newWriterFixture() *writerFixture {
	f := &writerFixture{
		store: newFakeNotificationStore(),
		users: &fakeUserRepo{users: map[uint]*models.User{
			1: {ID: 1, Nickname: "alice", Role: models.RoleStudent},
			2: {ID: 2, Nickname: "bob", Role: models.RoleStudent},
			3: {ID: 3, Nickname: "visitor", Role: models.RoleGuest},
		}},
		posts: &fakePostRepo{posts: map[uint]*models.Post{
			10: {ID: 10, BoardID: 100, UserID: 2, CreatedAt: time.Now()},
			11: {ID: 11, BoardID: 101, UserID: 2, CreatedAt: time.Now()},
		}},
		boards: &fakeBoardRepo{boards: map[uint]*models.Board{
			100: {ID: 100, Category: models.BoardCategoryNormal},
			101: {ID: 101, Category: models.BoardCategoryAnonymous},
		}},
		registry: NewRegistry(),
		pusher:   &fakePusher{},
	}
	f.writer = NewWriter(f.store, f.users, f.posts, f.boards, f.registry, f.pusher)
	return f
}

func TestWriterSuppressesSelfNotification(t *testing.T) {
	f := newWriterFixture()
	ch := f.registry.Subscribe(1)

	err := f.writer.Notify(1, 1, models.ActionComment, models.TargetTypePost, 10, 10)

	require.NoError(t, err)
	assert.Empty(t, f.store.created, "self-notification must persist nothing")
	assert.Len(t, ch, 0, "self-notification must publish nothing")
	assert.Empty(t, f.pusher.tokens)
}

func TestWriterPersistsAndPublishes(t *testing.T) {
	f := newWriterFixture()
	ch := f.registry.Subscribe(2)

	err := f.writer.Notify(2, 1, models.ActionComment, models.TargetTypePost, 10, 10)
	require.NoError(t, err)

	require.Len(t, f.store.created, 1)
	n := f.store.created[0]
	assert.Equal(t, uint(2), n.RecipientID)
	assert.Equal(t, uint(1), n.ActorID)
	assert.False(t, n.IsRead)

	got := <-ch
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, models.ActionComment, got.Action)
	assert.Equal(t, "alice", got.ActorNickname)
	assert.Equal(t, uint(10), got.PostID)
	assert.Equal(t, 0, got.IsRead)
}

func TestWriterMasksActorOnAnonymousBoard(t *testing.T) {
	f := newWriterFixture()
	ch := f.registry.Subscribe(2)

	err := f.writer.Notify(2, 1, models.ActionComment, models.TargetTypePost, 11, 11)
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, models.AnonymousLabel, got.ActorNickname)
}

func TestWriterLabelsGuestActor(t *testing.T) {
	f := newWriterFixture()
	ch := f.registry.Subscribe(2)

	err := f.writer.Notify(2, 3, models.ActionComment, models.TargetTypePost, 10, 10)
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, models.GuestLabel, got.ActorNickname)
}

func TestWriterReturnsPersistFailure(t *testing.T) {
	f := newWriterFixture()
	f.store.createErr = errors.New("disk full")
	ch := f.registry.Subscribe(2)

	err := f.writer.Notify(2, 1, models.ActionComment, models.TargetTypePost, 10, 10)

	assert.Error(t, err)
	assert.Len(t, ch, 0, "nothing is published when the persist step fails")
}

func TestWriterPreservesPublishOrder(t *testing.T) {
	f := newWriterFixture()
	ch := f.registry.Subscribe(2)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.writer.Notify(2, 1, models.ActionComment, models.TargetTypePost, 10, 10))
	}

	var prev uint
	for i := 0; i < 5; i++ {
		got := <-ch
		assert.Greater(t, got.ID, prev)
		prev = got.ID
	}
}

func TestWriterPushesWhenRecipientOffline(t *testing.T) {
	f := newWriterFixture()
	f.users.users[2].DeviceToken = "device-2"

	err := f.writer.Notify(2, 1, models.ActionComment, models.TargetTypePost, 10, 10)
	require.NoError(t, err)

	require.Len(t, f.store.created, 1, "durable copy is written regardless")
	assert.Equal(t, []string{"device-2"}, f.pusher.tokens)
}

func TestWriterSkipsPushWhenStreamIsLive(t *testing.T) {
	f := newWriterFixture()
	f.users.users[2].DeviceToken = "device-2"
	f.registry.Subscribe(2)

	require.NoError(t, f.writer.Notify(2, 1, models.ActionComment, models.TargetTypePost, 10, 10))

	assert.Empty(t, f.pusher.tokens)
}

func TestWriterHotPostIsCreatedAtMostOnce(t *testing.T) {
	f := newWriterFixture()

	require.NoError(t, f.writer.NotifyHotPost(10, 1))
	require.NoError(t, f.writer.NotifyHotPost(10, 3))

	require.Len(t, f.store.created, 1)
	n := f.store.created[0]
	assert.Equal(t, models.ActionHotPost, n.Action)
	assert.Equal(t, uint(2), n.RecipientID, "hot-post notification goes to the post author")
}

func TestWriterHotPostRespectsEligibilityWindow(t *testing.T) {
	f := newWriterFixture()
	f.posts.posts[10].CreatedAt = time.Now().Add(-25 * time.Hour)

	require.NoError(t, f.writer.NotifyHotPost(10, 1))

	assert.Empty(t, f.store.created, "no hot-post notification after the window elapsed")
}

func TestWriterHotPostIgnoresAuthorSelfLike(t *testing.T) {
	f := newWriterFixture()

	require.NoError(t, f.writer.NotifyHotPost(10, 2)) // author likes own post

	assert.Empty(t, f.store.created)
	assert.False(t, f.store.marks[10], "the at-most-once guard must not be consumed")
}
