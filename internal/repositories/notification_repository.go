package repositories

import (
	"time"

	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository defines the interface for durable notification
// storage. Mark-read deletes the row, so unread-count is a plain row count.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// CreateHotPostOnce persists a hot-post notification at most once per
	// post and only while the post is younger than window. The returned
	// bool reports whether a row was actually written.
	CreateHotPostOnce(notification *models.Notification, postCreatedAt time.Time, window time.Duration) (bool, error)
	CountUnread(recipientID uint) (int64, error)
	ListRecent(recipientID uint, limit int) ([]models.NotificationView, error)
	DeleteOwned(id, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// CreateHotPostOnce makes the threshold-crossing announcement atomic: the
// guard row insert and the notification insert share one transaction, so
// concurrent likes that both observe the threshold cannot double-notify.
func (r *postgresNotificationRepository) CreateHotPostOnce(notification *models.Notification, postCreatedAt time.Time, window time.Duration) (bool, error) {
	if time.Since(postCreatedAt) > window {
		return false, nil
	}
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		mark := models.HotPostMark{PostID: notification.PostID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&mark)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already announced
		}
		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *postgresNotificationRepository) CountUnread(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

// notificationRow is the raw join row behind ListRecent
type notificationRow struct {
	ID            uint
	Action        string
	PostID        uint
	IsRead        bool
	CreatedAt     time.Time
	BoardID       uint
	BoardCategory string
	ActorNickname string
	ActorRole     string
}

// ListRecent returns the newest notifications joined with the actor's
// identity and the related post's board. The anonymization rule is applied
// here against the board's category as it is now, not as it was when the
// notification was written.
func (r *postgresNotificationRepository) ListRecent(recipientID uint, limit int) ([]models.NotificationView, error) {
	var rows []notificationRow
	err := r.db.Table("notifications").
		Select("notifications.id, notifications.action, notifications.post_id, notifications.is_read, notifications.created_at, "+
			"posts.board_id AS board_id, boards.category AS board_category, "+
			"users.nickname AS actor_nickname, users.role AS actor_role").
		Joins("LEFT JOIN posts ON posts.id = notifications.post_id").
		Joins("LEFT JOIN boards ON boards.id = posts.board_id").
		Joins("LEFT JOIN users ON users.id = notifications.actor_id").
		Where("notifications.recipient_id = ?", recipientID).
		Order("notifications.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, len(rows))
	for i, row := range rows {
		views[i] = models.NotificationView{
			ID:            row.ID,
			Action:        row.Action,
			ActorNickname: models.DisplayName(row.BoardCategory, row.ActorRole, row.ActorNickname),
			PostID:        row.PostID,
			IsRead:        row.IsRead,
			CreatedAt:     row.CreatedAt,
			BoardID:       row.BoardID,
		}
	}
	return views, nil
}

// DeleteOwned removes a notification iff it belongs to the caller. Deleting
// nothing is not an error: mark-read on a foreign or missing id must not
// leak whether the row exists.
func (r *postgresNotificationRepository) DeleteOwned(id, recipientID uint) error {
	return r.db.Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{}).Error
}
