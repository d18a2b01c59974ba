package repositories

import (
	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for post like operations
type ReactionRepository interface {
	// CreateReaction inserts a like. Returns false when the user had
	// already liked the post (the unique index absorbs the duplicate).
	CreateReaction(reaction *models.Reaction) (bool, error)
	DeleteReaction(postID, userID uint) (bool, error)
	CountByPostID(postID uint) (int64, error)
	HasUserReacted(postID, userID uint) (bool, error)
}

type postgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new ReactionRepository backed by PostgreSQL
func NewPostgresReactionRepository(db *gorm.DB) ReactionRepository {
	return &postgresReactionRepository{db: db}
}

func (r *postgresReactionRepository) CreateReaction(reaction *models.Reaction) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(reaction)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresReactionRepository) DeleteReaction(postID, userID uint) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresReactionRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *postgresReactionRepository) HasUserReacted(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}
