package repositories

import (
	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByBoardID(boardID uint, page, limit int) ([]models.Post, int64, error)
	DeletePost(id uint) error
	IncrementLikeCount(postID uint) error
	DecrementLikeCount(postID uint) error
	IncrementCommentCount(postID uint) error
	DecrementCommentCount(postID uint) error
}

type postgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostRepository backed by PostgreSQL
func NewPostgresPostRepository(db *gorm.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

func (r *postgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postgresPostRepository) GetPostsByBoardID(boardID uint, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("board_id = ?", boardID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("board_id = ?", boardID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *postgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *postgresPostRepository) IncrementLikeCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("like_count", gorm.Expr("like_count + 1")).Error
}

func (r *postgresPostRepository) DecrementLikeCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
		Update("like_count", gorm.Expr("like_count - 1")).Error
}

func (r *postgresPostRepository) IncrementCommentCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error
}

func (r *postgresPostRepository) DecrementCommentCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND comment_count > 0", postID).
		Update("comment_count", gorm.Expr("comment_count - 1")).Error
}
