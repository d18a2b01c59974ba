package repositories

import (
	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByLoginID(loginID string) (*models.User, error)
	CountByLoginID(loginID string) (int64, error)
	CountByNickname(nickname string) (int64, error)
	CountByStudentNumber(studentNumber string) (int64, error)
	UpdateDeviceToken(userID uint, token string) error
	IncrementPostCount(userID uint) error
	IncrementCommentCount(userID uint) error
}

type postgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new UserRepository backed by PostgreSQL
func NewPostgresUserRepository(db *gorm.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *postgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) GetUserByLoginID(loginID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("login_id = ?", loginID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) CountByLoginID(loginID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("login_id = ?", loginID).Count(&count).Error
	return count, err
}

func (r *postgresUserRepository) CountByNickname(nickname string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("nickname = ?", nickname).Count(&count).Error
	return count, err
}

func (r *postgresUserRepository) CountByStudentNumber(studentNumber string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("student_number = ?", studentNumber).Count(&count).Error
	return count, err
}

func (r *postgresUserRepository) UpdateDeviceToken(userID uint, token string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("device_token", token).Error
}

func (r *postgresUserRepository) IncrementPostCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("post_count", gorm.Expr("post_count + 1")).Error
}

func (r *postgresUserRepository) IncrementCommentCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error
}
