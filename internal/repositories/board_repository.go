package repositories

import (
	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
)

// BoardRepository defines the interface for board data operations
type BoardRepository interface {
	GetAllBoards() ([]models.Board, error)
	GetBoardByID(id uint) (*models.Board, error)
	SeedDefaultBoards() error
}

type postgresBoardRepository struct {
	db *gorm.DB
}

// NewPostgresBoardRepository creates a new BoardRepository backed by PostgreSQL
func NewPostgresBoardRepository(db *gorm.DB) BoardRepository {
	return &postgresBoardRepository{db: db}
}

func (r *postgresBoardRepository) GetAllBoards() ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Order("id").Find(&boards).Error
	return boards, err
}

func (r *postgresBoardRepository) GetBoardByID(id uint) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// SeedDefaultBoards inserts the default board set when the table is empty
func (r *postgresBoardRepository) SeedDefaultBoards() error {
	var count int64
	if err := r.db.Model(&models.Board{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []models.Board{
		{Name: "free", Category: models.BoardCategoryNormal, Description: "General discussion"},
		{Name: "anonymous", Category: models.BoardCategoryAnonymous, Description: "Anonymous posting, author identity is masked"},
		{Name: "notice", Category: models.BoardCategoryNormal, Description: "School announcements"},
	}
	return r.db.Create(&defaults).Error
}
