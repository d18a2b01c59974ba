package repositories

import (
	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PollRepository defines the interface for poll data operations
type PollRepository interface {
	CreatePoll(poll *models.Poll) error
	GetPollByID(id uint) (*models.Poll, error)
	GetPollByPostID(postID uint) (*models.Poll, error)
	// Vote records a vote; returns false when the user has already voted
	// on this poll.
	Vote(vote *models.PollVote) (bool, error)
	GetResults(pollID uint) ([]models.PollResult, error)
	GetUserVote(pollID, userID uint) (*models.PollVote, error)
}

type postgresPollRepository struct {
	db *gorm.DB
}

// NewPostgresPollRepository creates a new PollRepository backed by PostgreSQL
func NewPostgresPollRepository(db *gorm.DB) PollRepository {
	return &postgresPollRepository{db: db}
}

func (r *postgresPollRepository) CreatePoll(poll *models.Poll) error {
	return r.db.Create(poll).Error
}

func (r *postgresPollRepository) GetPollByID(id uint) (*models.Poll, error) {
	var poll models.Poll
	if err := r.db.Preload("Options").First(&poll, id).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *postgresPollRepository) GetPollByPostID(postID uint) (*models.Poll, error) {
	var poll models.Poll
	if err := r.db.Preload("Options").Where("post_id = ?", postID).First(&poll).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *postgresPollRepository) Vote(vote *models.PollVote) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(vote)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresPollRepository) GetResults(pollID uint) ([]models.PollResult, error) {
	var results []models.PollResult
	err := r.db.Table("poll_options").
		Select("poll_options.id AS option_id, poll_options.text, COUNT(poll_votes.id) AS votes").
		Joins("LEFT JOIN poll_votes ON poll_votes.option_id = poll_options.id").
		Where("poll_options.poll_id = ?", pollID).
		Group("poll_options.id, poll_options.text").
		Order("poll_options.id").
		Scan(&results).Error
	return results, err
}

func (r *postgresPollRepository) GetUserVote(pollID, userID uint) (*models.PollVote, error) {
	var vote models.PollVote
	if err := r.db.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}
