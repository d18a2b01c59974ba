package repositories

import (
	"github.com/minseo-lab/daon/backend/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for moderation report operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	ListByStatus(status string) ([]models.Report, error)
	Resolve(id uint) error
}

type postgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a new ReportRepository backed by PostgreSQL
func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *postgresReportRepository) ListByStatus(status string) ([]models.Report, error) {
	var reports []models.Report
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&reports).Error
	return reports, err
}

func (r *postgresReportRepository) Resolve(id uint) error {
	return r.db.Model(&models.Report{}).Where("id = ?", id).
		Update("status", models.ReportStatusResolved).Error
}
