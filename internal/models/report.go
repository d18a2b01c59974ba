package models

import "time"

// Report statuses
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// Report is a moderation report filed against a post or comment
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID uint      `json:"reporter_id" gorm:"index"`
	TargetType string    `json:"target_type" gorm:"size:20"` // post, comment
	TargetID   uint      `json:"target_id"`
	Reason     string    `json:"reason" gorm:"size:500"`
	Status     string    `json:"status" gorm:"size:20;default:open;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=post comment"`
	TargetID   uint   `json:"target_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,min=1,max=500"`
}
