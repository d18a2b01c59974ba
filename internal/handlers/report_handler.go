package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/repositories"
)

// ReportHandler handles moderation reports
type ReportHandler struct {
	reportRepository repositories.ReportRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{reportRepository: reportRepo}
}

// RegisterReportRoutes registers the user-facing report route
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.CreateReport)
}

// RegisterAdminRoutes registers moderation routes (admin-gated group)
func (h *ReportHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/reports", h.GetReports)
	g.PUT("/reports/:id/resolve", h.ResolveReport)
}

// CreateReport files a report against a post or comment
func (h *ReportHandler) CreateReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report := &models.Report{
		ReporterID: currentUserID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Status:     models.ReportStatusOpen,
	}
	if err := h.reportRepository.CreateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, report)
}

// GetReports lists reports, optionally filtered by status
func (h *ReportHandler) GetReports(c echo.Context) error {
	reports, err := h.reportRepository.ListByStatus(c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reports)
}

// ResolveReport marks a report as resolved
func (h *ReportHandler) ResolveReport(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	if err := h.reportRepository.Resolve(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
