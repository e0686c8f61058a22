package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/application/service"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
	"github.com/sirupsen/logrus"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportStatement handles downloading an entity statement as an Excel file
func (h *ReportHandler) ExportStatement(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing entity_id")
		return
	}

	entityType, err := enum.ParseEntityType(c.Query("entity_type"))
	if err != nil {
		response.BadRequest(c, "Invalid or missing entity_type")
		return
	}

	startDate, endDate, err := ParseDateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range")
		return
	}

	f, filename, err := h.reportService.ExportStatement(c.Request.Context(), entityID, entityType, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to stream statement export")
	}
}
