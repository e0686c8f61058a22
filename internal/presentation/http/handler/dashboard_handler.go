package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mwangaza/dukahub-api/internal/application/service"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
)

// DashboardHandler serves the shop overview screen.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the dashboard counters and recent activity for the active
// shop. Super admins get the platform-wide view instead.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := superAdminContext(c, IsSuperAdmin(c))

	stats, err := h.dashboardService.GetDashboardStats(ctx, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
