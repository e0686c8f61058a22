package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mwangaza/dukahub-api/internal/application/service"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
)

// AdminHandler handles platform administration HTTP requests. All routes are
// restricted to super admins at the middleware level.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ProvisionShopkeeper handles creating a shopkeeper account with its own tenant
func (h *AdminHandler) ProvisionShopkeeper(c *gin.Context) {
	if !IsSuperAdmin(c) {
		response.Forbidden(c, "Super admin access required")
		return
	}

	var req struct {
		FirstName   string  `json:"first_name" binding:"required"`
		LastName    string  `json:"last_name" binding:"required"`
		Email       string  `json:"email" binding:"required,email"`
		ShopName    string  `json:"shop_name" binding:"required"`
		ShopAddress *string `json:"shop_address"`
		ShopPhone   *string `json:"shop_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx := infraRepo.WithSkipTenantScope(c.Request.Context(), true)

	result, err := h.adminService.ProvisionShopkeeper(ctx, &service.ProvisionShopkeeperInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		ShopName:    req.ShopName,
		ShopAddress: req.ShopAddress,
		ShopPhone:   req.ShopPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shopkeeper provisioned successfully", result)
}

// GetTenantUsage handles listing usage statistics across all tenants
func (h *AdminHandler) GetTenantUsage(c *gin.Context) {
	if !IsSuperAdmin(c) {
		response.Forbidden(c, "Super admin access required")
		return
	}

	ctx := infraRepo.WithSkipTenantScope(c.Request.Context(), true)

	usage, err := h.adminService.GetTenantUsage(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant usage retrieved successfully", usage)
}
