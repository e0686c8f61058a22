package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/application/service"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/middleware"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// TenantHandler exposes shop-workspace endpoints: the member-facing routes
// operate on the tenant resolved by the tenant middleware, the ListAllTenants
// and AssignUserToTenant routes are mounted behind the super-admin guard.
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// activeTenantID pulls the resolved tenant from the request context and
// rejects the request when no tenant was resolved.
func activeTenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return uuid.Nil, false
	}
	return tenantID, true
}

func memberPathID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return uuid.Nil, false
	}
	return userID, true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// Create registers a new shop owned by the current user. The slug is
// optional; the service derives one from the name when omitted.
func (h *TenantHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name     string                 `json:"name" binding:"required"`
		Slug     string                 `json:"slug"`
		Settings *entity.TenantSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &service.CreateTenantInput{
		Name:     req.Name,
		Slug:     req.Slug,
		OwnerID:  *userID,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tenant created successfully", gin.H{"tenant": tenant})
}

// GetCurrentTenant returns the shop resolved for this request.
func (h *TenantHandler) GetCurrentTenant(c *gin.Context) {
	tenantID, ok := activeTenantID(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant retrieved successfully", gin.H{"tenant": tenant})
}

// ListTenants returns the shops visible to the caller: every shop for super
// admins, otherwise only the caller's memberships.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := pageParams(c)

	var result *pagination.PaginatedResult[entity.Tenant]
	var err error
	if IsSuperAdmin(c) {
		result, err = h.tenantService.ListAllTenants(c.Request.Context(), params)
	} else {
		result, err = h.tenantService.GetUserTenants(c.Request.Context(), *userID, params)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Tenants retrieved successfully", result)
}

// UpdateTenant applies a partial update to the active shop.
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	tenantID, ok := activeTenantID(c)
	if !ok {
		return
	}

	var req struct {
		Name     string                 `json:"name"`
		Settings *entity.TenantSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), &service.UpdateTenantInput{
		ID:       tenantID,
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant updated successfully", gin.H{"tenant": tenant})
}

// ListMembers returns the active shop's member list.
func (h *TenantHandler) ListMembers(c *gin.Context) {
	tenantID, ok := activeTenantID(c)
	if !ok {
		return
	}

	members, err := h.tenantService.GetTenantMembers(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", gin.H{"members": members})
}

// InviteMember enrolls an existing user in the active shop.
func (h *TenantHandler) InviteMember(c *gin.Context) {
	tenantID, ok := activeTenantID(c)
	if !ok {
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tenantService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		TenantID: tenantID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member invited successfully", nil)
}

// RemoveMember drops a member from the active shop.
func (h *TenantHandler) RemoveMember(c *gin.Context) {
	tenantID, ok := activeTenantID(c)
	if !ok {
		return
	}
	userID, ok := memberPathID(c)
	if !ok {
		return
	}

	if err := h.tenantService.RemoveMember(c.Request.Context(), tenantID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}

// UpdateMemberRole changes a member's role within the active shop.
func (h *TenantHandler) UpdateMemberRole(c *gin.Context) {
	tenantID, ok := activeTenantID(c)
	if !ok {
		return
	}
	userID, ok := memberPathID(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tenantService.UpdateMemberRole(c.Request.Context(), tenantID, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// ListAllTenants returns every shop on the platform. Super-admin only.
func (h *TenantHandler) ListAllTenants(c *gin.Context) {
	result, err := h.tenantService.ListAllTenants(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "All tenants retrieved successfully", result)
}

// AssignUserToTenant enrolls a user in any shop. Super-admin only.
func (h *TenantHandler) AssignUserToTenant(c *gin.Context) {
	var req struct {
		TenantID uuid.UUID `json:"tenant_id" binding:"required"`
		UserID   uuid.UUID `json:"user_id" binding:"required"`
		Role     string    `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tenantService.AssignUserToTenant(c.Request.Context(), &service.AssignUserToTenantInput{
		TenantID: req.TenantID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User assigned to tenant successfully", nil)
}
