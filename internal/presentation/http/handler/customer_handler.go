package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/application/service"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	balanceService  *service.BalanceService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, balanceService *service.BalanceService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, balanceService: balanceService}
}

// List handles listing customers (supports both page-based and cursor-based pagination)
func (h *CustomerHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	search := c.Query("search")
	isSuperAdmin := IsSuperAdmin(c)

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, *userID, search, isSuperAdmin)
		return
	}

	// Default to page-based pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var customerType *enum.CustomerType
	if t := c.Query("type"); t != "" {
		ct := enum.CustomerType(t)
		if !ct.IsValid() {
			response.BadRequest(c, "Invalid customer type")
			return
		}
		customerType = &ct
	}

	ctx := superAdminContext(c, isSuperAdmin)

	result, err := h.customerService.ListCustomers(ctx, *userID, params, customerType, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// listWithCursor handles listing customers with cursor-based pagination
func (h *CustomerHandler) listWithCursor(c *gin.Context, userID uuid.UUID, search string, isSuperAdmin bool) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	params := &pagination.CursorParams{
		Cursor:    cursor,
		Direction: pagination.CursorDirection(direction),
		Limit:     limit,
	}

	ctx := superAdminContext(c, isSuperAdmin)

	result, err := h.customerService.ListCustomersWithCursor(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name           string  `json:"name" binding:"required"`
		Type           string  `json:"type"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Address        *string `json:"address"`
		Photo          *string `json:"photo"`
		OpeningBalance float64 `json:"opening_balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		UserID:         *userID,
		Name:           req.Name,
		Type:           enum.CustomerType(req.Type),
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Photo:          req.Photo,
		OpeningBalance: ToCents(req.OpeningBalance),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
		Photo    *string `json:"photo"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: isSuperAdmin,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Photo:        req.Photo,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Balance handles getting a customer's reconciled balance
func (h *CustomerHandler) Balance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), id, enum.EntityTypeCustomer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", balance)
}

// Statement handles getting a customer's transaction statement
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	startDate, endDate, err := ParseDateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	statement, err := h.balanceService.GetStatement(c.Request.Context(), id, enum.EntityTypeCustomer, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", statement)
}

// superAdminContext widens the tenant scope for super admins, optionally
// narrowing back to one tenant via the tenant_id query param
func superAdminContext(c *gin.Context, isSuperAdmin bool) context.Context {
	ctx := c.Request.Context()
	if !isSuperAdmin {
		return ctx
	}

	ctx = infraRepo.WithSkipTenantScope(ctx, true)
	if tenantIDStr := c.Query("tenant_id"); tenantIDStr != "" {
		if tenantID, err := uuid.Parse(tenantIDStr); err == nil {
			ctx = infraRepo.WithTenant(ctx, tenantID)
			ctx = infraRepo.WithSkipTenantScope(ctx, false)
		}
	}
	return ctx
}

// WholesalerHandler handles wholesaler-related HTTP requests
type WholesalerHandler struct {
	wholesalerService *service.WholesalerService
	balanceService    *service.BalanceService
}

// NewWholesalerHandler creates a new wholesaler handler
func NewWholesalerHandler(wholesalerService *service.WholesalerService, balanceService *service.BalanceService) *WholesalerHandler {
	return &WholesalerHandler{wholesalerService: wholesalerService, balanceService: balanceService}
}

// List handles listing wholesalers
func (h *WholesalerHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	ctx := superAdminContext(c, isSuperAdmin)

	result, err := h.wholesalerService.ListWholesalers(ctx, *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Wholesalers retrieved successfully", result)
}

// Create handles creating a wholesaler
func (h *WholesalerHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name           string  `json:"name" binding:"required"`
		ShopName       *string `json:"shopname"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Address        *string `json:"address"`
		OpeningBalance float64 `json:"opening_balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	wholesaler, err := h.wholesalerService.CreateWholesaler(c.Request.Context(), &service.CreateWholesalerInput{
		UserID:         *userID,
		Name:           req.Name,
		ShopName:       req.ShopName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		OpeningBalance: ToCents(req.OpeningBalance),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Wholesaler created successfully", wholesaler)
}

// Get handles getting a single wholesaler
func (h *WholesalerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid wholesaler ID")
		return
	}

	wholesaler, err := h.wholesalerService.GetWholesaler(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wholesaler retrieved successfully", wholesaler)
}

// Update handles updating a wholesaler
func (h *WholesalerHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid wholesaler ID")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		ShopName *string `json:"shopname"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	wholesaler, err := h.wholesalerService.UpdateWholesaler(c.Request.Context(), &service.UpdateWholesalerInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: isSuperAdmin,
		Name:         req.Name,
		ShopName:     req.ShopName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wholesaler updated successfully", wholesaler)
}

// Delete handles deleting a wholesaler
func (h *WholesalerHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid wholesaler ID")
		return
	}

	if err := h.wholesalerService.DeleteWholesaler(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Balance handles getting a wholesaler's reconciled balance
func (h *WholesalerHandler) Balance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid wholesaler ID")
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), id, enum.EntityTypeWholesaler)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", balance)
}

// Statement handles getting a wholesaler's transaction statement
func (h *WholesalerHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid wholesaler ID")
		return
	}

	startDate, endDate, err := ParseDateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	statement, err := h.balanceService.GetStatement(c.Request.Context(), id, enum.EntityTypeWholesaler, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", statement)
}
