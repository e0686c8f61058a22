package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/application/service"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests. Bills are immutable, so
// the handler exposes no update or delete endpoints.
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles listing bills with filters
func (h *BillHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	filters := &service.BillFilters{}

	if entityIDStr := c.Query("entity_id"); entityIDStr != "" {
		entityID, err := uuid.Parse(entityIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid entity ID")
			return
		}
		filters.EntityID = &entityID
	}
	if t := c.Query("entity_type"); t != "" {
		entityType, err := enum.ParseEntityType(t)
		if err != nil {
			response.BadRequest(c, "Invalid entity type")
			return
		}
		filters.EntityType = &entityType
	}
	if t := c.Query("bill_type"); t != "" {
		billType, err := enum.ParseBillType(t)
		if err != nil {
			response.BadRequest(c, "Invalid bill type")
			return
		}
		filters.BillType = &billType
	}

	startDate, endDate, err := ParseDateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	filters.StartDate = startDate
	filters.EndDate = endDate

	ctx := superAdminContext(c, isSuperAdmin)

	result, err := h.billService.ListBills(ctx, *userID, params, filters, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Create handles creating a bill
func (h *BillHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		EntityID      uuid.UUID `json:"entity_id" binding:"required"`
		EntityType    string    `json:"entity_type" binding:"required"`
		BillType      string    `json:"bill_type" binding:"required"`
		TotalAmount   float64   `json:"total_amount" binding:"required"`
		PaidAmount    float64   `json:"paid_amount"`
		PaymentMethod string    `json:"payment_method"`
		Notes         *string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		UserID:        *userID,
		EntityID:      req.EntityID,
		EntityType:    enum.EntityType(req.EntityType),
		BillType:      enum.BillType(req.BillType),
		TotalAmount:   ToCents(req.TotalAmount),
		PaidAmount:    ToCents(req.PaidAmount),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles getting a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}
