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

// PaymentHandler handles payment-related HTTP requests. Payments are
// append-only, so the handler exposes no update or delete endpoints.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles listing payments with filters
func (h *PaymentHandler) List(c *gin.Context) {
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

	filters := &service.PaymentFilters{}

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

	startDate, endDate, err := ParseDateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	filters.StartDate = startDate
	filters.EndDate = endDate

	ctx := superAdminContext(c, isSuperAdmin)

	result, err := h.paymentService.ListPayments(ctx, *userID, params, filters, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Create handles recording a payment
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		EntityID      uuid.UUID `json:"entity_id" binding:"required"`
		EntityType    string    `json:"entity_type" binding:"required"`
		Amount        float64   `json:"amount" binding:"required"`
		PaymentMethod string    `json:"payment_method"`
		Notes         *string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), &service.CreatePaymentInput{
		UserID:        *userID,
		EntityID:      req.EntityID,
		EntityType:    enum.EntityType(req.EntityType),
		Amount:        ToCents(req.Amount),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles getting a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}
