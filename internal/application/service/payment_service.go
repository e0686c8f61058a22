package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/internal/infrastructure/cache"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

// PaymentService handles payment-related operations
type PaymentService struct {
	paymentRepo    repository.PaymentRepository
	customerRepo   repository.CustomerRepository
	wholesalerRepo repository.WholesalerRepository
	balanceCache   *cache.BalanceCache
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	wholesalerRepo repository.WholesalerRepository,
	balanceCache *cache.BalanceCache,
) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		customerRepo:   customerRepo,
		wholesalerRepo: wholesalerRepo,
		balanceCache:   balanceCache,
	}
}

// CreatePaymentInput represents the create payment input. Amount is in cents.
type CreatePaymentInput struct {
	UserID        uuid.UUID
	EntityID      uuid.UUID
	EntityType    enum.EntityType
	Amount        int64
	PaymentMethod enum.PaymentMethod
	Notes         *string
}

// CreatePayment records a settlement against an entity. Overpayment is
// allowed and surfaces as a negative raw due (an advance).
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
	}
	if !input.EntityType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid entity type")
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	if err := s.verifyEntity(ctx, input.EntityID, input.EntityType); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		TenantID:      tenantID,
		UserID:        input.UserID,
		EntityID:      input.EntityID,
		EntityType:    input.EntityType,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.balanceCache.Invalidate(ctx, tenantID, input.EntityID); err != nil {
		logrus.WithError(err).WithField("entity_id", input.EntityID).Warn("failed to invalidate balance cache")
	}

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// PaymentFilters carries the optional list filters
type PaymentFilters struct {
	EntityID   *uuid.UUID
	EntityType *enum.EntityType
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListPayments lists payments matching the filters. If isSuperAdmin is true, returns all payments.
func (s *PaymentService) ListPayments(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, filters *PaymentFilters, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Payment], error) {
	filterParams := &repository.PaymentFilterParams{
		Pagination:     params,
		SkipUserFilter: isSuperAdmin,
	}
	if filters != nil {
		filterParams.EntityID = filters.EntityID
		filterParams.EntityType = filters.EntityType
		filterParams.StartDate = filters.StartDate
		filterParams.EndDate = filters.EndDate
	}

	payments, total, err := s.paymentRepo.List(ctx, userID, filterParams)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

func (s *PaymentService) verifyEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType) error {
	switch entityType {
	case enum.EntityTypeCustomer:
		customer, err := s.customerRepo.GetByID(ctx, entityID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
	case enum.EntityTypeWholesaler:
		wholesaler, err := s.wholesalerRepo.GetByID(ctx, entityID)
		if err != nil {
			return err
		}
		if wholesaler == nil {
			return apperror.NewNotFoundError("Wholesaler")
		}
	}
	return nil
}
