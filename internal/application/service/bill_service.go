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
	"github.com/mwangaza/dukahub-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

const defaultBillPrefix = "BILL-"

// BillService handles bill-related operations
type BillService struct {
	billRepo       repository.BillRepository
	customerRepo   repository.CustomerRepository
	wholesalerRepo repository.WholesalerRepository
	tenantRepo     repository.TenantRepository
	balanceCache   *cache.BalanceCache
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	customerRepo repository.CustomerRepository,
	wholesalerRepo repository.WholesalerRepository,
	tenantRepo repository.TenantRepository,
	balanceCache *cache.BalanceCache,
) *BillService {
	return &BillService{
		billRepo:       billRepo,
		customerRepo:   customerRepo,
		wholesalerRepo: wholesalerRepo,
		tenantRepo:     tenantRepo,
		balanceCache:   balanceCache,
	}
}

// CreateBillInput represents the create bill input. Amounts are in cents.
type CreateBillInput struct {
	UserID        uuid.UUID
	EntityID      uuid.UUID
	EntityType    enum.EntityType
	BillType      enum.BillType
	TotalAmount   int64
	PaidAmount    int64
	PaymentMethod enum.PaymentMethod
	Notes         *string
}

// CreateBill creates a bill. When the bill carries an up-front settlement, a
// payment row with the bill's ID is written in the same transaction, so every
// settlement in the system exists as exactly one payment record.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.TotalAmount <= 0 {
		return nil, apperror.NewBadRequestError("Total amount must be greater than zero")
	}
	if input.PaidAmount < 0 {
		return nil, apperror.NewBadRequestError("Paid amount cannot be negative")
	}
	if input.PaidAmount > input.TotalAmount {
		return nil, apperror.NewBadRequestError("Paid amount cannot exceed total amount")
	}
	if !input.EntityType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid entity type")
	}
	if !input.BillType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid bill type")
	}

	// Sales are billed to customers, purchases to wholesalers.
	switch input.BillType {
	case enum.BillTypeSale:
		if input.EntityType != enum.EntityTypeCustomer {
			return nil, apperror.NewBadRequestError("Sale bills must reference a customer")
		}
	case enum.BillTypePurchase:
		if input.EntityType != enum.EntityTypeWholesaler {
			return nil, apperror.NewBadRequestError("Purchase bills must reference a wholesaler")
		}
	}

	if err := s.verifyEntity(ctx, input.EntityID, input.EntityType); err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		TenantID:      tenantID,
		UserID:        input.UserID,
		EntityID:      input.EntityID,
		EntityType:    input.EntityType,
		BillType:      input.BillType,
		BillNo:        utils.GenerateBillNo(s.billPrefix(ctx, tenantID)),
		TotalAmount:   input.TotalAmount,
		PaidAmount:    input.PaidAmount,
		DueAmount:     input.TotalAmount - input.PaidAmount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	var initialPayment *entity.Payment
	if input.PaidAmount > 0 {
		initialPayment = &entity.Payment{
			TenantID:      tenantID,
			UserID:        input.UserID,
			EntityID:      input.EntityID,
			EntityType:    input.EntityType,
			Amount:        input.PaidAmount,
			PaymentMethod: input.PaymentMethod,
		}
	}

	if err := s.billRepo.Create(ctx, bill, initialPayment); err != nil {
		return nil, err
	}

	if err := s.balanceCache.Invalidate(ctx, tenantID, input.EntityID); err != nil {
		logrus.WithError(err).WithField("entity_id", input.EntityID).Warn("failed to invalidate balance cache")
	}

	return bill, nil
}

// GetBill retrieves a bill by ID
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// BillFilters carries the optional list filters
type BillFilters struct {
	EntityID   *uuid.UUID
	EntityType *enum.EntityType
	BillType   *enum.BillType
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListBills lists bills matching the filters. If isSuperAdmin is true, returns all bills.
func (s *BillService) ListBills(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, filters *BillFilters, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Bill], error) {
	filterParams := &repository.BillFilterParams{
		Pagination:     params,
		SkipUserFilter: isSuperAdmin,
	}
	if filters != nil {
		filterParams.EntityID = filters.EntityID
		filterParams.EntityType = filters.EntityType
		filterParams.BillType = filters.BillType
		filterParams.StartDate = filters.StartDate
		filterParams.EndDate = filters.EndDate
	}

	bills, total, err := s.billRepo.List(ctx, userID, filterParams)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// verifyEntity confirms the billing target exists in the current tenant
func (s *BillService) verifyEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType) error {
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

// billPrefix resolves the tenant's configured bill number prefix
func (s *BillService) billPrefix(ctx context.Context, tenantID uuid.UUID) string {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil || tenant == nil || tenant.Settings.BillPrefix == "" {
		return defaultBillPrefix
	}
	return tenant.Settings.BillPrefix
}
