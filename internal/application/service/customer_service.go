package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID         uuid.UUID
	Name           string
	Type           enum.CustomerType
	Email          *string
	Phone          *string
	Address        *string
	Photo          *string
	OpeningBalance int64 // cents; signed, negative means the customer holds an advance
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Type == "" {
		input.Type = enum.CustomerTypeWalkIn
	}
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid customer type")
	}

	// Only due customers carry a ledger; an opening balance on a walk-in
	// customer would never be reconciled.
	if input.Type == enum.CustomerTypeWalkIn && input.OpeningBalance != 0 {
		return nil, apperror.NewBadRequestError("Walk-in customers cannot have an opening balance")
	}

	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this phone number already exists")
		}
	}

	customer := &entity.Customer{
		TenantID:       tenantID,
		UserID:         input.UserID,
		Name:           input.Name,
		Type:           input.Type,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		Photo:          input.Photo,
		OpeningBalance: input.OpeningBalance,
		IsActive:       true,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers. If isSuperAdmin is true, returns all customers.
func (s *CustomerService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, customerType *enum.CustomerType, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Customer], error) {
	filter := &repository.CustomerFilterParams{
		Pagination:     params,
		Type:           customerType,
		Search:         search,
		SkipUserFilter: isSuperAdmin,
	}

	customers, total, err := s.customerRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination. If isSuperAdmin is true, returns all customers.
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string, isSuperAdmin bool) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	// Determine if there was a cursor provided (meaning we're not on first page)
	hasPrev := params.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(customers, params.Limit,
		func(c entity.Customer) string { return c.ID.String() },
		func(c entity.Customer) time.Time { return c.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	Photo        *string
	IsActive     *bool
}

// UpdateCustomer updates a customer. The customer's type and opening balance
// are fixed at creation: changing either after bills exist would silently
// rewrite the ledger.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	// Super-admin can update any customer, regular users can only update their own
	if !input.IsSuperAdmin && customer.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Photo != nil {
		customer.Photo = input.Photo
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Their bills and payments survive
// for reporting.
func (s *CustomerService) DeleteCustomer(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	// Super-admin can delete any customer, regular users can only delete their own
	if !isSuperAdmin && customer.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.customerRepo.Delete(ctx, id)
}

// WholesalerService handles wholesaler-related operations
type WholesalerService struct {
	wholesalerRepo repository.WholesalerRepository
}

// NewWholesalerService creates a new wholesaler service
func NewWholesalerService(wholesalerRepo repository.WholesalerRepository) *WholesalerService {
	return &WholesalerService{wholesalerRepo: wholesalerRepo}
}

// CreateWholesalerInput represents the create wholesaler input
type CreateWholesalerInput struct {
	UserID         uuid.UUID
	Name           string
	ShopName       *string
	Email          *string
	Phone          *string
	Address        *string
	OpeningBalance int64 // cents; positive means the shop owes the wholesaler
}

// CreateWholesaler creates a new wholesaler
func (s *WholesalerService) CreateWholesaler(ctx context.Context, input *CreateWholesalerInput) (*entity.Wholesaler, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	wholesaler := &entity.Wholesaler{
		TenantID:       tenantID,
		UserID:         input.UserID,
		Name:           input.Name,
		ShopName:       input.ShopName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		OpeningBalance: input.OpeningBalance,
		IsActive:       true,
	}

	if err := s.wholesalerRepo.Create(ctx, wholesaler); err != nil {
		return nil, err
	}

	return wholesaler, nil
}

// GetWholesaler retrieves a wholesaler by ID
func (s *WholesalerService) GetWholesaler(ctx context.Context, id uuid.UUID) (*entity.Wholesaler, error) {
	wholesaler, err := s.wholesalerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wholesaler == nil {
		return nil, apperror.NewNotFoundError("Wholesaler")
	}
	return wholesaler, nil
}

// ListWholesalers lists wholesalers. If isSuperAdmin is true, returns all wholesalers.
func (s *WholesalerService) ListWholesalers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Wholesaler], error) {
	filter := &repository.WholesalerFilterParams{
		Pagination:     params,
		Search:         search,
		SkipUserFilter: isSuperAdmin,
	}

	wholesalers, total, err := s.wholesalerRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(wholesalers, pag), nil
}

// UpdateWholesalerInput represents the update wholesaler input
type UpdateWholesalerInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	ShopName     *string
	Email        *string
	Phone        *string
	Address      *string
	IsActive     *bool
}

// UpdateWholesaler updates a wholesaler. The opening balance is fixed at
// creation for the same reason as a customer's.
func (s *WholesalerService) UpdateWholesaler(ctx context.Context, input *UpdateWholesalerInput) (*entity.Wholesaler, error) {
	wholesaler, err := s.wholesalerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if wholesaler == nil {
		return nil, apperror.NewNotFoundError("Wholesaler")
	}

	// Super-admin can update any wholesaler, regular users can only update their own
	if !input.IsSuperAdmin && wholesaler.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		wholesaler.Name = *input.Name
	}
	if input.ShopName != nil {
		wholesaler.ShopName = input.ShopName
	}
	if input.Email != nil {
		wholesaler.Email = input.Email
	}
	if input.Phone != nil {
		wholesaler.Phone = input.Phone
	}
	if input.Address != nil {
		wholesaler.Address = input.Address
	}
	if input.IsActive != nil {
		wholesaler.IsActive = *input.IsActive
	}

	if err := s.wholesalerRepo.Update(ctx, wholesaler); err != nil {
		return nil, err
	}

	return wholesaler, nil
}

// DeleteWholesaler soft-deletes a wholesaler
func (s *WholesalerService) DeleteWholesaler(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	wholesaler, err := s.wholesalerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wholesaler == nil {
		return apperror.NewNotFoundError("Wholesaler")
	}

	// Super-admin can delete any wholesaler, regular users can only delete their own
	if !isSuperAdmin && wholesaler.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.wholesalerRepo.Delete(ctx, id)
}
