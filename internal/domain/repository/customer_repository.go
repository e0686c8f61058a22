package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// CustomerFilterParams holds filtering options for customer queries
type CustomerFilterParams struct {
	Pagination     *pagination.PaginationParams
	Type           *enum.CustomerType
	Search         string
	ActiveOnly     bool
	SkipUserFilter bool
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete soft-deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns customers with page-based pagination. If SkipUserFilter is set, returns all customers.
	List(ctx context.Context, userID uuid.UUID, params *CustomerFilterParams) ([]entity.Customer, int64, error)
	// ListWithCursor returns customers using cursor-based pagination
	ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string, skipUserFilter bool) ([]entity.Customer, error)
}

// WholesalerFilterParams holds filtering options for wholesaler queries
type WholesalerFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	ActiveOnly     bool
	SkipUserFilter bool
}

// WholesalerRepository defines the interface for wholesaler data operations
type WholesalerRepository interface {
	Create(ctx context.Context, wholesaler *entity.Wholesaler) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Wholesaler, error)
	Update(ctx context.Context, wholesaler *entity.Wholesaler) error
	// Delete soft-deletes a wholesaler
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns wholesalers. If SkipUserFilter is set, returns all wholesalers.
	List(ctx context.Context, userID uuid.UUID, params *WholesalerFilterParams) ([]entity.Wholesaler, int64, error)
}
