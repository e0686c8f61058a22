package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// InvoiceFilterParams holds filtering options for invoice queries
type InvoiceFilterParams struct {
	Pagination     *pagination.PaginationParams
	BillID         *uuid.UUID
	Status         *enum.InvoiceStatus
	SkipUserFilter bool
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByBillID(ctx context.Context, billID uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}
