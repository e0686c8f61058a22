package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// BillFilterParams holds filtering options for bill queries
type BillFilterParams struct {
	Pagination     *pagination.PaginationParams
	EntityID       *uuid.UUID
	EntityType     *enum.EntityType
	BillType       *enum.BillType
	StartDate      *time.Time
	EndDate        *time.Time
	SkipUserFilter bool
}

// BillRepository defines the interface for bill data operations.
// Bills are immutable once created: the interface deliberately has no
// update or delete methods.
type BillRepository interface {
	// Create persists a bill. When initialPayment is non-nil it is written
	// in the same database transaction, so a bill's creation-time
	// settlement and its backing payment row can never diverge.
	Create(ctx context.Context, bill *entity.Bill, initialPayment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error)
	// List returns bills matching the filters with page-based pagination
	List(ctx context.Context, userID uuid.UUID, params *BillFilterParams) ([]entity.Bill, int64, error)
	// ListByEntity returns every bill for one ledger entity, oldest first,
	// optionally bounded by a date range
	ListByEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) ([]entity.Bill, error)
}
