package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// PaymentFilterParams holds filtering options for payment queries
type PaymentFilterParams struct {
	Pagination     *pagination.PaginationParams
	EntityID       *uuid.UUID
	EntityType     *enum.EntityType
	StartDate      *time.Time
	EndDate        *time.Time
	SkipUserFilter bool
}

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only: no update or delete methods.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	// List returns payments matching the filters with page-based pagination
	List(ctx context.Context, userID uuid.UUID, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	// ListByEntity returns every payment for one ledger entity, oldest
	// first, optionally bounded by a date range
	ListByEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) ([]entity.Payment, error)
}
