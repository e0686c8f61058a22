package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create persists a bill and, when present, its creation-time settlement as
// a payment row in the same transaction. Two simultaneous settlements can
// otherwise leave bill.paid_amount and the payment table disagreeing.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill, initialPayment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		if initialPayment != nil {
			initialPayment.BillID = &bill.ID
			if err := tx.Create(initialPayment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	return firstOrNil[entity.Bill](r.db.WithContext(ctx).Scopes(TenantScope(ctx)), "id = ?", id)
}

func (r *billRepository) GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	return firstOrNil[entity.Bill](r.db.WithContext(ctx).Scopes(TenantScope(ctx)), "bill_no = ?", billNo)
}

func (r *billRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.EntityID != nil {
		query = query.Where("entity_id = ?", *params.EntityID)
	}
	if params.EntityType != nil {
		query = query.Where("entity_type = ?", *params.EntityType)
	}
	if params.BillType != nil {
		query = query.Where("bill_type = ?", *params.BillType)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListByEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill

	query := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("entity_id = ? AND entity_type = ?", entityID, entityType)
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	err := query.Order("created_at ASC").Find(&bills).Error
	return bills, err
}
