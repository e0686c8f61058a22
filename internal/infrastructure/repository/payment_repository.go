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

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(payment).Error
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return firstOrNil[entity.Payment](r.db.WithContext(ctx).Scopes(TenantScope(ctx)), "id = ?", id)
}

func (r *paymentRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.EntityID != nil {
		query = query.Where("entity_id = ?", *params.EntityID)
	}
	if params.EntityType != nil {
		query = query.Where("entity_type = ?", *params.EntityType)
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
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) ListByEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment

	query := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("entity_id = ? AND entity_type = ?", entityID, entityType)
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	err := query.Order("created_at ASC").Find(&payments).Error
	return payments, err
}
