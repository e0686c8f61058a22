package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Create(invoice).Error
	// The partial unique index on bill_id catches two concurrent issues for
	// the same bill that both pass the service's pre-insert check.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("An invoice already exists for this bill")
	}
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return firstOrNil[entity.Invoice](
		r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Preload("Bill"),
		"id = ?", id,
	)
}

func (r *invoiceRepository) GetByBillID(ctx context.Context, billID uuid.UUID) (*entity.Invoice, error) {
	return firstOrNil[entity.Invoice](
		r.db.WithContext(ctx).Scopes(TenantScope(ctx)),
		"bill_id = ?", billID,
	)
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.BillID != nil {
		query = query.Where("bill_id = ?", *params.BillID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("Bill").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}
