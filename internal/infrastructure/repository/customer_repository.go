package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return firstOrNil[entity.Customer](r.db.WithContext(ctx).Scopes(TenantScope(ctx)), "id = ?", id)
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	return firstOrNil[entity.Customer](r.db.WithContext(ctx).Scopes(TenantScope(ctx)), "phone = ?", phone)
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

// ListWithCursor returns customers using cursor-based pagination.
// Fetches limit+1 items to detect if there are more results.
func (r *customerRepository) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string, skipUserFilter bool) ([]entity.Customer, error) {
	var customers []entity.Customer

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(TenantScope(ctx))
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if search != "" {
		s := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", s, s, s)
	}

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&customers).Error

	return customers, err
}

type wholesalerRepository struct {
	db *gorm.DB
}

// NewWholesalerRepository creates a new wholesaler repository
func NewWholesalerRepository(db *gorm.DB) domainRepo.WholesalerRepository {
	return &wholesalerRepository{db: db}
}

func (r *wholesalerRepository) Create(ctx context.Context, wholesaler *entity.Wholesaler) error {
	return r.db.WithContext(ctx).Create(wholesaler).Error
}

func (r *wholesalerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Wholesaler, error) {
	return firstOrNil[entity.Wholesaler](r.db.WithContext(ctx).Scopes(TenantScope(ctx)), "id = ?", id)
}

func (r *wholesalerRepository) Update(ctx context.Context, wholesaler *entity.Wholesaler) error {
	return r.db.WithContext(ctx).Save(wholesaler).Error
}

func (r *wholesalerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Wholesaler{}, "id = ?", id).Error
}

func (r *wholesalerRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.WholesalerFilterParams) ([]entity.Wholesaler, int64, error) {
	var wholesalers []entity.Wholesaler
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Wholesaler{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR shopname ILIKE ?",
			search, search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&wholesalers).Error

	return wholesalers, total, err
}
