package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
)

// idempotencyRepository stores replay records keyed by (key, user). Expired
// rows are swept by DeleteExpired rather than checked on read.
type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return firstOrNil[entity.IdempotencyKey](
		r.db.WithContext(ctx),
		"key = ? AND user_id = ?", key, userID,
	)
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	q := r.db.WithContext(ctx).Where("expires_at < ?", time.Now())
	return q.Delete(&entity.IdempotencyKey{}).Error
}
