package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by the client's
// idempotency key scoped to the requesting user.
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
