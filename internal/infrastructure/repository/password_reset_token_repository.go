package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
)

// passwordResetTokenRepository stores the single-use tokens behind the
// forgot-password flow. Tokens are global, not tenant-scoped, since they
// belong to accounts rather than shops.
type passwordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new password reset token repository
func NewPasswordResetTokenRepository(db *gorm.DB) domainRepo.PasswordResetTokenRepository {
	return &passwordResetTokenRepository{db: db}
}

func (r *passwordResetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *passwordResetTokenRepository) GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	return firstOrNil[entity.PasswordResetToken](r.db.WithContext(ctx), "token = ?", token)
}

func (r *passwordResetTokenRepository) MarkAsUsed(ctx context.Context, token string) error {
	q := r.db.WithContext(ctx).Model(&entity.PasswordResetToken{})
	return q.Where("token = ?", token).Update("used", true).Error
}

func (r *passwordResetTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	q := r.db.WithContext(ctx).Where("email = ?", email)
	return q.Delete(&entity.PasswordResetToken{}).Error
}

func (r *passwordResetTokenRepository) DeleteExpired(ctx context.Context) error {
	q := r.db.WithContext(ctx).Where("expires_at < ?", time.Now())
	return q.Delete(&entity.PasswordResetToken{}).Error
}
