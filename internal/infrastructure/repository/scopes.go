package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey carries the resolved tenant through the request context.
	TenantIDKey ctxKey = "tenant_id"
	// SkipTenantScopeKey lets super-admin paths query across tenants.
	SkipTenantScopeKey ctxKey = "skip_tenant_scope"
)

// WithTenant stamps the tenant onto the context for scoped queries.
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// WithSkipTenantScope marks the context as exempt from tenant filtering.
func WithSkipTenantScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipTenantScopeKey, skip)
}

// GetTenantID reads the tenant stamped by WithTenant.
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// TenantScope filters tenant-owned tables by the context's tenant. A missing
// tenant matches nothing rather than everything: leaking rows across shops is
// the one failure mode this layer must not have. Super-admin contexts flagged
// with WithSkipTenantScope query unfiltered.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip, ok := ctx.Value(SkipTenantScopeKey).(bool); ok && skip {
			return db
		}
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}
