package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// TenantRepository persists shops and their memberships. Slug lookups back
// subdomain-based tenant resolution; ListAll and Count serve super-admin
// views and skip tenant scoping.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	GetUserTenants(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Tenant, int64, error)
	AddMember(ctx context.Context, membership *entity.TenantMembership) error
	RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error
	GetMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error)
	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
	GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*entity.TenantMembership, error)
	UpdateMemberRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error

	ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tenant, int64, error)
	Count(ctx context.Context) (int64, error)
}
