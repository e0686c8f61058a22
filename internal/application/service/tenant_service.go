package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
	"github.com/mwangaza/dukahub-api/pkg/utils"
)

// TenantService manages shop workspaces and their memberships. Provisioning
// and cross-tenant listing are reserved for super admins; members manage
// their own shops.
type TenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// CreateTenantInput carries the fields for provisioning a shop.
type CreateTenantInput struct {
	Name     string
	Slug     string
	OwnerID  uuid.UUID
	Settings *entity.TenantSettings
}

// CreateTenant provisions a shop and enrolls the owner as its first member.
// An empty slug is derived from the shop name.
func (s *TenantService) CreateTenant(ctx context.Context, input *CreateTenantInput) (*entity.Tenant, error) {
	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	taken, err := s.tenantRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewConflictError("Tenant slug already exists")
	}

	settings := entity.DefaultTenantSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	tenant := &entity.Tenant{
		Name:     input.Name,
		Slug:     slug,
		OwnerID:  input.OwnerID,
		Settings: settings,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	if err := s.addMembership(ctx, tenant.ID, input.OwnerID, "owner"); err != nil {
		return nil, err
	}
	return tenant, nil
}

// GetTenant retrieves a shop by ID.
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.ErrNotFound
	}
	return tenant, nil
}

// GetUserTenants lists the shops a user belongs to.
func (s *TenantService) GetUserTenants(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Tenant], error) {
	tenants, total, err := s.tenantRepo.GetUserTenants(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return paginateTenants(tenants, total, params), nil
}

// UpdateTenantInput carries the mutable shop fields; zero values are left
// untouched.
type UpdateTenantInput struct {
	ID       uuid.UUID
	Name     string
	Settings *entity.TenantSettings
}

// UpdateTenant applies a partial update to a shop.
func (s *TenantService) UpdateTenant(ctx context.Context, input *UpdateTenantInput) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.ErrNotFound
	}

	if input.Name != "" {
		tenant.Name = input.Name
	}
	if input.Settings != nil {
		tenant.Settings = *input.Settings
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// InviteMemberInput carries a membership invitation.
type InviteMemberInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

// InviteMember enrolls a user in a shop. Existing members are rejected.
func (s *TenantService) InviteMember(ctx context.Context, input *InviteMemberInput) error {
	return s.addMembership(ctx, input.TenantID, input.UserID, input.Role)
}

// RemoveMember drops a user's membership in a shop.
func (s *TenantService) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.tenantRepo.RemoveMember(ctx, tenantID, userID)
}

// GetTenantMembers lists a shop's members with their user details filled in.
func (s *TenantService) GetTenantMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error) {
	members, err := s.tenantRepo.GetMembers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PopulateUserDetails()
	}
	return members, nil
}

// UpdateMemberRole changes a member's role within a shop.
func (s *TenantService) UpdateMemberRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	return s.tenantRepo.UpdateMemberRole(ctx, tenantID, userID, role)
}

// ListAllTenants lists every shop on the platform. Super-admin only.
func (s *TenantService) ListAllTenants(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Tenant], error) {
	tenants, total, err := s.tenantRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginateTenants(tenants, total, params), nil
}

// AssignUserToTenantInput carries a super-admin membership assignment.
type AssignUserToTenantInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

// AssignUserToTenant enrolls a user in a shop on behalf of a super admin.
// The role defaults to member.
func (s *TenantService) AssignUserToTenant(ctx context.Context, input *AssignUserToTenantInput) error {
	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperror.ErrNotFound
	}

	role := input.Role
	if role == "" {
		role = "member"
	}
	return s.addMembership(ctx, input.TenantID, input.UserID, role)
}

func (s *TenantService) addMembership(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	isMember, err := s.tenantRepo.IsMember(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return apperror.NewConflictError("User is already a member of this tenant")
	}
	return s.tenantRepo.AddMember(ctx, &entity.TenantMembership{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
	})
}

func paginateTenants(tenants []entity.Tenant, total int64, params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Tenant] {
	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(tenants, meta)
}
