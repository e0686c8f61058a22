package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// UserService manages accounts, role assignment, and the permission catalog
// behind the manage-users endpoints.
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// ListUsersInput carries the list filters.
type ListUsersInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListUsersOutput is a page of users with paging metadata.
type ListUsersOutput struct {
	Users      []entity.User
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// ListUsers returns a page of users with their roles preloaded. Search
// matches name, email, and username.
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	params := &pagination.PaginationParams{Page: input.Page, PerPage: input.PerPage}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}

	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return &ListUsersOutput{
		Users:      users,
		Total:      total,
		Page:       meta.CurrentPage,
		PerPage:    meta.PerPage,
		TotalPages: meta.TotalPages,
	}, nil
}

// GetUser returns a user with roles and permissions preloaded.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// UpdateUserRolesInput names the full desired role set for a user.
type UpdateUserRolesInput struct {
	UserID  uuid.UUID
	RoleIDs []uint
}

// UpdateUserRoles reconciles a user's roles against the desired set: roles
// not in the set are removed, missing ones are assigned. Unknown role IDs
// are ignored.
func (s *UserService) UpdateUserRoles(ctx context.Context, input *UpdateUserRolesInput) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	desired := make(map[uint]bool, len(input.RoleIDs))
	for _, roleID := range input.RoleIDs {
		desired[roleID] = true
	}
	current := make(map[uint]bool, len(user.Roles))
	for _, role := range user.Roles {
		current[role.ID] = true
	}

	for _, role := range user.Roles {
		if !desired[role.ID] {
			if err := s.userRepo.RemoveRole(ctx, input.UserID, role.ID); err != nil {
				return nil, err
			}
		}
	}

	for roleID := range desired {
		if current[roleID] {
			continue
		}
		role, err := s.roleRepo.GetByID(ctx, roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			continue
		}
		if err := s.userRepo.AssignRole(ctx, input.UserID, roleID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, input.UserID)
}

// DeleteUser soft-deletes a user account.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}
	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns every role with its permissions.
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns the permission catalog.
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}
