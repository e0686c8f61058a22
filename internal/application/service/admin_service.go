package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/email"
	"github.com/mwangaza/dukahub-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// AdminService handles platform administration: provisioning shopkeeper
// accounts and monitoring per-tenant usage
type AdminService struct {
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	tenantRepo    repository.TenantRepository
	analyticsRepo repository.AnalyticsRepository
	emailService  *email.EmailService
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	tenantRepo repository.TenantRepository,
	analyticsRepo repository.AnalyticsRepository,
	emailService *email.EmailService,
) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		tenantRepo:    tenantRepo,
		analyticsRepo: analyticsRepo,
		emailService:  emailService,
	}
}

// ProvisionShopkeeperInput represents the provisioning input
type ProvisionShopkeeperInput struct {
	FirstName   string
	LastName    string
	Email       string
	ShopName    string
	ShopAddress *string
	ShopPhone   *string
}

// ProvisionShopkeeperOutput carries the created account and tenant
type ProvisionShopkeeperOutput struct {
	User   *entity.User   `json:"user"`
	Tenant *entity.Tenant `json:"tenant"`
}

// ProvisionShopkeeper creates a shopkeeper account with its own tenant and
// emails the temporary credentials. The shopkeeper is expected to change the
// password on first login.
func (s *AdminService) ProvisionShopkeeper(ctx context.Context, input *ProvisionShopkeeperInput) (*ProvisionShopkeeperOutput, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	username := input.Email
	if i := strings.Index(input.Email, "@"); i > 0 {
		username = input.Email[:i]
	}

	user := &entity.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Username:    username,
		Email:       input.Email,
		Password:    hashedPassword,
		ShopName:    &input.ShopName,
		ShopAddress: input.ShopAddress,
		ShopPhone:   input.ShopPhone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if role, err := s.roleRepo.GetByName(ctx, "shopkeeper"); err == nil && role != nil {
		_ = s.userRepo.AssignRole(ctx, user.ID, role.ID)
	}

	slug, err := s.uniqueSlug(ctx, input.ShopName)
	if err != nil {
		return nil, err
	}

	tenant := &entity.Tenant{
		Name:     input.ShopName,
		Slug:     slug,
		OwnerID:  user.ID,
		Settings: entity.DefaultTenantSettings(),
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	membership := &entity.TenantMembership{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Role:     "owner",
	}
	if err := s.tenantRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}

	// Credentials delivery failing should not roll back the account; the
	// admin can still trigger a password reset.
	if s.emailService != nil {
		if err := s.emailService.SendShopWelcomeEmail(input.Email, input.FirstName, input.ShopName, tempPassword); err != nil {
			logrus.WithError(err).WithField("email", input.Email).Warn("failed to send shopkeeper welcome email")
		}
	}

	return &ProvisionShopkeeperOutput{User: user, Tenant: tenant}, nil
}

// TenantUsage represents one tenant's activity footprint
type TenantUsage struct {
	TenantID     uuid.UUID  `json:"tenant_id"`
	TenantName   string     `json:"tenant_name"`
	UserCount    int64      `json:"user_count"`
	Customers    int64      `json:"customers"`
	Wholesalers  int64      `json:"wholesalers"`
	Bills        int64      `json:"bills"`
	Payments     int64      `json:"payments"`
	Invoices     int64      `json:"invoices"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// GetTenantUsage returns usage statistics for every tenant on the platform
func (s *AdminService) GetTenantUsage(ctx context.Context) ([]TenantUsage, error) {
	rows, err := s.analyticsRepo.GetTenantUsage(ctx)
	if err != nil {
		return nil, err
	}

	usage := make([]TenantUsage, 0, len(rows))
	for _, row := range rows {
		usage = append(usage, TenantUsage{
			TenantID:     row.TenantID,
			TenantName:   row.TenantName,
			UserCount:    row.UserCount,
			Customers:    row.Customers,
			Wholesalers:  row.Wholesalers,
			Bills:        row.Bills,
			Payments:     row.Payments,
			Invoices:     row.Invoices,
			LastActivity: row.LastActivity,
		})
	}

	return usage, nil
}

// uniqueSlug derives a tenant slug from the shop name, suffixing on collision
func (s *AdminService) uniqueSlug(ctx context.Context, shopName string) (string, error) {
	base := utils.Slugify(shopName)
	if base == "" {
		base = "shop"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.tenantRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func generateTempPassword() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
