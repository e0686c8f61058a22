package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// ExtractTenantFromHost extracts tenant slug from subdomain
// e.g., "acme.dukahub.co.ke" -> "acme"
func ExtractTenantFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// TenantMiddleware resolves the active tenant and stores it in both the Gin
// and request contexts. Resolution order: subdomain slug, X-Tenant-ID header,
// then the user's first tenant membership.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := resolveTenant(c, tenantRepo)
		if err != nil {
			response.NotFound(c, "Tenant not found")
			c.Abort()
			return
		}

		if tenant == nil {
			// No tenant could be resolved; tenant-scoped queries will match
			// nothing rather than leak across shops
			c.Set("tenant_id", uuid.Nil)
			c.Next()
			return
		}

		// Validate user has access to this tenant (if authenticated)
		if userID := currentUserID(c); userID != uuid.Nil {
			isMember, _ := tenantRepo.IsMember(c.Request.Context(), tenant.ID, userID)
			if !isMember && !hasRole(c, "super-admin") {
				response.Forbidden(c, "Access denied to this tenant")
				c.Abort()
				return
			}
		}

		c.Set("tenant_id", tenant.ID)
		c.Set("tenant", tenant)

		// Services and repositories read the tenant from the request context
		ctx := infraRepo.WithTenant(c.Request.Context(), tenant.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveTenant(c *gin.Context, tenantRepo repository.TenantRepository) (*entity.Tenant, error) {
	// Subdomain slug takes precedence
	if slug, err := ExtractTenantFromHost(c.Request.Host); err == nil {
		tenant, err := tenantRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			return nil, err
		}
		if tenant != nil {
			return tenant, nil
		}
	}

	// Explicit header, used by clients that cannot set a subdomain
	if header := c.GetHeader("X-Tenant-ID"); header != "" {
		tenantID, err := uuid.Parse(header)
		if err != nil {
			return nil, errors.New("invalid tenant id")
		}
		tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
		if err != nil || tenant == nil {
			return nil, errors.New("tenant not found")
		}
		return tenant, nil
	}

	// Fall back to the user's first membership
	if userID := currentUserID(c); userID != uuid.Nil {
		tenants, _, err := tenantRepo.GetUserTenants(c.Request.Context(), userID, &pagination.PaginationParams{Page: 1, PerPage: 1})
		if err != nil {
			return nil, err
		}
		if len(tenants) > 0 {
			return &tenants[0], nil
		}
	}

	return nil, nil
}

func currentUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func hasRole(c *gin.Context, role string) bool {
	val, exists := c.Get("user_roles")
	if !exists {
		return false
	}
	roles, ok := val.([]string)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequireTenant ensures a valid tenant context exists
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, exists := c.Get("tenant_id")
		if !exists {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		id, ok := tenantID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid tenant context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
