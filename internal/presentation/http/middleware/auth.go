package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mwangaza/dukahub-api/internal/presentation/http/dto/response"
	"github.com/mwangaza/dukahub-api/pkg/utils"
)

// bearerToken pulls the token out of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// contextStrings reads a []string gin key set by AuthMiddleware.
func contextStrings(c *gin.Context, key string) ([]string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}

// AuthMiddleware authenticates requests with the access token and stashes the
// caller's identity, roles, and permissions on the gin context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("user_permissions", claims.Permissions)
		c.Next()
	}
}

// RequirePermission gates a route on a permission carried in the token.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions, ok := contextStrings(c, "user_permissions")
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		if !slices.Contains(permissions, permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on any of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, ok := contextStrings(c, "user_roles")
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		for _, role := range roles {
			if slices.Contains(userRoles, role) {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
