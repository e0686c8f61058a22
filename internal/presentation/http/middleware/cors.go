package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mwangaza/dukahub-api/internal/config"
)

// requiredHeaders are headers the API itself depends on; they stay allowed no
// matter how CORS_ALLOWED_HEADERS is configured.
var requiredHeaders = []string{"Idempotency-Key", "X-Tenant-ID"}

// CORSMiddleware builds the CORS policy from config, falling back to
// development defaults when unset.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	policy := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(policy.AllowOrigins) == 0 {
		policy.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3000",
		}
	}
	if len(policy.AllowMethods) == 0 {
		policy.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(policy.AllowHeaders) == 0 {
		policy.AllowHeaders = []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			"X-Request-ID",
			"Origin",
		}
	}
	for _, h := range requiredHeaders {
		if !slices.Contains(policy.AllowHeaders, h) {
			policy.AllowHeaders = append(policy.AllowHeaders, h)
		}
	}

	return cors.New(policy)
}
