package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwangaza/dukahub-api/internal/config"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/handler"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/middleware"
	"github.com/mwangaza/dukahub-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Tenant     *handler.TenantHandler
	Customer   *handler.CustomerHandler
	Wholesaler *handler.WholesalerHandler
	Bill       *handler.BillHandler
	Payment    *handler.PaymentHandler
	Invoice    *handler.InvoiceHandler
	Dashboard  *handler.DashboardHandler
	Report     *handler.ReportHandler
	Admin      *handler.AdminHandler
	User       *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	TenantRepo      domainRepo.TenantRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission("view-dashboard"), h.Dashboard.GetStats)

	// Tenants
	registerTenantRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Wholesalers
	registerWholesalerRoutes(protected, h)

	// Bills
	registerBillRoutes(protected, h, deps)

	// Payments
	registerPaymentRoutes(protected, h, deps)

	// Invoices
	registerInvoiceRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Super Admin routes
	registerAdminRoutes(protected, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.ListTenants)
		tenants.POST("", h.Tenant.Create)
		tenants.GET("/current", h.Tenant.GetCurrentTenant)
		tenants.PUT("/current", h.Tenant.UpdateTenant)
		tenants.GET("/current/members", h.Tenant.ListMembers)
		tenants.POST("/current/members", h.Tenant.InviteMember)
		tenants.PUT("/current/members/:user_id", h.Tenant.UpdateMemberRole)
		tenants.DELETE("/current/members/:user_id", h.Tenant.RemoveMember)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/balance", h.Customer.Balance)
		customers.GET("/:id/statement", h.Customer.Statement)
	}
}

func registerWholesalerRoutes(protected *gin.RouterGroup, h *Handlers) {
	wholesalers := protected.Group("/wholesalers")
	wholesalers.Use(middleware.RequirePermission("manage-wholesalers"))
	{
		wholesalers.GET("", h.Wholesaler.List)
		wholesalers.POST("", h.Wholesaler.Create)
		wholesalers.GET("/:id", h.Wholesaler.Get)
		wholesalers.PUT("/:id", h.Wholesaler.Update)
		wholesalers.DELETE("/:id", h.Wholesaler.Delete)
		wholesalers.GET("/:id/balance", h.Wholesaler.Balance)
		wholesalers.GET("/:id/statement", h.Wholesaler.Statement)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := protected.Group("/bills")
	bills.Use(middleware.RequirePermission("manage-bills"))
	{
		bills.GET("", h.Bill.List)
		// Bill recording uses idempotency middleware to prevent duplicates
		bills.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	payments.Use(middleware.RequirePermission("manage-payments"))
	{
		payments.GET("", h.Payment.List)
		// Payment recording uses idempotency middleware to prevent duplicates
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/void", h.Invoice.Void)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/statement", h.Report.ExportStatement)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}

	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("super-admin"))
	{
		admin.POST("/shopkeepers", h.Admin.ProvisionShopkeeper)
		admin.GET("/usage", h.Admin.GetTenantUsage)
		admin.GET("/tenants", h.Tenant.ListAllTenants)
		admin.POST("/tenants/assign-user", h.Tenant.AssignUserToTenant)
	}
}
