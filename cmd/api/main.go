package main

import (
	"github.com/gin-gonic/gin"
	"github.com/mwangaza/dukahub-api/internal/application/service"
	"github.com/mwangaza/dukahub-api/internal/config"
	"github.com/mwangaza/dukahub-api/internal/infrastructure/cache"
	"github.com/mwangaza/dukahub-api/internal/infrastructure/database"
	"github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/handler"
	"github.com/mwangaza/dukahub-api/internal/presentation/http/routes"
	"github.com/mwangaza/dukahub-api/pkg/email"
	"github.com/mwangaza/dukahub-api/pkg/oauth"
	"github.com/mwangaza/dukahub-api/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed default data")
	}

	// Balance cache is optional; a nil cache disables it
	var balanceCache *cache.BalanceCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		balanceCache = cache.NewBalanceCache(redisClient, 0)
		logrus.WithField("addr", cfg.Redis.Addr).Info("Balance cache enabled")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	wholesalerRepo := repository.NewWholesalerRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	tenantService := service.NewTenantService(tenantRepo)
	customerService := service.NewCustomerService(customerRepo)
	wholesalerService := service.NewWholesalerService(wholesalerRepo)
	billService := service.NewBillService(billRepo, customerRepo, wholesalerRepo, tenantRepo, balanceCache)
	paymentService := service.NewPaymentService(paymentRepo, customerRepo, wholesalerRepo, balanceCache)
	balanceService := service.NewBalanceService(customerRepo, wholesalerRepo, billRepo, paymentRepo, balanceCache)
	invoiceService := service.NewInvoiceService(invoiceRepo, billRepo, tenantRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, customerRepo, wholesalerRepo)
	reportService := service.NewReportService(balanceService)
	adminService := service.NewAdminService(userRepo, roleRepo, tenantRepo, analyticsRepo, emailService)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Tenant:     handler.NewTenantHandler(tenantService),
		Customer:   handler.NewCustomerHandler(customerService, balanceService),
		Wholesaler: handler.NewWholesalerHandler(wholesalerService, balanceService),
		Bill:       handler.NewBillHandler(billService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Invoice:    handler.NewInvoiceHandler(invoiceService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Report:     handler.NewReportHandler(reportService),
		Admin:      handler.NewAdminHandler(adminService),
		User:       handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		TenantRepo:      tenantRepo,
	})

	logrus.WithFields(logrus.Fields{
		"name": cfg.App.Name,
		"env":  cfg.App.Env,
		"port": cfg.App.Port,
	}).Info("Starting server")

	if err := router.Run(":" + cfg.App.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
