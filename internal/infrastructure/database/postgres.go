package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mwangaza/dukahub-api/internal/config"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
)

// NewPostgresDB opens the PostgreSQL connection and configures the pool.
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true, // map driver errors to gorm sentinels (e.g. ErrDuplicatedKey)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Tenancy entities
		&entity.Tenant{},
		&entity.TenantMembership{},

		// Trading parties
		&entity.Customer{},
		&entity.Wholesaler{},

		// Ledger entities
		&entity.Bill{},
		&entity.Payment{},
		&entity.Invoice{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// A bill can carry at most one non-void invoice. The service checks this
	// before inserting, but only the index makes it hold under concurrency.
	err = db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_one_active_per_bill
		 ON invoices (bill_id) WHERE status <> 2 AND deleted_at IS NULL`,
	).Error
	if err != nil {
		return fmt.Errorf("failed to create invoice uniqueness index: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData provisions the permission catalog, the three built-in
// roles, and an optional super-admin account from ADMIN_* environment
// variables. Existing rows are left alone, so it is safe on every boot.
func SeedDefaultData(db *gorm.DB) error {
	logrus.Info("Seeding default data...")

	permissions := seedPermissions(db)
	seedRoles(db, permissions)
	seedSuperAdmin(db)

	logrus.Info("Default data seeding completed")
	return nil
}

var permissionNames = []string{
	"view-dashboard",
	"manage-customers",
	"manage-wholesalers",
	"manage-bills",
	"manage-payments",
	"manage-invoices",
	"manage-users",
	"view-reports",
}

func seedPermissions(db *gorm.DB) []entity.Permission {
	for _, name := range permissionNames {
		var existing entity.Permission
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			perm := entity.Permission{Name: name, GuardName: "web"}
			if err := db.Create(&perm).Error; err != nil {
				logrus.WithError(err).Warnf("Failed to create permission %s", name)
			}
		}
	}

	var all []entity.Permission
	db.Find(&all)
	return all
}

func seedRoles(db *gorm.DB, all []entity.Permission) {
	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range all {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	create := func(name string, perms []entity.Permission) {
		var existing entity.Role
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			return
		}
		role := entity.Role{Name: name, GuardName: "web", Permissions: perms}
		if err := db.Create(&role).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create role %s", name)
		}
	}

	// Super admins run the platform; shopkeepers own a shop; staff record
	// day-to-day transactions but cannot manage accounts.
	create("super-admin", all)
	create("shopkeeper", pick(
		"view-dashboard",
		"manage-customers",
		"manage-wholesalers",
		"manage-bills",
		"manage-payments",
		"manage-invoices",
		"view-reports",
	))
	create("staff", pick(
		"view-dashboard",
		"manage-customers",
		"manage-bills",
		"manage-payments",
	))
}

func seedSuperAdmin(db *gorm.DB) {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		logrus.Infof("Super admin user already exists: %s", adminEmail)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Warn("Failed to hash admin password")
		return
	}

	var saRole entity.Role
	if err := db.Where("name = ?", "super-admin").First(&saRole).Error; err != nil {
		return
	}

	adminName := viper.GetString("ADMIN_NAME")
	if adminName == "" {
		adminName = "Super Admin"
	}
	firstName, lastName, _ := strings.Cut(adminName, " ")

	adminUser := entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     adminEmail,
		Password:  string(hashed),
		Roles:     []entity.Role{saRole},
	}
	if err := db.Create(&adminUser).Error; err != nil {
		logrus.WithError(err).Warn("Failed to create super admin user")
		return
	}
	logrus.Infof("Super admin user created: %s", adminEmail)
}
