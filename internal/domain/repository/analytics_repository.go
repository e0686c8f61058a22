package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
)

// EntityLedgerSums holds the raw per-entity aggregates the ledger package
// reconciles. Sums are in cents; the max() heuristic is applied by the
// caller, never in SQL.
type EntityLedgerSums struct {
	EntityID       uuid.UUID
	EntityName     string
	EntityType     enum.EntityType
	OpeningBalance int64
	BilledSum      int64
	BillPaidSum    int64
	PaymentSum     int64
}

// DailySalesResult represents billed totals for a single day, in cents
type DailySalesResult struct {
	Date      time.Time
	Sales     int64
	Purchases int64
}

// TenantUsageResult represents one tenant's footprint for admin monitoring
type TenantUsageResult struct {
	TenantID     uuid.UUID
	TenantName   string
	UserCount    int64
	Customers    int64
	Wholesalers  int64
	Bills        int64
	Payments     int64
	Invoices     int64
	LastActivity *time.Time
}

// AnalyticsRepository defines the interface for aggregation queries backing
// dashboards and admin usage monitoring
type AnalyticsRepository interface {
	// GetLedgerSums returns per-entity billed/paid aggregates for every due
	// customer or wholesaler of the tenant in context
	GetLedgerSums(ctx context.Context, entityType enum.EntityType) ([]EntityLedgerSums, error)

	// GetDailySales returns per-day billed totals for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// CountBills returns the number of bills of the given type for the
	// tenant in context
	CountBills(ctx context.Context, billType enum.BillType) (int64, error)

	// GetTenantUsage returns per-tenant record counts for admin monitoring.
	// Not tenant-scoped; callers must hold the super-admin role.
	GetTenantUsage(ctx context.Context) ([]TenantUsageResult, error)
}
