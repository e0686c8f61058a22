package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	domainRepo "github.com/mwangaza/dukahub-api/internal/domain/repository"
	"gorm.io/gorm"
)

// ErrTenantContextRequired is returned by raw aggregation queries that
// cannot fall back to the GORM tenant scope.
var ErrTenantContextRequired = errors.New("tenant context required")

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetLedgerSums(ctx context.Context, entityType enum.EntityType) ([]domainRepo.EntityLedgerSums, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return nil, ErrTenantContextRequired
	}

	baseTable := "customers"
	baseFilter := "e.type = 'due' AND"
	if entityType == enum.EntityTypeWholesaler {
		baseTable = "wholesalers"
		baseFilter = ""
	}

	var results []domainRepo.EntityLedgerSums

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id as entity_id,
			e.name as entity_name,
			? as entity_type,
			e.opening_balance as opening_balance,
			COALESCE(b.billed_sum, 0) as billed_sum,
			COALESCE(b.bill_paid_sum, 0) as bill_paid_sum,
			COALESCE(p.payment_sum, 0) as payment_sum
		FROM `+baseTable+` e
		LEFT JOIN (
			SELECT entity_id,
				SUM(total_amount) as billed_sum,
				SUM(paid_amount) as bill_paid_sum
			FROM bills
			WHERE tenant_id = ? AND entity_type = ? AND deleted_at IS NULL
			GROUP BY entity_id
		) b ON b.entity_id = e.id
		LEFT JOIN (
			SELECT entity_id, SUM(amount) as payment_sum
			FROM payments
			WHERE tenant_id = ? AND entity_type = ? AND deleted_at IS NULL
			GROUP BY entity_id
		) p ON p.entity_id = e.id
		WHERE `+baseFilter+` e.tenant_id = ? AND e.deleted_at IS NULL
		ORDER BY e.name ASC
	`, entityType, tenantID, entityType, tenantID, entityType, tenantID).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return nil, ErrTenantContextRequired
	}

	var results []domainRepo.DailySalesResult

	since := time.Now().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(created_at) as date,
			COALESCE(SUM(total_amount) FILTER (WHERE bill_type = 'sale'), 0) as sales,
			COALESCE(SUM(total_amount) FILTER (WHERE bill_type = 'purchase'), 0) as purchases
		FROM bills
		WHERE tenant_id = ? AND created_at >= ? AND deleted_at IS NULL
		GROUP BY DATE(created_at)
		ORDER BY date ASC
	`, tenantID, since).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CountBills(ctx context.Context, billType enum.BillType) (int64, error) {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return 0, ErrTenantContextRequired
	}

	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM bills
		WHERE tenant_id = ? AND bill_type = ? AND deleted_at IS NULL
	`, tenantID, billType).Scan(&count).Error

	return count, err
}

// GetTenantUsage is deliberately unscoped: it backs the super-admin usage
// dashboard across every shop on the platform.
func (r *analyticsRepository) GetTenantUsage(ctx context.Context) ([]domainRepo.TenantUsageResult, error) {
	var results []domainRepo.TenantUsageResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id as tenant_id,
			t.name as tenant_name,
			(SELECT COUNT(*) FROM tenant_memberships m WHERE m.tenant_id = t.id) as user_count,
			(SELECT COUNT(*) FROM customers c WHERE c.tenant_id = t.id AND c.deleted_at IS NULL) as customers,
			(SELECT COUNT(*) FROM wholesalers w WHERE w.tenant_id = t.id AND w.deleted_at IS NULL) as wholesalers,
			(SELECT COUNT(*) FROM bills b WHERE b.tenant_id = t.id AND b.deleted_at IS NULL) as bills,
			(SELECT COUNT(*) FROM payments p WHERE p.tenant_id = t.id AND p.deleted_at IS NULL) as payments,
			(SELECT COUNT(*) FROM invoices i WHERE i.tenant_id = t.id AND i.deleted_at IS NULL) as invoices,
			(SELECT MAX(b.created_at) FROM bills b WHERE b.tenant_id = t.id) as last_activity
		FROM tenants t
		WHERE t.deleted_at IS NULL
		ORDER BY t.name ASC
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
