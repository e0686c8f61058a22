package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/ledger"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// DashboardService provides per-tenant dashboard statistics
type DashboardService struct {
	analyticsRepo  repository.AnalyticsRepository
	customerRepo   repository.CustomerRepository
	wholesalerRepo repository.WholesalerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	customerRepo repository.CustomerRepository,
	wholesalerRepo repository.WholesalerRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo:  analyticsRepo,
		customerRepo:   customerRepo,
		wholesalerRepo: wholesalerRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalCustomers    int64             `json:"total_customers"`
	TotalWholesalers  int64             `json:"total_wholesalers"`
	TotalSales        int64             `json:"total_sales"`
	TotalPurchases    int64             `json:"total_purchases"`
	TotalReceivable   float64           `json:"total_receivable"` // outstanding owed by customers
	TotalPayable      float64           `json:"total_payable"`    // outstanding owed to wholesalers
	TopDebtors        []DebtorEntry     `json:"top_debtors"`
	DailySalesData    []DailySalesPoint `json:"daily_sales_data"`
}

// DebtorEntry represents one entity ranked by outstanding due
type DebtorEntry struct {
	EntityID       uuid.UUID       `json:"entity_id"`
	EntityName     string          `json:"entity_name"`
	EntityType     enum.EntityType `json:"entity_type"`
	OutstandingDue float64         `json:"outstanding_due"`
}

// DailySalesPoint represents billed totals for one day
type DailySalesPoint struct {
	Date      string  `json:"date"`
	Sales     float64 `json:"sales"`
	Purchases float64 `json:"purchases"`
}

const topDebtorCount = 5

// GetDashboardStats returns dashboard statistics for the tenant in context.
// Outstanding figures run every entity's raw aggregates through the same
// reconciler that backs the balance endpoints, so the two never disagree.
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1 // only the count is needed

	_, customerCount, err := s.customerRepo.List(ctx, userID, &repository.CustomerFilterParams{
		Pagination:     countParams,
		SkipUserFilter: true,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	_, wholesalerCount, err := s.wholesalerRepo.List(ctx, userID, &repository.WholesalerFilterParams{
		Pagination:     countParams,
		SkipUserFilter: true,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalWholesalers = wholesalerCount

	salesCount, err := s.analyticsRepo.CountBills(ctx, enum.BillTypeSale)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = salesCount

	purchaseCount, err := s.analyticsRepo.CountBills(ctx, enum.BillTypePurchase)
	if err != nil {
		return nil, err
	}
	stats.TotalPurchases = purchaseCount

	receivable, debtors, err := s.outstandingFor(ctx, enum.EntityTypeCustomer)
	if err != nil {
		return nil, err
	}
	stats.TotalReceivable = float64(receivable) / 100

	payable, _, err := s.outstandingFor(ctx, enum.EntityTypeWholesaler)
	if err != nil {
		return nil, err
	}
	stats.TotalPayable = float64(payable) / 100

	if len(debtors) > topDebtorCount {
		debtors = debtors[:topDebtorCount]
	}
	stats.TopDebtors = debtors

	daily, err := s.analyticsRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySalesData = make([]DailySalesPoint, 0, len(daily))
	for _, d := range daily {
		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:      d.Date.Format("Jan 02"),
			Sales:     float64(d.Sales) / 100,
			Purchases: float64(d.Purchases) / 100,
		})
	}

	return stats, nil
}

// outstandingFor reconciles every entity of one type and returns the summed
// outstanding due plus per-entity entries sorted highest first
func (s *DashboardService) outstandingFor(ctx context.Context, entityType enum.EntityType) (int64, []DebtorEntry, error) {
	sums, err := s.analyticsRepo.GetLedgerSums(ctx, entityType)
	if err != nil {
		return 0, nil, err
	}

	var total int64
	entries := make([]DebtorEntry, 0, len(sums))
	for _, row := range sums {
		// The SQL layer only sums; the reconciliation semantics live in
		// one place.
		summary := ledger.Summarize(row.OpeningBalance,
			[]ledger.BillRecord{{TotalAmount: row.BilledSum, PaidAmount: row.BillPaidSum}},
			[]ledger.PaymentRecord{{Amount: row.PaymentSum}},
		)

		total += summary.OutstandingDue
		if summary.OutstandingDue > 0 {
			entries = append(entries, DebtorEntry{
				EntityID:       row.EntityID,
				EntityName:     row.EntityName,
				EntityType:     entityType,
				OutstandingDue: float64(summary.OutstandingDue) / 100,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].OutstandingDue > entries[j].OutstandingDue })
	return total, entries, nil
}
