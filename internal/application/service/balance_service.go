package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/ledger"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/internal/infrastructure/cache"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// BalanceService reconciles an entity's records into balance figures and
// statements. All arithmetic happens in the ledger package; this service
// fetches records, applies the cache, and shapes output.
type BalanceService struct {
	customerRepo   repository.CustomerRepository
	wholesalerRepo repository.WholesalerRepository
	billRepo       repository.BillRepository
	paymentRepo    repository.PaymentRepository
	balanceCache   *cache.BalanceCache
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	customerRepo repository.CustomerRepository,
	wholesalerRepo repository.WholesalerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	balanceCache *cache.BalanceCache,
) *BalanceService {
	return &BalanceService{
		customerRepo:   customerRepo,
		wholesalerRepo: wholesalerRepo,
		billRepo:       billRepo,
		paymentRepo:    paymentRepo,
		balanceCache:   balanceCache,
	}
}

// BalanceResult represents an entity's reconciled balance
type BalanceResult struct {
	EntityID       uuid.UUID       `json:"entity_id"`
	EntityName     string          `json:"entity_name"`
	EntityType     enum.EntityType `json:"entity_type"`
	OpeningBalance float64         `json:"opening_balance"`
	TotalBilled    float64         `json:"total_billed"`
	TotalPaid      float64         `json:"total_paid"`
	RawDue         float64         `json:"raw_due"`
	OutstandingDue float64         `json:"outstanding_due"`
}

// GetBalance returns the reconciled balance for one entity. Walk-in
// customers carry no standing ledger and are rejected.
func (s *BalanceService) GetBalance(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType) (*BalanceResult, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	name, opening, err := s.resolveEntity(ctx, entityID, entityType)
	if err != nil {
		return nil, err
	}

	if cached, err := s.balanceCache.Get(ctx, tenantID, entityID); err != nil {
		logrus.WithError(err).WithField("entity_id", entityID).Warn("balance cache read failed")
	} else if cached != nil {
		return newBalanceResult(entityID, name, entityType, *cached), nil
	}

	summary, err := s.summarize(ctx, entityID, entityType, opening, ledger.DateRange{})
	if err != nil {
		return nil, err
	}

	if err := s.balanceCache.Set(ctx, tenantID, entityID, &summary); err != nil {
		logrus.WithError(err).WithField("entity_id", entityID).Warn("balance cache write failed")
	}

	return newBalanceResult(entityID, name, entityType, summary), nil
}

// StatementLine is one row in an entity's transaction history. A bill line
// carries pro-rata due/paid figures; a payment line only an amount.
type StatementLine struct {
	Type          string             `json:"type"` // "bill" or "payment"
	Date          time.Time          `json:"date"`
	Reference     string             `json:"reference,omitempty"`
	PaymentMethod enum.PaymentMethod `json:"payment_method,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	Amount        float64            `json:"amount"`
	Paid          float64            `json:"paid"`
	Due           float64            `json:"due"`
}

// Statement represents an entity's transaction history plus reconciled totals
type Statement struct {
	EntityID   uuid.UUID       `json:"entity_id"`
	EntityName string          `json:"entity_name"`
	EntityType enum.EntityType `json:"entity_type"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	Lines      []StatementLine `json:"lines"`
	Summary    BalanceResult   `json:"summary"`
}

// GetStatement returns a chronological statement for one entity, optionally
// bounded by a date range. The per-bill due/paid split is a pro-rata display
// approximation; the summary totals are authoritative.
func (s *BalanceService) GetStatement(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) (*Statement, error) {
	name, opening, err := s.resolveEntity(ctx, entityID, entityType)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.ListByEntity(ctx, entityID, entityType, startDate, endDate)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByEntity(ctx, entityID, entityType, startDate, endDate)
	if err != nil {
		return nil, err
	}

	billRecords := make([]ledger.BillRecord, len(bills))
	for i, b := range bills {
		billRecords[i] = ledger.BillRecord{TotalAmount: b.TotalAmount, PaidAmount: b.PaidAmount, CreatedAt: b.CreatedAt}
	}
	paymentRecords := make([]ledger.PaymentRecord, len(payments))
	for i, p := range payments {
		paymentRecords[i] = ledger.PaymentRecord{Amount: p.Amount, CreatedAt: p.CreatedAt}
	}

	summary := ledger.Summarize(opening, billRecords, paymentRecords)
	allocations := ledger.AllocateProRata(billRecords, summary.OutstandingDue)

	lines := make([]StatementLine, 0, len(bills)+len(payments))
	for i, b := range bills {
		lines = append(lines, StatementLine{
			Type:          "bill",
			Date:          b.CreatedAt,
			Reference:     b.BillNo,
			PaymentMethod: b.PaymentMethod,
			Notes:         b.Notes,
			Amount:        float64(b.TotalAmount) / 100,
			Paid:          float64(allocations[i].Paid) / 100,
			Due:           float64(allocations[i].Due) / 100,
		})
	}
	for _, p := range payments {
		lines = append(lines, StatementLine{
			Type:          "payment",
			Date:          p.CreatedAt,
			PaymentMethod: p.PaymentMethod,
			Notes:         p.Notes,
			Amount:        float64(p.Amount) / 100,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Date.Before(lines[j].Date) })

	return &Statement{
		EntityID:   entityID,
		EntityName: name,
		EntityType: entityType,
		StartDate:  startDate,
		EndDate:    endDate,
		Lines:      lines,
		Summary:    *newBalanceResult(entityID, name, entityType, summary),
	}, nil
}

// summarize fetches an entity's records and runs the reconciler over them.
// The opening balance comes from the resolveEntity call every public entry
// point already makes, so it is threaded through rather than re-fetched.
func (s *BalanceService) summarize(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, opening int64, dateRange ledger.DateRange) (ledger.Summary, error) {
	var startDate, endDate *time.Time
	if !dateRange.Start.IsZero() {
		startDate = &dateRange.Start
	}
	if !dateRange.End.IsZero() {
		endDate = &dateRange.End
	}

	bills, err := s.billRepo.ListByEntity(ctx, entityID, entityType, startDate, endDate)
	if err != nil {
		return ledger.Summary{}, err
	}
	payments, err := s.paymentRepo.ListByEntity(ctx, entityID, entityType, startDate, endDate)
	if err != nil {
		return ledger.Summary{}, err
	}

	billRecords := make([]ledger.BillRecord, len(bills))
	for i, b := range bills {
		billRecords[i] = ledger.BillRecord{TotalAmount: b.TotalAmount, PaidAmount: b.PaidAmount, CreatedAt: b.CreatedAt}
	}
	paymentRecords := make([]ledger.PaymentRecord, len(payments))
	for i, p := range payments {
		paymentRecords[i] = ledger.PaymentRecord{Amount: p.Amount, CreatedAt: p.CreatedAt}
	}

	return ledger.SummarizeRange(opening, billRecords, paymentRecords, dateRange), nil
}

// resolveEntity confirms the entity exists and has a ledger, returning its
// display name and opening balance
func (s *BalanceService) resolveEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType) (string, int64, error) {
	switch entityType {
	case enum.EntityTypeCustomer:
		customer, err := s.customerRepo.GetByID(ctx, entityID)
		if err != nil {
			return "", 0, err
		}
		if customer == nil {
			return "", 0, apperror.NewNotFoundError("Customer")
		}
		if !customer.HasLedger() {
			return "", 0, apperror.NewBadRequestError("Walk-in customers have no standing balance")
		}
		return customer.Name, customer.OpeningBalance, nil
	case enum.EntityTypeWholesaler:
		wholesaler, err := s.wholesalerRepo.GetByID(ctx, entityID)
		if err != nil {
			return "", 0, err
		}
		if wholesaler == nil {
			return "", 0, apperror.NewNotFoundError("Wholesaler")
		}
		return wholesaler.Name, wholesaler.OpeningBalance, nil
	}
	return "", 0, apperror.NewBadRequestError("Invalid entity type")
}

func newBalanceResult(entityID uuid.UUID, name string, entityType enum.EntityType, s ledger.Summary) *BalanceResult {
	return &BalanceResult{
		EntityID:       entityID,
		EntityName:     name,
		EntityType:     entityType,
		OpeningBalance: float64(s.OpeningBalance) / 100,
		TotalBilled:    float64(s.TotalBilled) / 100,
		TotalPaid:      float64(s.TotalPaid) / 100,
		RawDue:         float64(s.RawDue) / 100,
		OutstandingDue: float64(s.OutstandingDue) / 100,
	}
}
