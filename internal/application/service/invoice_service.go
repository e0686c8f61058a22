package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
	"github.com/mwangaza/dukahub-api/pkg/utils"
)

const defaultInvoicePrefix = "INV-"

// InvoiceService handles invoice-related operations. The bill remains the
// financial record; invoices are documents layered on top of it.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	billRepo    repository.BillRepository
	tenantRepo  repository.TenantRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	billRepo repository.BillRepository,
	tenantRepo repository.TenantRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		tenantRepo:  tenantRepo,
	}
}

// IssueInvoice issues an invoice for a bill. A bill can have at most one
// non-void invoice.
func (s *InvoiceService) IssueInvoice(ctx context.Context, userID, billID uuid.UUID) (*entity.Invoice, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	existing, err := s.invoiceRepo.GetByBillID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != enum.InvoiceStatusVoid {
		return nil, apperror.NewConflictError("An invoice already exists for this bill")
	}

	now := time.Now()
	invoice := &entity.Invoice{
		TenantID:  tenantID,
		UserID:    userID,
		BillID:    billID,
		InvoiceNo: utils.GenerateInvoiceNo(s.invoicePrefix(ctx, tenantID)),
		Status:    enum.InvoiceStatusIssued,
		IssuedAt:  &now,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// VoidInvoice voids an issued invoice. The underlying bill and its ledger
// entries are untouched.
func (s *InvoiceService) VoidInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == enum.InvoiceStatusVoid {
		return nil, apperror.NewConflictError("Invoice is already void")
	}

	invoice.Status = enum.InvoiceStatusVoid
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices. If isSuperAdmin is true, returns all invoices.
func (s *InvoiceService) ListInvoices(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, status *enum.InvoiceStatus, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Invoice], error) {
	filter := &repository.InvoiceFilterParams{
		Pagination:     params,
		Status:         status,
		SkipUserFilter: isSuperAdmin,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// invoicePrefix resolves the tenant's configured invoice number prefix
func (s *InvoiceService) invoicePrefix(ctx context.Context, tenantID uuid.UUID) string {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil || tenant == nil || tenant.Settings.InvoicePrefix == "" {
		return defaultInvoicePrefix
	}
	return tenant.Settings.InvoicePrefix
}
