package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
)

type fakeInvoiceRepo struct {
	invoice   *entity.Invoice
	byBill    *entity.Invoice
	created   *entity.Invoice
	updated   *entity.Invoice
	createErr error
	err       error
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = invoice
	return f.err
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return f.invoice, f.err
}

func (f *fakeInvoiceRepo) GetByBillID(ctx context.Context, billID uuid.UUID) (*entity.Invoice, error) {
	return f.byBill, f.err
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	f.updated = invoice
	return f.err
}

func (f *fakeInvoiceRepo) List(ctx context.Context, userID uuid.UUID, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return nil, 0, f.err
}

func TestIssueInvoiceRequiresTenantContext(t *testing.T) {
	svc := NewInvoiceService(&fakeInvoiceRepo{}, &fakeBillRepo{}, &fakeTenantRepo{})

	_, err := svc.IssueInvoice(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected error without tenant context")
	}
}

func TestIssueInvoiceUnknownBill(t *testing.T) {
	svc := NewInvoiceService(&fakeInvoiceRepo{}, &fakeBillRepo{}, &fakeTenantRepo{})

	_, err := svc.IssueInvoice(tenantCtx(uuid.New()), uuid.New(), uuid.New())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestIssueInvoiceRejectsDuplicate(t *testing.T) {
	billID := uuid.New()
	invoiceRepo := &fakeInvoiceRepo{
		byBill: &entity.Invoice{ID: uuid.New(), BillID: billID, Status: enum.InvoiceStatusIssued},
	}
	billRepo := &fakeBillRepo{getByID: &entity.Bill{ID: billID}}
	svc := NewInvoiceService(invoiceRepo, billRepo, &fakeTenantRepo{})

	_, err := svc.IssueInvoice(tenantCtx(uuid.New()), uuid.New(), billID)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Fatalf("expected 409 for duplicate invoice, got %v", err)
	}
}

func TestIssueInvoiceSurfacesInsertConflict(t *testing.T) {
	// A concurrent issue for the same bill can slip past the pre-insert
	// check; the repository reports the unique-index violation as a 409.
	billID := uuid.New()
	invoiceRepo := &fakeInvoiceRepo{
		createErr: apperror.NewConflictError("An invoice already exists for this bill"),
	}
	billRepo := &fakeBillRepo{getByID: &entity.Bill{ID: billID}}
	svc := NewInvoiceService(invoiceRepo, billRepo, &fakeTenantRepo{})

	_, err := svc.IssueInvoice(tenantCtx(uuid.New()), uuid.New(), billID)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Fatalf("expected 409 from concurrent issue, got %v", err)
	}
}

func TestIssueInvoiceAllowsReissueAfterVoid(t *testing.T) {
	billID := uuid.New()
	tenantID := uuid.New()
	invoiceRepo := &fakeInvoiceRepo{
		byBill: &entity.Invoice{ID: uuid.New(), BillID: billID, Status: enum.InvoiceStatusVoid},
	}
	billRepo := &fakeBillRepo{getByID: &entity.Bill{ID: billID}}
	svc := NewInvoiceService(invoiceRepo, billRepo, &fakeTenantRepo{})

	invoice, err := svc.IssueInvoice(tenantCtx(tenantID), uuid.New(), billID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoiceRepo.created == nil {
		t.Fatal("expected a new invoice to be created")
	}
	if invoice.Status != enum.InvoiceStatusIssued {
		t.Errorf("expected issued status, got %v", invoice.Status)
	}
	if invoice.IssuedAt == nil {
		t.Error("expected IssuedAt to be set")
	}
	if invoice.TenantID != tenantID {
		t.Errorf("expected tenant %s, got %s", tenantID, invoice.TenantID)
	}
}

func TestIssueInvoiceUsesTenantPrefix(t *testing.T) {
	billID := uuid.New()
	tenant := &entity.Tenant{ID: uuid.New()}
	tenant.Settings.InvoicePrefix = "DUKA-INV-"
	svc := NewInvoiceService(
		&fakeInvoiceRepo{},
		&fakeBillRepo{getByID: &entity.Bill{ID: billID}},
		&fakeTenantRepo{tenant: tenant},
	)

	invoice, err := svc.IssueInvoice(tenantCtx(tenant.ID), uuid.New(), billID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(invoice.InvoiceNo, "DUKA-INV-") {
		t.Errorf("expected invoice number with tenant prefix, got %q", invoice.InvoiceNo)
	}
}

func TestIssueInvoiceFallsBackToDefaultPrefix(t *testing.T) {
	billID := uuid.New()
	svc := NewInvoiceService(
		&fakeInvoiceRepo{},
		&fakeBillRepo{getByID: &entity.Bill{ID: billID}},
		&fakeTenantRepo{},
	)

	invoice, err := svc.IssueInvoice(tenantCtx(uuid.New()), uuid.New(), billID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(invoice.InvoiceNo, "INV-") {
		t.Errorf("expected default invoice prefix, got %q", invoice.InvoiceNo)
	}
}

func TestVoidInvoice(t *testing.T) {
	invoiceRepo := &fakeInvoiceRepo{
		invoice: &entity.Invoice{ID: uuid.New(), Status: enum.InvoiceStatusIssued},
	}
	svc := NewInvoiceService(invoiceRepo, &fakeBillRepo{}, &fakeTenantRepo{})

	invoice, err := svc.VoidInvoice(context.Background(), invoiceRepo.invoice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Status != enum.InvoiceStatusVoid {
		t.Errorf("expected void status, got %v", invoice.Status)
	}
	if invoiceRepo.updated == nil {
		t.Error("expected the invoice to be persisted")
	}
}

func TestVoidInvoiceAlreadyVoid(t *testing.T) {
	invoiceRepo := &fakeInvoiceRepo{
		invoice: &entity.Invoice{ID: uuid.New(), Status: enum.InvoiceStatusVoid},
	}
	svc := NewInvoiceService(invoiceRepo, &fakeBillRepo{}, &fakeTenantRepo{})

	_, err := svc.VoidInvoice(context.Background(), invoiceRepo.invoice.ID)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Fatalf("expected 409 for already-void invoice, got %v", err)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc := NewInvoiceService(&fakeInvoiceRepo{}, &fakeBillRepo{}, &fakeTenantRepo{})

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
