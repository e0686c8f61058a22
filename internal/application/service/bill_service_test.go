package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/internal/domain/repository"
	infraRepo "github.com/mwangaza/dukahub-api/internal/infrastructure/repository"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
	"github.com/mwangaza/dukahub-api/pkg/pagination"
)

// --- Fakes ---

type fakeBillRepo struct {
	bills          []entity.Bill
	getByID        *entity.Bill
	createdBill    *entity.Bill
	createdPayment *entity.Payment
	err            error
}

func (f *fakeBillRepo) Create(ctx context.Context, bill *entity.Bill, initialPayment *entity.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.createdBill = bill
	f.createdPayment = initialPayment
	return nil
}

func (f *fakeBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	return f.getByID, f.err
}

func (f *fakeBillRepo) GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	return nil, nil
}

func (f *fakeBillRepo) List(ctx context.Context, userID uuid.UUID, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	return f.bills, int64(len(f.bills)), f.err
}

func (f *fakeBillRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) ([]entity.Bill, error) {
	return f.bills, f.err
}

type fakePaymentRepo struct {
	payments []entity.Payment
	getByID  *entity.Payment
	created  *entity.Payment
	err      error
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.created = payment
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return f.getByID, f.err
}

func (f *fakePaymentRepo) List(ctx context.Context, userID uuid.UUID, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return f.payments, int64(len(f.payments)), f.err
}

func (f *fakePaymentRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) ([]entity.Payment, error) {
	return f.payments, f.err
}

type fakeCustomerRepo struct {
	customer    *entity.Customer
	byPhone     *entity.Customer
	created     *entity.Customer
	getByIDCall int
	err         error
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if f.err != nil {
		return f.err
	}
	f.created = customer
	return nil
}
func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	f.getByIDCall++
	return f.customer, f.err
}
func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	return f.byPhone, nil
}
func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error { return f.err }
func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error              { return f.err }
func (f *fakeCustomerRepo) List(ctx context.Context, userID uuid.UUID, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	return nil, 0, f.err
}
func (f *fakeCustomerRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, search string, skipUserFilter bool) ([]entity.Customer, error) {
	return nil, f.err
}

type fakeWholesalerRepo struct {
	wholesaler *entity.Wholesaler
	err        error
}

func (f *fakeWholesalerRepo) Create(ctx context.Context, wholesaler *entity.Wholesaler) error {
	return f.err
}
func (f *fakeWholesalerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Wholesaler, error) {
	return f.wholesaler, f.err
}
func (f *fakeWholesalerRepo) Update(ctx context.Context, wholesaler *entity.Wholesaler) error {
	return f.err
}
func (f *fakeWholesalerRepo) Delete(ctx context.Context, id uuid.UUID) error { return f.err }
func (f *fakeWholesalerRepo) List(ctx context.Context, userID uuid.UUID, params *repository.WholesalerFilterParams) ([]entity.Wholesaler, int64, error) {
	return nil, 0, f.err
}

type fakeTenantRepo struct {
	tenant *entity.Tenant
	err    error
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return f.err }
func (f *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return f.tenant, f.err
}
func (f *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return f.tenant, f.err
}
func (f *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error { return f.err }
func (f *fakeTenantRepo) Delete(ctx context.Context, id uuid.UUID) error          { return f.err }
func (f *fakeTenantRepo) GetUserTenants(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Tenant, int64, error) {
	return nil, 0, f.err
}
func (f *fakeTenantRepo) AddMember(ctx context.Context, membership *entity.TenantMembership) error {
	return f.err
}
func (f *fakeTenantRepo) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	return f.err
}
func (f *fakeTenantRepo) GetMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error) {
	return nil, f.err
}
func (f *fakeTenantRepo) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	return true, f.err
}
func (f *fakeTenantRepo) GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*entity.TenantMembership, error) {
	return nil, f.err
}
func (f *fakeTenantRepo) UpdateMemberRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	return f.err
}
func (f *fakeTenantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return false, f.err
}
func (f *fakeTenantRepo) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Tenant, int64, error) {
	return nil, 0, f.err
}
func (f *fakeTenantRepo) Count(ctx context.Context) (int64, error) { return 0, f.err }

func tenantCtx(tenantID uuid.UUID) context.Context {
	return infraRepo.WithTenant(context.Background(), tenantID)
}

func dueCustomer(id uuid.UUID, opening int64) *entity.Customer {
	return &entity.Customer{ID: id, Name: "Wanjiku", Type: enum.CustomerTypeDue, OpeningBalance: opening}
}

// --- Tests ---

func TestCreateBillValidation(t *testing.T) {
	customerID := uuid.New()
	wholesalerID := uuid.New()

	tests := []struct {
		name    string
		input   *CreateBillInput
		wantMsg string
	}{
		{
			name: "zero total amount",
			input: &CreateBillInput{
				EntityID:    customerID,
				EntityType:  enum.EntityTypeCustomer,
				BillType:    enum.BillTypeSale,
				TotalAmount: 0,
			},
			wantMsg: "Total amount must be greater than zero",
		},
		{
			name: "negative paid amount",
			input: &CreateBillInput{
				EntityID:    customerID,
				EntityType:  enum.EntityTypeCustomer,
				BillType:    enum.BillTypeSale,
				TotalAmount: 1000,
				PaidAmount:  -1,
			},
			wantMsg: "Paid amount cannot be negative",
		},
		{
			name: "paid exceeds total",
			input: &CreateBillInput{
				EntityID:    customerID,
				EntityType:  enum.EntityTypeCustomer,
				BillType:    enum.BillTypeSale,
				TotalAmount: 1000,
				PaidAmount:  1500,
			},
			wantMsg: "Paid amount cannot exceed total amount",
		},
		{
			name: "unknown entity type",
			input: &CreateBillInput{
				EntityID:    customerID,
				EntityType:  enum.EntityType("vendor"),
				BillType:    enum.BillTypeSale,
				TotalAmount: 1000,
			},
			wantMsg: "Invalid entity type",
		},
		{
			name: "sale against wholesaler",
			input: &CreateBillInput{
				EntityID:    wholesalerID,
				EntityType:  enum.EntityTypeWholesaler,
				BillType:    enum.BillTypeSale,
				TotalAmount: 1000,
			},
			wantMsg: "Sale bills must reference a customer",
		},
		{
			name: "purchase against customer",
			input: &CreateBillInput{
				EntityID:    customerID,
				EntityType:  enum.EntityTypeCustomer,
				BillType:    enum.BillTypePurchase,
				TotalAmount: 1000,
			},
			wantMsg: "Purchase bills must reference a wholesaler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBillService(&fakeBillRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

			_, err := svc.CreateBill(tenantCtx(uuid.New()), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T: %v", err, err)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestCreateBillRequiresTenantContext(t *testing.T) {
	svc := NewBillService(&fakeBillRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

	_, err := svc.CreateBill(context.Background(), &CreateBillInput{
		EntityID:    uuid.New(),
		EntityType:  enum.EntityTypeCustomer,
		BillType:    enum.BillTypeSale,
		TotalAmount: 1000,
	})
	if err == nil {
		t.Fatal("expected error for missing tenant context")
	}
}

func TestCreateBillWritesSettlementPayment(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	customerID := uuid.New()

	billRepo := &fakeBillRepo{}
	svc := NewBillService(billRepo, &fakeCustomerRepo{customer: dueCustomer(customerID, 0)}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

	bill, err := svc.CreateBill(tenantCtx(tenantID), &CreateBillInput{
		UserID:        userID,
		EntityID:      customerID,
		EntityType:    enum.EntityTypeCustomer,
		BillType:      enum.BillTypeSale,
		TotalAmount:   5000,
		PaidAmount:    2000,
		PaymentMethod: enum.PaymentMethodMpesa,
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if bill.DueAmount != 3000 {
		t.Errorf("DueAmount = %d, want 3000", bill.DueAmount)
	}
	if billRepo.createdPayment == nil {
		t.Fatal("expected a settlement payment written with the bill")
	}
	if billRepo.createdPayment.Amount != 2000 {
		t.Errorf("settlement payment amount = %d, want 2000", billRepo.createdPayment.Amount)
	}
	if billRepo.createdPayment.EntityID != customerID {
		t.Errorf("settlement payment entity = %s, want %s", billRepo.createdPayment.EntityID, customerID)
	}
	if billRepo.createdPayment.TenantID != tenantID {
		t.Errorf("settlement payment tenant = %s, want %s", billRepo.createdPayment.TenantID, tenantID)
	}
}

func TestCreateBillUnpaidWritesNoPayment(t *testing.T) {
	customerID := uuid.New()

	billRepo := &fakeBillRepo{}
	svc := NewBillService(billRepo, &fakeCustomerRepo{customer: dueCustomer(customerID, 0)}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

	bill, err := svc.CreateBill(tenantCtx(uuid.New()), &CreateBillInput{
		EntityID:    customerID,
		EntityType:  enum.EntityTypeCustomer,
		BillType:    enum.BillTypeSale,
		TotalAmount: 5000,
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if billRepo.createdPayment != nil {
		t.Error("unpaid bill must not write a settlement payment")
	}
	if bill.DueAmount != 5000 {
		t.Errorf("DueAmount = %d, want 5000", bill.DueAmount)
	}
}

func TestCreateBillUnknownCustomer(t *testing.T) {
	svc := NewBillService(&fakeBillRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

	_, err := svc.CreateBill(tenantCtx(uuid.New()), &CreateBillInput{
		EntityID:    uuid.New(),
		EntityType:  enum.EntityTypeCustomer,
		BillType:    enum.BillTypeSale,
		TotalAmount: 1000,
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404 for unknown customer, got %v", err)
	}
}

func TestCreateBillUsesTenantBillPrefix(t *testing.T) {
	customerID := uuid.New()
	tenant := &entity.Tenant{
		ID:       uuid.New(),
		Settings: entity.TenantSettings{BillPrefix: "DUKA-"},
	}

	billRepo := &fakeBillRepo{}
	svc := NewBillService(billRepo, &fakeCustomerRepo{customer: dueCustomer(customerID, 0)}, &fakeWholesalerRepo{}, &fakeTenantRepo{tenant: tenant}, nil)

	bill, err := svc.CreateBill(tenantCtx(tenant.ID), &CreateBillInput{
		EntityID:    customerID,
		EntityType:  enum.EntityTypeCustomer,
		BillType:    enum.BillTypeSale,
		TotalAmount: 1000,
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if !strings.HasPrefix(bill.BillNo, "DUKA-") {
		t.Errorf("BillNo = %q, want DUKA- prefix", bill.BillNo)
	}
}

func TestCreateBillFallsBackToDefaultPrefix(t *testing.T) {
	customerID := uuid.New()

	billRepo := &fakeBillRepo{}
	svc := NewBillService(billRepo, &fakeCustomerRepo{customer: dueCustomer(customerID, 0)}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

	bill, err := svc.CreateBill(tenantCtx(uuid.New()), &CreateBillInput{
		EntityID:    customerID,
		EntityType:  enum.EntityTypeCustomer,
		BillType:    enum.BillTypeSale,
		TotalAmount: 1000,
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if !strings.HasPrefix(bill.BillNo, "BILL-") {
		t.Errorf("BillNo = %q, want BILL- prefix", bill.BillNo)
	}
}

func TestGetBillNotFound(t *testing.T) {
	svc := NewBillService(&fakeBillRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, &fakeTenantRepo{}, nil)

	_, err := svc.GetBill(context.Background(), uuid.New())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
