package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
)

func TestGetBalanceRejectsWalkInCustomer(t *testing.T) {
	customerID := uuid.New()
	walkIn := &entity.Customer{ID: customerID, Name: "Passerby", Type: enum.CustomerTypeWalkIn}

	svc := NewBalanceService(&fakeCustomerRepo{customer: walkIn}, &fakeWholesalerRepo{}, &fakeBillRepo{}, &fakePaymentRepo{}, nil)

	_, err := svc.GetBalance(tenantCtx(uuid.New()), customerID, enum.EntityTypeCustomer)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 400 {
		t.Fatalf("expected 400 for walk-in customer, got %v", err)
	}
}

func TestGetBalanceReconcilesRecords(t *testing.T) {
	customerID := uuid.New()
	now := time.Now()

	// Opening 10.00, one bill of 50.00 settled 20.00 up front. The up-front
	// settlement also exists as a payment row, plus a later payment of 10.00.
	billRepo := &fakeBillRepo{bills: []entity.Bill{
		{TotalAmount: 5000, PaidAmount: 2000, CreatedAt: now},
	}}
	paymentRepo := &fakePaymentRepo{payments: []entity.Payment{
		{Amount: 2000, CreatedAt: now},
		{Amount: 1000, CreatedAt: now.Add(time.Hour)},
	}}

	svc := NewBalanceService(&fakeCustomerRepo{customer: dueCustomer(customerID, 1000)}, &fakeWholesalerRepo{}, billRepo, paymentRepo, nil)

	result, err := svc.GetBalance(tenantCtx(uuid.New()), customerID, enum.EntityTypeCustomer)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}

	if result.OpeningBalance != 10.00 {
		t.Errorf("OpeningBalance = %v, want 10.00", result.OpeningBalance)
	}
	if result.TotalBilled != 50.00 {
		t.Errorf("TotalBilled = %v, want 50.00", result.TotalBilled)
	}
	// Payment rows dominate: 20.00 + 10.00, not double counted with the
	// bill's own settled amount
	if result.TotalPaid != 30.00 {
		t.Errorf("TotalPaid = %v, want 30.00", result.TotalPaid)
	}
	if result.OutstandingDue != 30.00 {
		t.Errorf("OutstandingDue = %v, want 30.00", result.OutstandingDue)
	}
}

func TestGetBalanceUnknownWholesaler(t *testing.T) {
	svc := NewBalanceService(&fakeCustomerRepo{}, &fakeWholesalerRepo{}, &fakeBillRepo{}, &fakePaymentRepo{}, nil)

	_, err := svc.GetBalance(tenantCtx(uuid.New()), uuid.New(), enum.EntityTypeWholesaler)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestGetStatementMergesLinesChronologically(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	billRepo := &fakeBillRepo{bills: []entity.Bill{
		{BillNo: "BILL-A1", TotalAmount: 5000, CreatedAt: base},
		{BillNo: "BILL-A2", TotalAmount: 3000, CreatedAt: base.Add(48 * time.Hour)},
	}}
	paymentRepo := &fakePaymentRepo{payments: []entity.Payment{
		{Amount: 5000, CreatedAt: base.Add(24 * time.Hour)},
	}}

	svc := NewBalanceService(&fakeCustomerRepo{customer: dueCustomer(customerID, 0)}, &fakeWholesalerRepo{}, billRepo, paymentRepo, nil)

	statement, err := svc.GetStatement(tenantCtx(uuid.New()), customerID, enum.EntityTypeCustomer, nil, nil)
	if err != nil {
		t.Fatalf("GetStatement: %v", err)
	}

	if len(statement.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(statement.Lines))
	}
	wantTypes := []string{"bill", "payment", "bill"}
	for i, want := range wantTypes {
		if statement.Lines[i].Type != want {
			t.Errorf("line %d type = %q, want %q", i, statement.Lines[i].Type, want)
		}
	}
	for i := 1; i < len(statement.Lines); i++ {
		if statement.Lines[i].Date.Before(statement.Lines[i-1].Date) {
			t.Errorf("line %d out of order", i)
		}
	}

	// 8000 billed, 5000 paid
	if statement.Summary.OutstandingDue != 30.00 {
		t.Errorf("OutstandingDue = %v, want 30.00", statement.Summary.OutstandingDue)
	}
}

func TestBalanceLookupsFetchEntityOnce(t *testing.T) {
	customerID := uuid.New()
	customerRepo := &fakeCustomerRepo{customer: dueCustomer(customerID, 1000)}

	svc := NewBalanceService(customerRepo, &fakeWholesalerRepo{}, &fakeBillRepo{}, &fakePaymentRepo{}, nil)

	if _, err := svc.GetBalance(tenantCtx(uuid.New()), customerID, enum.EntityTypeCustomer); err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if customerRepo.getByIDCall != 1 {
		t.Errorf("GetBalance fetched the customer %d times, want 1", customerRepo.getByIDCall)
	}

	customerRepo.getByIDCall = 0
	if _, err := svc.GetStatement(tenantCtx(uuid.New()), customerID, enum.EntityTypeCustomer, nil, nil); err != nil {
		t.Fatalf("GetStatement: %v", err)
	}
	if customerRepo.getByIDCall != 1 {
		t.Errorf("GetStatement fetched the customer %d times, want 1", customerRepo.getByIDCall)
	}
}

func TestGetStatementProRataAllocation(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Two equal bills, half the total settled: the outstanding due spreads
	// evenly across them in the displayed lines.
	billRepo := &fakeBillRepo{bills: []entity.Bill{
		{BillNo: "BILL-B1", TotalAmount: 4000, CreatedAt: base},
		{BillNo: "BILL-B2", TotalAmount: 4000, CreatedAt: base.Add(time.Hour)},
	}}
	paymentRepo := &fakePaymentRepo{payments: []entity.Payment{
		{Amount: 4000, CreatedAt: base.Add(2 * time.Hour)},
	}}

	svc := NewBalanceService(&fakeCustomerRepo{customer: dueCustomer(customerID, 0)}, &fakeWholesalerRepo{}, billRepo, paymentRepo, nil)

	statement, err := svc.GetStatement(tenantCtx(uuid.New()), customerID, enum.EntityTypeCustomer, nil, nil)
	if err != nil {
		t.Fatalf("GetStatement: %v", err)
	}

	var billLines []StatementLine
	for _, line := range statement.Lines {
		if line.Type == "bill" {
			billLines = append(billLines, line)
		}
	}
	if len(billLines) != 2 {
		t.Fatalf("bill lines = %d, want 2", len(billLines))
	}
	for i, line := range billLines {
		if line.Due != 20.00 {
			t.Errorf("bill line %d due = %v, want 20.00", i, line.Due)
		}
		if line.Paid != 20.00 {
			t.Errorf("bill line %d paid = %v, want 20.00", i, line.Paid)
		}
	}
}
