package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/entity"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/mwangaza/dukahub-api/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func TestCreateCustomerDefaultsToWalkIn(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo)

	customer, err := svc.CreateCustomer(tenantCtx(uuid.New()), &CreateCustomerInput{
		UserID: uuid.New(),
		Name:   "Mama Njeri",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if customer.Type != enum.CustomerTypeWalkIn {
		t.Errorf("type = %q, want walkin", customer.Type)
	}
	if !customer.IsActive {
		t.Error("new customer should be active")
	}
}

func TestCreateCustomerWalkInRejectsOpeningBalance(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerRepo{})

	_, err := svc.CreateCustomer(tenantCtx(uuid.New()), &CreateCustomerInput{
		UserID:         uuid.New(),
		Name:           "Mama Njeri",
		Type:           enum.CustomerTypeWalkIn,
		OpeningBalance: 500,
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 400 {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCreateCustomerDueKeepsOpeningBalance(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo)

	customer, err := svc.CreateCustomer(tenantCtx(uuid.New()), &CreateCustomerInput{
		UserID:         uuid.New(),
		Name:           "Otieno",
		Type:           enum.CustomerTypeDue,
		OpeningBalance: -2500, // customer holds an advance
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if customer.OpeningBalance != -2500 {
		t.Errorf("OpeningBalance = %d, want -2500", customer.OpeningBalance)
	}
}

func TestCreateCustomerPhoneConflict(t *testing.T) {
	repo := &fakeCustomerRepo{byPhone: &entity.Customer{ID: uuid.New()}}
	svc := NewCustomerService(repo)

	_, err := svc.CreateCustomer(tenantCtx(uuid.New()), &CreateCustomerInput{
		UserID: uuid.New(),
		Name:   "Otieno",
		Phone:  strPtr("+254700000001"),
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestCreateCustomerRequiresTenantContext(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerRepo{})

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID: uuid.New(),
		Name:   "Otieno",
	})
	if err == nil {
		t.Fatal("expected error for missing tenant context")
	}
}

func TestUpdateCustomerCannotChangeTypeOrOpening(t *testing.T) {
	id := uuid.New()
	repo := &fakeCustomerRepo{customer: dueCustomer(id, 1500)}
	svc := NewCustomerService(repo)

	updated, err := svc.UpdateCustomer(tenantCtx(uuid.New()), &UpdateCustomerInput{
		ID:    id,
		Name:  strPtr("Wanjiku Updated"),
		Phone: strPtr("+254700000002"),
	})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if updated.Type != enum.CustomerTypeDue {
		t.Errorf("type changed to %q", updated.Type)
	}
	if updated.OpeningBalance != 1500 {
		t.Errorf("opening balance changed to %d", updated.OpeningBalance)
	}
	if updated.Name != "Wanjiku Updated" {
		t.Errorf("name = %q", updated.Name)
	}
}
