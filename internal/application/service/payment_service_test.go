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

func TestCreatePaymentValidation(t *testing.T) {
	customerID := uuid.New()

	tests := []struct {
		name    string
		input   *CreatePaymentInput
		wantErr string
	}{
		{
			name: "zero amount",
			input: &CreatePaymentInput{
				EntityID:   customerID,
				EntityType: enum.EntityTypeCustomer,
				Amount:     0,
			},
			wantErr: "Payment amount must be greater than zero",
		},
		{
			name: "negative amount",
			input: &CreatePaymentInput{
				EntityID:   customerID,
				EntityType: enum.EntityTypeCustomer,
				Amount:     -500,
			},
			wantErr: "Payment amount must be greater than zero",
		},
		{
			name: "unknown entity type",
			input: &CreatePaymentInput{
				EntityID:   customerID,
				EntityType: enum.EntityType("supplier"),
				Amount:     1000,
			},
			wantErr: "Invalid entity type",
		},
		{
			name: "unknown payment method",
			input: &CreatePaymentInput{
				EntityID:      customerID,
				EntityType:    enum.EntityTypeCustomer,
				Amount:        1000,
				PaymentMethod: enum.PaymentMethod("barter"),
			},
			wantErr: "Invalid payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPaymentService(
				&fakePaymentRepo{},
				&fakeCustomerRepo{customer: dueCustomer(customerID, 0)},
				&fakeWholesalerRepo{},
				nil,
			)

			_, err := svc.CreatePayment(tenantCtx(uuid.New()), tt.input)
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Message != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, appErr.Message)
			}
		})
	}
}

func TestCreatePaymentRequiresTenantContext(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, nil)

	_, err := svc.CreatePayment(context.Background(), &CreatePaymentInput{
		EntityID:   uuid.New(),
		EntityType: enum.EntityTypeCustomer,
		Amount:     1000,
	})
	if err == nil {
		t.Fatal("expected error without tenant context")
	}
}

func TestCreatePaymentUnknownCustomer(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, nil)

	_, err := svc.CreatePayment(tenantCtx(uuid.New()), &CreatePaymentInput{
		EntityID:   uuid.New(),
		EntityType: enum.EntityTypeCustomer,
		Amount:     1000,
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestCreatePaymentRecordsSettlement(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	wholesalerID := uuid.New()
	paymentRepo := &fakePaymentRepo{}
	svc := NewPaymentService(
		paymentRepo,
		&fakeCustomerRepo{},
		&fakeWholesalerRepo{wholesaler: &entity.Wholesaler{ID: wholesalerID, Name: "Kamau Traders"}},
		nil,
	)

	payment, err := svc.CreatePayment(tenantCtx(tenantID), &CreatePaymentInput{
		UserID:        userID,
		EntityID:      wholesalerID,
		EntityType:    enum.EntityTypeWholesaler,
		Amount:        7500,
		PaymentMethod: enum.PaymentMethodMpesa,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paymentRepo.created == nil {
		t.Fatal("expected the payment to be persisted")
	}
	if payment.Amount != 7500 {
		t.Errorf("expected amount 7500, got %d", payment.Amount)
	}
	if payment.TenantID != tenantID || payment.UserID != userID {
		t.Error("expected tenant and user to be stamped on the payment")
	}
	if payment.PaymentMethod != enum.PaymentMethodMpesa {
		t.Errorf("expected mpesa, got %v", payment.PaymentMethod)
	}
}

// Overpayment is legal: the reconciler reports it as an advance rather than
// clamping the write.
func TestCreatePaymentAllowsOverpayment(t *testing.T) {
	customerID := uuid.New()
	svc := NewPaymentService(
		&fakePaymentRepo{},
		&fakeCustomerRepo{customer: dueCustomer(customerID, 1000)},
		&fakeWholesalerRepo{},
		nil,
	)

	payment, err := svc.CreatePayment(tenantCtx(uuid.New()), &CreatePaymentInput{
		EntityID:   customerID,
		EntityType: enum.EntityTypeCustomer,
		Amount:     1_000_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Amount != 1_000_000 {
		t.Errorf("expected amount 1000000, got %d", payment.Amount)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{}, &fakeCustomerRepo{}, &fakeWholesalerRepo{}, nil)

	_, err := svc.GetPayment(context.Background(), uuid.New())
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
