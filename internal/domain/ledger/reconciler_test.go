package ledger

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name            string
		openingBalance  int64
		bills           []BillRecord
		payments        []PaymentRecord
		wantBilled      int64
		wantPaid        int64
		wantRawDue      int64
		wantOutstanding int64
	}{
		{
			name:            "no records, positive opening balance",
			openingBalance:  50000,
			wantBilled:      0,
			wantPaid:        0,
			wantRawDue:      50000,
			wantOutstanding: 50000,
		},
		{
			name:            "no records, advance clamps to zero",
			openingBalance:  -20000,
			wantBilled:      0,
			wantPaid:        0,
			wantRawDue:      -20000,
			wantOutstanding: 0,
		},
		{
			name:           "payments dominate bill paid amounts",
			openingBalance: 50000,
			bills: []BillRecord{
				{TotalAmount: 100000, PaidAmount: 20000},
			},
			payments: []PaymentRecord{
				{Amount: 30000},
			},
			wantBilled:      100000,
			wantPaid:        30000,
			wantRawDue:      120000,
			wantOutstanding: 120000,
		},
		{
			name:           "bill paid amounts dominate payments",
			openingBalance: 0,
			bills: []BillRecord{
				{TotalAmount: 50000, PaidAmount: 50000},
				{TotalAmount: 30000, PaidAmount: 0},
			},
			payments: []PaymentRecord{
				{Amount: 20000},
			},
			wantBilled:      80000,
			wantPaid:        50000,
			wantRawDue:      30000,
			wantOutstanding: 30000,
		},
		{
			name:           "zero payments, due is billed plus opening",
			openingBalance: 10000,
			bills: []BillRecord{
				{TotalAmount: 40000},
			},
			wantBilled:      40000,
			wantPaid:        0,
			wantRawDue:      50000,
			wantOutstanding: 50000,
		},
		{
			name:           "advance reduces due but display floors at zero",
			openingBalance: -100000,
			bills: []BillRecord{
				{TotalAmount: 60000, PaidAmount: 0},
			},
			payments: []PaymentRecord{
				{Amount: 10000},
			},
			wantBilled:      60000,
			wantPaid:        10000,
			wantRawDue:      -50000,
			wantOutstanding: 0,
		},
		{
			name:           "fully settled",
			openingBalance: 0,
			bills: []BillRecord{
				{TotalAmount: 25000, PaidAmount: 25000},
			},
			payments: []PaymentRecord{
				{Amount: 25000},
			},
			wantBilled:      25000,
			wantPaid:        25000,
			wantRawDue:      0,
			wantOutstanding: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.openingBalance, tt.bills, tt.payments)

			if got.TotalBilled != tt.wantBilled {
				t.Errorf("TotalBilled = %d, want %d", got.TotalBilled, tt.wantBilled)
			}
			if got.TotalPaid != tt.wantPaid {
				t.Errorf("TotalPaid = %d, want %d", got.TotalPaid, tt.wantPaid)
			}
			if got.RawDue != tt.wantRawDue {
				t.Errorf("RawDue = %d, want %d", got.RawDue, tt.wantRawDue)
			}
			if got.OutstandingDue != tt.wantOutstanding {
				t.Errorf("OutstandingDue = %d, want %d", got.OutstandingDue, tt.wantOutstanding)
			}
			if got.OutstandingDue < 0 {
				t.Errorf("OutstandingDue = %d, must never be negative", got.OutstandingDue)
			}

			// Pure function: recomputing yields identical results.
			again := Summarize(tt.openingBalance, tt.bills, tt.payments)
			if got != again {
				t.Errorf("Summarize not idempotent: first %+v, second %+v", got, again)
			}
		})
	}
}

func TestSummarizeRange(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	bills := []BillRecord{
		{TotalAmount: 10000, PaidAmount: 0, CreatedAt: jan},
		{TotalAmount: 20000, PaidAmount: 0, CreatedAt: feb},
		{TotalAmount: 30000, PaidAmount: 0, CreatedAt: mar},
	}
	payments := []PaymentRecord{
		{Amount: 5000, CreatedAt: jan},
		{Amount: 7000, CreatedAt: mar},
	}

	t.Run("open range includes everything", func(t *testing.T) {
		got := SummarizeRange(0, bills, payments, DateRange{})
		if got.TotalBilled != 60000 {
			t.Errorf("TotalBilled = %d, want 60000", got.TotalBilled)
		}
		if got.TotalPaid != 12000 {
			t.Errorf("TotalPaid = %d, want 12000", got.TotalPaid)
		}
	})

	t.Run("bounded range filters both record kinds", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		}
		got := SummarizeRange(0, bills, payments, r)
		if got.TotalBilled != 20000 {
			t.Errorf("TotalBilled = %d, want 20000", got.TotalBilled)
		}
		if got.TotalPaid != 0 {
			t.Errorf("TotalPaid = %d, want 0", got.TotalPaid)
		}
	})

	t.Run("opening balance contributes regardless of range", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		got := SummarizeRange(15000, bills, payments, r)
		if got.OutstandingDue != 15000 {
			t.Errorf("OutstandingDue = %d, want 15000", got.OutstandingDue)
		}
	})
}
