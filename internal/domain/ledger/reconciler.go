// Package ledger reconciles an entity's opening balance, bills, and payments
// into outstanding-due figures. All functions are pure: they operate on
// records already fetched by the caller and hold no state, so callers must
// surface fetch failures themselves instead of passing empty slices (an empty
// record set legitimately means zeroed totals, never an error).
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillRecord carries the amounts the reconciler needs from a bill.
// Amounts are in cents.
type BillRecord struct {
	TotalAmount int64
	PaidAmount  int64
	CreatedAt   time.Time
}

// PaymentRecord carries the amount the reconciler needs from a payment.
// Amounts are in cents.
type PaymentRecord struct {
	Amount    int64
	CreatedAt time.Time
}

// DateRange filters records by creation time. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Summary holds the reconciled totals for one entity. Amounts are in cents;
// presentation layers convert before display.
type Summary struct {
	OpeningBalance int64 `json:"opening_balance"`
	TotalBilled    int64 `json:"total_billed"`
	TotalPaid      int64 `json:"total_paid"`
	// RawDue keeps the signed intermediate: a negative opening balance
	// (advance) can push it below zero even though the displayed due is
	// clamped. Callers extending the ledger must use RawDue, not
	// OutstandingDue, as their starting point.
	RawDue         int64 `json:"raw_due"`
	OutstandingDue int64 `json:"outstanding_due"`
}

// Summarize reconciles an entity's records into aggregate totals.
//
// TotalPaid is the maximum of the summed bill paid-amounts and the summed
// payment amounts. Older data only recorded settlement on the bill itself;
// newer data writes a Payment row for every settlement including the one at
// bill creation, so adding the two would double count. Under the current
// write path sum(payments) always dominates and the max() only matters for
// pre-migration data.
//
// OutstandingDue = max(0, openingBalance + TotalBilled - TotalPaid).
func Summarize(openingBalance int64, bills []BillRecord, payments []PaymentRecord) Summary {
	return SummarizeRange(openingBalance, bills, payments, DateRange{})
}

// SummarizeRange is Summarize restricted to records created inside the range.
// The opening balance always contributes regardless of the range.
func SummarizeRange(openingBalance int64, bills []BillRecord, payments []PaymentRecord, dateRange DateRange) Summary {
	opening := decimal.New(openingBalance, 0)

	billed := decimal.Zero
	paidOnBills := decimal.Zero
	for _, b := range bills {
		if !dateRange.Contains(b.CreatedAt) {
			continue
		}
		billed = billed.Add(decimal.New(b.TotalAmount, 0))
		paidOnBills = paidOnBills.Add(decimal.New(b.PaidAmount, 0))
	}

	paidDirect := decimal.Zero
	for _, p := range payments {
		if !dateRange.Contains(p.CreatedAt) {
			continue
		}
		paidDirect = paidDirect.Add(decimal.New(p.Amount, 0))
	}

	totalPaid := paidOnBills
	if paidDirect.GreaterThan(paidOnBills) {
		totalPaid = paidDirect
	}

	rawDue := opening.Add(billed).Sub(totalPaid)

	outstanding := rawDue
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	return Summary{
		OpeningBalance: openingBalance,
		TotalBilled:    billed.IntPart(),
		TotalPaid:      totalPaid.IntPart(),
		RawDue:         rawDue.IntPart(),
		OutstandingDue: outstanding.IntPart(),
	}
}
