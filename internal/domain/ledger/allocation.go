package ledger

import "github.com/shopspring/decimal"

// Allocation is the per-bill due/paid split produced by AllocateProRata.
// Amounts are in cents.
type Allocation struct {
	Due  int64
	Paid int64
}

// AllocateProRata spreads an entity's total outstanding due across its bills
// in proportion to each bill's total amount:
//
//	due_i = totalDue * total_i / sum(total)
//
// Payments are not attributed to individual bills, so this split is a
// presentation-layer approximation for transaction history tables, not an
// authoritative ledger entry. Rounding remainders land on the last bill so
// the per-bill dues sum exactly to totalDue.
//
// A non-positive totalDue or an empty bill set yields allocations where every
// bill is fully paid.
func AllocateProRata(bills []BillRecord, totalDue int64) []Allocation {
	allocations := make([]Allocation, len(bills))
	if len(bills) == 0 {
		return allocations
	}

	totalBilled := decimal.Zero
	for _, b := range bills {
		totalBilled = totalBilled.Add(decimal.New(b.TotalAmount, 0))
	}

	if totalDue <= 0 || totalBilled.IsZero() {
		for i, b := range bills {
			allocations[i] = Allocation{Due: 0, Paid: b.TotalAmount}
		}
		return allocations
	}

	due := decimal.New(totalDue, 0)
	allocated := decimal.Zero
	for i, b := range bills {
		var share decimal.Decimal
		if i == len(bills)-1 {
			// Remainder goes to the last bill so shares sum exactly.
			share = due.Sub(allocated)
		} else {
			share = due.Mul(decimal.New(b.TotalAmount, 0)).DivRound(totalBilled, 0)
			allocated = allocated.Add(share)
		}
		allocations[i] = Allocation{
			Due:  share.IntPart(),
			Paid: b.TotalAmount - share.IntPart(),
		}
	}

	return allocations
}
