package ledger

import "testing"

func TestAllocateProRata(t *testing.T) {
	tests := []struct {
		name     string
		bills    []BillRecord
		totalDue int64
		want     []Allocation
	}{
		{
			name: "proportional split across two bills",
			bills: []BillRecord{
				{TotalAmount: 60000},
				{TotalAmount: 40000},
			},
			totalDue: 25000,
			want: []Allocation{
				{Due: 15000, Paid: 45000},
				{Due: 10000, Paid: 30000},
			},
		},
		{
			name: "zero due marks every bill fully paid",
			bills: []BillRecord{
				{TotalAmount: 30000},
				{TotalAmount: 20000},
			},
			totalDue: 0,
			want: []Allocation{
				{Due: 0, Paid: 30000},
				{Due: 0, Paid: 20000},
			},
		},
		{
			name: "negative due treated as fully paid",
			bills: []BillRecord{
				{TotalAmount: 10000},
			},
			totalDue: -5000,
			want: []Allocation{
				{Due: 0, Paid: 10000},
			},
		},
		{
			name: "single bill carries the whole due",
			bills: []BillRecord{
				{TotalAmount: 80000},
			},
			totalDue: 30000,
			want: []Allocation{
				{Due: 30000, Paid: 50000},
			},
		},
		{
			name:     "no bills",
			bills:    nil,
			totalDue: 10000,
			want:     []Allocation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateProRata(tt.bills, tt.totalDue)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d allocations, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("allocation[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAllocateProRataRemainder(t *testing.T) {
	// Three equal bills with a due that does not divide evenly: the
	// remainder must land on the last bill so shares sum exactly.
	bills := []BillRecord{
		{TotalAmount: 10000},
		{TotalAmount: 10000},
		{TotalAmount: 10000},
	}
	got := AllocateProRata(bills, 10001)

	var sum int64
	for _, a := range got {
		sum += a.Due
	}
	if sum != 10001 {
		t.Errorf("allocated dues sum to %d, want 10001", sum)
	}
	if got[2].Due != 10001-got[0].Due-got[1].Due {
		t.Errorf("remainder not assigned to last bill: %+v", got)
	}
}
