package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

func TestComputeBalances(t *testing.T) {
	testCases := []struct {
		name     string
		accounts []Account
		totals   map[int64]AccountTotals
		want     []BalanceRow
	}{
		{
			name:     "No accounts",
			accounts: nil,
			totals:   nil,
			want:     []BalanceRow{},
		},
		{
			name: "Single posting",
			accounts: []Account{
				{ID: 1, Code: "101", Title: "A", Balance: d("-100")},
				{ID: 2, Code: "102", Title: "B", Balance: d("100")},
			},
			totals: map[int64]AccountTotals{
				1: {Debits: d("100"), Credits: decimal.Zero},
				2: {Debits: decimal.Zero, Credits: d("100")},
			},
			want: []BalanceRow{
				{Code: "101", Title: "A", Opening: d("0"), Debits: d("100"), Credits: d("0"), Closing: d("-100")},
				{Code: "102", Title: "B", Opening: d("0"), Debits: d("0"), Credits: d("100"), Closing: d("100")},
			},
		},
		{
			name: "Account without transactions",
			accounts: []Account{
				{ID: 7, Code: "700", Title: "Sales", Balance: d("0")},
			},
			totals: map[int64]AccountTotals{},
			want: []BalanceRow{
				{Code: "700", Title: "Sales", Opening: d("0"), Debits: d("0"), Credits: d("0"), Closing: d("0")},
			},
		},
		{
			name: "Balance drifted by a deleted transaction",
			accounts: []Account{
				{ID: 1, Code: "101", Title: "A", Balance: d("-100")},
			},
			totals: map[int64]AccountTotals{},
			want: []BalanceRow{
				{Code: "101", Title: "A", Opening: d("-100"), Debits: d("0"), Credits: d("0"), Closing: d("-100")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeBalances(tc.accounts, tc.totals)
			if diff := cmp.Diff(tc.want, got, decimalComparer); diff != "" {
				t.Errorf("ComputeBalances() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeBalancesIdempotent(t *testing.T) {
	accounts := []Account{
		{ID: 1, Code: "101", Title: "A", Balance: d("-40.25")},
		{ID: 2, Code: "102", Title: "B", Balance: d("40.25")},
	}
	totals := map[int64]AccountTotals{
		1: {Debits: d("50.25"), Credits: d("10")},
		2: {Debits: d("10"), Credits: d("50.25")},
	}

	first := ComputeBalances(accounts, totals)
	second := ComputeBalances(accounts, totals)

	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Errorf("ComputeBalances() not idempotent (-first +second):\n%s", diff)
	}
}

func TestBalanceExportFileName(t *testing.T) {
	for format, want := range map[string]string{
		"xlsx": "balance_comptable.xlsx",
		"csv":  "balance_comptable.csv",
	} {
		if got := BalanceExportFileName(format); got != want {
			t.Errorf("BalanceExportFileName(%q) = %q, want %q", format, got, want)
		}
	}
}
