package core

import "testing"

func TestTotalSpend(t *testing.T) {
	expenses := []Expense{
		{Amount: Money{Cents: 450}},
		{Amount: Money{Cents: 250}},
		{Amount: Money{Cents: 0}},
	}
	if got := TotalSpend(expenses); got.Cents != 700 {
		t.Fatalf("got %d, want 700", got.Cents)
	}
	if got := TotalSpend(nil); got.Cents != 0 {
		t.Fatalf("empty list: got %d, want 0", got.Cents)
	}
}

func TestBreakdownByCategory(t *testing.T) {
	expenses := []Expense{
		{Category: "Food", Amount: Money{Cents: 450}},
		{Category: "Transport", Amount: Money{Cents: 250}},
		{Category: "Food", Amount: Money{Cents: 550}},
	}
	got := BreakdownByCategory(expenses)
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	// First-occurrence order keeps the rendering stable.
	if got[0].Category != "Food" || got[0].Total.Cents != 1000 {
		t.Fatalf("group 0: %+v", got[0])
	}
	if got[1].Category != "Transport" || got[1].Total.Cents != 250 {
		t.Fatalf("group 1: %+v", got[1])
	}
}

func TestBudgetUsage(t *testing.T) {
	if got := BudgetUsage(Money{Cents: 40000}, Money{Cents: 100000}); got != 0.4 {
		t.Fatalf("got %v, want 0.4", got)
	}
	// Zero budget must not produce a division artifact.
	if got := BudgetUsage(Money{Cents: 0}, Money{Cents: 0}); got != 0 {
		t.Fatalf("zero budget: got %v, want 0", got)
	}
	if got := BudgetUsage(Money{Cents: 500}, Money{Cents: 0}); got != 0 {
		t.Fatalf("zero budget with spend: got %v, want 0", got)
	}
}

func TestBandFor(t *testing.T) {
	budget := Money{Cents: 100000}
	cases := []struct {
		spendCents int64
		want       Severity
	}{
		{40000, SeverityNominal},
		{49999, SeverityNominal},
		{50000, SeverityWarning},
		{65000, SeverityWarning},
		{79999, SeverityWarning},
		{80000, SeverityCritical}, // the boundary itself is critical
		{85000, SeverityCritical},
	}
	for _, tc := range cases {
		ratio := BudgetUsage(Money{Cents: tc.spendCents}, budget)
		if got := BandFor(ratio); got != tc.want {
			t.Fatalf("spend %d: got %s want %s", tc.spendCents, got, tc.want)
		}
	}
	if got := BandFor(BudgetUsage(Money{}, Money{})); got != SeverityNominal {
		t.Fatalf("no budget, no spend: got %s", got)
	}
}
