package core

// CategoryTotal is an amount aggregated by category name. The summary
// endpoint keys items by "_id", a habit of the store's aggregation layer.
type CategoryTotal struct {
	Category string `json:"_id"`
	Total    Money  `json:"total"`
}

// Severity classifies how much of the monthly budget is spent.
type Severity string

const (
	SeverityNominal  Severity = "nominal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// TotalSpend sums the amounts of exactly the records passed in. No
// filtering happens here; callers scope the list first.
func TotalSpend(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// BreakdownByCategory groups the expenses by category, summing per group.
// Groups appear in first-occurrence order of the input, which keeps the
// ordering stable within one computation.
func BreakdownByCategory(expenses []Expense) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	return totals
}

// BudgetUsage returns total/budget as a ratio. A zero or missing budget
// yields 0 rather than a division artifact.
func BudgetUsage(total, budget Money) float64 {
	if budget.Cents <= 0 {
		return 0
	}
	return float64(total.Cents) / float64(budget.Cents)
}

// BandFor maps a budget-usage ratio to a severity band. The 0.80 boundary
// itself is critical.
func BandFor(ratio float64) Severity {
	switch {
	case ratio < 0.50:
		return SeverityNominal
	case ratio < 0.80:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}
