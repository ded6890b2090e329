package core

// CategoryAll is the wildcard category matching every expense.
const CategoryAll = "All"

// Filter is the (month, year, category) triple restricting which expenses
// are visible. It is transient view state, never persisted. The remote
// store applies the same semantics server-side; this definition is the
// authority the store must honor and what in-memory backends run.
type Filter struct {
	Month    int    // 1-12
	Year     int    // four-digit
	Category string // CategoryAll or an exact category
}

// FilterFor returns the filter covering y/m with the category wildcard.
func FilterFor(year, month int) Filter {
	return Filter{Month: month, Year: year, Category: CategoryAll}
}

// Validate checks the month and year ranges.
func (f Filter) Validate() error {
	if f.Month < 1 || f.Month > 12 {
		return ErrInvalidMonth
	}
	if f.Year < 1000 || f.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

// Matches reports whether e falls inside the filter scope: same calendar
// month and year, and either the wildcard category or an exact match.
func (f Filter) Matches(e Expense) bool {
	if e.Date.Month() != f.Month || e.Date.Year() != f.Year {
		return false
	}
	return f.Category == CategoryAll || f.Category == "" || e.Category == f.Category
}

// Apply keeps the expenses matching the filter, preserving input order.
// Applying the same filter twice yields the same result as applying it once.
func (f Filter) Apply(expenses []Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
