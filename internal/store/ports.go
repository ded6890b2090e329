// Package store defines the outbound ports to the expense store and the
// factory selecting a concrete backend. The controllers depend only on
// these interfaces; the remote REST client, the local sqlite backend, and
// the in-memory fake all satisfy them.
package store

import (
	"context"

	"kharcha/internal/core"
)

type (
	// ExpenseLister returns expenses inside the filter scope. The store
	// runs the filter semantics defined by core.Filter and returns the
	// list in date-descending order.
	ExpenseLister interface {
		ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)
	}

	// ExpenseCreator persists a draft and returns the stored record with
	// its store-assigned identifier.
	ExpenseCreator interface {
		CreateExpense(ctx context.Context, d core.Draft) (core.Expense, error)
	}

	// ExpenseUpdater replaces the fields of an existing record in place.
	// The edit flow does not call it; edits go through delete plus create
	// so the store assigns a fresh identifier.
	ExpenseUpdater interface {
		UpdateExpense(ctx context.Context, id string, d core.Draft) (core.Expense, error)
	}

	// ExpenseDeleter removes a record by identifier.
	ExpenseDeleter interface {
		DeleteExpense(ctx context.Context, id string) error
	}

	// ProfileReader fetches the authenticated user's profile.
	ProfileReader interface {
		Profile(ctx context.Context) (core.UserProfile, error)
	}

	// BudgetWriter sets the user's monthly budget limit.
	BudgetWriter interface {
		SetBudget(ctx context.Context, limit core.Money) error
	}

	// SummaryReader returns per-category spend totals.
	SummaryReader interface {
		Summary(ctx context.Context) ([]core.CategoryTotal, error)
	}
)

// Store is the full surface a backend provides.
type Store interface {
	ExpenseLister
	ExpenseCreator
	ExpenseUpdater
	ExpenseDeleter
	ProfileReader
	BudgetWriter
	SummaryReader
}
