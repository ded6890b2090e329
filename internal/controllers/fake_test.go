package controllers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/store"
)

// fakeStore records every call in order and serves canned responses. The
// dashboard fetches concurrently, so the call log is mutex-guarded.
type fakeStore struct {
	mu    sync.Mutex
	calls []string

	expenses  []core.Expense
	profile   core.UserProfile
	breakdown []core.CategoryTotal

	listErr   error
	createErr error
	deleteErr error
	budgetErr error
}

var _ store.Store = (*fakeStore)(nil)

func (f *fakeStore) ListExpenses(ctx context.Context, filter core.Filter) ([]core.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("list:%d-%d:%s", filter.Year, filter.Month, filter.Category))
	if f.listErr != nil {
		return nil, f.listErr
	}
	return filter.Apply(f.expenses), nil
}

func (f *fakeStore) CreateExpense(ctx context.Context, d core.Draft) (core.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create:"+d.Title)
	if f.createErr != nil {
		return core.Expense{}, f.createErr
	}
	e := core.Expense{
		ID:       fmt.Sprintf("fake:%d", len(f.expenses)+1),
		Title:    d.Title,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date,
	}
	f.expenses = append(f.expenses, e)
	return e, nil
}

func (f *fakeStore) UpdateExpense(ctx context.Context, id string, d core.Draft) (core.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update:"+id)
	return core.Expense{}, store.ErrNotFound
}

func (f *fakeStore) DeleteExpense(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete:"+id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.expenses[:0]
	for _, e := range f.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.expenses = kept
	return nil
}

func (f *fakeStore) Profile(ctx context.Context) (core.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "profile")
	return f.profile, nil
}

func (f *fakeStore) SetBudget(ctx context.Context, limit core.Money) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("budget:%d", limit.Cents))
	if f.budgetErr != nil {
		return f.budgetErr
	}
	f.profile.Budget = limit
	return nil
}

func (f *fakeStore) Summary(ctx context.Context) ([]core.CategoryTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "summary")
	if f.breakdown != nil {
		return f.breakdown, nil
	}
	return core.BreakdownByCategory(f.expenses), nil
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func testOptions(now time.Time) Options {
	return Options{
		Now:       func() time.Time { return now },
		BannerTTL: 3 * time.Second,
		Logger:    quietLogger(),
	}
}
