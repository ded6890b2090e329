// Package memory is an in-memory backend used as the default demo store
// and as the fake the controller and protocol tests substitute in.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/store"
)

type Store struct {
	mu      sync.Mutex
	seq     int
	items   []core.Expense
	profile core.UserProfile
}

// Ensure interface conformance
var _ store.Store = (*Store)(nil)

func New(profile core.UserProfile) *Store {
	return &Store{profile: profile}
}

// Seed inserts expenses directly, bypassing draft validation. Test setup
// and demo data only.
func (s *Store) Seed(expenses ...core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range expenses {
		if e.ID == "" {
			s.seq++
			e.ID = fmt.Sprintf("mem:%d", s.seq)
		}
		s.items = append(s.items, e)
	}
}

// ListExpenses implements store.ExpenseLister.
func (s *Store) ListExpenses(_ context.Context, f core.Filter) ([]core.Expense, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := f.Apply(s.items)
	// Match the remote store's date-descending order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out, nil
}

// CreateExpense implements store.ExpenseCreator.
func (s *Store) CreateExpense(_ context.Context, d core.Draft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	d = d.Normalize(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e := core.Expense{
		ID:       fmt.Sprintf("mem:%d", s.seq),
		Title:    d.Title,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date,
	}
	s.items = append(s.items, e)
	return e, nil
}

// UpdateExpense implements store.ExpenseUpdater.
func (s *Store) UpdateExpense(_ context.Context, id string, d core.Draft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	d = d.Normalize(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items[i] = core.Expense{ID: id, Title: d.Title, Amount: d.Amount, Category: d.Category, Date: d.Date}
			return s.items[i], nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

// DeleteExpense implements store.ExpenseDeleter.
func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Profile implements store.ProfileReader.
func (s *Store) Profile(_ context.Context) (core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

// SetBudget implements store.BudgetWriter.
func (s *Store) SetBudget(_ context.Context, limit core.Money) error {
	if limit.Cents <= 0 {
		return core.ErrInvalidBudget
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Budget = limit
	return nil
}

// Summary implements store.SummaryReader. Totals cover everything the
// store holds; they are recomputed on every call, never cached.
func (s *Store) Summary(_ context.Context) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.BreakdownByCategory(s.items), nil
}
