package controllers

import (
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/store"
)

// HistoryStore is the slice of the store the history screen uses.
type HistoryStore interface {
	store.ExpenseLister
	store.ExpenseDeleter
}

// History drives the filtered expense list. Filter edits accumulate in a
// pending filter that has no effect on the list until Apply commits it;
// the list on screen always reflects the active filter it was fetched
// with.
type History struct {
	screen
	store HistoryStore

	pending  core.Filter
	active   core.Filter
	expenses []core.Expense
}

func NewHistory(st HistoryStore, opts Options) *History {
	h := &History{screen: newScreen(opts), store: st}
	now := h.opts.Now()
	h.pending = core.FilterFor(now.Year(), int(now.Month()))
	h.active = h.pending
	return h
}

// SetMonth stages a month selection.
func (h *History) SetMonth(month int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending.Month = month
}

// SetYear stages a year selection.
func (h *History) SetYear(year int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending.Year = year
}

// SetCategory stages a category selection. CategoryAll widens the filter
// to every category.
func (h *History) SetCategory(category string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending.Category = category
}

// PendingFilter returns the staged, not yet applied selections.
func (h *History) PendingFilter() core.Filter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

// ActiveFilter returns the filter the visible list was fetched with.
func (h *History) ActiveFilter() core.Filter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Apply commits the pending filter and fetches the list for it. An
// invalid pending filter fails before any network call and leaves the
// active filter untouched.
func (h *History) Apply() error {
	h.mu.Lock()
	filter := h.pending
	h.mu.Unlock()

	if err := filter.Validate(); err != nil {
		return err
	}
	if err := h.fetch(filter); err != nil {
		return err
	}

	h.mu.Lock()
	h.active = filter
	h.mu.Unlock()
	return nil
}

// Refresh re-fetches the list for the active filter.
func (h *History) Refresh() error {
	h.mu.Lock()
	filter := h.active
	h.mu.Unlock()
	return h.fetch(filter)
}

func (h *History) fetch(filter core.Filter) error {
	ctx, cancel, gen, err := h.begin()
	if err != nil {
		return err
	}
	defer cancel()

	expenses, err := h.store.ListExpenses(ctx, filter)
	if err != nil {
		h.finish(gen)
		return h.reportError(log.OpList, err)
	}
	if !h.finish(gen) {
		return ErrClosed
	}

	h.mu.Lock()
	h.expenses = expenses
	h.mu.Unlock()
	return nil
}

// Delete removes an expense and re-fetches the list for the active
// filter, so the rows on screen come from the store, not from a local
// splice.
func (h *History) Delete(id string) error {
	h.mu.Lock()
	filter := h.active
	h.mu.Unlock()

	ctx, cancel, gen, err := h.begin()
	if err != nil {
		return err
	}
	defer cancel()

	if err := h.store.DeleteExpense(ctx, id); err != nil {
		h.finish(gen)
		return h.reportError(log.OpDelete, err)
	}

	expenses, err := h.store.ListExpenses(ctx, filter)
	if err != nil {
		h.finish(gen)
		return h.reportError(log.OpList, err)
	}
	if !h.finish(gen) {
		return ErrClosed
	}

	h.mu.Lock()
	h.expenses = expenses
	h.mu.Unlock()

	h.opts.Logger.Info("Expense deleted", log.FieldExpenseID, id)
	h.setBanner(BannerSuccess, "Expense deleted successfully!")
	return nil
}

// Expenses returns the fetched rows in store order.
func (h *History) Expenses() []core.Expense {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expenses
}

// Buckets groups the fetched rows by calendar day for display.
func (h *History) Buckets() []core.DayBucket {
	h.mu.Lock()
	expenses := h.expenses
	h.mu.Unlock()
	return core.GroupByDay(expenses, h.opts.Now())
}

// EditSeed looks up a fetched row by identifier, for seeding the edit
// form.
func (h *History) EditSeed(id string) (core.Expense, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}
