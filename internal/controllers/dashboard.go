package controllers

import (
	"golang.org/x/sync/errgroup"

	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/store"
)

// DashboardStore is the slice of the store the dashboard reads from.
type DashboardStore interface {
	store.ExpenseLister
	store.ProfileReader
	store.SummaryReader
}

// Snapshot is one consistent dashboard render: the current month's
// expenses, the profile, and the budget aggregates derived from the
// category breakdown.
type Snapshot struct {
	Expenses  []core.Expense
	Profile   core.UserProfile
	Breakdown []core.CategoryTotal
	Total     core.Money
	Usage     float64
	Band      core.Severity
}

// Dashboard drives the landing screen. Every Refresh fetches the three
// reads concurrently and replaces the snapshot wholesale.
type Dashboard struct {
	screen
	store DashboardStore

	snapshot Snapshot
	loaded   bool
}

func NewDashboard(st DashboardStore, opts Options) *Dashboard {
	return &Dashboard{screen: newScreen(opts), store: st}
}

// Snapshot returns the last loaded snapshot. The second return is false
// until the first Refresh succeeds.
func (d *Dashboard) Snapshot() (Snapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot, d.loaded
}

// Refresh fetches the current month's expenses, the profile and the
// category summary in parallel. A failure of any one fetch discards the
// whole batch; the previous snapshot stays visible.
func (d *Dashboard) Refresh() error {
	ctx, cancel, gen, err := d.begin()
	if err != nil {
		return err
	}
	defer cancel()

	now := d.opts.Now()
	filter := core.FilterFor(now.Year(), int(now.Month()))

	var (
		expenses  []core.Expense
		profile   core.UserProfile
		breakdown []core.CategoryTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = d.store.ListExpenses(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = d.store.Profile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = d.store.Summary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.finish(gen)
		return d.reportError(log.OpRefresh, err)
	}

	if !d.finish(gen) {
		return ErrClosed
	}

	total := core.TotalSpend(expenses)
	usage := core.BudgetUsage(total, profile.Budget)

	d.mu.Lock()
	d.snapshot = Snapshot{
		Expenses:  expenses,
		Profile:   profile,
		Breakdown: breakdown,
		Total:     total,
		Usage:     usage,
		Band:      core.BandFor(usage),
	}
	d.loaded = true
	d.mu.Unlock()

	d.opts.Logger.Debug("Dashboard refreshed",
		log.FieldMonth, filter.Month,
		log.FieldYear, filter.Year,
		log.FieldAmount, total.Cents)
	return nil
}
