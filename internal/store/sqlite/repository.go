// Package sqlite is a local single-user backend with the same contract as
// the remote store. It exists so the app runs without network access:
// filter semantics, date-descending order, and summary shape all match
// what the remote API returns.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

// Ensure interface conformance
var _ store.Store = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListExpenses implements store.ExpenseLister.
func (r *Repository) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	// Half-open range over the ISO date strings, same as the remote store.
	start := fmt.Sprintf("%04d-%02d-01", f.Year, f.Month)
	endYear, endMonth := f.Year, f.Month+1
	if endMonth > 12 {
		endMonth = 1
		endYear++
	}
	end := fmt.Sprintf("%04d-%02d-01", endYear, endMonth)

	query := `SELECT id, title, amount_cents, category, date
	          FROM expenses WHERE date >= ? AND date < ?`
	args := []any{start, end}
	if f.Category != "" && f.Category != core.CategoryAll {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := []core.Expense{}
	for rows.Next() {
		var (
			id    int64
			e     core.Expense
			cents int64
			date  string
		)
		if err := rows.Scan(&id, &e.Title, &cents, &e.Category, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.ID = strconv.FormatInt(id, 10)
		e.Amount = core.Money{Cents: cents}
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateExpense implements store.ExpenseCreator.
func (r *Repository) CreateExpense(ctx context.Context, d core.Draft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	d = d.Normalize(time.Now())

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (title, amount_cents, category, date) VALUES (?, ?, ?, ?)`,
		d.Title, d.Amount.Cents, d.Category, d.Date.String())
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"title", d.Title,
		"amount_cents", d.Amount.Cents,
		"category", d.Category)

	return core.Expense{
		ID:       strconv.FormatInt(id, 10),
		Title:    d.Title,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date,
	}, nil
}

// UpdateExpense implements store.ExpenseUpdater.
func (r *Repository) UpdateExpense(ctx context.Context, id string, d core.Draft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	d = d.Normalize(time.Now())

	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount_cents = ?, category = ?, date = ? WHERE id = ?`,
		d.Title, d.Amount.Cents, d.Category, d.Date.String(), id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Expense{}, store.ErrNotFound
	}
	return core.Expense{ID: id, Title: d.Title, Amount: d.Amount, Category: d.Category, Date: d.Date}, nil
}

// DeleteExpense implements store.ExpenseDeleter.
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Profile implements store.ProfileReader.
func (r *Repository) Profile(ctx context.Context) (core.UserProfile, error) {
	var (
		p     core.UserProfile
		cents int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, email, budget_cents FROM profile WHERE id = 1`).
		Scan(&p.Name, &p.Email, &cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.UserProfile{}, store.ErrNotFound
	}
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("read profile: %w", err)
	}
	p.Budget = core.Money{Cents: cents}
	return p, nil
}

// SetBudget implements store.BudgetWriter.
func (r *Repository) SetBudget(ctx context.Context, limit core.Money) error {
	if limit.Cents <= 0 {
		return core.ErrInvalidBudget
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE profile SET budget_cents = ? WHERE id = 1`, limit.Cents)
	if err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	return nil
}

// Summary implements store.SummaryReader.
func (r *Repository) Summary(ctx context.Context) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents) FROM expenses GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	out := []core.CategoryTotal{}
	for rows.Next() {
		var ct core.CategoryTotal
		var cents int64
		if err := rows.Scan(&ct.Category, &cents); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		ct.Total = core.Money{Cents: cents}
		out = append(out, ct)
	}
	return out, rows.Err()
}
