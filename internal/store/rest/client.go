// Package rest implements the store ports against the remote expense API.
//
// Every call is single-shot request/response: no retry, no backoff. A
// rejected credential surfaces as store.ErrUnauthorized so the caller can
// redirect to login; anything network- or server-shaped surfaces as a
// *store.TransportError for the screen to handle.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/core"
	"kharcha/internal/store"
)

// Credentials supplies the bearer token attached to every request. An
// empty token means the session is unauthenticated.
type Credentials interface {
	Token() string
}

type Client struct {
	base  *url.URL
	http  *http.Client
	creds Credentials
}

// Ensure interface conformance
var _ store.Store = (*Client)(nil)

// New creates a client for the API rooted at baseURL. The timeout bounds
// every individual call; callers add tighter per-screen deadlines through
// context.
func New(baseURL string, creds Credentials, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	return &Client{
		base:  u,
		http:  &http.Client{Timeout: timeout},
		creds: creds,
	}, nil
}

// ListExpenses implements store.ExpenseLister. The filter is executed
// server-side with the semantics of core.Filter.
func (c *Client) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("month", strconv.Itoa(f.Month))
	q.Set("year", strconv.Itoa(f.Year))
	q.Set("category", f.Category)

	var out []core.Expense
	if err := c.call(ctx, http.MethodGet, "/expenses?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []core.Expense{}
	}
	return out, nil
}

// CreateExpense implements store.ExpenseCreator.
func (c *Client) CreateExpense(ctx context.Context, d core.Draft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	var created core.Expense
	if err := c.call(ctx, http.MethodPost, "/expenses", d, &created); err != nil {
		return core.Expense{}, err
	}
	return created, nil
}

// UpdateExpense implements store.ExpenseUpdater.
func (c *Client) UpdateExpense(ctx context.Context, id string, d core.Draft) (core.Expense, error) {
	if err := d.Validate(); err != nil {
		return core.Expense{}, err
	}
	var updated core.Expense
	if err := c.call(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), d, &updated); err != nil {
		return core.Expense{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, nil
}

// DeleteExpense implements store.ExpenseDeleter.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil)
}

// Profile implements store.ProfileReader.
func (c *Client) Profile(ctx context.Context) (core.UserProfile, error) {
	var p core.UserProfile
	if err := c.call(ctx, http.MethodGet, "/user", nil, &p); err != nil {
		return core.UserProfile{}, err
	}
	return p, nil
}

// SetBudget implements store.BudgetWriter.
func (c *Client) SetBudget(ctx context.Context, limit core.Money) error {
	if limit.Cents <= 0 {
		return core.ErrInvalidBudget
	}
	body := struct {
		Limit core.Money `json:"limit"`
	}{Limit: limit}
	return c.call(ctx, http.MethodPut, "/user/budget", body, nil)
}

// Summary implements store.SummaryReader.
func (c *Client) Summary(ctx context.Context) ([]core.CategoryTotal, error) {
	var out []core.CategoryTotal
	if err := c.call(ctx, http.MethodGet, "/summary", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []core.CategoryTotal{}
	}
	return out, nil
}

// call issues one request and decodes the response into out when non-nil.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	token := c.creds.Token()
	if token == "" {
		return store.ErrUnauthorized
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "Store call failed", "op", op, "error", err)
		return &store.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "Store call completed",
		"op", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return store.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return store.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &store.TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &store.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
