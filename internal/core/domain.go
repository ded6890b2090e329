package core

import (
	"errors"
	"strings"
	"time"
)

// SuggestedCategories is the vocabulary offered by expense form pickers.
// It is a suggestion only: any non-empty category string is accepted.
var SuggestedCategories = []string{
	"Food", "Transport", "Shopping", "Bills", "Entertainment", "Healthcare", "Other",
}

// DefaultCategory is preselected when a form opens without seed data.
const DefaultCategory = "Food"

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a persisted spending record. ID is assigned by the store
	// and is opaque to this layer.
	Expense struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
	}

	// Draft is an expense that has not been persisted yet.
	Draft struct {
		Title    string `json:"title"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
	}

	// UserProfile is the per-session user record. Name and email are
	// remote-sourced and read-only; budget is the only mutable field.
	UserProfile struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Budget Money  `json:"budget"`
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidYear   = errors.New("invalid year")
	ErrInvalidBudget = errors.New("invalid budget")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Stores may keep a full timestamp; only the calendar date matters here.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks the draft holds everything required for persistence:
// a non-empty title and a non-negative amount. The date may still be zero
// here; Normalize fills it before submission.
func (dr Draft) Validate() error {
	if strings.TrimSpace(dr.Title) == "" {
		return ErrEmptyTitle
	}
	if err := dr.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Normalize returns a copy with defaults applied: an unset date becomes
// now's calendar date and a blank category falls back to DefaultCategory.
func (dr Draft) Normalize(now time.Time) Draft {
	out := dr
	out.Title = strings.TrimSpace(dr.Title)
	if out.Date.IsZero() {
		out.Date = DateOf(now)
	}
	if strings.TrimSpace(out.Category) == "" {
		out.Category = DefaultCategory
	}
	return out
}

// DraftOf seeds a draft from an existing record, used when a form opens in
// edit mode.
func DraftOf(e Expense) Draft {
	return Draft{
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
}
