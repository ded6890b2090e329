package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Title:    "Coffee",
		Amount:   Money{Cents: 450},
		Category: "Food",
		Date:     NewDate(2024, 3, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amount is a valid record.
	free := good
	free.Amount = Money{}
	if err := free.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}

	bads := []Draft{
		{Title: "", Amount: Money{Cents: 100}, Category: "Food"},
		{Title: "   ", Amount: Money{Cents: 100}, Category: "Food"},
		{Title: "a", Amount: Money{Cents: -1}, Category: "Food"},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDraftNormalize(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	d := Draft{Title: "  Coffee  ", Amount: Money{Cents: 450}}.Normalize(now)
	if d.Title != "Coffee" {
		t.Fatalf("title not trimmed: %q", d.Title)
	}
	if !d.Date.SameDay(NewDate(2024, 3, 15)) {
		t.Fatalf("unset date should default to today, got %s", d.Date)
	}
	if d.Category != DefaultCategory {
		t.Fatalf("blank category should default, got %q", d.Category)
	}

	// An explicit date survives normalization.
	d = Draft{Title: "Rent", Amount: Money{Cents: 1}, Date: NewDate(2024, 3, 1), Category: "Bills"}.Normalize(now)
	if !d.Date.SameDay(NewDate(2024, 3, 1)) || d.Category != "Bills" {
		t.Fatalf("explicit fields must not change: %+v", d)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 3, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-15"` {
		t.Fatalf("got %s", b)
	}

	cases := []struct {
		in   string
		want Date
	}{
		{`"2024-03-15"`, NewDate(2024, 3, 15)},
		{`"2024-03-15T00:00:00Z"`, NewDate(2024, 3, 15)}, // timestamp tolerated
		{`""`, Date{}},
		{`null`, Date{}},
	}
	for _, tc := range cases {
		var got Date
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if got.IsZero() != tc.want.IsZero() || (!got.IsZero() && !got.SameDay(tc.want)) {
			t.Fatalf("unmarshal %s: got %v want %v", tc.in, got, tc.want)
		}
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"15/03/2024"`), &bad); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDraftOf(t *testing.T) {
	e := Expense{ID: "E1", Title: "Coffee", Amount: Money{Cents: 450}, Category: "Food", Date: NewDate(2024, 3, 15)}
	d := DraftOf(e)
	if d.Title != e.Title || d.Amount != e.Amount || d.Category != e.Category || !d.Date.SameDay(e.Date) {
		t.Fatalf("seed mismatch: %+v", d)
	}
}
