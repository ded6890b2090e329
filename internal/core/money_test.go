package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true}, // zero amount allowed
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("zero is valid, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 450})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "4.50" {
		t.Fatalf("got %s", b)
	}

	var m Money
	if err := json.Unmarshal([]byte("4.5"), &m); err != nil || m.Cents != 450 {
		t.Fatalf("unmarshal 4.5: cents=%d err=%v", m.Cents, err)
	}
	if err := json.Unmarshal([]byte(`"12,34"`), &m); err != nil || m.Cents != 1234 {
		t.Fatalf("unmarshal string: cents=%d err=%v", m.Cents, err)
	}
	if err := json.Unmarshal([]byte("0"), &m); err != nil || m.Cents != 0 {
		t.Fatalf("unmarshal zero: cents=%d err=%v", m.Cents, err)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{450, "4.50"},
		{123456, "1234.56"},
		{-450, "-4.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents: got %q want %q", tc.cents, got, tc.want)
		}
	}
}
