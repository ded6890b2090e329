package controllers

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/session"
)

func seededSettings(t *testing.T) (*Settings, *fakeStore) {
	t.Helper()
	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("session.Load() error = %v", err)
	}
	fs := &fakeStore{
		profile: core.UserProfile{Name: "Asha", Email: "asha@example.com", Budget: core.Money{Cents: 50000}},
	}
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	return NewSettings(fs, sess, testOptions(now)), fs
}

func TestSettingsLoad(t *testing.T) {
	s, _ := seededSettings(t)

	if _, ok := s.Profile(); ok {
		t.Fatalf("profile present before Load")
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p, ok := s.Profile()
	if !ok || p.Email != "asha@example.com" || p.Budget.Cents != 50000 {
		t.Fatalf("Profile() = %+v ok=%v", p, ok)
	}
}

func TestSettingsSaveBudget(t *testing.T) {
	s, fs := seededSettings(t)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := s.SaveBudget("600,00"); err != nil {
		t.Fatalf("SaveBudget() error = %v", err)
	}
	p, _ := s.Profile()
	if p.Budget.Cents != 60000 {
		t.Fatalf("budget after save = %d cents, want 60000", p.Budget.Cents)
	}
	if fs.calls[len(fs.calls)-1] != "budget:60000" {
		t.Fatalf("store calls = %v", fs.calls)
	}
	banner, ok := s.Banner()
	if !ok || banner.Kind != BannerSuccess {
		t.Fatalf("expected success banner, got %+v ok=%v", banner, ok)
	}
}

func TestSettingsSaveBudgetFailureKeepsOldValue(t *testing.T) {
	s, fs := seededSettings(t)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	fs.budgetErr = errors.New("boom")
	if err := s.SaveBudget("600.00"); err == nil {
		t.Fatalf("SaveBudget() succeeded despite store failure")
	}
	p, _ := s.Profile()
	if p.Budget.Cents != 50000 {
		t.Fatalf("budget changed without store confirmation: %d", p.Budget.Cents)
	}
}

func TestSettingsSaveBudgetRejectsInvalid(t *testing.T) {
	cases := []struct {
		input string
		want  error
	}{
		{"abc", core.ErrInvalidAmount},
		{"-10", core.ErrInvalidAmount},
		{"0", core.ErrInvalidBudget},
	}
	for _, tc := range cases {
		s, fs := seededSettings(t)
		if err := s.SaveBudget(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("SaveBudget(%q) error = %v, want %v", tc.input, err, tc.want)
		}
		if len(fs.calls) != 0 {
			t.Fatalf("invalid budget reached the store: %v", fs.calls)
		}
	}
}

func TestSettingsToggleTheme(t *testing.T) {
	s, _ := seededSettings(t)

	if got := s.Theme(); got != session.ThemeDark {
		t.Fatalf("initial theme = %q, want dark", got)
	}
	next, err := s.ToggleTheme()
	if err != nil {
		t.Fatalf("ToggleTheme() error = %v", err)
	}
	if next != session.ThemeLight || s.Theme() != session.ThemeLight {
		t.Fatalf("theme after toggle = %q", s.Theme())
	}
	if back, _ := s.ToggleTheme(); back != session.ThemeDark {
		t.Fatalf("theme after second toggle = %q", back)
	}
}
