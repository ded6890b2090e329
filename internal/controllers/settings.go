package controllers

import (
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/session"
	"kharcha/internal/store"
)

// SettingsStore is the slice of the store the settings screen uses.
type SettingsStore interface {
	store.ProfileReader
	store.BudgetWriter
}

// Settings drives the profile screen: the read-only name and email, the
// monthly budget editor, and the theme toggle. The theme lives in the
// local session, not in the store.
type Settings struct {
	screen
	store   SettingsStore
	session *session.Session

	profile core.UserProfile
	loaded  bool
}

func NewSettings(st SettingsStore, sess *session.Session, opts Options) *Settings {
	return &Settings{screen: newScreen(opts), store: st, session: sess}
}

// Load fetches the profile.
func (s *Settings) Load() error {
	ctx, cancel, gen, err := s.begin()
	if err != nil {
		return err
	}
	defer cancel()

	profile, err := s.store.Profile(ctx)
	if err != nil {
		s.finish(gen)
		return s.reportError(log.OpProfile, err)
	}
	if !s.finish(gen) {
		return ErrClosed
	}

	s.mu.Lock()
	s.profile = profile
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Profile returns the last loaded profile. The second return is false
// until Load succeeds.
func (s *Settings) Profile() (core.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.loaded
}

// SaveBudget parses the typed amount and writes it to the store. The
// local profile keeps the old budget until the store confirms the write;
// a failed save leaves it untouched.
func (s *Settings) SaveBudget(input string) error {
	budget, err := core.ParseMoney(input)
	if err != nil {
		return err
	}
	if budget.Cents <= 0 {
		return core.ErrInvalidBudget
	}

	ctx, cancel, gen, err := s.begin()
	if err != nil {
		return err
	}
	defer cancel()

	if err := s.store.SetBudget(ctx, budget); err != nil {
		s.finish(gen)
		return s.reportError(log.OpBudget, err)
	}
	if !s.finish(gen) {
		return ErrClosed
	}

	s.mu.Lock()
	s.profile.Budget = budget
	s.mu.Unlock()

	s.opts.Logger.Info("Budget updated", log.FieldBudget, budget.Cents)
	s.setBanner(BannerSuccess, "Budget updated successfully!")
	return nil
}

// Theme returns the session's current theme.
func (s *Settings) Theme() string {
	return s.session.Theme()
}

// ToggleTheme flips between the dark and light themes and persists the
// choice.
func (s *Settings) ToggleTheme() (string, error) {
	next := session.ThemeLight
	if s.session.Theme() == session.ThemeLight {
		next = session.ThemeDark
	}
	if err := s.session.SetTheme(next); err != nil {
		return s.session.Theme(), err
	}
	return next, nil
}
