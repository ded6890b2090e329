// Package session holds the per-login application context: the bearer
// credential and the theme preference. It replaces ambient storage with
// an explicit object handed to whoever needs it, with a documented
// lifecycle: Load on startup, SetToken on successful login, Clear on
// logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrNotAuthenticated means no usable credential is stored; the user must
// go through the login flow before any store call can succeed.
var ErrNotAuthenticated = errors.New("not authenticated")

type state struct {
	Token string `json:"token"`
	Theme string `json:"theme"`
}

// Session is safe for use from multiple screens.
type Session struct {
	mu   sync.Mutex
	path string
	st   state
}

// Load reads the session file at path. A missing file yields an empty,
// unauthenticated session rather than an error.
func Load(path string) (*Session, error) {
	s := &Session{path: path, st: state{Theme: ThemeDark}}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.st); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	if s.st.Theme == "" {
		s.st.Theme = ThemeDark
	}
	return s, nil
}

// Token returns the stored bearer credential, or "" when the session is
// unauthenticated or the credential has visibly expired. The token is
// never verified here; the signing key lives server-side and a rejected
// token still comes back as an unauthorized response.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Token == "" || tokenExpired(s.st.Token, time.Now()) {
		return ""
	}
	return s.st.Token
}

// Authenticated reports whether a usable credential is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores a fresh credential, the init step after login.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Token = token
	return s.persist()
}

// Theme returns the stored theme preference.
func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Theme
}

// SetTheme stores the theme preference.
func (s *Session) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Theme = theme
	return s.persist()
}

// Clear is the logout teardown: the credential is dropped and the session
// file removed. The theme preference resets with it.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{Theme: ThemeDark}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Session) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	raw, err := json.Marshal(s.st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// tokenExpired inspects the JWT exp claim without verifying the
// signature. Tokens without a parseable exp claim are assumed live.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
