package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@b.c",
		"exp":   exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("fresh session must be unauthenticated")
	}
	if s.Theme() != ThemeDark {
		t.Fatalf("default theme: got %q", s.Theme())
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	token := signedToken(t, time.Now().Add(time.Hour))
	if err := s.SetToken(token); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.SetTheme(ThemeLight); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	// A second load sees the persisted state.
	s2, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s2.Token() != token {
		t.Fatal("token not persisted")
	}
	if s2.Theme() != ThemeLight {
		t.Fatalf("theme not persisted: %q", s2.Theme())
	}
}

func TestExpiredTokenIsUnauthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, _ := Load(path)
	if err := s.SetToken(signedToken(t, time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if s.Token() != "" {
		t.Fatal("expired token must read as empty")
	}
	if s.Authenticated() {
		t.Fatal("expired token must not count as authenticated")
	}
}

func TestOpaqueTokenAssumedLive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, _ := Load(path)
	if err := s.SetToken("not-a-jwt"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	// The client cannot judge opaque tokens; the store's 401 decides.
	if s.Token() != "not-a-jwt" {
		t.Fatal("opaque token should pass through")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, _ := Load(path)
	if err := s.SetToken(signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("cleared session must be unauthenticated")
	}
	s2, err := Load(path)
	if err != nil {
		t.Fatalf("reload after clear: %v", err)
	}
	if s2.Authenticated() {
		t.Fatal("clear must remove the persisted credential")
	}
}
