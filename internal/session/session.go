// Package session holds the persisted client-side session: the current
// user, the bearer token, and the auth cookie mirrored for the gateway's
// route guard. The store is injected wherever requests are built; there is
// no package-level singleton.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CookieName is the session cookie read by the gateway route guard.
const CookieName = "auth-token"

// CookieMaxAge is how long the mirrored auth cookie lives.
const CookieMaxAge = 30 * 24 * time.Hour

// User is the authenticated principal as returned by the login and
// verify-token endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // "user" or "admin"
}

// Session is the durable auth state. IsAuthenticated is derived from the
// presence of a user, never stored independently.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// IsAuthenticated reports whether the session holds a logged-in user.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Store persists the session to a JSON file so it survives process
// restarts, the same role browser storage plays for the web client.
type Store struct {
	mu   sync.Mutex
	path string
	cur  Session
}

// NewStore loads any persisted session from path. A missing or unreadable
// file simply yields an anonymous session.
func NewStore(path string) *Store {
	s := &Store{path: path}
	if data, err := os.ReadFile(path); err == nil {
		var sess Session
		if err := json.Unmarshal(data, &sess); err == nil {
			s.cur = sess
		}
	}
	return s
}

// Current returns the session as of the last change.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Token returns the bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Token
}

// Login installs a new authenticated session and persists it.
func (s *Store) Login(user User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{User: &user, Token: token}
	return s.persist()
}

// Clear drops the session, both in memory and on disk. Used for explicit
// logout and for the forced logout on an authentication failure.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
	return s.persist()
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Cookie mirrors the current token into the auth cookie consumed by the
// gateway middleware. An anonymous session yields an expired cookie, which
// is how the cookie is cleared on logout.
func (s *Store) Cookie() *http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()

	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	if s.cur.Token != "" {
		cookie.Value = s.cur.Token
		cookie.MaxAge = int(CookieMaxAge.Seconds())
	} else {
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
	}
	return cookie
}
