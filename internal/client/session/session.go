// Package session owns the client's session state: the bearer token, the
// display username and the active flag, backed by a durable token store.
//
// Lifecycle: Init loads a previously saved token at startup (present but not
// yet active), Set installs a fresh token after login, Activate marks a
// restored token as verified, Clear drops everything. The Manager is the
// single TokenSource injected into the fetch layer; nothing else reads the
// token.
package session

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// fallbackUsername is used when a restored token carries no recognizable
// username claim. The backend only issues admin tokens.
const fallbackUsername = "admin"

// Manager holds the session state. A token can be present without the
// session being active: during restoration the saved token is loaded first
// and only validated afterwards.
type Manager struct {
	mu       sync.Mutex
	store    TokenStore
	token    string
	username string
	active   bool
}

// New returns a Manager backed by the given store.
func New(store TokenStore) *Manager {
	return &Manager{store: store}
}

// Init loads the durable token into memory without activating the session.
// It returns the token and whether one was stored.
func (m *Manager) Init() (string, bool) {
	token, err := m.store.Load()
	if err != nil || token == "" {
		return "", false
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return token, true
}

// Set installs a freshly issued token, persists it and activates the
// session. This is the login transition.
func (m *Manager) Set(token, username string) error {
	m.mu.Lock()
	m.token = token
	m.username = username
	m.active = true
	m.mu.Unlock()
	return m.store.Save(token)
}

// Activate marks a restored session as verified. The token must already be
// present (via Init).
func (m *Manager) Activate(username string) {
	m.mu.Lock()
	m.username = username
	m.active = true
	m.mu.Unlock()
}

// Clear drops the in-memory session and removes the durable token. Used by
// logout and by failed restoration (fail closed).
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.token = ""
	m.username = ""
	m.active = false
	m.mu.Unlock()
	return m.store.Clear()
}

// Token returns the current token and whether one is present. Admin calls
// are gated on this, so a cleared session can never issue privileged
// requests.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// Active reports whether the session has been verified (login or a
// completed restoration).
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Username returns the display name of the logged-in administrator.
func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}

// UsernameFromToken recovers the display username from a restored JWT
// without verifying its signature; validity is the server's call, the name
// is only used for the welcome text. Falls back to "admin" when the token
// is opaque or carries no username/sub claim.
func UsernameFromToken(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fallbackUsername
	}
	if name, ok := claims["username"].(string); ok && name != "" {
		return name
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	return fallbackUsername
}
