// Package session holds the server-side session state: an opaque session ID
// in a cookie, with the admin flag and pending flash notices living in the
// Redis-backed session store. Sessions start unauthenticated and end on
// logout or store-side expiry.
package session

import (
	"crypto/subtle"

	"askmego/backend/internal/storage"

	"github.com/google/uuid"
)

// CredentialVerifier checks a login attempt. Injected so the plaintext
// constant comparison of the original can be swapped for a hash check or an
// external identity provider without touching the gate.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// EnvCredentials verifies against a single configured username/password
// pair in constant time.
type EnvCredentials struct {
	Username string
	Password string
}

func (c EnvCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// Manager ties session IDs to the store and the credential check.
type Manager struct {
	Store    storage.SessionStore
	Verifier CredentialVerifier
}

func NewManager(store storage.SessionStore, verifier CredentialVerifier) *Manager {
	return &Manager{Store: store, Verifier: verifier}
}

// NewSID mints a fresh session ID.
func (m *Manager) NewSID() string {
	return uuid.New().String()
}

// Login verifies the credentials and, on success, flags the session as
// admin. A mismatch reports false with no detail about which part failed.
func (m *Manager) Login(sid, username, password string) (bool, error) {
	if !m.Verifier.Verify(username, password) {
		return false, nil
	}
	if err := m.Store.SetSessionAdmin(sid); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) IsAdmin(sid string) (bool, error) {
	return m.Store.IsSessionAdmin(sid)
}

func (m *Manager) Logout(sid string) error {
	return m.Store.ClearSessionAdmin(sid)
}

// Flash queues a one-shot notice key for the session; it is resolved to a
// localized string when rendered.
func (m *Manager) Flash(sid, key string) error {
	return m.Store.PushFlash(sid, key)
}

// TakeFlashes drains the pending notices.
func (m *Manager) TakeFlashes(sid string) ([]string, error) {
	return m.Store.PopFlashes(sid)
}
