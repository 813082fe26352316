// Package session holds runtime state for the active controller.
package session

import "sync"

// Viewport is the client drawing area in CSS pixels.
type Viewport struct {
	W int
	H int
}

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	Passwordless  bool
	InputEnabled  bool
	Viewport      Viewport
}

// Session holds runtime state for the active controller.
type Session struct {
	mu            sync.RWMutex
	password      string
	open          bool
	authenticated bool
	inputEnabled  bool
	viewport      Viewport
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{
		password:     password,
		inputEnabled: true,
	}
}

// NewOpen returns a session that needs no password.
func NewOpen() *Session {
	s := New("")
	s.open = true
	return s
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open || (pass != "" && pass == s.password) {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated. Open
// sessions are always authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open || s.authenticated
}

// SetInputEnabled toggles whether client input drives gestures.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether client input drives gestures.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetViewport records the client drawing area. Non-positive sizes are ignored.
func (s *Session) SetViewport(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = Viewport{W: w, H: h}
	return true
}

// Viewport returns the client drawing area.
func (s *Session) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.open || s.authenticated,
		Passwordless:  s.open,
		InputEnabled:  s.inputEnabled,
		Viewport:      s.viewport,
	}
}
