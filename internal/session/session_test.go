package session

import "testing"

// TestAuthenticate_Success verifies successful authentication.
func TestAuthenticate_Success(t *testing.T) {
	s := New("secret")
	if !s.Authenticate("secret") {
		t.Fatalf("expected authentication to succeed")
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated state")
	}
}

// TestAuthenticate_Fail verifies failed authentication.
func TestAuthenticate_Fail(t *testing.T) {
	s := New("secret")
	if s.Authenticate("nope") {
		t.Fatalf("expected authentication to fail")
	}
	if s.Authenticate("") {
		t.Fatalf("expected empty password to fail")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated state")
	}
}

// TestOpenSession verifies passwordless sessions accept everyone.
func TestOpenSession(t *testing.T) {
	s := NewOpen()
	if !s.IsAuthenticated() {
		t.Fatalf("expected open session to be authenticated")
	}
	s.Logout()
	if !s.IsAuthenticated() || !s.Authenticate("") {
		t.Fatalf("expected open session to stay authenticated")
	}
}

// TestLogout verifies logout clears auth state.
func TestLogout(t *testing.T) {
	s := New("secret")
	s.Authenticate("secret")
	s.Logout()
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated state")
	}
}

// TestInputEnabled_Toggle verifies input enabled toggle.
func TestInputEnabled_Toggle(t *testing.T) {
	s := New("secret")
	s.SetInputEnabled(false)
	if s.InputEnabled() {
		t.Fatalf("expected input disabled")
	}
	s.SetInputEnabled(true)
	if !s.InputEnabled() {
		t.Fatalf("expected input enabled")
	}
}

// TestViewport_RejectsEmpty verifies only positive sizes are stored.
func TestViewport_RejectsEmpty(t *testing.T) {
	s := New("secret")
	if s.SetViewport(0, 10) {
		t.Fatalf("expected zero width to be rejected")
	}
	if !s.SetViewport(800, 600) {
		t.Fatalf("expected viewport to be stored")
	}
	if got := s.Viewport(); got != (Viewport{W: 800, H: 600}) {
		t.Fatalf("unexpected viewport: %+v", got)
	}
}

// TestSnapshot verifies snapshot content.
func TestSnapshot(t *testing.T) {
	s := New("secret")
	s.Authenticate("secret")
	s.SetInputEnabled(false)
	s.SetViewport(320, 200)
	snap := s.Snapshot()
	if !snap.Authenticated || snap.InputEnabled || snap.Passwordless || snap.Viewport.W != 320 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
