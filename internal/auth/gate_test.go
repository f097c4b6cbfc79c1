package auth

import (
	"context"
	"errors"
	"testing"

	"merchstore/internal/domain"
)

type stubIdentity struct {
	signUpErr  error
	signInErr  error
	signOutErr error

	listeners map[string]func(*domain.User)
	user      *domain.User
	cancelled bool
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{listeners: make(map[string]func(*domain.User))}
}

func (s *stubIdentity) SignUp(_ context.Context, _, _ string) error {
	return s.signUpErr
}

func (s *stubIdentity) SignIn(_ context.Context, sessionID, _, _ string) error {
	if s.signInErr != nil {
		return s.signInErr
	}
	if fn := s.listeners[sessionID]; fn != nil {
		fn(s.user)
	}
	return nil
}

func (s *stubIdentity) SignOut(_ context.Context, sessionID string) error {
	if s.signOutErr != nil {
		return s.signOutErr
	}
	if fn := s.listeners[sessionID]; fn != nil {
		fn(nil)
	}
	return nil
}

func (s *stubIdentity) OnSessionChange(sessionID string, fn func(*domain.User)) func() {
	s.listeners[sessionID] = fn
	return func() {
		delete(s.listeners, sessionID)
		s.cancelled = true
	}
}

func TestGateSignInUpdatesUserViaNotification(t *testing.T) {
	identity := newStubIdentity()
	identity.user = &domain.User{ID: "u1", Email: "dev@example.com"}
	gate := NewGate(identity, "sess-1")

	if gate.CurrentUser() != nil {
		t.Fatalf("fresh gate must have no user")
	}
	if err := gate.SignIn(context.Background(), "dev@example.com", "Secret123"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	got := gate.CurrentUser()
	if got == nil || got.ID != "u1" {
		t.Fatalf("expected user u1, got %+v", got)
	}
}

func TestGateSignInFailureSurfacesAuthError(t *testing.T) {
	identity := newStubIdentity()
	identity.signInErr = errors.New("invalid credentials")
	gate := NewGate(identity, "sess-1")

	err := gate.SignIn(context.Background(), "dev@example.com", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "invalid credentials" {
		t.Fatalf("unexpected message: %s", authErr.Message)
	}
	if gate.CurrentUser() != nil {
		t.Fatalf("failed sign in must not set user")
	}
}

func TestGateSignUpFailureSurfacesAuthError(t *testing.T) {
	identity := newStubIdentity()
	identity.signUpErr = errors.New("email already registered")
	gate := NewGate(identity, "sess-1")

	err := gate.SignUp(context.Background(), "dev@example.com", "Secret123")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestGateSignOutClearsUser(t *testing.T) {
	identity := newStubIdentity()
	identity.user = &domain.User{ID: "u1", Email: "dev@example.com"}
	gate := NewGate(identity, "sess-1")
	if err := gate.SignIn(context.Background(), "dev@example.com", "Secret123"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	gate.SignOut(context.Background())
	if gate.CurrentUser() != nil {
		t.Fatalf("expected no user after sign out")
	}
}

func TestGateSignOutFailureKeepsUser(t *testing.T) {
	identity := newStubIdentity()
	identity.user = &domain.User{ID: "u1", Email: "dev@example.com"}
	gate := NewGate(identity, "sess-1")
	if err := gate.SignIn(context.Background(), "dev@example.com", "Secret123"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	identity.signOutErr = errors.New("backend down")
	gate.SignOut(context.Background())
	if gate.CurrentUser() == nil {
		t.Fatalf("failed sign out must leave user in place")
	}
}

func TestGateCloseUnsubscribes(t *testing.T) {
	identity := newStubIdentity()
	gate := NewGate(identity, "sess-1")
	gate.Close()
	if !identity.cancelled {
		t.Fatalf("expected subscription cancelled")
	}
}
