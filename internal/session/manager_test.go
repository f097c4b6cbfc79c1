package session

import (
	"context"
	"testing"

	"merchstore/internal/cart"
	"merchstore/internal/domain"
)

type stubIdentity struct {
	listeners map[string]func(*domain.User)
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{listeners: make(map[string]func(*domain.User))}
}

func (s *stubIdentity) SignUp(_ context.Context, _, _ string) error { return nil }

func (s *stubIdentity) SignIn(_ context.Context, sessionID, _, _ string) error {
	if fn := s.listeners[sessionID]; fn != nil {
		fn(&domain.User{ID: "u1"})
	}
	return nil
}

func (s *stubIdentity) SignOut(_ context.Context, sessionID string) error {
	if fn := s.listeners[sessionID]; fn != nil {
		fn(nil)
	}
	return nil
}

func (s *stubIdentity) OnSessionChange(sessionID string, fn func(*domain.User)) func() {
	s.listeners[sessionID] = fn
	return func() { delete(s.listeners, sessionID) }
}

type noopOrders struct{}

func (noopOrders) CreateOrder(_ context.Context, o domain.Order) (*domain.Order, error) {
	o.ID = "order-1"
	return &o, nil
}

func (noopOrders) CreateOrderItems(_ context.Context, _ []domain.OrderItem) error {
	return nil
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	m := NewManager(newStubIdentity(), noopOrders{})
	s1 := m.GetOrCreate("")
	if s1.ID == "" {
		t.Fatalf("expected generated session id")
	}
	s2 := m.GetOrCreate(s1.ID)
	if s1 != s2 {
		t.Fatalf("expected same session for same id")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Len())
	}
}

func TestGetOrCreateUnknownIDStartsFresh(t *testing.T) {
	m := NewManager(newStubIdentity(), noopOrders{})
	s := m.GetOrCreate("stale-id-from-before-restart")
	if s.ID == "stale-id-from-before-restart" {
		t.Fatalf("unknown ids must not be resurrected")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager(newStubIdentity(), noopOrders{})
	s1 := m.Create()
	s2 := m.Create()

	if err := s1.Cart.AddItem(cart.ItemInput{ID: "p1", Name: "Docker Mug", UnitPriceCents: 1499}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s2.Cart.TotalItems() != 0 {
		t.Fatalf("carts must not be shared between sessions")
	}

	if err := s1.Auth.SignIn(context.Background(), "dev@example.com", "Secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s2.Auth.CurrentUser() != nil {
		t.Fatalf("auth state must not leak between sessions")
	}
}

func TestDestroyUnsubscribesGate(t *testing.T) {
	identity := newStubIdentity()
	m := NewManager(identity, noopOrders{})
	s := m.Create()

	m.Destroy(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Fatalf("expected session removed")
	}
	if _, ok := identity.listeners[s.ID]; ok {
		t.Fatalf("expected gate listener removed")
	}
}
