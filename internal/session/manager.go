// Package session owns the per-browser-session state of the storefront: one
// cart, one auth gate, and one checkout flow per session, all process-local.
// Sessions are not persisted; a server restart starts everyone over with an
// empty cart.
package session

import (
	"sync"

	"merchstore/internal/auth"
	"merchstore/internal/cart"
	"merchstore/internal/checkout"
	"github.com/google/uuid"
)

// Session bundles the state container instances owned by one browser session.
type Session struct {
	ID       string
	Cart     *cart.Cart
	Auth     *auth.Gate
	Checkout *checkout.Flow
}

// Manager creates and tracks sessions. It is the single owner boundary for
// cart and auth state: consumers receive the session's instances by
// reference, never through a global lookup.
type Manager struct {
	identity auth.Identity
	orders   checkout.OrderWriter

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(identity auth.Identity, orders checkout.OrderWriter) *Manager {
	return &Manager{
		identity: identity,
		orders:   orders,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with the given id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate returns the existing session for id, or creates a fresh one
// (with a new id) when id is empty or unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	return m.createLocked()
}

// Create always starts a fresh session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked()
}

// Destroy drops the session and unsubscribes its auth gate.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Auth.Close()
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) createLocked() *Session {
	id := uuid.NewString()
	c := cart.New()
	gate := auth.NewGate(m.identity, id)
	s := &Session{
		ID:       id,
		Cart:     c,
		Auth:     gate,
		Checkout: checkout.New(c, gate, m.orders),
	}
	m.sessions[id] = s
	return s
}
