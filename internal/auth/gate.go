// Package auth exposes the signed-in state of one storefront session. The
// Gate wraps the identity collaborator and mirrors its session notifications;
// it holds no credentials of its own.
package auth

import (
	"context"
	"sync"

	"merchstore/internal/domain"
)

// Identity is the collaborator handling credentials and session tokens.
// Implementations push the current user (or nil) to registered session
// listeners whenever the session's signed-in state changes.
type Identity interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, sessionID, email, password string) error
	SignOut(ctx context.Context, sessionID string) error
	OnSessionChange(sessionID string, fn func(*domain.User)) (cancel func())
}

// AuthError carries the human-readable failure message surfaced to the user.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Gate tracks the authenticated user of a single session. A non-nil
// CurrentUser is the sole authorization gate for checkout; no role or
// permission model exists.
type Gate struct {
	identity  Identity
	sessionID string
	cancel    func()

	mu   sync.RWMutex
	user *domain.User
}

// NewGate builds a Gate bound to the given session and subscribes it to the
// identity collaborator's session notifications.
func NewGate(identity Identity, sessionID string) *Gate {
	g := &Gate{identity: identity, sessionID: sessionID}
	g.cancel = identity.OnSessionChange(sessionID, g.setUser)
	return g
}

// SignIn authenticates the session. The user reference is updated through the
// session notification, not by this call directly.
func (g *Gate) SignIn(ctx context.Context, email, password string) error {
	if err := g.identity.SignIn(ctx, g.sessionID, email, password); err != nil {
		return &AuthError{Message: err.Error()}
	}
	return nil
}

// SignUp registers a new account. It does not sign the session in.
func (g *Gate) SignUp(ctx context.Context, email, password string) error {
	if err := g.identity.SignUp(ctx, email, password); err != nil {
		return &AuthError{Message: err.Error()}
	}
	return nil
}

// SignOut ends the session's authentication. Best effort: a failing revoke
// leaves the current user unchanged.
func (g *Gate) SignOut(ctx context.Context) {
	_ = g.identity.SignOut(ctx, g.sessionID)
}

// CurrentUser returns the signed-in user, or nil.
func (g *Gate) CurrentUser() *domain.User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// Close unsubscribes the gate from session notifications. Called when the
// owning session is destroyed.
func (g *Gate) Close() {
	if g.cancel != nil {
		g.cancel()
	}
}

func (g *Gate) setUser(u *domain.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = u
}
