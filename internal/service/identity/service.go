// Package identity handles account registration, credential checks, and the
// signed-in state of storefront sessions. It is the collaborator behind
// auth.Gate: sign-in and sign-out push the session's current user to
// registered listeners.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"merchstore/internal/domain"
	tokenrepo "merchstore/internal/repository/token"
	userrepo "merchstore/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service implements the identity collaborator over the user and token
// repositories. Session-to-token bindings live in memory and are lost on
// restart; the tokens themselves are persisted with a TTL.
type Service struct {
	users       userrepo.Repository
	tokens      *tokenManager
	tokenTTL    time.Duration
	passwordMin int

	mu        sync.Mutex
	sessions  map[string]sessionState
	listeners map[string]map[int]func(*domain.User)
	nextSub   int
}

type sessionState struct {
	token string
	user  *domain.User
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		users:       users,
		tokens:      newTokenManager(tokens),
		tokenTTL:    48 * time.Hour,
		passwordMin: 6,
		sessions:    make(map[string]sessionState),
		listeners:   make(map[string]map[int]func(*domain.User)),
	}
}

// SignUp registers a new account. It does not sign any session in; the
// caller signs in separately.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if err := validatePassword(password, s.passwordMin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, domain.User{Email: email, PasswordHash: string(hashed)})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return ErrEmailTaken
	}
	return err
}

// SignIn validates credentials, issues a session token, and notifies the
// session's listeners with the signed-in user.
func (s *Service) SignIn(ctx context.Context, sessionID, email, password string) error {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(ctx, u.ID, s.tokenTTL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[sessionID] = sessionState{token: tok, user: u}
	s.mu.Unlock()

	s.notify(sessionID, u)
	return nil
}

// SignOut revokes the session's token and notifies listeners with nil.
// Signing out a session that is not signed in is a no-op.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	state, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok && state.token != "" {
		if err := s.tokens.Revoke(ctx, state.token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}
	s.notify(sessionID, nil)
	return nil
}

// OnSessionChange registers a listener for the session's signed-in state and
// returns a cancel func. Listeners are invoked synchronously from SignIn and
// SignOut with the current user, or nil when signed out. A listener attaching
// to an already signed-in session is brought up to date immediately.
func (s *Service) OnSessionChange(sessionID string, fn func(*domain.User)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, ok := s.listeners[sessionID]
	if !ok {
		subs = make(map[int]func(*domain.User))
		s.listeners[sessionID] = subs
	}
	id := s.nextSub
	s.nextSub++
	subs[id] = fn

	if state, ok := s.sessions[sessionID]; ok {
		fn(state.user)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(subs, id)
		if len(subs) == 0 {
			delete(s.listeners, sessionID)
		}
	}
}

// SessionToken returns the token issued to the session, or "" when the
// session is not signed in.
func (s *Service) SessionToken(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID].token
}

// UserByToken resolves a bearer token to its account. Expired or unknown
// tokens yield ErrInvalidToken.
func (s *Service) UserByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) notify(sessionID string, u *domain.User) {
	s.mu.Lock()
	fns := make([]func(*domain.User), 0, len(s.listeners[sessionID]))
	for _, fn := range s.listeners[sessionID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

func validatePassword(p string, min int) error {
	if len(strings.TrimSpace(p)) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	return nil
}
