package usecase

import (
	"context"
	"strings"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// GateState is what the role gate knows about the session.
type GateState string

const (
	GateUnknown      GateState = "unknown"
	GateAuthorized   GateState = "authorized"
	GateUnauthorized GateState = "unauthorized"
)

// SessionState is the session plus what the gate knows about it.
type SessionState struct {
	Session entity.Session
	Gate    GateState
}

// CredentialForgetter drops locally held credentials.
type CredentialForgetter interface {
	ForgetCredentials(ctx context.Context) error
}

// SessionStore holds the signed-in identity and drives the role gate.
type SessionStore struct {
	authRepo repository.AuthRepository
	notifier Notifier
	creds    CredentialForgetter
	validate *validator.Validate

	mu    sync.RWMutex
	state SessionState
	subs  hub[SessionState]
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithCredentialForgetter makes Logout drop persisted credentials.
func WithCredentialForgetter(f CredentialForgetter) SessionOption {
	return func(s *SessionStore) {
		s.creds = f
	}
}

// NewSessionStore creates a session store in the unknown gate state.
func NewSessionStore(authRepo repository.AuthRepository, notifier Notifier, opts ...SessionOption) *SessionStore {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	s := &SessionStore{
		authRepo: authRepo,
		notifier: notifier,
		validate: validator.New(),
		state: SessionState{
			Session: entity.AnonymousSession(),
			Gate:    GateUnknown,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current session state.
func (s *SessionStore) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{Session: s.state.Session.Clone(), Gate: s.state.Gate}
}

// Subscribe registers fn for state changes and returns its cancel func.
func (s *SessionStore) Subscribe(fn func(SessionState)) func() {
	return s.subs.subscribe(fn)
}

// ProbeIdentity asks the API who is signed in. Any failure, including a
// network error, resolves to an anonymous session.
func (s *SessionStore) ProbeIdentity(ctx context.Context) entity.Session {
	identity, err := s.authRepo.Me(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("identity probe resolved anonymous")
		s.set(entity.AnonymousSession())
		return entity.AnonymousSession()
	}
	session := entity.AuthenticatedSession(*identity)
	s.set(session)
	return session.Clone()
}

// Login records an identity obtained after a successful credential exchange.
func (s *SessionStore) Login(identity entity.Identity) {
	s.set(entity.AuthenticatedSession(identity))
}

// SignIn exchanges credentials and then loads the identity they belong to.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, errors.Validation(map[string]string{"email": "Enter a valid email address"})
	}
	if password == "" {
		return nil, errors.Validation(map[string]string{"password": "Password is required"})
	}

	if _, err := s.authRepo.Login(ctx, email, password); err != nil {
		logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return nil, errors.Unauthorized("Invalid Credentials", err)
	}

	identity, err := s.authRepo.Me(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("identity fetch after login failed")
		return nil, errors.Unauthorized("Invalid Credentials", err)
	}

	s.Login(*identity)
	return identity, nil
}

// Register creates an account for role. It does not sign the account in.
func (s *SessionStore) Register(ctx context.Context, role entity.Role, input repository.Registration) (string, error) {
	if !role.Valid() {
		return "", errors.BadRequest("Unknown account type", nil)
	}
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := s.validate.Struct(input); err != nil {
		return "", registrationErrors(err)
	}

	msg, err := s.authRepo.Register(ctx, role, input)
	if err != nil {
		logger.Warn().Err(err).Str("role", string(role)).Msg("registration failed")
		s.notifier.Error(errors.MessageOf(err, "Registration failed"))
		return "", err
	}
	msg = orDefault(msg, "Account created successfully")
	s.notifier.Success(msg)
	return msg, nil
}

// Logout ends the remote session and clears the local one. The local
// session is cleared even when the remote call fails; the error is still
// returned so the caller can tell the user.
func (s *SessionStore) Logout(ctx context.Context) error {
	_, err := s.authRepo.Logout(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("logout request failed, clearing session locally")
		s.notifier.Error("Logout failed on the server; you have been signed out locally")
	}

	if s.creds != nil {
		if ferr := s.creds.ForgetCredentials(ctx); ferr != nil {
			logger.Warn().Err(ferr).Msg("failed to forget credentials")
		}
	}

	s.set(entity.AnonymousSession())
	return err
}

func (s *SessionStore) set(session entity.Session) {
	s.mu.Lock()
	s.state.Session = session
	if session.IsAuthenticated {
		s.state.Gate = GateAuthorized
	} else {
		s.state.Gate = GateUnauthorized
	}
	snapshot := SessionState{Session: session.Clone(), Gate: s.state.Gate}
	s.mu.Unlock()

	s.subs.publish(snapshot)
}

func registrationErrors(err error) error {
	fields := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.BadRequest("Invalid registration", err)
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			fields["email"] = "Enter a valid email address"
		case "FirstName":
			fields["firstName"] = "First name is required"
		case "LastName":
			fields["lastName"] = "Last name is required"
		case "Password":
			fields["password"] = "Password must be at least 6 characters"
		}
	}
	return errors.Validation(fields)
}
