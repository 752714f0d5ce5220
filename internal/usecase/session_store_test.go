package usecase

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var seller = entity.Identity{ID: "u1", Email: "s@example.com", FirstName: "Sam", LastName: "Seller", Role: entity.RoleSeller}

func TestProbeIdentity(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		repo := new(mockAuthRepo)
		repo.On("Me", mock.Anything).Return(&seller, nil).Once()
		store := NewSessionStore(repo, nil)
		assert.Equal(t, GateUnknown, store.Snapshot().Gate)

		session := store.ProbeIdentity(context.Background())
		assert.True(t, session.IsAuthenticated)
		assert.Equal(t, GateAuthorized, store.Snapshot().Gate)
		assert.Equal(t, entity.RoleSeller, store.Snapshot().Session.Role())
	})

	t.Run("any failure is anonymous", func(t *testing.T) {
		repo := new(mockAuthRepo)
		repo.On("Me", mock.Anything).Return(nil, errors.Network("Unable to reach the marketplace", nil)).Once()
		store := NewSessionStore(repo, nil)

		session := store.ProbeIdentity(context.Background())
		assert.False(t, session.IsAuthenticated)
		assert.Nil(t, session.User)
		assert.Equal(t, GateUnauthorized, store.Snapshot().Gate)
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("validates before calling the API", func(t *testing.T) {
		repo := new(mockAuthRepo)
		store := NewSessionStore(repo, nil)

		_, err := store.SignIn(ctx, "not-an-email", "pw")
		assert.True(t, errors.IsValidation(err))
		_, err = store.SignIn(ctx, "s@example.com", "")
		assert.True(t, errors.IsValidation(err))
		repo.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad credentials leave the session alone", func(t *testing.T) {
		repo := new(mockAuthRepo)
		repo.On("Login", mock.Anything, "s@example.com", "wrong").Return("", errors.Unauthorized("Invalid credentials", nil)).Once()
		store := NewSessionStore(repo, nil)

		_, err := store.SignIn(ctx, " s@example.com ", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Invalid Credentials", errors.MessageOf(err, ""))
		assert.False(t, store.Snapshot().Session.IsAuthenticated)
	})

	t.Run("success loads identity", func(t *testing.T) {
		repo := new(mockAuthRepo)
		repo.On("Login", mock.Anything, "s@example.com", "secret1").Return("Login successful", nil).Once()
		repo.On("Me", mock.Anything).Return(&seller, nil).Once()
		store := NewSessionStore(repo, nil)

		var seen []SessionState
		unsubscribe := store.Subscribe(func(s SessionState) { seen = append(seen, s) })
		defer unsubscribe()

		identity, err := store.SignIn(ctx, "s@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u1", identity.ID)
		require.Len(t, seen, 1)
		assert.True(t, seen[0].Session.IsAuthenticated)
		assert.Equal(t, AreaSeller, Decide(store.Snapshot(), AreaLogin).Target)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	input := repository.Registration{Email: "b@example.com", FirstName: "Bo", LastName: "Buyer", Password: "secret1"}

	t.Run("field errors", func(t *testing.T) {
		repo := new(mockAuthRepo)
		store := NewSessionStore(repo, nil)

		_, err := store.Register(ctx, entity.RoleUser, repository.Registration{Email: "x", Password: "123"})
		var verr *errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "firstName")
		assert.Contains(t, verr.Fields, "lastName")
		assert.Contains(t, verr.Fields, "password")
	})

	t.Run("unknown role", func(t *testing.T) {
		store := NewSessionStore(new(mockAuthRepo), nil)
		_, err := store.Register(ctx, entity.Role("ADMIN"), input)
		assert.True(t, errors.Is(err, errors.CodeBadRequest))
	})

	t.Run("server message is surfaced", func(t *testing.T) {
		repo := new(mockAuthRepo)
		repo.On("Register", mock.Anything, entity.RoleSeller, input).Return("Welcome aboard", nil).Once()
		notifier := &recordingNotifier{}
		store := NewSessionStore(repo, notifier)

		msg, err := store.Register(ctx, entity.RoleSeller, input)
		require.NoError(t, err)
		assert.Equal(t, "Welcome aboard", msg)
		assert.Equal(t, "Welcome aboard", notifier.lastSuccess())
		assert.False(t, store.Snapshot().Session.IsAuthenticated)
	})

	t.Run("server error is surfaced", func(t *testing.T) {
		repo := new(mockAuthRepo)
		repo.On("Register", mock.Anything, entity.RoleUser, input).Return("", errors.Conflict("Email already in use")).Once()
		notifier := &recordingNotifier{}
		store := NewSessionStore(repo, notifier)

		_, err := store.Register(ctx, entity.RoleUser, input)
		assert.True(t, errors.Is(err, errors.CodeConflict))
		assert.Equal(t, "Email already in use", notifier.lastError())
	})
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	ctx := context.Background()

	for name, remoteErr := range map[string]error{
		"remote ok":     nil,
		"remote failed": errors.FromStatus(500, ""),
	} {
		t.Run(name, func(t *testing.T) {
			repo := new(mockAuthRepo)
			repo.On("Logout", mock.Anything).Return("", remoteErr).Once()
			forgetter := new(mockForgetter)
			forgetter.On("ForgetCredentials", mock.Anything).Return(nil).Once()

			store := NewSessionStore(repo, nil, WithCredentialForgetter(forgetter))
			store.Login(seller)
			require.True(t, store.Snapshot().Session.IsAuthenticated)

			err := store.Logout(ctx)
			if remoteErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, store.Snapshot().Session.IsAuthenticated)
			assert.Nil(t, store.Snapshot().Session.User)
			assert.Equal(t, GateUnauthorized, store.Snapshot().Gate)
			forgetter.AssertExpectations(t)
		})
	}
}
