package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/duccv/auth-service/internal/user"
)

// fakeStore is an in-memory user.Store keyed by email.
type fakeStore struct {
	users   map[string]*user.User
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*user.User)}
}

func (s *fakeStore) Create(_ context.Context, u *user.User) error {
	if s.failing {
		return errors.New("connection refused")
	}
	if _, ok := s.users[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if s.failing {
		return nil, errors.New("connection refused")
	}
	u, ok := s.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestService(store user.Store) *Service {
	return NewService(store, NewTokenManager([]byte("secret"), time.Hour))
}

func TestService_RegisterThenLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	// differing case and whitespace must resolve to the same account
	token, err := svc.Login(ctx, " A@x.com ", "secret1")
	require.NoError(t, err)

	claims, err := NewTokenManager([]byte("secret"), time.Hour).Verify(token)
	require.NoError(t, err)
	require.Equal(t, id.String(), claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestService_RegisterNormalizesEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "  B@X.Com ", "secret1")
	require.NoError(t, err)

	u, ok := store.users["b@x.com"]
	require.True(t, ok)
	require.Equal(t, "b@x.com", u.Email)
	require.NotEqual(t, "secret1", u.PasswordHash)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "secret1")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "a@x.com", "short")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@X.COM", "secret2")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestService_LoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "b@x.com", "correctpw")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "b@x.com", "wrongpw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	// indistinguishable from a wrong password
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1")
	require.ErrorIs(t, err, ErrStorage)

	_, err = svc.Login(ctx, "a@x.com", "secret1")
	require.ErrorIs(t, err, ErrStorage)
}
