// Package user owns the credential records and the store contract the auth
// flows depend on. The hash stored here is opaque to the store and is never
// returned to a client.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNotFound       = errors.New("user not found")
)

// User is a persisted credential: a unique id, a normalized (lowercase,
// trimmed) unique email and an Argon2id password hash.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the persistence contract. Create reports ErrDuplicateEmail when the
// email is already registered; GetByEmail reports ErrNotFound for an unknown
// address. Any other error is an infrastructure failure.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}
