package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore persists users in the users table. Writes go to the write
// pool, lookups to the read pool.
type PostgresStore struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewPostgresStore(readPool, writePool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		readPool:  readPool,
		writePool: writePool,
	}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	query := `INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`

	_, err := s.writePool.Exec(ctx, query, u.ID, u.Email, u.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on the email index
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var u User
	err := s.readPool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}
