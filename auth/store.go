package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/K-s-c49/post-comment-web/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// PgUserStore is the PostgreSQL-backed UserStore.
type PgUserStore struct {
	db *pgxpool.Pool
}

// NewPgUserStore creates a PgUserStore on the given pool.
func NewPgUserStore(db *pgxpool.Pool) *PgUserStore {
	return &PgUserStore{db: db}
}

// CreateUser inserts the account. The unique index on username turns
// duplicate registrations into a ConflictError.
func (s *PgUserStore) CreateUser(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, username, password_hash)
	          VALUES ($1, $2, $3)
	          RETURNING created_at, updated_at`
	err := s.db.QueryRow(ctx, query, user.ID, user.Username, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewConflictError("username already exists", nil)
		}
		return apperror.NewDatabaseError("failed to create user", err)
	}
	return nil
}

// GetUserByUsername returns the account with the given username, or
// (nil, nil) when no such account exists.
func (s *PgUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT id, username, password_hash, created_at, updated_at
	          FROM users
	          WHERE username = $1`
	err := s.db.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}
