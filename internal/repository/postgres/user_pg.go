// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"debo/internal/domain"
	"debo/internal/repository"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// Methods receive a DBExecutor directly rather than holding *sqlx.DB.
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// UpsertSession stores a fresh token and expiry for the email, creating the
// user row on first login. Token and expiry are written in one statement so
// the previous token can never survive alongside the new one.
func (r *UserRepository) UpsertSession(ctx context.Context, q repository.DBExecutor, email, token string, expires time.Time) (*domain.User, error) {
	var user domain.User
	query := `INSERT INTO users (email, session_token, token_expires)
              VALUES ($1, $2, $3)
              ON CONFLICT (email) DO UPDATE
              SET session_token = EXCLUDED.session_token, token_expires = EXCLUDED.token_expires
              RETURNING id, email, session_token, token_expires`
	err := q.GetContext(ctx, &user, query, email, token, expires)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert session for '%s': %w", email, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, session_token, token_expires FROM users WHERE email = $1`
	if err := q.GetContext(ctx, &user, query, email); err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// GetByToken retrieves a user by its current session token.
func (r *UserRepository) GetByToken(ctx context.Context, q repository.DBExecutor, token string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, session_token, token_expires FROM users WHERE session_token = $1`
	if err := q.GetContext(ctx, &user, query, token); err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// ExpireToken moves the user's token expiry to the given instant.
func (r *UserRepository) ExpireToken(ctx context.Context, q repository.DBExecutor, userID int64, at time.Time) error {
	query := `UPDATE users SET token_expires = $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, at, userID)
	if err != nil {
		return fmt.Errorf("failed to expire token for user %d: %w", userID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected expiring token for user %d: %w", userID, err)
	}
	if rows == 0 {
		return fmt.Errorf("no rows affected expiring token for user %d", userID)
	}
	return nil
}
