// internal/repository/user_repo.go
package repository

import (
	"context"
	"time"

	"debo/internal/domain"
)

// UserRepository defines the interface for user and session-token data
// operations. The token columns live on the user row, so issuing a new
// token atomically invalidates the previous one.
type UserRepository interface {
	// UpsertSession stores a fresh token and expiry for the email, creating
	// the user on first login, and returns the user row.
	UpsertSession(ctx context.Context, q DBExecutor, email, token string, expires time.Time) (*domain.User, error)
	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// GetByToken retrieves a user by its current session token.
	GetByToken(ctx context.Context, q DBExecutor, token string) (*domain.User, error)
	// ExpireToken moves the user's token expiry to the given instant.
	ExpireToken(ctx context.Context, q DBExecutor, userID int64, at time.Time) error
}
