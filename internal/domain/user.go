// internal/domain/user.go
package domain

import "time"

// User represents a ledger owner. Users are created implicitly on their
// first successful identity exchange and are never hard-deleted.
type User struct {
	ID           int64     `db:"id" json:"-"`
	Email        string    `db:"email" json:"email"`
	SessionToken string    `db:"session_token" json:"-"`
	TokenExpires time.Time `db:"token_expires" json:"-"`
}

// Session is the credential representation handed back to callers after a
// login. The token is opaque; only its expiry is meaningful to clients.
type Session struct {
	Token   string    `json:"session_token"`
	Expires time.Time `json:"token_expires"`
}
