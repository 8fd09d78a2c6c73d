// internal/service/session_service.go
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"debo/internal/domain"
	"debo/internal/repository"
	"debo/internal/util"
)

// tokenAlphabet is the 62-symbol set tokens are drawn from.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// minTokenLength is the floor below which configured lengths are raised.
const minTokenLength = 32

// SessionService manages per-user opaque tokens with expiry.
type SessionService interface {
	// Issue generates a fresh token for the email, creating the user on
	// first login. Any previously issued token becomes invalid.
	Issue(ctx context.Context, email string) (*domain.Session, error)
	// Get returns the stored session for the email.
	Get(ctx context.Context, email string) (*domain.Session, error)
	// Authenticate resolves a bearer token to the owning user's id.
	Authenticate(ctx context.Context, token string) (int64, error)
	// Revoke expires the user's current token immediately.
	Revoke(ctx context.Context, userID int64) error
}

// sessionService implements the SessionService interface.
type sessionService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	random     io.Reader // crypto-secure source, injected once at startup
	tokenLen   int
	lifetime   time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewSessionService creates a new instance of SessionService. random must be
// a cryptographically secure source (crypto/rand.Reader in production).
func NewSessionService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	random io.Reader,
	tokenLen int,
	lifetime time.Duration,
	logger *slog.Logger,
) SessionService {
	if tokenLen < minTokenLength {
		tokenLen = minTokenLength
	}
	return &sessionService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		random:     random,
		tokenLen:   tokenLen,
		lifetime:   lifetime,
		now:        time.Now,
		logger:     logger,
	}
}

// newToken draws tokenLen symbols from the alphabet without modulo bias.
func (s *sessionService) newToken() (string, error) {
	buf := make([]byte, s.tokenLen)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(s.random, max)
		if err != nil {
			return "", fmt.Errorf("session: failed to read random source: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func (s *sessionService) Issue(ctx context.Context, email string) (*domain.Session, error) {
	if email == "" {
		return nil, util.E(util.KindMissingField, "session", "email", "Please provide an email address.")
	}
	token, err := s.newToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(s.lifetime)

	user, err := s.userRepo.UpsertSession(ctx, s.dbExecutor, email, token, expires)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.logger.Info("session issued", "user_id", user.ID, "token_expires", expires)
	return &domain.Session{Token: token, Expires: expires}, nil
}

func (s *sessionService) Get(ctx context.Context, email string) (*domain.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsKind(err, util.KindNotFound) {
			return nil, util.E(util.KindNoUser, "session", "email", "")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if s.now().After(user.TokenExpires) {
		return nil, util.E(util.KindSessionExpired, "session", "", "")
	}
	return &domain.Session{Token: user.SessionToken, Expires: user.TokenExpires}, nil
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, util.E(util.KindInvalidToken, "session", "", "")
	}
	user, err := s.userRepo.GetByToken(ctx, s.dbExecutor, token)
	if err != nil {
		if util.IsKind(err, util.KindNotFound) {
			s.logger.Info("authentication failed", "reason", "unknown token")
			return 0, util.E(util.KindInvalidToken, "session", "", "")
		}
		return 0, fmt.Errorf("authenticate: %w", err)
	}
	if s.now().After(user.TokenExpires) {
		s.logger.Info("authentication failed", "reason", "token expired", "user_id", user.ID)
		return 0, util.E(util.KindTokenExpired, "session", "", "")
	}
	return user.ID, nil
}

func (s *sessionService) Revoke(ctx context.Context, userID int64) error {
	if err := s.userRepo.ExpireToken(ctx, s.dbExecutor, userID, s.now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info("session revoked", "user_id", userID)
	return nil
}
