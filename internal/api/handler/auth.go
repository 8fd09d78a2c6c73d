// internal/api/handler/auth.go
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"debo/internal/identity"
	"debo/internal/service"
	"debo/internal/util"
)

// AuthHandler handles the login, redirect and logout endpoints.
type AuthHandler struct {
	sessions service.SessionService
	provider identity.Provider
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions service.SessionService, provider identity.Provider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		provider: provider,
		logger:   logger,
	}
}

// Login redirects the caller to the identity provider's consent page.
// GET /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.provider.AuthURL(), http.StatusFound)
}

// Redirect completes the OAuth flow: it exchanges the authorization code
// for a verified email and returns the caller's session, issuing a fresh
// token when none is live.
// GET /redirect?code=...
func (h *AuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, h.logger, util.E(util.KindMissingField, "identity", "code", "Please provide an authorization code."))
		return
	}

	accessToken, err := h.provider.ExchangeCode(r.Context(), code)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	email, err := h.provider.FetchEmail(r.Context(), accessToken)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	session, err := h.sessions.Get(r.Context(), email)
	if util.IsKind(err, util.KindNoUser) || util.IsKind(err, util.KindSessionExpired) {
		session, err = h.sessions.Issue(r.Context(), email)
	}
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, session)
}

// Logout expires the caller's current token.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(r.Context(), UserID(r.Context())); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, "")
}

// Authenticator resolves the bearer token on every request below it and
// threads the owning user's id through the request context.
func Authenticator(sessions service.SessionService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			token = strings.TrimPrefix(token, "Bearer ")

			userID, err := sessions.Authenticate(r.Context(), token)
			if err != nil {
				respondWithError(w, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
