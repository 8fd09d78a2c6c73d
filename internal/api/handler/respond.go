// internal/api/handler/respond.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"debo/internal/util"
)

// DefaultTimeout bounds request handling end to end.
const DefaultTimeout = 60 * time.Second

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID extracts the authenticated user's id from the context. It is only
// meaningful below the authentication middleware.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError renders any failure as the {code, status, error}
// payload. Internal failures are logged with their full cause; the caller
// only ever sees the class message.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	payload := util.ToPayload(err)
	if payload.Code >= 500 {
		logger.Error("Unhandled service error", "error", err)
	}
	respondWithJSON(w, logger, payload.Code, payload)
}
