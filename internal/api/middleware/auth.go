package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"task-manage-svc/internal/api/shared"
	"task-manage-svc/internal/redact"
	"task-manage-svc/internal/service/auth"
)

// AuthMiddleware enforces session-token authentication for routes.
// Tokens arrive in the X-Session-Token header and are checked against the
// external session service on every request.
type AuthMiddleware struct {
	validator auth.SessionValidator
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(validator auth.SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// Authenticate rejects requests without a valid session token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(auth.SessionTokenHeader)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Session token is missing")
			return
		}

		if err := m.validator.ValidateSession(r.Context(), token); err != nil {
			if errors.Is(err, auth.ErrInvalidSession) {
				shared.RespondWithError(
					w,
					r,
					http.StatusUnauthorized,
					"Invalid or expired session token",
				)
				return
			}

			slog.Error("session validation failed", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		next.ServeHTTP(w, r)
	})
}
