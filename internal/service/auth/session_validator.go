// Package auth validates incoming session tokens against the external
// session service. This service issues no credentials of its own; every
// request is checked remotely.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"task-manage-svc/internal/config"
)

// SessionTokenHeader is the header carrying the session token, both on
// incoming requests and on the outbound validation call.
const SessionTokenHeader = "X-Session-Token"

// ErrInvalidSession indicates the session service rejected the token.
var ErrInvalidSession = errors.New("invalid or expired session token")

// SessionValidator checks whether a session token is currently valid.
type SessionValidator interface {
	// ValidateSession returns nil for a valid token, ErrInvalidSession for a
	// rejected one, and any other error for transport or server failures.
	ValidateSession(ctx context.Context, token string) error
}

// HTTPSessionValidator validates tokens by forwarding them to the session
// service over HTTP.
type HTTPSessionValidator struct {
	client     *http.Client
	serviceURL string
	logger     *slog.Logger
}

var _ SessionValidator = (*HTTPSessionValidator)(nil)

// NewHTTPSessionValidator creates a validator from the auth configuration.
func NewHTTPSessionValidator(cfg config.AuthConfig, logger *slog.Logger) (*HTTPSessionValidator, error) {
	if cfg.SessionServiceURL == "" {
		return nil, errors.New("session service URL cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPSessionValidator{
		client:     &http.Client{Timeout: timeout},
		serviceURL: cfg.SessionServiceURL,
		logger:     logger.With("component", "session_validator"),
	}, nil
}

// ValidateSession forwards the token to the session service. 2xx means the
// session is valid; 401 and 403 mean the token is bad; anything else is a
// failure of the session service itself.
func (v *HTTPSessionValidator) ValidateSession(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.serviceURL, nil)
	if err != nil {
		return fmt.Errorf("build session validation request: %w", err)
	}
	req.Header.Set(SessionTokenHeader, token)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("session service unreachable", "error", err)
		return fmt.Errorf("call session service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidSession
	default:
		v.logger.Error("unexpected status from session service", "status", resp.StatusCode)
		return fmt.Errorf("session service returned status %d", resp.StatusCode)
	}
}
