package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manage-svc/internal/service/auth"
)

// stubValidator returns a fixed result for every token.
type stubValidator struct {
	err       error
	lastToken string
}

func (s *stubValidator) ValidateSession(ctx context.Context, token string) error {
	s.lastToken = token
	return s.err
}

func runAuthRequest(t *testing.T, validator auth.SessionValidator, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reached bool
	handler := NewAuthMiddleware(validator).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		}),
	)

	r := httptest.NewRequest(http.MethodGet, "/task/1", nil)
	if token != "" {
		r.Header.Set(auth.SessionTokenHeader, token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code == http.StatusOK {
		require.True(t, reached, "handler should run for accepted requests")
	} else {
		require.False(t, reached, "handler must not run for rejected requests")
	}
	return w
}

func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid session passes through", func(t *testing.T) {
		t.Parallel()

		v := &stubValidator{}
		w := runAuthRequest(t, v, "tok-123")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok-123", v.lastToken)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		w := runAuthRequest(t, &stubValidator{}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Session token is missing", detailOf(t, w))
	})

	t.Run("invalid session", func(t *testing.T) {
		t.Parallel()

		w := runAuthRequest(t, &stubValidator{err: auth.ErrInvalidSession}, "bad")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired session token", detailOf(t, w))
	})

	t.Run("session service failure", func(t *testing.T) {
		t.Parallel()

		w := runAuthRequest(t, &stubValidator{err: errors.New("dial tcp: refused")}, "tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", detailOf(t, w))
		assert.NotContains(t, w.Body.String(), "dial tcp")
	})
}
