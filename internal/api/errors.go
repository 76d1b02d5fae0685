package api

import (
	"errors"
	"net/http"

	"task-manage-svc/internal/domain"
	"task-manage-svc/internal/service"
	"task-manage-svc/internal/service/auth"
	"task-manage-svc/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidSession):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Missing/blank required fields
	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, service.ErrInvalidTaskID),
		errors.Is(err, service.ErrEmptyUpdate),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, client-facing detail string for
// the error type. Raw error text never reaches the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidSession):
		return "Invalid or expired session token"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return "title must be a non-empty string"

	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid status value"

	case errors.Is(err, service.ErrInvalidTaskID):
		return "task_id must be positive"

	case errors.Is(err, service.ErrEmptyUpdate):
		return "At least one field must be provided for update"

	case errors.Is(err, service.ErrInvalidUsername):
		return "Username must be a non-empty string"

	case errors.Is(err, service.ErrInvalidPagination):
		return "Invalid pagination parameters"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return "Internal Server Error"
	}
}

// RespondWithServiceError maps the error to a status code and safe detail
// string, writes the response, and logs the underlying cause.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	detail := GetSafeErrorMessage(err)
	respondError(w, r, status, detail, err)
}
