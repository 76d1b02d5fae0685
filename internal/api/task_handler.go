package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"task-manage-svc/internal/api/shared"
	"task-manage-svc/internal/domain"
	"task-manage-svc/internal/service"
	"task-manage-svc/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	service service.TaskService
	logger  *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		service: taskService,
		logger:  logger.With("component", "task_handler"),
	}
}

// CreateTaskRequest is the payload for creating a task. Title uses a pointer
// so a missing field is distinguishable from an empty string.
type CreateTaskRequest struct {
	Title       *string    `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Assignee    *string    `json:"assignee"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
}

// UpdateTaskRequest is the payload for partially updating a task. Every
// field is optional; absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Assignee    *string    `json:"assignee"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
}

// CreateTaskResponse carries the identifiers assigned on insert.
type CreateTaskResponse struct {
	TaskID    int64     `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}

// respondError is the single exit path for handler failures.
func respondError(w http.ResponseWriter, r *http.Request, status int, detail string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, detail, err)
}

// Create handles POST /task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "Invalid request body", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "title is required", err)
		return
	}

	status := domain.TaskStatusNotStarted
	if strings.TrimSpace(req.Status) != "" {
		parsed, err := domain.ParseTaskStatus(req.Status)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid status value", err)
			return
		}
		status = parsed
	}

	task, err := domain.NewTask(*req.Title, req.Description, req.Assignee, req.DueDate, status)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	created, err := h.service.CreateTask(r.Context(), task)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CreateTaskResponse{
		TaskID:    created.TaskID,
		CreatedAt: created.CreatedAt,
	})
}

// Get handles GET /task/{task_id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskIDFromURL(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// List handles GET /task.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	limit, err := queryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), username, limit, offset)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Update handles PUT /task/{task_id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskIDFromURL(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "Invalid request body", err)
		return
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		parsed, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid status value", err)
			return
		}
		patch.Status = &parsed
	}

	updated, err := h.service.UpdateTask(r.Context(), id, patch)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /task/{task_id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// taskIDFromURL parses the task_id path parameter. Non-numeric values are
// rejected here; the service decides whether the number itself is valid.
func (h *TaskHandler) taskIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "task_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "task_id must be an integer", err)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
