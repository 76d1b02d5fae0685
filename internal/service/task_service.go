// Package service contains the application logic sitting between the HTTP
// handlers and the store. Services validate business rules, coordinate
// persistence, and trigger background enrichment.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"task-manage-svc/internal/domain"
	"task-manage-svc/internal/platform/logger"
	"task-manage-svc/internal/store"
)

// Pagination bounds for task listings.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Common service errors. The API layer maps these to client-facing responses.
var (
	ErrInvalidTaskID     = errors.New("task_id must be positive")
	ErrEmptyUpdate       = errors.New("at least one field must be provided for update")
	ErrInvalidUsername   = errors.New("username must be a non-empty string")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// EnrichmentScheduler triggers out-of-band instruction generation for a task
// snapshot. Implementations must be fire-and-forget.
type EnrichmentScheduler interface {
	Schedule(taskID int64, title, description string)
}

// TaskService defines the application operations on tasks.
type TaskService interface {
	// CreateTask validates and persists a new task, scheduling instruction
	// generation when the task carries both a title and a description.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetTask fetches a single task by its positive identifier.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns the tasks assigned to username, ordered by ID.
	ListTasks(ctx context.Context, username string, limit, offset int) ([]*domain.Task, error)

	// UpdateTask applies a partial update and re-schedules instruction
	// generation when the updated row has complete details.
	UpdateTask(ctx context.Context, id int64, patch store.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task by ID.
	DeleteTask(ctx context.Context, id int64) error
}

type taskService struct {
	store     store.TaskStore
	scheduler EnrichmentScheduler
	logger    *slog.Logger
}

// NewTaskService creates a TaskService backed by the given store. The
// scheduler may be nil, in which case enrichment is disabled.
func NewTaskService(
	taskStore store.TaskStore,
	scheduler EnrichmentScheduler,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		store:     taskStore,
		scheduler: scheduler,
		logger:    logger.With("component", "task_service"),
	}, nil
}

func (s *taskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("task created", "task_id", task.TaskID)
	s.maybeScheduleEnrichment(log, task)

	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

func (s *taskService) ListTasks(
	ctx context.Context,
	username string,
	limit, offset int,
) ([]*domain.Task, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidUsername
	}
	if limit < 0 || limit > MaxListLimit || offset < 0 {
		return nil, ErrInvalidPagination
	}

	tasks, err := s.store.ListByAssignee(ctx, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks for %q: %w", username, err)
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(
	ctx context.Context,
	id int64,
	patch store.TaskPatch,
) (*domain.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		// An empty title is stored as-is; flag it so operators can spot
		// records that will never qualify for enrichment.
		log.Warn("task updated with empty title", "task_id", id)
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	log.Info("task updated", "task_id", updated.TaskID)
	s.maybeScheduleEnrichment(log, updated)

	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", "task_id", id)
	return nil
}

// maybeScheduleEnrichment kicks off instruction generation when the task has
// both a trimmed title and description. Anything else is logged and skipped.
func (s *taskService) maybeScheduleEnrichment(log *slog.Logger, task *domain.Task) {
	if s.scheduler == nil {
		return
	}

	if !task.HasCompleteDetails() {
		log.Warn("instruction generation not scheduled: task details incomplete",
			"task_id", task.TaskID)
		return
	}

	description := ""
	if task.Description != nil {
		description = *task.Description
	}
	s.scheduler.Schedule(task.TaskID, task.Title, description)
}
