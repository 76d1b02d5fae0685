// Package postgres provides PostgreSQL implementations of the store contracts.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"task-manage-svc/internal/domain"
	"task-manage-svc/internal/platform/logger"
	"task-manage-svc/internal/store"
)

// taskColumns is the canonical select list for task rows.
const taskColumns = `task_id, title, description, assignee, due_date, status,
	suggested_instructions, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It inserts a new task row and fills in the assigned task_id and created_at
// on the given entity. Domain validation runs before any write.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, assignee, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING task_id, created_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Assignee,
		task.DueDate,
		task.Status,
	).Scan(&task.TaskID, &task.CreatedAt)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.TaskID),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE task_id = $1`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	return task, nil
}

// ListByAssignee implements store.TaskStore.ListByAssignee
// Rows are ordered by task_id so pagination is stable under no concurrent
// writes. An assignee with no tasks yields an empty slice.
func (s *PostgresTaskStore) ListByAssignee(
	ctx context.Context,
	assignee string,
	limit, offset int,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE assignee = $1
		ORDER BY task_id
		LIMIT $2 OFFSET $3
	`, taskColumns)

	rows, err := s.db.QueryContext(ctx, query, assignee, limit, offset)
	if err != nil {
		log.Error("failed to list tasks by assignee",
			slog.String("error", err.Error()),
			slog.String("assignee", assignee))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("failed while iterating task rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
// Only the non-nil fields of the patch are written; updated_at is set to the
// current time on every successful update. Returns store.ErrTaskNotFound if
// the task does not exist.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id int64,
	patch store.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: update patch cannot be empty", store.ErrInvalidEntity)
	}

	setClauses := make([]string, 0, 6)
	args := make([]any, 0, 7)

	addClause := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		addClause("title", *patch.Title)
	}
	if patch.Description != nil {
		addClause("description", *patch.Description)
	}
	if patch.Assignee != nil {
		addClause("assignee", *patch.Assignee)
	}
	if patch.DueDate != nil {
		addClause("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		addClause("status", *patch.Status)
	}
	addClause("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE task_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "),
		len(args),
		taskColumns,
	)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found during update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Removes the row entirely; there is no soft delete.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found during delete", slog.Int64("task_id", id))
		return err
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// SetSuggestedInstructions implements store.TaskStore.SetSuggestedInstructions
// This is the enrichment write path: it never touches any other user-editable
// column, and it sets updated_at like any other successful mutation.
// Returns store.ErrTaskNotFound if the row was deleted in the interim.
func (s *PostgresTaskStore) SetSuggestedInstructions(
	ctx context.Context,
	id int64,
	instructions string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET suggested_instructions = $1, updated_at = $2
		WHERE task_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, instructions, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to set suggested instructions",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("suggested instructions saved",
		slog.Int64("task_id", id),
		slog.Int("length", len(instructions)))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string

	err := row.Scan(
		&task.TaskID,
		&task.Title,
		&task.Description,
		&task.Assignee,
		&task.DueDate,
		&status,
		&task.SuggestedInstructions,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	return &task, nil
}
