package store

import (
	"context"
	"time"

	"task-manage-svc/internal/domain"
)

// TaskPatch describes a partial update to a task. Nil fields are left
// unchanged; non-nil fields overwrite the stored values.
type TaskPatch struct {
	Title       *string
	Description *string
	Assignee    *string
	DueDate     *time.Time
	Status      *domain.TaskStatus
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Assignee == nil &&
		p.DueDate == nil &&
		p.Status == nil
}

// TaskStore defines the persistence contract for task records.
// All operations are atomic per call; a failed write leaves the store
// unchanged from before the operation.
type TaskStore interface {
	// Create inserts a new task and fills in the assigned TaskID and
	// CreatedAt on the given entity.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByAssignee retrieves tasks for the given assignee with pagination.
	// Returns an empty slice, not an error, when nothing matches.
	ListByAssignee(ctx context.Context, assignee string, limit, offset int) ([]*domain.Task, error)

	// Update applies the non-nil fields of the patch to the task and sets
	// updated_at, returning the updated row.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error)

	// Delete removes the task row entirely.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// SetSuggestedInstructions stores the flattened instruction text produced
	// by the enrichment pipeline and sets updated_at. This is the only write
	// path for the suggested_instructions column.
	// Returns ErrTaskNotFound if the task was deleted in the interim.
	SetSuggestedInstructions(ctx context.Context, id int64, instructions string) error
}
