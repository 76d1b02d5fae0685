package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// ParseTaskStatus converts a raw string into a TaskStatus.
// Unknown values are rejected here, at the input-parsing boundary,
// so invalid statuses never reach business logic or the store.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return status, nil
}

// IsValid reports whether the status is a member of the closed enumeration.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Task represents the persistent unit of work tracked by this service.
// Optional fields are pointers so that unset values round-trip as JSON null
// rather than zero values.
type Task struct {
	TaskID                int64      `json:"task_id"`
	Title                 string     `json:"title"`
	Description           *string    `json:"description"`
	Assignee              *string    `json:"assignee"`
	DueDate               *time.Time `json:"due_date"`
	Status                TaskStatus `json:"status"`
	SuggestedInstructions *string    `json:"suggested_instructions"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at"`
}

// NewTask creates a new Task with the given fields. The status defaults to
// not_started when empty. TaskID and CreatedAt are assigned by the store on
// insert. Returns an error if validation fails.
func NewTask(
	title string,
	description, assignee *string,
	dueDate *time.Time,
	status TaskStatus,
) (*Task, error) {
	if status == "" {
		status = TaskStatusNotStarted
	}

	task := &Task{
		Title:       title,
		Description: description,
		Assignee:    assignee,
		DueDate:     dueDate,
		Status:      status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, t.Status)
	}

	return nil
}

// HasCompleteDetails reports whether both title and description are non-empty
// after trimming. Instruction generation is only scheduled for complete tasks.
func (t *Task) HasCompleteDetails() bool {
	if strings.TrimSpace(t.Title) == "" {
		return false
	}
	return t.Description != nil && strings.TrimSpace(*t.Description) != ""
}
