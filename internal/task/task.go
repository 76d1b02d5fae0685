// Package task provides background task processing for work that must not
// block or fail the request that triggered it.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TypeInstructionGeneration identifies tasks that derive suggested
	// instructions for a task record via the LLM backend.
	TypeInstructionGeneration = "instruction_generation"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
