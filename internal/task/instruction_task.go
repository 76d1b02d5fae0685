package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"task-manage-svc/internal/generation"
	"task-manage-svc/internal/store"
)

// instructionJoinSeparator flattens the instruction list into the single
// text column on the task row.
const instructionJoinSeparator = "; "

// Common errors
var (
	ErrNilRunner        = errors.New("runner cannot be nil")
	ErrNilGenerator     = errors.New("generator cannot be nil")
	ErrNilStore         = errors.New("store cannot be nil")
	ErrInvalidTargetID  = errors.New("target task ID must be positive")
	ErrIncompleteTarget = errors.New("title and description are required")
)

// InstructionStore is the narrow store surface the enrichment pipeline
// needs: the single dedicated write path for suggested instructions.
type InstructionStore interface {
	SetSuggestedInstructions(ctx context.Context, id int64, instructions string) error
}

// InstructionGenerationTask implements the Task interface for deriving
// suggested instructions for a task record. It carries a snapshot of the
// title and description taken when the work was scheduled; the write goes to
// whatever row exists by the time the task runs.
type InstructionGenerationTask struct {
	id          uuid.UUID
	targetID    int64
	title       string
	description string
	generator   generation.Generator
	store       InstructionStore
	logger      *slog.Logger
}

// NewInstructionGenerationTask creates a new instruction generation task
func NewInstructionGenerationTask(
	targetID int64,
	title, description string,
	generator generation.Generator,
	instructionStore InstructionStore,
	logger *slog.Logger,
) (*InstructionGenerationTask, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if instructionStore == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	if targetID <= 0 {
		return nil, ErrInvalidTargetID
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, ErrIncompleteTarget
	}

	return &InstructionGenerationTask{
		id:          uuid.New(),
		targetID:    targetID,
		title:       title,
		description: description,
		generator:   generator,
		store:       instructionStore,
		logger:      logger.With("task_type", TypeInstructionGeneration, "target_task_id", targetID),
	}, nil
}

// ID returns the task's unique identifier
func (t *InstructionGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *InstructionGenerationTask) Type() string {
	return TypeInstructionGeneration
}

// Execute generates instructions and persists them onto the task row.
// A row deleted between scheduling and completion is not an error: the work
// is simply discarded. Provider failures leave the row untouched.
func (t *InstructionGenerationTask) Execute(ctx context.Context) error {
	instructions, err := t.generator.GenerateInstructions(ctx, t.title, t.description)
	if err != nil {
		return fmt.Errorf("generate instructions: %w", err)
	}

	joined := strings.Join(instructions, instructionJoinSeparator)

	if err := t.store.SetSuggestedInstructions(ctx, t.targetID, joined); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			t.logger.Info("task deleted before instructions could be saved")
			return nil
		}
		return fmt.Errorf("save instructions: %w", err)
	}

	t.logger.Info("suggested instructions saved",
		"instruction_count", len(instructions))
	return nil
}
