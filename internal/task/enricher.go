package task

import (
	"context"
	"log/slog"

	"task-manage-svc/internal/generation"
)

// InstructionEnricher schedules out-of-band instruction generation for task
// records. Schedule is strictly fire-and-forget: it never blocks on the
// generation work, never returns an error, and never lets a failure escape
// to the request that triggered it.
type InstructionEnricher struct {
	runner    *Runner
	generator generation.Generator
	store     InstructionStore
	logger    *slog.Logger
}

// NewInstructionEnricher creates a new InstructionEnricher
func NewInstructionEnricher(
	runner *Runner,
	generator generation.Generator,
	instructionStore InstructionStore,
	logger *slog.Logger,
) (*InstructionEnricher, error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if instructionStore == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &InstructionEnricher{
		runner:    runner,
		generator: generator,
		store:     instructionStore,
		logger:    logger.With("component", "instruction_enricher"),
	}, nil
}

// Schedule submits instruction generation for the given task snapshot.
// When the runner cannot accept the work, the task is executed on a fresh
// goroutine instead of being dropped. All failures are logged only.
func (e *InstructionEnricher) Schedule(taskID int64, title, description string) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error("panic while scheduling instruction generation",
				"task_id", taskID,
				"panic", p)
		}
	}()

	t, err := NewInstructionGenerationTask(
		taskID, title, description,
		e.generator, e.store, e.logger,
	)
	if err != nil {
		e.logger.Error("failed to build instruction generation task",
			"task_id", taskID,
			"error", err)
		return
	}

	if err := e.runner.Submit(t); err != nil {
		e.logger.Warn("runner rejected instruction generation task, running it standalone",
			"task_id", taskID,
			"error", err)
		go e.runStandalone(t)
		return
	}

	e.logger.Debug("instruction generation scheduled",
		"task_id", taskID,
		"background_task_id", t.ID())
}

// runStandalone executes a task outside the worker pool. Used as the
// fallback when the queue is full or the runner is stopped.
func (e *InstructionEnricher) runStandalone(t Task) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error("panic during standalone instruction generation", "panic", p)
		}
	}()

	if err := t.Execute(context.Background()); err != nil {
		e.logger.Error("standalone instruction generation failed",
			"background_task_id", t.ID(),
			"error", err)
	}
}
