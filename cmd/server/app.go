package main

import (
	"context"
	"database/sql"
	"log/slog"

	"task-manage-svc/internal/config"
	"task-manage-svc/internal/platform/gemini"
	"task-manage-svc/internal/platform/postgres"
	"task-manage-svc/internal/service"
	"task-manage-svc/internal/service/auth"
	"task-manage-svc/internal/store"
	"task-manage-svc/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore        store.TaskStore
	taskService      service.TaskService
	sessionValidator auth.SessionValidator
	taskRunner       *task.Runner
}

// newApplication wires the stores, services, and background workers.
// All dependencies are constructed here and passed down explicitly.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	generator, err := gemini.NewInstructionGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, err
	}

	runner := task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	runner.Start()

	enricher, err := task.NewInstructionEnricher(runner, generator, taskStore, logger)
	if err != nil {
		runner.Stop()
		return nil, err
	}

	taskService, err := service.NewTaskService(taskStore, enricher, logger)
	if err != nil {
		runner.Stop()
		return nil, err
	}

	sessionValidator, err := auth.NewHTTPSessionValidator(cfg.Auth, logger)
	if err != nil {
		runner.Stop()
		return nil, err
	}

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		taskStore:        taskStore,
		taskService:      taskService,
		sessionValidator: sessionValidator,
		taskRunner:       runner,
	}, nil
}

// cleanup releases application resources. Called after the HTTP server has
// stopped accepting requests.
func (app *application) cleanup() {
	app.logger.Info("Stopping background task runner")
	app.taskRunner.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
