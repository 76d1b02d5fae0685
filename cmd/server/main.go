// Package main implements the entry point for the task management API
// server, which exposes task CRUD endpoints and enriches complete tasks
// with LLM-generated suggested instructions.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"task-manage-svc/internal/config"
	"task-manage-svc/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, cfg, appLogger); err != nil {
		return nil, err
	}

	app, err := newApplication(context.Background(), cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	return app, nil
}
