package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// application holds the assembled dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	taskService service.TaskService
	taskHandler *api.TaskHandler
}

// newApplication wires stores, services, and handlers together.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	taskRepo := service.NewTaskRepositoryAdapter(taskStore, db)

	taskService, err := service.NewTaskService(taskRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		taskService: taskService,
		taskHandler: api.NewTaskHandler(taskService, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
