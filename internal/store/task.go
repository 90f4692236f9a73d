package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store, assigning an ID if the
	// task does not carry one yet.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all tasks ordered by creation time, newest first.
	// Returns an empty slice if the store holds no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByStatus retrieves all tasks with the given status ordered by
	// creation time, newest first.
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// ListByPriority retrieves all tasks with the given priority ordered by
	// creation time, newest first.
	ListByPriority(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error)

	// Count returns the total number of tasks in the store.
	Count(ctx context.Context) (int64, error)

	// CountByStatus returns the number of tasks with the given status.
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
