package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// NewTaskRepositoryAdapter creates a new adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected. The database handle is used
// to open transactions for RunInTransaction.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository interface
type taskRepositoryAdapter struct {
	taskStore store.TaskStore
	db        *sql.DB
}

// Create implements TaskRepository.Create
func (a *taskRepositoryAdapter) Create(ctx context.Context, task *domain.Task) error {
	return a.taskStore.Create(ctx, task)
}

// GetByID implements TaskRepository.GetByID
func (a *taskRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return a.taskStore.GetByID(ctx, id)
}

// Update implements TaskRepository.Update
func (a *taskRepositoryAdapter) Update(ctx context.Context, task *domain.Task) error {
	return a.taskStore.Update(ctx, task)
}

// Delete implements TaskRepository.Delete
func (a *taskRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.taskStore.Delete(ctx, id)
}

// List implements TaskRepository.List
func (a *taskRepositoryAdapter) List(ctx context.Context) ([]*domain.Task, error) {
	return a.taskStore.List(ctx)
}

// ListByStatus implements TaskRepository.ListByStatus
func (a *taskRepositoryAdapter) ListByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	return a.taskStore.ListByStatus(ctx, status)
}

// ListByPriority implements TaskRepository.ListByPriority
func (a *taskRepositoryAdapter) ListByPriority(
	ctx context.Context,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	return a.taskStore.ListByPriority(ctx, priority)
}

// Count implements TaskRepository.Count
func (a *taskRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	return a.taskStore.Count(ctx)
}

// CountByStatus implements TaskRepository.CountByStatus
func (a *taskRepositoryAdapter) CountByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) (int64, error) {
	return a.taskStore.CountByStatus(ctx, status)
}

// RunInTransaction implements TaskRepository.RunInTransaction
// It executes fn with an adapter bound to a single database transaction.
func (a *taskRepositoryAdapter) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo TaskRepository) error,
) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		txAdapter := &taskRepositoryAdapter{
			taskStore: a.taskStore.WithTx(tx),
			db:        a.db,
		}
		return fn(ctx, txAdapter)
	})
}
