package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// This is aligned with store.TaskStore to ensure proper separation of concerns.
type TaskRepository interface {
	// Create saves a new task to the store, assigning an ID if absent
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves changes to an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all tasks ordered by creation time, newest first
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByStatus retrieves tasks with the given status, newest first
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// ListByPriority retrieves tasks with the given priority, newest first
	ListByPriority(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error)

	// Count returns the total number of tasks
	Count(ctx context.Context) (int64, error)

	// CountByStatus returns the number of tasks with the given status
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)

	// RunInTransaction executes fn against a repository instance bound to a
	// single database transaction. The transaction is committed when fn
	// returns nil and rolled back otherwise.
	RunInTransaction(
		ctx context.Context,
		fn func(ctx context.Context, repo TaskRepository) error,
	) error
}

// TaskUpdate carries the replacement field values for UpdateTask.
// Every field is written to the task unconditionally; there is no
// per-field skip for zero values.
type TaskUpdate struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask persists a new task, applying the default status and
	// priority when the caller left them unset, and returns the
	// persisted record.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// UpdateTask overwrites the title, description, status, and priority
	// of the task with the given ID and returns the updated record.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// CompleteTask marks the task as completed and stamps its completion
	// time. Returns ErrTaskNotFound if the task does not exist.
	CompleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// CancelTask marks the task as cancelled. The completion timestamp is
	// not touched. Returns ErrTaskNotFound if the task does not exist.
	CancelTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// DeleteTask removes the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// GetTask retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListTasks retrieves all tasks, newest first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// ListTasksByStatus retrieves tasks with the given status, newest first.
	ListTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// ListTasksByPriority retrieves tasks with the given priority, newest first.
	ListTasksByPriority(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error)

	// ListPendingTasks retrieves all pending tasks, newest first.
	ListPendingTasks(ctx context.Context) ([]*domain.Task, error)

	// ListCompletedTasks retrieves all completed tasks, newest first.
	ListCompletedTasks(ctx context.Context) ([]*domain.Task, error)

	// CountTasks returns the total number of tasks.
	CountTasks(ctx context.Context) (int64, error)

	// CountTasksByStatus returns the number of tasks with the given status.
	CountTasksByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the repository dependency is nil.
func NewTaskService(taskRepo TaskRepository, logger *slog.Logger) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	task *domain.Task,
) (*domain.Task, error) {
	// Apply defaults for fields the caller left unset. Explicit values
	// are preserved unchanged.
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"title", task.Title)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created successfully",
		"task_id", task.ID,
		"status", task.Status,
		"priority", task.Priority)
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// It overwrites title, description, status, and priority in one step.
// Setting the status directly to completed or cancelled here deliberately
// does not stamp or clear CompletedAt; only CompleteTask does that.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.taskRepo.RunInTransaction(
		ctx,
		func(ctx context.Context, repo TaskRepository) error {
			task, err := repo.GetByID(ctx, id)
			if err != nil {
				s.logger.Error("failed to retrieve task for update",
					"error", err,
					"task_id", id)

				if errors.Is(err, store.ErrTaskNotFound) {
					return ErrTaskNotFound
				}
				return NewTaskServiceError("update_task", "failed to retrieve task", err)
			}

			task.Title = update.Title
			task.Description = update.Description
			task.Status = update.Status
			task.Priority = update.Priority

			if err := repo.Update(ctx, task); err != nil {
				s.logger.Error("failed to save updated task",
					"error", err,
					"task_id", id)
				return NewTaskServiceError("update_task", "failed to save task", err)
			}

			updated = task
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated successfully",
		"task_id", id,
		"status", updated.Status,
		"priority", updated.Priority)
	return updated, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Task, error) {
	var completed *domain.Task

	err := s.taskRepo.RunInTransaction(
		ctx,
		func(ctx context.Context, repo TaskRepository) error {
			task, err := repo.GetByID(ctx, id)
			if err != nil {
				s.logger.Error("failed to retrieve task for completion",
					"error", err,
					"task_id", id)

				if errors.Is(err, store.ErrTaskNotFound) {
					return ErrTaskNotFound
				}
				return NewTaskServiceError("complete_task", "failed to retrieve task", err)
			}

			task.Complete()

			if err := repo.Update(ctx, task); err != nil {
				s.logger.Error("failed to save completed task",
					"error", err,
					"task_id", id)
				return NewTaskServiceError("complete_task", "failed to save task", err)
			}

			completed = task
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task completed successfully", "task_id", id)
	return completed, nil
}

// CancelTask implements TaskService.CancelTask
func (s *taskServiceImpl) CancelTask(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Task, error) {
	var cancelled *domain.Task

	err := s.taskRepo.RunInTransaction(
		ctx,
		func(ctx context.Context, repo TaskRepository) error {
			task, err := repo.GetByID(ctx, id)
			if err != nil {
				s.logger.Error("failed to retrieve task for cancellation",
					"error", err,
					"task_id", id)

				if errors.Is(err, store.ErrTaskNotFound) {
					return ErrTaskNotFound
				}
				return NewTaskServiceError("cancel_task", "failed to retrieve task", err)
			}

			task.Cancel()

			if err := repo.Update(ctx, task); err != nil {
				s.logger.Error("failed to save cancelled task",
					"error", err,
					"task_id", id)
				return NewTaskServiceError("cancel_task", "failed to save task", err)
			}

			cancelled = task
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task cancelled successfully", "task_id", id)
	return cancelled, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	err := s.taskRepo.RunInTransaction(
		ctx,
		func(ctx context.Context, repo TaskRepository) error {
			// Look up first so a missing task surfaces as a clean not
			// found instead of a zero-row delete.
			if _, err := repo.GetByID(ctx, id); err != nil {
				s.logger.Error("failed to retrieve task for deletion",
					"error", err,
					"task_id", id)

				if errors.Is(err, store.ErrTaskNotFound) {
					return ErrTaskNotFound
				}
				return NewTaskServiceError("delete_task", "failed to retrieve task", err)
			}

			if err := repo.Delete(ctx, id); err != nil {
				s.logger.Error("failed to delete task",
					"error", err,
					"task_id", id)
				return NewTaskServiceError("delete_task", "failed to delete task", err)
			}

			return nil
		},
	)
	if err != nil {
		return err
	}

	s.logger.Info("task deleted successfully", "task_id", id)
	return nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id)

		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	s.logger.Debug("retrieved task successfully",
		"task_id", id,
		"status", task.Status)
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// ListTasksByStatus implements TaskService.ListTasksByStatus
func (s *taskServiceImpl) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("failed to list tasks by status",
			"error", err,
			"status", status)
		return nil, NewTaskServiceError("list_tasks_by_status", "failed to list tasks", err)
	}
	return tasks, nil
}

// ListTasksByPriority implements TaskService.ListTasksByPriority
func (s *taskServiceImpl) ListTasksByPriority(
	ctx context.Context,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListByPriority(ctx, priority)
	if err != nil {
		s.logger.Error("failed to list tasks by priority",
			"error", err,
			"priority", priority)
		return nil, NewTaskServiceError("list_tasks_by_priority", "failed to list tasks", err)
	}
	return tasks, nil
}

// ListPendingTasks implements TaskService.ListPendingTasks
func (s *taskServiceImpl) ListPendingTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.ListTasksByStatus(ctx, domain.TaskStatusPending)
}

// ListCompletedTasks implements TaskService.ListCompletedTasks
func (s *taskServiceImpl) ListCompletedTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.ListTasksByStatus(ctx, domain.TaskStatusCompleted)
}

// CountTasks implements TaskService.CountTasks
func (s *taskServiceImpl) CountTasks(ctx context.Context) (int64, error) {
	count, err := s.taskRepo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count tasks", "error", err)
		return 0, NewTaskServiceError("count_tasks", "failed to count tasks", err)
	}
	return count, nil
}

// CountTasksByStatus implements TaskService.CountTasksByStatus
func (s *taskServiceImpl) CountTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) (int64, error) {
	count, err := s.taskRepo.CountByStatus(ctx, status)
	if err != nil {
		s.logger.Error("failed to count tasks by status",
			"error", err,
			"status", status)
		return 0, NewTaskServiceError("count_tasks_by_status", "failed to count tasks", err)
	}
	return count, nil
}
