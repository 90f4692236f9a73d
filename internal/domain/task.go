package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority represents the urgency level of a task
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// Task represents a single unit of work tracked by the system.
// Status and priority are never empty once the task has been created;
// CompletedAt is set only by the explicit complete operation.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// NewTask creates a new Task with the given title and description.
// It generates a new UUID for the task ID, applies the default status
// and priority, and sets the creation timestamp.
func NewTask(title, description string) *Task {
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		Priority:    TaskPriorityMedium,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	return nil
}

// Complete marks the task as completed and stamps the completion time.
func (t *Task) Complete() {
	now := time.Now().UTC()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
}

// Cancel marks the task as cancelled. The completion timestamp is left
// untouched: cancellation is not completion.
func (t *Task) Cancel() {
	t.Status = TaskStatusCancelled
}

// ParseTaskStatus converts a string into a TaskStatus.
// Returns ErrInvalidTaskStatus if the string is not a known status.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !IsValidTaskStatus(status) {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

// ParseTaskPriority converts a string into a TaskPriority.
// Returns ErrInvalidTaskPriority if the string is not a known priority.
func ParseTaskPriority(s string) (TaskPriority, error) {
	priority := TaskPriority(s)
	if !IsValidTaskPriority(priority) {
		return "", ErrInvalidTaskPriority
	}
	return priority, nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValidTaskPriority checks if the given priority is a valid TaskPriority.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}
