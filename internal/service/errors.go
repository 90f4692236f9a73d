package service

import (
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Common sentinel errors for TaskService.
// These errors represent expected conditions that callers check for with errors.Is().
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "complete_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Check for service-defined sentinel errors
	if errors.Is(err, ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	// Check for store-level sentinel errors that should be mapped to service-level ones
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	// If not a sentinel to be returned directly, wrap it
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
