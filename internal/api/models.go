package api

import (
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
// Status and priority are optional; the service applies the defaults
// (pending, medium) when they are omitted.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// Every field replaces the stored value; there is no per-field skip.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"required,oneof=pending in_progress completed cancelled"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskListResponse wraps a list of tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// CountResponse represents the response data for count endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt,
		CompletedAt: task.CompletedAt,
	}
}

// tasksToResponse converts a slice of domain tasks to a TaskListResponse.
func tasksToResponse(tasks []*domain.Task) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return TaskListResponse{Tasks: out}
}
