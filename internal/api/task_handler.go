package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, a default logger will be used.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Unset status/priority are left empty for the service to default.
	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	}

	created, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(created))
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CompleteTask handles POST /api/tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CancelTask handles POST /api/tasks/{id}/cancel requests
func (h *TaskHandler) CancelTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CancelTask(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTasks handles GET /api/tasks requests.
// Optional status and priority query parameters narrow the listing;
// results are always ordered newest first.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var (
		tasks []*domain.Task
		err   error
	)

	switch {
	case r.URL.Query().Get("status") != "":
		status, parseErr := domain.ParseTaskStatus(r.URL.Query().Get("status"))
		if parseErr != nil {
			log.Warn("invalid status filter", slog.String("status", r.URL.Query().Get("status")))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task status")
			return
		}
		tasks, err = h.taskService.ListTasksByStatus(r.Context(), status)

	case r.URL.Query().Get("priority") != "":
		priority, parseErr := domain.ParseTaskPriority(r.URL.Query().Get("priority"))
		if parseErr != nil {
			log.Warn("invalid priority filter", slog.String("priority", r.URL.Query().Get("priority")))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task priority")
			return
		}
		tasks, err = h.taskService.ListTasksByPriority(r.Context(), priority)

	default:
		tasks, err = h.taskService.ListTasks(r.Context())
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListPendingTasks handles GET /api/tasks/pending requests
func (h *TaskHandler) ListPendingTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListPendingTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListCompletedTasks handles GET /api/tasks/completed requests
func (h *TaskHandler) ListCompletedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListCompletedTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CountTasks handles GET /api/tasks/count requests.
// An optional status query parameter narrows the count.
func (h *TaskHandler) CountTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var (
		count int64
		err   error
	)

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, parseErr := domain.ParseTaskStatus(raw)
		if parseErr != nil {
			log.Warn("invalid status filter", slog.String("status", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task status")
			return
		}
		count, err = h.taskService.CountTasksByStatus(r.Context(), status)
	} else {
		count, err = h.taskService.CountTasks(r.Context())
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}

// taskIDFromRequest extracts and parses the task ID from the URL path.
// It writes a 400 response and returns false when the ID is missing or
// not a valid UUID.
func (h *TaskHandler) taskIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathTaskID := chi.URLParam(r, "id")
	if pathTaskID == "" {
		log.Warn("task ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return uuid.Nil, false
	}

	taskID, err := uuid.Parse(pathTaskID)
	if err != nil {
		log.Warn("invalid task ID format", slog.String("task_id", pathTaskID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return uuid.Nil, false
	}

	return taskID, true
}
