package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn          func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateTaskFn          func(ctx context.Context, id uuid.UUID, update service.TaskUpdate) (*domain.Task, error)
	CompleteTaskFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CancelTaskFn          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	DeleteTaskFn          func(ctx context.Context, id uuid.UUID) error
	GetTaskFn             func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasksFn           func(ctx context.Context) ([]*domain.Task, error)
	ListTasksByStatusFn   func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	ListTasksByPriorityFn func(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error)
	ListPendingTasksFn    func(ctx context.Context) ([]*domain.Task, error)
	ListCompletedTasksFn  func(ctx context.Context) ([]*domain.Task, error)
	CountTasksFn          func(ctx context.Context) (int64, error)
	CountTasksByStatusFn  func(ctx context.Context, status domain.TaskStatus) (int64, error)
}

func (m *MockTaskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	update service.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, update)
	}
	return nil, nil
}

func (m *MockTaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) CancelTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.CancelTaskFn != nil {
		return m.CancelTaskFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if m.ListTasksByStatusFn != nil {
		return m.ListTasksByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasksByPriority(
	ctx context.Context,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	if m.ListTasksByPriorityFn != nil {
		return m.ListTasksByPriorityFn(ctx, priority)
	}
	return nil, nil
}

func (m *MockTaskService) ListPendingTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListPendingTasksFn != nil {
		return m.ListPendingTasksFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) ListCompletedTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListCompletedTasksFn != nil {
		return m.ListCompletedTasksFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) CountTasks(ctx context.Context) (int64, error) {
	if m.CountTasksFn != nil {
		return m.CountTasksFn(ctx)
	}
	return 0, nil
}

func (m *MockTaskService) CountTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) (int64, error) {
	if m.CountTasksByStatusFn != nil {
		return m.CountTasksByStatusFn(ctx, status)
	}
	return 0, nil
}

// newTestRouter mounts the handler on a chi router so URL parameters resolve.
func newTestRouter(ms *MockTaskService) http.Handler {
	h := NewTaskHandler(ms, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks", h.ListTasks)
		r.Get("/tasks/pending", h.ListPendingTasks)
		r.Get("/tasks/completed", h.ListCompletedTasks)
		r.Get("/tasks/count", h.CountTasks)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Post("/tasks/{id}/complete", h.CompleteTask)
		r.Post("/tasks/{id}/cancel", h.CancelTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
	})
	return r
}

func fixtureTask(id uuid.UUID) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       "Write changelog",
		Description: "Summarize the release",
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityMedium,
		CreatedAt:   time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	fixedID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("successful_creation", func(t *testing.T) {
		ms := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				created := *task
				created.ID = fixedID
				created.Status = domain.TaskStatusPending
				created.Priority = domain.TaskPriorityHigh
				created.CreatedAt = time.Now().UTC()
				return &created, nil
			},
		}
		router := newTestRouter(ms)

		body, err := json.Marshal(CreateTaskRequest{
			Title:    "Write changelog",
			Priority: "high",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, fixedID.String(), resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "high", resp.Priority)
		assert.Nil(t, resp.CompletedAt)
	})

	t.Run("invalid_json", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte("{not json")))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid_status_value", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		body, err := json.Marshal(CreateTaskRequest{Title: "x", Status: "archived"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service_failure", func(t *testing.T) {
		ms := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				return nil, errors.New("database down")
			},
		}
		router := newTestRouter(ms)

		body, err := json.Marshal(CreateTaskRequest{Title: "x"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		// The raw error text is not leaked to the client
		assert.NotContains(t, rr.Body.String(), "database down")
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	taskID := uuid.New()

	t.Run("found", func(t *testing.T) {
		ms := &MockTaskService{
			GetTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				assert.Equal(t, taskID, id)
				return fixtureTask(id), nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, taskID.String(), resp.ID)
		assert.Equal(t, "Write changelog", resp.Title)
	})

	t.Run("not_found", func(t *testing.T) {
		ms := &MockTaskService{
			GetTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed_id", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	taskID := uuid.New()

	t.Run("successful_update", func(t *testing.T) {
		ms := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id uuid.UUID, update service.TaskUpdate) (*domain.Task, error) {
				assert.Equal(t, taskID, id)
				assert.Equal(t, "Updated Title", update.Title)
				assert.Equal(t, domain.TaskStatusInProgress, update.Status)
				assert.Equal(t, domain.TaskPriorityHigh, update.Priority)

				task := fixtureTask(id)
				task.Title = update.Title
				task.Description = update.Description
				task.Status = update.Status
				task.Priority = update.Priority
				return task, nil
			},
		}
		router := newTestRouter(ms)

		body, err := json.Marshal(UpdateTaskRequest{
			Title:       "Updated Title",
			Description: "Updated Description",
			Status:      "in_progress",
			Priority:    "high",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Updated Title", resp.Title)
		assert.Equal(t, "in_progress", resp.Status)
	})

	t.Run("missing_status_rejected", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		body, err := json.Marshal(map[string]string{"title": "x", "priority": "low"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		ms := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id uuid.UUID, update service.TaskUpdate) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}
		router := newTestRouter(ms)

		body, err := json.Marshal(UpdateTaskRequest{
			Title:    "x",
			Status:   "pending",
			Priority: "low",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTaskHandler_CompleteTask(t *testing.T) {
	taskID := uuid.New()

	t.Run("successful_completion", func(t *testing.T) {
		ms := &MockTaskService{
			CompleteTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				task := fixtureTask(id)
				task.Complete()
				return task, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID.String()+"/complete", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "completed", resp.Status)
		assert.NotNil(t, resp.CompletedAt)
	})

	t.Run("not_found", func(t *testing.T) {
		ms := &MockTaskService{
			CompleteTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID.String()+"/complete", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTaskHandler_CancelTask(t *testing.T) {
	taskID := uuid.New()

	ms := &MockTaskService{
		CancelTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			task := fixtureTask(id)
			task.Cancel()
			return task, nil
		},
	}
	router := newTestRouter(ms)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID.String()+"/cancel", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	assert.Nil(t, resp.CompletedAt)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	taskID := uuid.New()

	t.Run("successful_deletion", func(t *testing.T) {
		deleted := false
		ms := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.True(t, deleted)
	})

	t.Run("not_found", func(t *testing.T) {
		ms := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id uuid.UUID) error {
				return service.ErrTaskNotFound
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("all_tasks", func(t *testing.T) {
		ms := &MockTaskService{
			ListTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
				return []*domain.Task{fixtureTask(uuid.New()), fixtureTask(uuid.New())}, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Tasks, 2)
	})

	t.Run("status_filter", func(t *testing.T) {
		ms := &MockTaskService{
			ListTasksByStatusFn: func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
				assert.Equal(t, domain.TaskStatusInProgress, status)
				return []*domain.Task{fixtureTask(uuid.New())}, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=in_progress", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("priority_filter", func(t *testing.T) {
		ms := &MockTaskService{
			ListTasksByPriorityFn: func(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error) {
				assert.Equal(t, domain.TaskPriorityHigh, priority)
				return []*domain.Task{fixtureTask(uuid.New())}, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks?priority=high", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid_status_filter", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=bogus", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("pending_shortcut", func(t *testing.T) {
		ms := &MockTaskService{
			ListPendingTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
				return []*domain.Task{fixtureTask(uuid.New())}, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/pending", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Tasks, 1)
	})

	t.Run("completed_shortcut", func(t *testing.T) {
		ms := &MockTaskService{
			ListCompletedTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
				task := fixtureTask(uuid.New())
				task.Complete()
				return []*domain.Task{task}, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/completed", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Tasks, 1)
		assert.Equal(t, "completed", resp.Tasks[0].Status)
	})

	t.Run("empty_list_serializes_as_array", func(t *testing.T) {
		ms := &MockTaskService{
			ListTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
				return []*domain.Task{}, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"tasks":[]`)
	})
}

func TestTaskHandler_CountTasks(t *testing.T) {
	t.Run("total_count", func(t *testing.T) {
		ms := &MockTaskService{
			CountTasksFn: func(ctx context.Context) (int64, error) {
				return 5, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/count", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp CountResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(5), resp.Count)
	})

	t.Run("status_count", func(t *testing.T) {
		ms := &MockTaskService{
			CountTasksByStatusFn: func(ctx context.Context, status domain.TaskStatus) (int64, error) {
				assert.Equal(t, domain.TaskStatusPending, status)
				return 3, nil
			},
		}
		router := newTestRouter(ms)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/count?status=pending", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp CountResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.Count)
	})

	t.Run("invalid_status", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/count?status=bogus", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
