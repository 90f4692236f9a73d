package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks", app.taskHandler.CreateTask)
		r.Get("/tasks", app.taskHandler.ListTasks)
		r.Get("/tasks/pending", app.taskHandler.ListPendingTasks)
		r.Get("/tasks/completed", app.taskHandler.ListCompletedTasks)
		r.Get("/tasks/count", app.taskHandler.CountTasks)
		r.Get("/tasks/{id}", app.taskHandler.GetTask)
		r.Put("/tasks/{id}", app.taskHandler.UpdateTask)
		r.Post("/tasks/{id}/complete", app.taskHandler.CompleteTask)
		r.Post("/tasks/{id}/cancel", app.taskHandler.CancelTask)
		r.Delete("/tasks/{id}", app.taskHandler.DeleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
