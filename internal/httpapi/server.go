// Package httpapi exposes the scheduling services as a JSON API.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/prodsched/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	svc    *service.Services
	logger *slog.Logger
}

type Options func(*Server)

func WithLogger(logger *slog.Logger) Options {
	return func(s *Server) {
		s.logger = logger
	}
}

func New(svc *service.Services, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		svc:    svc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http")

	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/production-tasks", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Get("/conflicts", s.scanConflicts)
		r.Get("/order/{orderId}", s.listTasksByOrder)
		r.Post("/reschedule", s.rescheduleTask)
		r.Post("/assign-resource", s.assignResource)
		r.Delete("/unassign-resource/{taskId}/{resourceId}", s.unassignResource)
		r.Delete("/assignments/{id}", s.removeAssignment)
		r.Get("/{id}", s.getTask)
		r.Put("/{id}", s.updateTask)
		r.Delete("/{id}", s.deleteTask)
		r.Put("/{id}/status", s.updateTaskStatus)
		r.Get("/{id}/conflicts", s.taskConflicts)
	})

	r.Route("/api/resources", func(r chi.Router) {
		r.Get("/", s.listResources)
		r.Post("/", s.createResource)
		r.Get("/available", s.availableResources)
		r.Get("/availability", s.resourceAvailability)
		r.Get("/type/{type}", s.listResourcesByType)
		r.Get("/department/{department}", s.listResourcesByDepartment)
		r.Get("/{id}", s.getResource)
		r.Put("/{id}", s.updateResource)
		r.Delete("/{id}", s.deleteResource)
		r.Get("/{id}/load", s.resourceLoad)
	})

	r.Post("/api/import", s.importPlan)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.InfoContext(r.Context(), "access",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
