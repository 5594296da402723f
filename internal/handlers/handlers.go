package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	backinghandlers "github.com/pot/sparkhub/internal/handlers/backings"
	projecthandlers "github.com/pot/sparkhub/internal/handlers/projects"
	"github.com/pot/sparkhub/internal/service"
	"github.com/pot/sparkhub/pkg/auth"
)

type ProjectHandler interface {
	CreateProject(w http.ResponseWriter, r *http.Request)
	UpdateProject(w http.ResponseWriter, r *http.Request)
	AuditProject(w http.ResponseWriter, r *http.Request)
	GetPublicProjects(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	GetMyProjects(w http.ResponseWriter, r *http.Request)
}

type BackingHandler interface {
	CreateBacking(w http.ResponseWriter, r *http.Request)
	PayBacking(w http.ResponseWriter, r *http.Request)
	GetMyBackings(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	ProjectHandler ProjectHandler
	BackingHandler BackingHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		ProjectHandler: projecthandlers.New(s.ProjectService),
		BackingHandler: backinghandlers.New(s.BackingService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", h.ProjectHandler.GetPublicProjects)

		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuthMiddleware)
			r.Get("/{id}", h.ProjectHandler.GetProject)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Post("/", h.ProjectHandler.CreateProject)
			r.Put("/{id}", h.ProjectHandler.UpdateProject)
			r.Post("/{id}/audit", h.ProjectHandler.AuditProject)
			r.Get("/my", h.ProjectHandler.GetMyProjects)
		})
	})
	r.Route("/api/backings", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Post("/", h.BackingHandler.CreateBacking)
		r.Post("/{id}/pay", h.BackingHandler.PayBacking)
		r.Get("/my", h.BackingHandler.GetMyBackings)
	})

	return r
}
