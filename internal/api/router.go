package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskforge/taskforge/internal/api/handler"
	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/mailer"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Users    *user.Service
	Auth     *auth.Service
	Teams    *team.Service
	Tasks    *task.Service
	Mail     *mailer.Queue
	DBPinger handler.DBPinger
	Version  string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authRequired := middleware.Auth(deps.Auth)

	userHandler := handler.NewUserHandler(deps.Users, deps.Auth, deps.Mail)
	r.Route("/users", func(r chi.Router) {
		r.Post("/register/", userHandler.Register)
		r.Post("/login/", userHandler.Login)
		r.With(authRequired).Post("/logout/", userHandler.Logout)
	})

	teamHandler := handler.NewTeamHandler(deps.Teams)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	r.Route("/teams", func(r chi.Router) {
		r.Use(authRequired)

		r.Post("/create/", teamHandler.Create)
		r.Get("/my-teams/", teamHandler.ListMine)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/create/", taskHandler.Create)
			r.Get("/my-tasks/", taskHandler.MyTasks)
			r.Patch("/{id}/update-status/", taskHandler.UpdateStatus)
			r.Patch("/{id}/assign/", taskHandler.Assign)
			r.Get("/{id}/details/", taskHandler.TeamDetails)
		})

		r.Get("/{id}/", teamHandler.Get)
		r.Delete("/{id}/", teamHandler.Delete)
		r.Post("/{id}/add-member/", teamHandler.AddMember)
		r.Post("/{id}/remove-member/", teamHandler.RemoveMember)
	})

	return r
}
