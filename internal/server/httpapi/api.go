// Package httpapi exposes the REST API consumed by FlowDeck clients:
// registration and login under /auth, the identity endpoint /users/me, and
// bearer-protected diagram CRUD under /diagrams.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pkozlov/flowdeck/internal/logging"
	"github.com/pkozlov/flowdeck/internal/server/config"
	"github.com/pkozlov/flowdeck/internal/server/services"
)

// API holds the services and settings behind the HTTP handlers.
type API struct {
	users          *services.UserService
	diagrams       *services.DiagramService
	logger         logging.Logger
	secret         []byte
	allowedOrigins []string
}

func New(users *services.UserService, diagrams *services.DiagramService, cfg *config.Config, logger logging.Logger) *API {
	return &API{
		users:          users,
		diagrams:       diagrams,
		logger:         logger,
		secret:         []byte(cfg.SecretKey),
		allowedOrigins: cfg.CORSAllowedOrigins,
	}
}

// Router builds the chi router with middleware and all routes attached.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/register", a.handleRegister)
	r.Post("/auth/login", a.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(a.authenticate)

		r.Get("/users/me", a.handleMe)

		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/", a.handleListDiagrams)
			r.Post("/", a.handleCreateDiagram)
			r.Get("/{id}", a.handleGetDiagram)
			r.Put("/{id}", a.handleUpdateDiagram)
			r.Delete("/{id}", a.handleDeleteDiagram)
		})
	})

	return r
}
