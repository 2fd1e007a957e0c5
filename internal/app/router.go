package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jobboard/jobboard/internal/applications"
	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/categories"
	"github.com/jobboard/jobboard/internal/listings"
	"github.com/jobboard/jobboard/internal/observability"
	"github.com/jobboard/jobboard/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Metrics             *observability.Metrics
	AuthService         *auth.Service
	AuthHandler         *auth.Handler
	UsersHandler        *users.Handler
	CategoriesHandler   *categories.Handler
	ListingsHandler     *listings.Handler
	ApplicationsHandler *applications.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:      params.Logger,
		Config:      params.Config,
		AuthService: params.AuthService,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		params.UsersHandler.MountRoutes(r)
		r.Route("/categories", params.CategoriesHandler.MountRoutes)
		r.Route("/jobs", func(r chi.Router) {
			params.ListingsHandler.MountRoutes(r)
			params.ApplicationsHandler.MountJobRoutes(r)
		})
		r.Route("/applications", params.ApplicationsHandler.MountRoutes)
	})

	return r
}
