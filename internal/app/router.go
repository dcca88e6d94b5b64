package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/keys"
	"github.com/cargohub/cargohub/internal/observability"
	"github.com/cargohub/cargohub/internal/warehouses"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthService       *auth.Service
	TokenHandler      *auth.Handler
	KeysHandler       *keys.Handler
	WarehousesHandler *warehouses.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything under /api/v1 except the
// token handshake passes the access gate; /healthz and /metrics do not.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	gate := auth.Middleware{
		Service: params.AuthService,
		Logger:  params.Logger,
		Metrics: params.Metrics,
	}

	r.Route("/api/v1", func(r chi.Router) {
		if params.TokenHandler != nil {
			r.Post("/token", params.TokenHandler.IssueToken)
		}
		r.Group(func(r chi.Router) {
			r.Use(gate.Gate)
			if params.KeysHandler != nil {
				r.Route("/keys", params.KeysHandler.MountRoutes)
			}
			if params.WarehousesHandler != nil {
				r.Route("/warehouses", params.WarehousesHandler.MountRoutes)
			}
		})
	})

	return r
}
