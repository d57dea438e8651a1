package app

import (
	"net/http"

	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
)

// newHTTPRouter returns the root router with the endpoints that belong to no
// module.
func newHTTPRouter(obs observability.Observability, db *bun.DB) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpapi.WriteError(w, r, http.StatusServiceUnavailable, "database unavailable", obs.Logger)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, obs.Logger)
	})

	return r
}
