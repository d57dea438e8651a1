package leaderboardhandlers

import (
	"log/slog"
	"net/http"
	"strings"

	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves the standings and round results.
type HTTPHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

func NewHTTPHandlers(service leaderboardservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// LeaderboardRoutes mounts under /api/leaderboard.
func (h *HTTPHandlers) LeaderboardRoutes(r chi.Router) {
	r.Get("/", h.HandleGetLeaderboard)
	r.Get("/chart.png", h.HandleGetChart)
}

// RoundResultsRoutes mounts under /api/rounds/{roundID}/results.
func (h *HTTPHandlers) RoundResultsRoutes(r chi.Router) {
	r.Get("/", h.HandleGetRoundResults)
}

// HandleGetLeaderboard answers 304 when If-None-Match carries the current
// standings version.
func (h *HTTPHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetLeaderboard(r.Context())
	if err == nil && res.IsSuccess() {
		etag := `W/"` + (*res.Success).Version + `"`
		w.Header().Set("ETag", etag)
		if matchesETag(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetLeaderboardChart(r.Context())
	if err != nil || !res.IsSuccess() {
		httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(*res.Success); err != nil && h.logger != nil {
		h.logger.ErrorContext(r.Context(), "failed to write chart", "error", err)
	}
}

func (h *HTTPHandlers) HandleGetRoundResults(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetRoundResults(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag || "W/"+candidate == etag {
			return true
		}
	}
	return false
}
