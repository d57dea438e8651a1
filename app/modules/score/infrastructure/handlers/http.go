package scorehandlers

import (
	"log/slog"
	"net/http"

	scoreservice "github.com/Black-And-White-Club/trip-scorer/app/modules/score/application"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves score and achievement endpoints.
type HTTPHandlers struct {
	service scoreservice.Service
	logger  *slog.Logger
}

// NewHTTPHandlers creates score HTTP handlers.
func NewHTTPHandlers(service scoreservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// ScoreRoutes mounts under /api/rounds/{roundID}/scores.
func (h *HTTPHandlers) ScoreRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.HandleListScores)
	r.With(requireAuth).Put("/", h.HandleRecordScores)
}

// AchievementRoutes mounts under /api/rounds/{roundID}/achievements.
func (h *HTTPHandlers) AchievementRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.HandleListAchievements)
	r.With(requireAuth).Put("/", h.HandleRecordAchievement)
}

// AchievementItemRoutes mounts under /api/achievements.
func (h *HTTPHandlers) AchievementItemRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.With(requireAuth).Delete("/{achievementID}", h.HandleDeleteAchievement)
}

// StatsRoutes mounts under /api/rounds/{roundID}/stats.
func (h *HTTPHandlers) StatsRoutes(r chi.Router) {
	r.Get("/", h.HandleRoundStats)
}

func (h *HTTPHandlers) HandleListScores(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListScores(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleRecordScores(w http.ResponseWriter, r *http.Request) {
	var req scoreservice.RecordScoresRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.service.RecordScores(r.Context(), chi.URLParam(r, "roundID"), req)
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleListAchievements(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListAchievements(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleRecordAchievement(w http.ResponseWriter, r *http.Request) {
	var req scoreservice.RecordAchievementRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.service.RecordAchievement(r.Context(), chi.URLParam(r, "roundID"), req)
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleDeleteAchievement(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DeleteAchievement(r.Context(), chi.URLParam(r, "achievementID"))
	httpapi.WriteResult(w, r, http.StatusNoContent, res, err, h.logger)
}

func (h *HTTPHandlers) HandleRoundStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetRoundStats(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}
