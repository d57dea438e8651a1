package playerhandlers

import (
	"log/slog"
	"net/http"

	playerservice "github.com/Black-And-White-Club/trip-scorer/app/modules/player/application"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves the roster endpoints.
type HTTPHandlers struct {
	service playerservice.Service
	logger  *slog.Logger
}

// NewHTTPHandlers creates player HTTP handlers.
func NewHTTPHandlers(service playerservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes mounts the handlers on r. Mutating routes go through requireAuth.
func (h *HTTPHandlers) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.HandleList)
	r.Get("/{playerID}", h.HandleGet)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.HandleCreate)
		r.Put("/{playerID}", h.HandleUpdate)
		r.Delete("/{playerID}", h.HandleDelete)
	})
}

func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListPlayers(r.Context())
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req playerservice.CreatePlayerRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.service.CreatePlayer(r.Context(), req)
	httpapi.WriteResult(w, r, http.StatusCreated, res, err, h.logger)
}

func (h *HTTPHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req playerservice.UpdatePlayerRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.service.UpdatePlayer(r.Context(), chi.URLParam(r, "playerID"), req)
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DeletePlayer(r.Context(), chi.URLParam(r, "playerID"))
	httpapi.WriteResult(w, r, http.StatusNoContent, res, err, h.logger)
}
