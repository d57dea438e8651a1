package roundhandlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	roundservice "github.com/Black-And-White-Club/trip-scorer/app/modules/round/application"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
)

// MaxScorecardBytes caps scorecard uploads.
const MaxScorecardBytes = 5 << 20

// HTTPHandlers serves round endpoints.
type HTTPHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
}

// NewHTTPHandlers creates round HTTP handlers.
func NewHTTPHandlers(service roundservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes mounts under /api/rounds. Reads are public, writes need a token.
func (h *HTTPHandlers) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.HandleListRounds)
	r.Get("/{roundID}", h.HandleGetRound)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.HandleCreateRound)
		r.Post("/{roundID}/complete", h.HandleCompleteRound)
		r.Post("/{roundID}/import", h.HandleImportScorecard)
		r.Delete("/{roundID}", h.HandleDeleteRound)
	})
}

func (h *HTTPHandlers) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListRounds(r.Context())
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetRound(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleCreateRound(w http.ResponseWriter, r *http.Request) {
	var req roundservice.CreateRoundRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.service.CreateRound(r.Context(), req)
	httpapi.WriteResult(w, r, http.StatusCreated, res, err, h.logger)
}

func (h *HTTPHandlers) HandleCompleteRound(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.CompleteRound(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleDeleteRound(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DeleteRound(r.Context(), chi.URLParam(r, "roundID"))
	httpapi.WriteResult(w, r, http.StatusNoContent, res, err, h.logger)
}

// HandleImportScorecard reads a CSV or XLSX card from the multipart "file" field.
func (h *HTTPHandlers) HandleImportScorecard(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxScorecardBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxScorecardBytes); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err), h.logger)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, "missing file field", h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxScorecardBytes+1))
	if err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err), h.logger)
		return
	}
	if len(data) > MaxScorecardBytes {
		httpapi.WriteError(w, r, http.StatusRequestEntityTooLarge, "scorecard too large", h.logger)
		return
	}

	res, err := h.service.ImportScorecard(r.Context(), chi.URLParam(r, "roundID"), roundservice.ImportScorecardRequest{
		FileName: header.Filename,
		Data:     data,
	})
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}
