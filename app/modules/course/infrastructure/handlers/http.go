package coursehandlers

import (
	"log/slog"
	"net/http"

	courseservice "github.com/Black-And-White-Club/trip-scorer/app/modules/course/application"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves the course endpoints.
type HTTPHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
}

func NewHTTPHandlers(service courseservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes mounts the handlers on r. Mutating routes go through requireAuth.
func (h *HTTPHandlers) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.HandleList)
	r.Get("/{courseID}", h.HandleGet)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.HandleCreate)
		r.Delete("/{courseID}", h.HandleDelete)
	})
}

func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListCourses(r.Context())
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
	httpapi.WriteResult(w, r, http.StatusOK, res, err, h.logger)
}

func (h *HTTPHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req courseservice.CreateCourseRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.service.CreateCourse(r.Context(), req)
	httpapi.WriteResult(w, r, http.StatusCreated, res, err, h.logger)
}

func (h *HTTPHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DeleteCourse(r.Context(), chi.URLParam(r, "courseID"))
	httpapi.WriteResult(w, r, http.StatusNoContent, res, err, h.logger)
}
