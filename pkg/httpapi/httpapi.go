// Package httpapi holds the JSON helpers shared by the module HTTP handlers.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes payload with status.
func WriteJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes an ErrorBody carrying the chi request id.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorBody{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	}, logger)
}

// StatusFor maps a domain failure to an HTTP status.
func StatusFor(failure error) int {
	switch {
	case errors.Is(failure, results.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(failure, results.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// WriteResult writes an operation outcome: errors become 500, failures their
// mapped status, and successes status with the payload.
func WriteResult[S any](w http.ResponseWriter, r *http.Request, status int, result results.OperationResult[S, error], err error, logger *slog.Logger) {
	switch {
	case err != nil:
		if logger != nil {
			logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		}
		WriteError(w, r, http.StatusInternalServerError, "internal error", logger)
	case result.IsFailure():
		failure := *result.Failure
		WriteError(w, r, StatusFor(failure), failure.Error(), logger)
	case result.IsSuccess():
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		WriteJSON(w, status, *result.Success, logger)
	default:
		WriteError(w, r, http.StatusInternalServerError, "empty result", logger)
	}
}

// Decode reads a JSON body into dst and validates its struct tags. The
// returned error wraps results.ErrInvalid and is safe to show to clients.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", results.ErrInvalid, err)
	}
	return Validate(dst)
}

// Validate checks v's struct tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%w: %s", results.ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", results.ErrInvalid, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Guards are the middlewares modules mount on their routes. A nil field
// passes requests through.
type Guards struct {
	RateLimit   func(http.Handler) http.Handler
	RequireAuth func(http.Handler) http.Handler
}

// Limit returns the rate limiting middleware.
func (g Guards) Limit() func(http.Handler) http.Handler {
	if g.RateLimit == nil {
		return passthrough
	}
	return g.RateLimit
}

// Auth returns the middleware guarding mutating routes.
func (g Guards) Auth() func(http.Handler) http.Handler {
	if g.RequireAuth == nil {
		return passthrough
	}
	return g.RequireAuth
}

func passthrough(next http.Handler) http.Handler { return next }
