package coursehandlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	courseservice "github.com/Black-And-White-Club/trip-scorer/app/modules/course/application"
	coursehandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// Exercises the handlers against the real service and an in-memory store.
func TestCourseHTTP_RoundTrip(t *testing.T) {
	db := testutils.NewTestDB(t)
	svc := courseservice.NewCourseService(coursedb.NewRepository(db), nil, observability.NewNop(), db)

	router := chi.NewRouter()
	router.Route("/api/courses", func(r chi.Router) {
		coursehandlers.NewHTTPHandlers(svc, nil).Routes(r, func(next http.Handler) http.Handler { return next })
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec
	}

	rec := do(http.MethodPost, "/api/courses", `{"name":"Cabot Links","num_holes":3,"holes":[{"hole_number":1,"par":4},{"hole_number":2,"par":3},{"hole_number":3,"par":5}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created coursedb.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = do(http.MethodPost, "/api/courses", `{"name":"cabot links","num_holes":9}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(http.MethodPost, "/api/courses", `{"name":"Bad","num_holes":3,"holes":[{"hole_number":1,"par":7}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodGet, "/api/courses/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got coursedb.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Holes, 3)
	require.True(t, got.Holes[1].IsPar3)

	rec = do(http.MethodGet, "/api/courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Cabot Links")

	require.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/courses/"+created.ID, "").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/courses/"+created.ID, "").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/api/courses/"+created.ID, "").Code)
}
