package roundhandlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/trip-scorer/app/events"
	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	playerdb "github.com/Black-And-White-Club/trip-scorer/app/modules/player/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/trip-scorer/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredb "github.com/Black-And-White-Club/trip-scorer/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func allow(next http.Handler) http.Handler { return next }

func deny(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

type env struct {
	router http.Handler
	pub    *testutils.RecordingPublisher
	scores scoredb.Repository
	course *coursedb.Course
}

func setup(t *testing.T, requireAuth func(http.Handler) http.Handler) *env {
	t.Helper()
	ctx := context.Background()
	db := testutils.NewTestDB(t)

	players := playerdb.NewRepository(db)
	courses := coursedb.NewRepository(db)
	scores := scoredb.NewRepository(db)

	require.NoError(t, players.CreatePlayer(ctx, nil, &playerdb.Player{Name: "Ann"}))
	require.NoError(t, players.CreatePlayer(ctx, nil, &playerdb.Player{Name: "Bob"}))

	course := &coursedb.Course{Name: "Dunes", NumHoles: 2, Holes: []*coursedb.Hole{
		{HoleNumber: 1, Par: 4},
		{HoleNumber: 2, Par: 3},
	}}
	require.NoError(t, courses.CreateCourse(ctx, nil, course))

	pub := testutils.NewRecordingPublisher()
	svc := roundservice.NewRoundService(rounddb.NewRepository(db), courses, players, scores, pub, observability.NewNop(), db)
	h := roundhandlers.NewHTTPHandlers(svc, nil)

	r := chi.NewRouter()
	r.Route("/api/rounds", func(r chi.Router) { h.Routes(r, requireAuth) })

	return &env{router: r, pub: pub, scores: scores, course: course}
}

func (e *env) do(method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func (e *env) upload(t *testing.T, path, field, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRoundHTTP_Lifecycle(t *testing.T) {
	e := setup(t, allow)

	rec := e.do(http.MethodPost, "/api/rounds", `{"course_id":"`+e.course.ID+`","round_date":"2026-10-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var round rounddb.Round
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &round))
	require.Equal(t, 1, round.RoundNumber)
	require.Equal(t, "Dunes", round.Course.Name)

	rec = e.do(http.MethodPost, "/api/rounds", `{"course_id":"`+e.course.ID+`","round_number":1}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(http.MethodPost, "/api/rounds", `{"course_id":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	base := "/api/rounds/" + round.ID

	rec = e.upload(t, base+"/import", "file", "day1.csv", "Name,1,2,Total\nPar,4,3,7\nann,4,2,6\nBob,5,3,8\nZed,3,3,6\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary roundservice.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, 4, summary.Imported)
	require.Equal(t, []string{"Zed"}, summary.UnknownPlayers)
	require.Equal(t, 1, e.pub.Count(events.ScoreRecordedV1))

	stored, err := e.scores.ListScoresByRound(context.Background(), nil, round.ID)
	require.NoError(t, err)
	require.Len(t, stored, 4)

	rec = e.upload(t, base+"/import", "file", "day1.txt", "hello")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.upload(t, base+"/import", "card", "day1.csv", "Name,1\nAnn,4\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodGet, "/api/rounds", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rounds []rounddb.Round
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rounds))
	require.Len(t, rounds, 1)

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, base+"/complete", "").Code)
	require.Equal(t, http.StatusConflict, e.do(http.MethodPost, base+"/complete", "").Code)
	require.Equal(t, 1, e.pub.Count(events.RoundCompletedV1))

	rec = e.upload(t, base+"/import", "file", "late.csv", "Name,1\nAnn,3\n")
	require.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, base, "").Code)
	require.Equal(t, http.StatusNotFound, e.do(http.MethodGet, base, "").Code)
	require.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, base, "").Code)
	require.Equal(t, 1, e.pub.Count(events.RoundDeletedV1))
}

func TestRoundHTTP_MutationsRequireAuth(t *testing.T) {
	e := setup(t, deny)

	require.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/api/rounds", `{}`).Code)
	require.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/api/rounds/r1/complete", "").Code)
	require.Equal(t, http.StatusUnauthorized, e.do(http.MethodDelete, "/api/rounds/r1", "").Code)
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/rounds", "").Code)
	require.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/rounds/r1", "").Code)
}
