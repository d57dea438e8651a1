package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/trip-scorer/app/eventbus"
	"github.com/Black-And-White-Club/trip-scorer/app/events"
	leaderboardservice "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/Black-And-White-Club/trip-scorer/internal/testutils"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP:  config.HTTPConfig{RateLimit: 1000, RateBurst: 1000, ShutdownTimeout: time.Second},
		Cache: config.CacheConfig{TTL: time.Minute, CleanupInterval: time.Minute},
	}
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func created(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func TestApp_RoundToLeaderboard(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.New(config.NATSConfig{}, logger)
	require.NoError(t, err)

	a, err := New(ctx, testConfig(), observability.NewNop(), testutils.NewTestDB(t), bus)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = a.WatermillRouter.Close()
		_ = bus.Close()
	})

	updates, err := bus.Subscribe(ctx, events.LeaderboardUpdatedV1)
	require.NoError(t, err)
	go func() { _ = a.WatermillRouter.Run(ctx) }()
	select {
	case <-a.WatermillRouter.Running():
	case <-ctx.Done():
		t.Fatal("watermill router did not start")
	}

	h := a.HTTPRouter
	ann := created(t, call(t, h, http.MethodPost, "/api/players", `{"name":"Ann"}`))
	bob := created(t, call(t, h, http.MethodPost, "/api/players", `{"name":"Bob"}`))
	course := created(t, call(t, h, http.MethodPost, "/api/courses",
		`{"name":"Dunes","num_holes":2,"holes":[{"hole_number":1,"par":4},{"hole_number":2,"par":3}]}`))
	round := created(t, call(t, h, http.MethodPost, "/api/rounds", `{"course_id":"`+course+`","round_date":"2026-10-02"}`))

	rec := call(t, h, http.MethodPut, "/api/rounds/"+round+"/scores", `{"scores":[
		{"player_id":"`+ann+`","hole_number":1,"strokes":3},
		{"player_id":"`+ann+`","hole_number":2,"strokes":3},
		{"player_id":"`+bob+`","hole_number":1,"strokes":5},
		{"player_id":"`+bob+`","hole_number":2,"strokes":4}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var standings leaderboardservice.Standings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Empty(t, standings.Entries, "incomplete rounds do not count")

	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/api/rounds/"+round+"/complete", "").Code)

	var update events.LeaderboardUpdatedPayloadV1
	for update.TriggerTopic != events.RoundCompletedV1 {
		select {
		case msg := <-updates:
			require.NoError(t, json.Unmarshal(msg.Payload, &update))
			msg.Ack()
		case <-ctx.Done():
			t.Fatal("timed out waiting for leaderboard update")
		}
	}
	require.Equal(t, round, update.RoundID)
	require.Len(t, update.Entries, 2)
	require.Equal(t, "Ann", update.Entries[0].PlayerName)

	rec = call(t, h, http.MethodGet, "/api/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Equal(t, 1, standings.RoundsCounted)
	require.Len(t, standings.Entries, 2)
	require.Equal(t, 1, standings.Entries[0].Rank)
	require.Equal(t, "Ann", standings.Entries[0].PlayerName)
	require.Greater(t, standings.Entries[0].TotalPoints, standings.Entries[1].TotalPoints)

	rec = call(t, h, http.MethodGet, "/api/rounds/"+round+"/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sheet leaderboardservice.RoundSheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	require.Equal(t, "Dunes", sheet.CourseName)
	require.Equal(t, 7, sheet.TotalPar)
	require.Equal(t, 6, sheet.Results[0].TotalStrokes)

	rec = call(t, h, http.MethodGet, "/api/leaderboard/chart.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/rounds/"+round, "").Code)
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/rounds/"+round+"/stats", "").Code)
}

func TestApp_FairwayAndGIRBonusesFromScoreBatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.New(config.NATSConfig{}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	a, err := New(context.Background(), testConfig(), observability.NewNop(), testutils.NewTestDB(t), bus)
	require.NoError(t, err)

	h := a.HTTPRouter
	ann := created(t, call(t, h, http.MethodPost, "/api/players", `{"name":"Ann"}`))
	bob := created(t, call(t, h, http.MethodPost, "/api/players", `{"name":"Bob"}`))
	course := created(t, call(t, h, http.MethodPost, "/api/courses",
		`{"name":"Links","num_holes":1,"holes":[{"hole_number":1,"par":4}]}`))
	round := created(t, call(t, h, http.MethodPost, "/api/rounds", `{"course_id":"`+course+`","round_date":"2026-10-03"}`))

	rec := call(t, h, http.MethodPut, "/api/rounds/"+round+"/scores", `{"scores":[
		{"player_id":"`+ann+`","hole_number":1,"strokes":5},
		{"player_id":"`+bob+`","hole_number":1,"strokes":5,"fairway_hit":true,"gir":true}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/rounds/"+round+"/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sheet leaderboardservice.RoundSheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	require.Len(t, sheet.Results, 2)

	points := map[string]float64{}
	for _, r := range sheet.Results {
		points[r.PlayerName] = r.Points.Total
		if r.PlayerName == "Bob" {
			require.Equal(t, 1.0, r.Points.MostFairways)
			require.Equal(t, 1.0, r.Points.MostGIRs)
		}
	}
	require.Equal(t, map[string]float64{"Ann": 9, "Bob": 11}, points)
}

func TestApp_OperationalEndpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.New(config.NATSConfig{}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	a, err := New(context.Background(), testConfig(), observability.NewNop(), testutils.NewTestDB(t), bus)
	require.NoError(t, err)

	rec := call(t, a.HTTPRouter, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	require.Equal(t, http.StatusOK, call(t, a.HTTPRouter, http.MethodGet, "/api/players", "").Code)

	rec = call(t, a.HTTPRouter, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "trip_operation_total")
}
