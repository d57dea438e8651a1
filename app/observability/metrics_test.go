package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordOperationAttempt("round", "CreateRound")
	m.RecordOperationAttempt("round", "CreateRound")
	m.RecordOperationSuccess("round", "CreateRound")
	m.RecordOperationFailure("round", "CreateRound")
	m.RecordOperationDuration("round", "CreateRound", 20*time.Millisecond)
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordCacheMiss()

	require.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("round", "CreateRound", "attempt")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("round", "CreateRound", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("round", "CreateRound", "failure")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	require.Equal(t, 1, testutil.CollectAndCount(m.durations))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordOperationAttempt("x", "y")
	m.RecordOperationSuccess("x", "y")
	m.RecordOperationFailure("x", "y")
	m.RecordOperationDuration("x", "y", time.Second)
	m.RecordCacheHit()
	m.RecordCacheMiss()
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "production", "warn").Info("hidden")
	NewLogger(&buf, "production", "warn").Warn("shown", slog.String("k", "v"))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.True(t, strings.HasPrefix(out, "{"), "production logs should be JSON: %s", out)
	require.Contains(t, out, `"k":"v"`)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}
