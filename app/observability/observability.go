// Package observability bundles the logger, metrics and tracer handed to
// every module.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observability is the shared telemetry handle.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *Metrics
	Tracer   trace.Tracer
}

// New builds telemetry from config. Logs are JSON outside development.
func New(cfg config.ObservabilityConfig) Observability {
	logger := NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel).With(
		slog.String(FieldService, cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  NewMetrics(registry),
		Tracer:   otel.Tracer(cfg.ServiceName),
	}
}

// NewNop returns telemetry that discards logs and spans. Metrics go to a
// private registry.
func NewNop() Observability {
	registry := prometheus.NewRegistry()
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: registry,
		Metrics:  NewMetrics(registry),
		Tracer:   noop.NewTracerProvider().Tracer(""),
	}
}

// NewLogger builds a slog logger writing to w.
func NewLogger(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if environment == "development" || environment == "test" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
