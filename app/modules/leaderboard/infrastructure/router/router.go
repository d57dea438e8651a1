package leaderboardrouter

import (
	"context"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/trip-scorer/app/events"
	leaderboardhandlers "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardRouter binds round events to the recompute handler and publishes
// the resulting standings.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	metricsBuilder *metrics.PrometheusMetricsBuilder
	maxRetries     int
}

var _ Router = (*LeaderboardRouter)(nil)

// NewLeaderboardRouter creates a new instance of the router. A nil registry
// disables router metrics.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	prometheusRegistry *prometheus.Registry,
) *LeaderboardRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "trip", "leaderboard")
		metricsBuilder = &builder
	}

	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		metricsBuilder: metricsBuilder,
		maxRetries:     3,
	}
}

// Configure sets up the middlewares and registers the recompute handlers.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers *leaderboardhandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware for Leaderboard")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      r.maxRetries,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		middleware.Recoverer,
	)

	return r.RegisterHandlers(ctx, handlers)
}

// RegisterHandlers subscribes one handler per round topic; each publishes to
// LeaderboardUpdatedV1.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers *leaderboardhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Event Handlers")

	for _, topic := range leaderboardhandlers.RecomputeTopics {
		r.Router.AddHandler(
			"leaderboard."+topic,
			topic,
			r.subscriber,
			events.LeaderboardUpdatedV1,
			r.publisher,
			handlers.HandleRoundChanged(topic),
		)
	}
	return nil
}

// Close stops the router and cleans up resources.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
