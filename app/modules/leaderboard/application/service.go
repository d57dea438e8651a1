package leaderboardservice

import (
	"context"
	"errors"
	"strings"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/trip-scorer/app/modules/leaderboard/domain"
	rounddb "github.com/Black-And-White-Club/trip-scorer/app/modules/round/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DefaultRoundConcurrency bounds how many rounds are loaded at once.
const DefaultRoundConcurrency = 4

// LeaderboardService implements Service.
type LeaderboardService struct {
	rounds      RoundSource
	loader      RoundLoader
	roster      Roster
	memo        *cache.Cache
	concurrency int
	now         func() time.Time
	telemetry   operation.Telemetry
}

var _ Service = (*LeaderboardService)(nil)

// Option customises a LeaderboardService.
type Option func(*LeaderboardService)

// WithConcurrency sets how many rounds are computed in parallel.
func WithConcurrency(n int) Option {
	return func(s *LeaderboardService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithNow replaces the clock stamped on computed standings.
func WithNow(now func() time.Time) Option {
	return func(s *LeaderboardService) { s.now = now }
}

// NewLeaderboardService creates a LeaderboardService. memo holds per-round
// points keyed by round version; a nil memo disables reuse.
func NewLeaderboardService(
	rounds RoundSource,
	loader RoundLoader,
	roster Roster,
	memo *cache.Cache,
	obs observability.Observability,
	opts ...Option,
) *LeaderboardService {
	s := &LeaderboardService{
		rounds:      rounds,
		loader:      loader,
		roster:      roster,
		memo:        memo,
		concurrency: DefaultRoundConcurrency,
		now:         time.Now,
		telemetry:   operation.NewTelemetry("leaderboard", obs),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// roundComputation is the derived state of one round version. Cached values
// are shared between callers and must not be mutated.
type roundComputation struct {
	stats    []scoredomain.RoundScores
	points   map[leaderboarddomain.PlayerID]leaderboarddomain.PointsBreakdown
	totalPar int
}

// standingsInput is everything derived from the complete rounds.
type standingsInput struct {
	rounds   []rounddb.Round
	perRound []*roundComputation
	names    map[leaderboarddomain.PlayerID]string
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context) (StandingsResult, error) {
	return operation.Run(ctx, s.telemetry, "GetLeaderboard", nil, func(ctx context.Context) (StandingsResult, error) {
		in, err := s.loadStandings(ctx)
		if err != nil {
			return StandingsResult{}, err
		}
		return results.SuccessResult[*Standings, error](s.standings(in)), nil
	})
}

func (s *LeaderboardService) GetRoundResults(ctx context.Context, roundID string) (RoundResultsResult, error) {
	attrs := []attribute.KeyValue{operation.Attr(observability.FieldRoundID, roundID)}
	return operation.Run(ctx, s.telemetry, "GetRoundResults", attrs, func(ctx context.Context) (RoundResultsResult, error) {
		round, err := s.rounds.GetRound(ctx, nil, roundID)
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*RoundSheet, error](ErrRoundNotFound), nil
		}
		if err != nil {
			return RoundResultsResult{}, err
		}

		comp, err := s.computeRound(ctx, round)
		if err != nil {
			return RoundResultsResult{}, err
		}
		names, err := s.playerNames(ctx)
		if err != nil {
			return RoundResultsResult{}, err
		}

		stats := make([]scoredomain.RoundScores, len(comp.stats))
		copy(stats, comp.stats)
		for i := range stats {
			stats[i].PlayerName = nameOf(names, stats[i].PlayerID)
		}

		sheet := &RoundSheet{
			RoundID:     round.ID,
			RoundNumber: round.RoundNumber,
			TotalPar:    comp.totalPar,
			IsComplete:  round.IsComplete,
			Results:     leaderboarddomain.RankRoundResults(stats, comp.points, comp.totalPar),
		}
		if round.Course != nil {
			sheet.CourseName = round.Course.Name
		}
		return results.SuccessResult[*RoundSheet, error](sheet), nil
	})
}

func (s *LeaderboardService) GetLeaderboardChart(ctx context.Context) (ChartResult, error) {
	return operation.Run(ctx, s.telemetry, "GetLeaderboardChart", nil, func(ctx context.Context) (ChartResult, error) {
		in, err := s.loadStandings(ctx)
		if err != nil {
			return ChartResult{}, err
		}
		png, err := RenderStandingsChart(chartSeriesFrom(in, s.standings(in).Entries), DefaultPalette)
		if err != nil {
			return ChartResult{}, err
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
}

func (s *LeaderboardService) InvalidateRound(roundID string) {
	if s.memo == nil {
		return
	}
	prefix := roundID + ":"
	for key := range s.memo.Items() {
		if strings.HasPrefix(key, prefix) {
			s.memo.Delete(key)
		}
	}
}

func (s *LeaderboardService) standings(in *standingsInput) *Standings {
	perRound := make([]map[leaderboarddomain.PlayerID]leaderboarddomain.PointsBreakdown, len(in.perRound))
	versions := make([]leaderboarddomain.RoundVersion, len(in.rounds))
	for i, comp := range in.perRound {
		perRound[i] = comp.points
		versions[i] = leaderboarddomain.RoundVersion{RoundID: in.rounds[i].ID, UpdatedAt: in.rounds[i].UpdatedAt}
	}

	return &Standings{
		Entries:       leaderboarddomain.AggregateLeaderboard(perRound, in.names),
		RoundsCounted: len(in.rounds),
		Version:       leaderboarddomain.ComputeStandingsHash(versions),
		ComputedAt:    s.now().UTC(),
	}
}

// loadStandings computes every complete round concurrently. Rounds share no
// state, so the only ordering is the slot each result is written to.
func (s *LeaderboardService) loadStandings(ctx context.Context) (*standingsInput, error) {
	rounds, err := s.rounds.ListCompletedRounds(ctx, nil)
	if err != nil {
		return nil, err
	}

	perRound := make([]*roundComputation, len(rounds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range rounds {
		g.Go(func() error {
			comp, err := s.computeRound(gctx, &rounds[i])
			if err != nil {
				return err
			}
			perRound[i] = comp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}
	return &standingsInput{rounds: rounds, perRound: perRound, names: names}, nil
}

func (s *LeaderboardService) computeRound(ctx context.Context, round *rounddb.Round) (*roundComputation, error) {
	key := leaderboarddomain.RoundVersion{RoundID: round.ID, UpdatedAt: round.UpdatedAt}.Key()
	if s.memo != nil {
		if cached, ok := s.memo.Get(key); ok {
			s.telemetry.Metrics.RecordCacheHit()
			return cached.(*roundComputation), nil
		}
		s.telemetry.Metrics.RecordCacheMiss()
	}

	data, err := s.loader.LoadRound(ctx, round)
	if err != nil {
		return nil, err
	}

	stats := scoredomain.ComputePlayerStats(data.Scores, data.Holes)
	comp := &roundComputation{
		stats:    stats,
		points:   leaderboarddomain.ComputeRoundPoints(stats, data.Achievements),
		totalPar: scoredomain.TotalPar(data.Holes),
	}
	if s.memo != nil {
		s.memo.SetDefault(key, comp)
	}
	return comp, nil
}

func (s *LeaderboardService) playerNames(ctx context.Context) (map[leaderboarddomain.PlayerID]string, error) {
	players, err := s.roster.ListPlayers(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[leaderboarddomain.PlayerID]string, len(players))
	for _, p := range players {
		names[leaderboarddomain.PlayerID(p.ID)] = p.Name
	}
	return names, nil
}

func nameOf(names map[leaderboarddomain.PlayerID]string, id leaderboarddomain.PlayerID) string {
	if name := names[id]; name != "" {
		return name
	}
	return leaderboarddomain.UnknownPlayerName
}
