package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/units"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=leaderboard_mocks_test.go -package=leaderboard_test

const UnknownDisplayName = "Unknown"

type Source interface {
	// PRsForExercise returns the PR records of all users for one exercise.
	PRsForExercise(ctx context.Context, name string) ([]records.PR, error)
}

type NameResolver interface {
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

type Cache interface {
	// Get returns the current generation with the entries stored for it.
	// It reports false on a miss.
	Get(ctx context.Context) ([]Entry, int64, bool, error)
	// Set stores entries under the generation seen by the preceding Get.
	Set(ctx context.Context, generation int64, entries []Entry) error
	// Invalidate moves to a new generation.
	Invalidate(ctx context.Context) error
}

type TopHolder struct {
	UserID      string       `json:"userId"`
	DisplayName string       `json:"displayName"`
	Weight      units.Weight `json:"weight"`
	Date        units.Day    `json:"date"`
}

type Entry struct {
	ExerciseName string     `json:"exerciseName"`
	TopHolder    *TopHolder `json:"topHolder"`
}

// beats orders two records: heavier wins, then the later date, then the lower user id.
func beats(a, b records.PR) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	if c := a.Date.Compare(b.Date); c != 0 {
		return c > 0
	}
	return a.UserID < b.UserID
}

// PickTopHolder finds each user's best record and returns the best of those.
// It returns nil for an empty list.
func PickTopHolder(prs []records.PR) *records.PR {
	best := make(map[string]records.PR)
	for _, pr := range prs {
		if cur, ok := best[pr.UserID]; !ok || beats(pr, cur) {
			best[pr.UserID] = pr
		}
	}

	var winner *records.PR
	for _, pr := range best {
		if winner == nil || beats(pr, *winner) {
			p := pr
			winner = &p
		}
	}
	return winner
}

type Aggregator struct {
	source  Source
	names   NameResolver
	cache   Cache
	tracked []string
	workers int
	metrics *metrics.Manager
}

type AggregatorParams struct {
	Source           Source
	Names            NameResolver
	Cache            Cache // optional
	TrackedExercises []string
	Workers          int
	Metrics          *metrics.Manager
}

func NewAggregator(params AggregatorParams) *Aggregator {
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Aggregator{
		source:  params.Source,
		names:   params.Names,
		cache:   params.Cache,
		tracked: params.TrackedExercises,
		workers: workers,
		metrics: params.Metrics,
	}
}

// Leaderboard returns one entry per tracked exercise, in configured order.
func (a *Aggregator) Leaderboard(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.leaderboard.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		generation int64
		cacheable  = a.cache != nil
	)
	if a.cache != nil {
		cached, gen, ok, err := a.cache.Get(ctx)
		generation = gen
		switch {
		case err != nil:
			// the generation is unknown, do not store what we compute
			cacheable = false
			a.metrics.CounterLeaderboardCache.WithLabelValues("error").Inc()
			log.Warnf("leaderboard cache get: %s", err)
		case ok:
			a.metrics.CounterLeaderboardCache.WithLabelValues("hit").Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		default:
			a.metrics.CounterLeaderboardCache.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	entries, err := a.aggregate(ctx)
	if err != nil {
		return nil, err
	}
	a.metrics.HistogramLeaderboardDuration.Observe(time.Since(start).Seconds())

	if cacheable {
		if err := a.cache.Set(ctx, generation, entries); err != nil {
			log.Warnf("leaderboard cache set: %s", err)
		}
	}

	return entries, nil
}

func (a *Aggregator) aggregate(ctx context.Context) ([]Entry, error) {
	winners := make([]*records.PR, len(a.tracked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, name := range a.tracked {
		g.Go(func() error {
			prs, err := a.source.PRsForExercise(gctx, name)
			if err != nil {
				return fmt.Errorf("prs for %s: %w", name, err)
			}
			winners[i] = PickTopHolder(prs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Store("aggregate leaderboard", err)
	}

	var userIDs []string
	seen := map[string]bool{}
	for _, w := range winners {
		if w != nil && !seen[w.UserID] {
			seen[w.UserID] = true
			userIDs = append(userIDs, w.UserID)
		}
	}

	displayNames := map[string]string{}
	if len(userIDs) > 0 && a.names != nil {
		resolved, err := a.names.DisplayNames(ctx, userIDs)
		if err != nil {
			log.Warnf("resolve leaderboard names [%s]: %s", strings.Join(userIDs, ","), err)
		}
		for id, name := range resolved {
			displayNames[id] = name
		}
	}

	entries := make([]Entry, 0, len(a.tracked))
	for i, name := range a.tracked {
		entry := Entry{ExerciseName: name}
		if w := winners[i]; w != nil {
			displayName := displayNames[w.UserID]
			if displayName == "" {
				displayName = UnknownDisplayName
			}
			entry.TopHolder = &TopHolder{
				UserID:      w.UserID,
				DisplayName: displayName,
				Weight:      w.Weight,
				Date:        w.Date,
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Invalidate makes every cached leaderboard unreachable, including one still
// being aggregated.
func (a *Aggregator) Invalidate(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Invalidate(ctx)
}
