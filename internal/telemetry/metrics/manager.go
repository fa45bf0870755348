package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterWorkoutsAdded       prometheus.Counter
	CounterWorkoutsDeleted     prometheus.Counter
	CounterPRsSet              prometheus.Counter
	CounterRecomputations      *prometheus.CounterVec
	CounterLeaderboardCache    *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration     *prometheus.HistogramVec
	HistogramLeaderboardDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("liftlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("liftlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterWorkoutsAdded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_added",
		Help:      "The total number of logged workouts",
	})
	counterWorkoutsDeleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_deleted",
		Help:      "The total number of deleted workouts",
	})
	counterPRsSet := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "personal_records_set",
		Help:      "The total number of personal records written on add",
	})
	counterRecomputations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pr_recomputations",
		Help:      "The total number of from-scratch PR recomputations",
	}, []string{"reason"})
	counterLeaderboardCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "leaderboard_cache",
		Help:      "Leaderboard cache lookups by result",
	}, []string{"result"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramLeaderboardDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "leaderboard_aggregation_seconds",
		Help:      "Duration of an uncached leaderboard aggregation in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	return &Manager{
		CounterRequests:              counterRequests,
		CounterHandleRequestPanic:    counterHandleRequestPanic,
		CounterRateLimitedRequests:   counterRateLimitedRequests,
		CounterWorkoutsAdded:         counterWorkoutsAdded,
		CounterWorkoutsDeleted:       counterWorkoutsDeleted,
		CounterPRsSet:                counterPRsSet,
		CounterRecomputations:        counterRecomputations,
		CounterLeaderboardCache:      counterLeaderboardCache,
		GaugeRequests:                gaugeRequests,
		GaugeLifeSignal:              gaugeLifeSignal,
		HistogramRequestDuration:     histogramRequestDuration,
		HistogramLeaderboardDuration: histogramLeaderboardDuration,
	}
}
