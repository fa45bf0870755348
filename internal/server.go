package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/catalog"
	"github.com/2beens/liftlog/internal/gymstats/leaderboard"
	"github.com/2beens/liftlog/internal/gymstats/memstore"
	"github.com/2beens/liftlog/internal/gymstats/pgstore"
	"github.com/2beens/liftlog/internal/gymstats/records"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

// a workout with every set filled in stays far below this
const maxRequestBodyBytes = 1 << 20

// gymstatsStore is everything the services need from a storage backend.
type gymstatsStore interface {
	workouts.Repo
	records.Reader
	catalog.Repo
	auth.Directory
	leaderboard.Source
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter

	workoutsHandler    *workouts.Handler
	recordsHandler     *records.Handler
	leaderboardHandler *leaderboard.Handler
	catalogHandler     *catalog.Handler
	authMiddleware     *middleware.AuthMiddlewareHandler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret not set")
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		otelShutdown: func() {},
	}

	if params.HoneycombTracingEnabled {
		otelShutdown, err := tracing.HoneycombSetup("liftlog-backend")
		if err != nil {
			return nil, fmt.Errorf("honeycomb setup: %w", err)
		}
		s.otelShutdown = otelShutdown
	}

	var (
		store      gymstatsStore
		collectors []prometheus.Collector
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warnln("using in-memory storage, all data is lost on restart")
		store = memstore.New()
	case config.StoragePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBUser:         cfg.PostgresUser,
			DBPassword:     cfg.PostgresPassword,
			DBName:         cfg.PostgresDBName,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if cfg.AutoMigrate {
			if err := pgstore.Migrate(ctx, dbPool); err != nil {
				dbPool.Close()
				return nil, fmt.Errorf("migrate db: %w", err)
			}
		}
		s.dbPool = dbPool
		store = pgstore.New(dbPool)
		collectors = append(collectors, db.NewPoolCollector(dbPool, cfg.PostgresDBName))
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("liftlog", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	var lbCache leaderboard.Cache
	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       0,
		})
		rdb.AddHook(redisotel.NewTracingHook())

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		s.redisClient = rdb
		s.rateLimiter = redis_rate.NewLimiter(rdb)
		lbCache = leaderboard.NewRedisCache(rdb, cfg.LeaderboardCacheTTL())
	} else {
		log.Warnln("redis disabled, leaderboard cache and rate limiting are off")
	}

	directory := auth.NewCachedDirectory(store, cfg.NameCacheSizeMB, cfg.NameCacheTTL())
	aggregator := leaderboard.NewAggregator(leaderboard.AggregatorParams{
		Source:           store,
		Names:            directory,
		Cache:            lbCache,
		TrackedExercises: cfg.TrackedExercises,
		Workers:          cfg.LeaderboardWorkers,
		Metrics:          s.metricsManager,
	})
	engine := records.NewEngine(s.metricsManager)

	s.workoutsHandler = workouts.NewHandler(
		workouts.NewService(store, engine, aggregator, s.metricsManager),
	)
	s.recordsHandler = records.NewHandler(
		records.NewSummaryService(store, cfg.BodyweightExercises),
	)
	s.leaderboardHandler = leaderboard.NewHandler(aggregator)
	s.catalogHandler = catalog.NewHandler(
		catalog.NewService(store, cfg.BaseExercises),
	)
	s.authMiddleware = middleware.NewAuthMiddlewareHandler(
		auth.NewTokenChecker(cfg.JWTSecret, ""),
		directory,
	)

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftlog-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS").Name("health")

	r.HandleFunc("/workouts", s.workoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts", s.workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{id}", s.workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")

	r.HandleFunc("/records", s.recordsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-records")
	r.HandleFunc("/leaderboard", s.leaderboardHandler.HandleGet).Methods("GET", "OPTIONS").Name("leaderboard")

	r.HandleFunc("/exercises", s.catalogHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", s.catalogHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", s.catalogHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(s.authMiddleware.AuthCheck())
	r.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, "liftlog-api", s.config.RateLimitPerMinute))
	r.Use(middleware.LimitRequestBody(maxRequestBodyBytes))

	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, healthResponse{Status: "ok", Version: s.versionInfo}, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:           otelhttp.NewHandler(router, "liftlog-http"),
		Addr:              ipAndPort,
		WriteTimeout:      time.Minute,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they depend on
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
