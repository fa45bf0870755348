package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/2beens/liftlog/pkg"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var DefaultTrackedExercises = []string{
	"Bench Press", "Squat", "Deadlift", "Romanian Deadlift", "Overhead Press",
	"Barbell Row", "Barbell Curl", "Incline Bench Press", "SkullCrusher",
}

var DefaultBodyweightExercises = []string{
	"Pull-Up", "Push-Up", "Dips", "Chin-Up", "Inverted Row", "Bodyweight Squat",
}

var DefaultBaseExercises = []string{
	"Bench Press", "Squat", "Deadlift", "Overhead Press", "Barbell Row",
	"Pull-Up", "Barbell Curl", "Incline Bench Press", "SkullCrusher",
}

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	Storage          string `toml:"storage"`
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresPassword string `toml:"-"`
	AutoMigrate      bool   `toml:"auto_migrate"`
	// redis
	RedisHost     string `toml:"redis_host"`
	RedisPort     string `toml:"redis_port"`
	RedisPassword string `toml:"-"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// identity
	JWTSecret string `toml:"-"`
	// gymstats
	TrackedExercises    []string `toml:"tracked_exercises"`
	BodyweightExercises []string `toml:"bodyweight_exercises"`
	BaseExercises       []string `toml:"base_exercises"`
	// tuning
	LeaderboardCacheTTLSeconds int      `toml:"leaderboard_cache_ttl_seconds"`
	LeaderboardWorkers         int      `toml:"leaderboard_workers"`
	RateLimitPerMinute         int      `toml:"rate_limit_per_minute"`
	NameCacheSizeMB            int      `toml:"name_cache_size_mb"`
	NameCacheTTLSeconds        int      `toml:"name_cache_ttl_seconds"`
	AllowedOrigins             []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		if cfg != nil && cfg.Environment == "" {
			cfg.Environment = "development"
		}
	case "prod", "production":
		cfg = t.Production
		if cfg != nil && cfg.Environment == "" {
			cfg.Environment = "production"
		}
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no [%s] section in config", env)
	}
	return cfg, nil
}

// LoadDotEnv exports the variables of a local env file without overriding
// ones already set in the process. A missing file is not an error.
func LoadDotEnv(path string) error {
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return fmt.Errorf("check env file path: %w", err)
	}
	if !exists {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads the TOML file, picks the env section, applies defaults and
// fills secrets from the environment.
func Load(env, path string) (*Config, error) {
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, fmt.Errorf("check config path: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("config file %s not found", path)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.PostgresPassword = os.Getenv("POSTGRES_PASSWORD")
	cfg.RedisPassword = os.Getenv("LIFTLOG_REDIS_PASS")
	cfg.JWTSecret = os.Getenv("LIFTLOG_JWT_SECRET")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.Storage == "" {
		c.Storage = StoragePostgres
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if len(c.TrackedExercises) == 0 {
		c.TrackedExercises = DefaultTrackedExercises
	}
	if len(c.BodyweightExercises) == 0 {
		c.BodyweightExercises = DefaultBodyweightExercises
	}
	if len(c.BaseExercises) == 0 {
		c.BaseExercises = DefaultBaseExercises
	}
	if c.LeaderboardCacheTTLSeconds == 0 {
		c.LeaderboardCacheTTLSeconds = 30
	}
	if c.LeaderboardWorkers == 0 {
		c.LeaderboardWorkers = 4
	}
	if c.NameCacheSizeMB == 0 {
		c.NameCacheSizeMB = 8
	}
	if c.NameCacheTTLSeconds == 0 {
		c.NameCacheTTLSeconds = 600
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}
	if c.Storage == StoragePostgres && (c.PostgresHost == "" || c.PostgresDBName == "") {
		errs = append(errs, errors.New("postgres_host and postgres_db_name are required for postgres storage"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit_per_minute must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) LeaderboardCacheTTL() time.Duration {
	return time.Duration(c.LeaderboardCacheTTLSeconds) * time.Second
}

func (c *Config) NameCacheTTL() time.Duration {
	return time.Duration(c.NameCacheTTLSeconds) * time.Second
}
