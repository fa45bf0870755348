package db

import (
	"context"
	"fmt"
	"net/url"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type NewDBPoolParams struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	MaxConns       int32
	TracingEnabled bool
}

func (p NewDBPoolParams) connString() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   p.DBHost + ":" + p.DBPort,
		Path:   "/" + p.DBName,
	}
	user := p.DBUser
	if user == "" {
		user = "postgres"
	}
	if p.DBPassword != "" {
		u.User = url.UserPassword(user, p.DBPassword)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(params.connString())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}
	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}

// NewPoolCollector exposes pool stats (acquired, idle, total conns) to prometheus.
func NewPoolCollector(pool *pgxpool.Pool, dbName string) prometheus.Collector {
	return pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": dbName})
}
