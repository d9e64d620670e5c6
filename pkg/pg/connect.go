package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect establishes a PostgreSQL connection pool with retry logic.
// Retries back off linearly so simultaneous restarts do not hammer the
// database.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		// An actual ping catches authentication and permission issues
		// that pool construction alone does not.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		return pool, nil
	}

	return nil, ErrFailedToOpenDBConnection
}

// Healthcheck returns a closure that validates database connectivity,
// compatible with health endpoints expecting func(context.Context) error.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
