package pg

import "time"

type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL,required"`                  // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`     // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`      // MaxIdleConns is the maximum number of idle connections.
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"` // HealthCheckPeriod is the period between pool health checks.

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts at startup.
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base interval between attempts.

	MigrationsPath string `env:"PG_MIGRATIONS_PATH" envDefault:"migrations"` // MigrationsPath is the path to the goose migrations directory.
}
