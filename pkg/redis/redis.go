package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // ConnectionURL in the format "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`             // RetryAttempts is the number of connection attempts at startup.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`            // RetryInterval is the interval between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`          // ConnectTimeout bounds the whole connection phase.
}

var (
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady           = errors.New("redis is not ready")
	ErrHealthcheckFailed       = errors.New("redis healthcheck failed")
)

// Connect establishes a Redis connection with startup retries.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)

		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// Healthcheck returns a closure that validates Redis connectivity.
func Healthcheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
