package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies schema migrations with goose. The pgx pool is bridged to
// the database/sql interface goose expects; the wrapper shares the
// underlying connections.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	if cfg.MigrationsPath == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}

	if _, err := os.Stat(cfg.MigrationsPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration db handle", "error", err)
		}
	}()

	// Route goose output through the application logger instead of stdout.
	goose.SetLogger(&slogAdapter{log: log})

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, cfg.MigrationsPath); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

// slogAdapter bridges goose's Printf-style logging to slog.
type slogAdapter struct {
	log *slog.Logger
}

func (a *slogAdapter) Fatalf(format string, v ...any) {
	a.log.Error(fmt.Sprintf(format, v...))
}

func (a *slogAdapter) Printf(format string, v ...any) {
	a.log.Info(fmt.Sprintf(format, v...))
}
