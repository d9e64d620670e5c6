package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authmodule "github.com/dmitrymomot/sessionkit/modules/auth"
	"github.com/dmitrymomot/sessionkit/pkg/auth"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/csrf"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/pg"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// appConfig selects the session store backend. User records always live in
// Postgres; sessions can additionally be kept in Redis or in memory.
type appConfig struct {
	SessionStore string `env:"SESSION_STORE" envDefault:"postgres"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg)

	var (
		appCfg     appConfig
		sessionCfg session.Config
		csrfCfg    csrf.Config
		moduleCfg  authmodule.Config
		httpCfg    httpserver.Config
		pgCfg      pg.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&csrfCfg)
	config.MustLoad(&moduleCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&pgCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	healthchecks := []func(context.Context) error{pg.Healthcheck(pool)}

	var sessionStore session.Store
	switch appCfg.SessionStore {
	case "postgres":
		sessionStore = session.NewPGStore(pool)
	case "redis":
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()

		sessionStore = session.NewRedisStore(client)
		healthchecks = append(healthchecks, redis.Healthcheck(client))
	case "memory":
		log.Warn("using in-memory session store, sessions will not survive restarts")
		sessionStore = session.NewMemoryStore()
	default:
		return fmt.Errorf("unknown session store %q", appCfg.SessionStore)
	}

	sessions, err := session.NewFromConfig(sessionCfg, sessionStore)
	if err != nil {
		return fmt.Errorf("create session manager: %w", err)
	}

	issuer, err := csrf.NewFromConfig(csrfCfg)
	if err != nil {
		return fmt.Errorf("create csrf issuer: %w", err)
	}

	users := auth.NewService(
		auth.NewPGStorage(pool),
		auth.WithLogger(log),
	)

	authSvc := authmodule.NewService(moduleCfg, users, sessions, issuer,
		authmodule.WithLogger(log),
		authmodule.WithCookieNames(sessionCfg.CookieName, csrfCfg.CookieName),
		authmodule.WithCSRFHeaderName(csrfCfg.HeaderName),
	)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)

	mux.Get("/health", httpserver.HealthHandler(healthchecks...))
	mux.Mount("/auth", authSvc.Router())

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return server.Run(ctx, mux)
}
