package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/barquiz/spec-trainer/internal/config"
	"github.com/barquiz/spec-trainer/internal/logging"
	"github.com/barquiz/spec-trainer/internal/recipe"
	"github.com/barquiz/spec-trainer/internal/server"
	"github.com/barquiz/spec-trainer/internal/session"
	ws "github.com/barquiz/spec-trainer/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	host     *session.Host
	hostCtx  context.Context
	hostStop context.CancelFunc
}

// New bootstraps configs, logger, Postgres, Redis and the session services.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// Recipe catalog: curated Postgres data behind a Redis cache.
	recipeRepo := recipe.NewRepository(pool)
	recipeCache := recipe.NewCache(redisClient, cfg.Quiz.CatalogCacheTTL)
	recipeSvc := recipe.NewService(recipeRepo, recipeCache, cfg.Quiz.DefaultCategory, logger)

	machine := session.NewMachine(session.Config{
		QuestionTime:        cfg.Quiz.QuestionTime,
		ExamTime:            cfg.Quiz.ExamTime,
		BreakTime:           cfg.Quiz.BreakTime,
		PassPercent:         cfg.Quiz.PassPercent,
		ChoiceSetSize:       cfg.Quiz.ChoiceSetSize,
		BreakCredentialHash: cfg.Quiz.BreakCredentialHash,
	}, logger)

	store := session.NewStore(redisClient, cfg.Quiz.SessionTTL, logger)
	hub := ws.NewHub(logger)
	host := session.NewHost(store, machine, hub, logger, time.Second)

	// Host watchers outlive individual requests; they stop on shutdown.
	hostCtx, hostStop := context.WithCancel(context.Background())

	handlers := session.NewHTTPHandlers(hostCtx, recipeSvc, machine, store, host, hub, logger)
	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, handlers)

	return &Application{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		redis:    redisClient,
		http:     apiServer,
		host:     host,
		hostCtx:  hostCtx,
		hostStop: hostStop,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.host.StopAll()
	a.hostStop()

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
