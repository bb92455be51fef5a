package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"party_phonecountry/internal/adapters"
	"party_phonecountry/internal/configuration"
	"party_phonecountry/internal/contacts"
	contactsrepo "party_phonecountry/internal/contacts/repository"
	"party_phonecountry/internal/events"
	apphttp "party_phonecountry/internal/http"
	"party_phonecountry/internal/http/router"
	"party_phonecountry/internal/scheduler"
	"party_phonecountry/internal/warnings"
	"party_phonecountry/platform/config"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/metrics"
	"party_phonecountry/platform/redisconn"
	"party_phonecountry/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run migrations", "error", err)
		panic("failed to run migrations: " + err.Error())
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	collector := metrics.New()
	val := validator.New()

	warningStore := initWarningStore(ctx, cfg, log)

	contactsRepo := contactsrepo.New(pool)
	configModule := configuration.NewModule(pool, adapters.NewContactPhoneStore(contactsRepo), eventBus, val, log)

	opts := contacts.Options{
		Regions:  adapters.NewRegionReader(configModule.Service()),
		Warnings: warningStore,
	}
	if schedulerClient := initSchedulerClient(cfg, log); schedulerClient != nil {
		defer func() { _ = schedulerClient.Close() }()
		opts.Enqueuer = schedulerClient
	}
	contactsModule := contacts.NewModule(pool, cfg, eventBus, collector, val, log, opts)
	warningsModule := warnings.NewModule(warningStore, val)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		Metrics:  collector.Handler(),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			configModule,
			contactsModule,
			warningsModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		eventBus.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func initWarningStore(ctx context.Context, cfg *config.Config, log *logger.Logger) warnings.Store {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, warning acknowledgements kept in memory")
		return warnings.NewMemoryStore(cfg.GetWarningAckTTL())
	}

	var store warnings.Store
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		client, err := redisconn.NewClient(ctx, cfg)
		if err != nil {
			return err
		}
		store = warnings.NewRedisStore(client, cfg.GetWarningAckTTL())
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	return store
}

func initSchedulerClient(cfg *config.Config, log *logger.Logger) *scheduler.Client {
	if !cfg.IsSchedulerEnabled() {
		log.Info("scheduler disabled, renormalization only available via contact-backfill")
		return nil
	}
	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	return client
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
