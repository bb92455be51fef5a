package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"party_phonecountry/internal/adapters"
	"party_phonecountry/internal/configuration"
	"party_phonecountry/internal/contacts"
	contactsrepo "party_phonecountry/internal/contacts/repository"
	"party_phonecountry/internal/events"
	"party_phonecountry/internal/scheduler"
	"party_phonecountry/internal/warnings"
	"party_phonecountry/platform/config"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/metrics"
	"party_phonecountry/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if !cfg.IsSchedulerEnabled() {
		panic("failed to start scheduler: REDIS_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	contactsRepo := contactsrepo.New(pool)
	configModule := configuration.NewModule(pool, adapters.NewContactPhoneStore(contactsRepo), eventBus, val, log)
	// The worker never validates input, so acknowledgements stay local.
	contactsModule := contacts.NewModule(pool, cfg, eventBus, metrics.New(), val, log, contacts.Options{
		Regions:  adapters.NewRegionReader(configModule.Service()),
		Warnings: warnings.NewMemoryStore(cfg.GetWarningAckTTL()),
	})

	worker, err := scheduler.NewWorker(cfg, adapters.NewContactRenormalizer(contactsModule.Service()), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("scheduler stopped", "error", err)
		os.Exit(1)
	}
	eventBus.Wait()
	log.Info("scheduler stopped")
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
