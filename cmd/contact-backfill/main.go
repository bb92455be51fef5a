package main

import (
	"context"
	"flag"

	"party_phonecountry/internal/adapters"
	"party_phonecountry/internal/configuration"
	"party_phonecountry/internal/contacts"
	contactsrepo "party_phonecountry/internal/contacts/repository"
	"party_phonecountry/internal/events"
	"party_phonecountry/internal/warnings"
	"party_phonecountry/platform/config"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/validator"
)

func main() {
	batchSize := flag.Int("batch", 0, "records per transaction (defaults to RENORMALIZE_BATCH_SIZE)")
	migrate := flag.Bool("migrate", false, "apply pending migrations before the backfill")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting contact phone backfill")

	ctx := context.Background()
	if *migrate {
		if err := db.RunMigrations(ctx, cfg); err != nil {
			log.Error("failed to run migrations", "error", err)
			panic("failed to run migrations: " + err.Error())
		}
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	contactsRepo := contactsrepo.New(pool)
	configModule := configuration.NewModule(pool, adapters.NewContactPhoneStore(contactsRepo), eventBus, val, log)
	contactsModule := contacts.NewModule(pool, cfg, eventBus, nil, val, log, contacts.Options{
		Regions:  adapters.NewRegionReader(configModule.Service()),
		Warnings: warnings.NewMemoryStore(cfg.GetWarningAckTTL()),
	})

	result, err := contactsModule.Service().RenormalizeAll(ctx, "contact-backfill", *batchSize)
	if err != nil {
		log.Error("backfill failed", "error", err)
		return
	}
	eventBus.Wait()

	log.Info("contact phone backfill finished",
		"region", result.Region,
		"scanned", result.Scanned,
		"updated", result.Updated,
	)
}
