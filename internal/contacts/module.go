// Package contacts provides the contact mechanisms bounded context module.
package contacts

import (
	"context"

	"party_phonecountry/internal/contacts/handler"
	"party_phonecountry/internal/contacts/repository"
	"party_phonecountry/internal/contacts/service"
	"party_phonecountry/internal/events"
	apphttp "party_phonecountry/internal/http"
	"party_phonecountry/platform/config"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/metrics"
	"party_phonecountry/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the contacts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
	metrics *metrics.Collector
	log     *logger.Logger
}

// Options carries the cross-module collaborators of the contacts module.
type Options struct {
	Regions  service.RegionReader
	Warnings service.WarningAcknowledgements
	// Enqueuer is nil when no scheduler is configured.
	Enqueuer handler.RenormalizeEnqueuer
}

// NewModule creates and initializes the contacts module with all its dependencies.
func NewModule(
	pool *pgxpool.Pool,
	cfg config.ContactsConfig,
	eventBus events.Bus,
	collector *metrics.Collector,
	val *validator.Validator,
	log *logger.Logger,
	opts Options,
) *Module {
	repo := repository.New(pool)
	svc := service.New(service.Deps{
		Repo:      repo,
		Tx:        db.NewTxManager(pool),
		Regions:   opts.Regions,
		Warnings:  opts.Warnings,
		EventBus:  eventBus,
		Metrics:   collector,
		Log:       log,
		BatchSize: cfg.GetRenormalizeBatchSize(),
	})

	m := &Module{
		handler: handler.New(svc, val, opts.Enqueuer),
		service: svc,
		repo:    repo,
		metrics: collector,
		log:     log,
	}
	if eventBus != nil {
		eventBus.Subscribe(events.PhoneRegionChanged{}.EventName(), events.HandlerFunc(m.handleRegionChanged))
	}
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contacts"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for cross-module adapters.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts contact mechanism routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/contact-mechanisms"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/contact-mechanisms"))
}

func (m *Module) handleRegionChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.PhoneRegionChanged)
	if !ok {
		return nil
	}
	m.metrics.RegionChanged(e.UpdatedContacts)
	m.log.WithContext(ctx).RegionChanged(e.PreviousRegion, e.Region, e.UpdatedContacts)
	return nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
