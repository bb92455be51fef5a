// Package configuration provides the party configuration bounded context module.
package configuration

import (
	"party_phonecountry/internal/configuration/handler"
	"party_phonecountry/internal/configuration/repository"
	"party_phonecountry/internal/configuration/service"
	"party_phonecountry/internal/events"
	apphttp "party_phonecountry/internal/http"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the configuration bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the configuration module. contacts gives
// the module access to the stored phone values it reconciles.
func NewModule(
	pool *pgxpool.Pool,
	contacts service.ContactPhoneStore,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, db.NewTxManager(pool), contacts, eventBus, log)
	return &Module{handler: handler.New(svc, val), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "configuration"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts configuration routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/configuration"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/configuration"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
