package warnings

import (
	apphttp "party_phonecountry/internal/http"
	"party_phonecountry/platform/validator"
)

// Module exposes the acknowledgement endpoint and the store behind it.
type Module struct {
	handler *Handler
	store   Store
}

// NewModule creates the warnings module on top of store.
func NewModule(store Store, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(store, val), store: store}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "warnings"
}

// Store returns the acknowledgement store for other modules.
func (m *Module) Store() Store {
	return m.store
}

// RegisterRoutes mounts warning routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/warnings"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
