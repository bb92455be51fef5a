package adapters

import (
	"context"

	"party_phonecountry/internal/contacts/transport"
	"party_phonecountry/internal/scheduler"
)

// RenormalizeService is the contacts service method the worker runs.
type RenormalizeService interface {
	RenormalizeAll(ctx context.Context, requestedBy string, batchSize int) (transport.RenormalizeResponse, error)
}

// ContactRenormalizer implements scheduler.Renormalizer with the contacts service.
type ContactRenormalizer struct {
	svc RenormalizeService
}

// NewContactRenormalizer creates a new adapter.
func NewContactRenormalizer(svc RenormalizeService) *ContactRenormalizer {
	return &ContactRenormalizer{svc: svc}
}

// Renormalize runs one pass and reports how many records it saw and changed.
func (a *ContactRenormalizer) Renormalize(ctx context.Context, requestedBy string, batchSize int) (int, int, error) {
	result, err := a.svc.RenormalizeAll(ctx, requestedBy, batchSize)
	return result.Scanned, result.Updated, err
}

// Compile-time check.
var _ scheduler.Renormalizer = (*ContactRenormalizer)(nil)
