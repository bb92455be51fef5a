package adapters

import (
	"context"

	contactsvc "party_phonecountry/internal/contacts/service"
	"party_phonecountry/platform/db"
)

// PhoneRegionSource is the configuration service method contact writes read
// the default region from.
type PhoneRegionSource interface {
	PhoneRegion(ctx context.Context, q db.DBTX) (string, error)
}

// RegionReader implements contacts/service.RegionReader using the
// configuration module.
type RegionReader struct {
	src PhoneRegionSource
}

// NewRegionReader creates a new adapter.
func NewRegionReader(src PhoneRegionSource) *RegionReader {
	return &RegionReader{src: src}
}

// PhoneRegion returns the default region, share-locked when q is a transaction.
func (a *RegionReader) PhoneRegion(ctx context.Context, q db.DBTX) (string, error) {
	return a.src.PhoneRegion(ctx, q)
}

// Compile-time check.
var _ contactsvc.RegionReader = (*RegionReader)(nil)
