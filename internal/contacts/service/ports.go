package service

import (
	"context"

	"party_phonecountry/platform/db"

	"github.com/google/uuid"
)

// RegionReader reads the default phone region. When q is a transaction the
// read takes a shared lock on the configuration row, so a concurrent region
// change waits for the write to commit.
type RegionReader interface {
	PhoneRegion(ctx context.Context, q db.DBTX) (string, error)
}

// WarningAcknowledgements reports whether a user acknowledged a warning key.
// One-shot acknowledgements are used up by the call.
type WarningAcknowledgements interface {
	Consume(ctx context.Context, userID uuid.UUID, key string) (bool, error)
}
