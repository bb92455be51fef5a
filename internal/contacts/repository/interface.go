package repository

import (
	"context"

	"party_phonecountry/platform/db"
	"party_phonecountry/platform/phone"

	"github.com/google/uuid"
)

// ContactRepository is the persistence port for contact mechanisms.
// Methods taking a db.DBTX run on it when it is non-nil, so the service
// can group them in one transaction with the region read.
type ContactRepository interface {
	Create(ctx context.Context, q db.DBTX, m ContactMechanism) (ContactMechanism, error)
	Update(ctx context.Context, q db.DBTX, m ContactMechanism) (ContactMechanism, error)
	GetByID(ctx context.Context, q db.DBTX, id uuid.UUID) (ContactMechanism, error)
	// GetByIDForUpdate row-locks the record inside q.
	GetByIDForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (ContactMechanism, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) (ListResult, error)

	// ListPhoneRecords returns every phone-kind record for reconciliation.
	ListPhoneRecords(ctx context.Context, q db.DBTX) ([]phone.Record, error)
	// ApplyDisplayValues rewrites display values and returns the rows touched.
	ApplyDisplayValues(ctx context.Context, q db.DBTX, updates []phone.Update) (int, error)

	// ListPhoneBatch returns up to limit phone-kind records with id > after, ordered by id.
	ListPhoneBatch(ctx context.Context, q db.DBTX, after uuid.UUID, limit int) ([]phone.Record, error)
	// UpdateValues stores recomputed display and compact values.
	UpdateValues(ctx context.Context, q db.DBTX, id uuid.UUID, value, valueCompact string) error
}

// Compile-time check that Repository implements ContactRepository.
var _ ContactRepository = (*Repository)(nil)
