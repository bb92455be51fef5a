package adapters

import (
	"context"

	configsvc "party_phonecountry/internal/configuration/service"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/phone"
)

// ContactPhoneRecordsRepo is the narrow slice of the contacts repository
// the configuration module needs for reconciliation.
type ContactPhoneRecordsRepo interface {
	ListPhoneRecords(ctx context.Context, q db.DBTX) ([]phone.Record, error)
	ApplyDisplayValues(ctx context.Context, q db.DBTX, updates []phone.Update) (int, error)
}

// ContactPhoneStore implements configuration/service.ContactPhoneStore
// on top of the contacts repository.
type ContactPhoneStore struct {
	repo ContactPhoneRecordsRepo
}

// NewContactPhoneStore creates a new adapter.
func NewContactPhoneStore(repo ContactPhoneRecordsRepo) *ContactPhoneStore {
	return &ContactPhoneStore{repo: repo}
}

// PhoneRecords returns every phone-kind contact, read inside q.
func (a *ContactPhoneStore) PhoneRecords(ctx context.Context, q db.DBTX) ([]phone.Record, error) {
	return a.repo.ListPhoneRecords(ctx, q)
}

// ApplyDisplayValues writes reconciled display values inside q.
func (a *ContactPhoneStore) ApplyDisplayValues(ctx context.Context, q db.DBTX, updates []phone.Update) (int, error) {
	return a.repo.ApplyDisplayValues(ctx, q, updates)
}

// Compile-time check.
var _ configsvc.ContactPhoneStore = (*ContactPhoneStore)(nil)
