package service

import (
	"context"

	"party_phonecountry/internal/configuration/repository"
	"party_phonecountry/internal/configuration/transport"
	"party_phonecountry/internal/events"
	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/phone"

	"github.com/google/uuid"
)

const msgUnsupportedRegion = "unsupported phone region"

// ConfigurationStore is the persistence port for the configuration singleton.
type ConfigurationStore interface {
	Get(ctx context.Context, q db.DBTX, lock repository.LockMode) (repository.Configuration, error)
	SetPhoneRegion(ctx context.Context, q db.DBTX, region string) (repository.Configuration, error)
}

// ContactPhoneStore gives access to the stored phone-kind contact values.
type ContactPhoneStore interface {
	PhoneRecords(ctx context.Context, q db.DBTX) ([]phone.Record, error)
	ApplyDisplayValues(ctx context.Context, q db.DBTX, updates []phone.Update) (int, error)
}

// Service provides business logic for the party configuration.
type Service struct {
	repo       ConfigurationStore
	tx         db.TxRunner
	contacts   ContactPhoneStore
	normalizer *phone.Normalizer
	eventBus   events.Bus
	log        *logger.Logger
}

// New creates a new configuration service.
func New(repo ConfigurationStore, tx db.TxRunner, contacts ContactPhoneStore, eventBus events.Bus, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:       repo,
		tx:         tx,
		contacts:   contacts,
		normalizer: phone.NewNormalizer(),
		eventBus:   eventBus,
		log:        log,
	}
}

func (s *Service) Get(ctx context.Context) (transport.ConfigurationResponse, error) {
	cfg, err := s.repo.Get(ctx, nil, repository.LockNone)
	if err != nil {
		return transport.ConfigurationResponse{}, err
	}
	return transport.ConfigurationResponse{PhoneRegion: cfg.PhoneRegion, UpdatedAt: cfg.UpdatedAt}, nil
}

// PhoneRegion reads the default region for contact writes. Inside a
// transaction the configuration row is share-locked.
func (s *Service) PhoneRegion(ctx context.Context, q db.DBTX) (string, error) {
	lock := repository.LockNone
	if q != nil {
		lock = repository.LockShare
	}
	cfg, err := s.repo.Get(ctx, q, lock)
	if err != nil {
		return "", err
	}
	return cfg.PhoneRegion, nil
}

// SetPhoneRegion changes the default region and, in the same transaction,
// rewrites the display values of stored numbers that belong to the old or
// the new region.
func (s *Service) SetPhoneRegion(ctx context.Context, actor uuid.UUID, req transport.SetPhoneRegionRequest) (transport.SetPhoneRegionResponse, error) {
	region := phone.NormalizeRegion(req.Region)
	if !phone.IsSupportedRegion(region) {
		return transport.SetPhoneRegionResponse{}, apperr.Validation(msgUnsupportedRegion).WithDetails(map[string]string{"region": req.Region})
	}

	var resp transport.SetPhoneRegionResponse
	err := s.tx.WithTx(ctx, func(q db.DBTX) error {
		current, err := s.repo.Get(ctx, q, repository.LockUpdate)
		if err != nil {
			return err
		}
		resp.PreviousRegion = current.PhoneRegion
		resp.Region = region
		if current.PhoneRegion == region {
			return nil
		}

		if _, err := s.repo.SetPhoneRegion(ctx, q, region); err != nil {
			return err
		}

		records, err := s.contacts.PhoneRecords(ctx, q)
		if err != nil {
			return err
		}
		updates := s.normalizer.Reconcile(records, current.PhoneRegion, region)
		resp.UpdatedContacts, err = s.contacts.ApplyDisplayValues(ctx, q, updates)
		return err
	})
	if err != nil {
		return transport.SetPhoneRegionResponse{}, err
	}

	if resp.PreviousRegion != resp.Region && s.eventBus != nil {
		s.eventBus.Publish(ctx, events.PhoneRegionChanged{
			BaseEvent:       events.NewBaseEvent(),
			PreviousRegion:  resp.PreviousRegion,
			Region:          resp.Region,
			UpdatedContacts: resp.UpdatedContacts,
			ChangedBy:       actor,
		})
	}
	return resp, nil
}
