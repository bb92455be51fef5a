package service

import (
	"context"
	"strings"
	"time"

	"party_phonecountry/internal/contacts/repository"
	"party_phonecountry/internal/contacts/transport"
	"party_phonecountry/internal/events"
	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/metrics"
	"party_phonecountry/platform/phone"
	"party_phonecountry/platform/sanitize"

	"github.com/google/uuid"
)

const msgPartyRequired = "party id is required"

// Service provides business logic for contact mechanisms.
type Service struct {
	repo       repository.ContactRepository
	tx         db.TxRunner
	regions    RegionReader
	warnings   WarningAcknowledgements
	normalizer *phone.Normalizer
	eventBus   events.Bus
	metrics    *metrics.Collector
	log        *logger.Logger
	batchSize  int
}

// Deps groups the collaborators of Service.
type Deps struct {
	Repo      repository.ContactRepository
	Tx        db.TxRunner
	Regions   RegionReader
	Warnings  WarningAcknowledgements
	EventBus  events.Bus
	Metrics   *metrics.Collector
	Log       *logger.Logger
	BatchSize int
}

// New creates a new contact mechanisms service.
func New(deps Deps) *Service {
	batchSize := deps.BatchSize
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	log := deps.Log
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:       deps.Repo,
		tx:         deps.Tx,
		regions:    deps.Regions,
		warnings:   deps.Warnings,
		normalizer: phone.NewNormalizer(),
		eventBus:   deps.EventBus,
		metrics:    deps.Metrics,
		log:        log,
		batchSize:  batchSize,
	}
}

func (s *Service) Create(ctx context.Context, actor uuid.UUID, req transport.CreateContactMechanismRequest) (transport.ContactMechanismResponse, error) {
	if req.PartyID == uuid.Nil {
		return transport.ContactMechanismResponse{}, apperr.Validation(msgPartyRequired)
	}

	id := uuid.New()
	if req.ID != nil && *req.ID != uuid.Nil {
		id = *req.ID
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	now := time.Now()

	m := repository.ContactMechanism{
		ID:        id,
		PartyID:   req.PartyID,
		PartyName: sanitize.Text(req.PartyName),
		Type:      phone.Kind(req.Type),
		Comment:   sanitize.TextPtr(req.Comment),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created repository.ContactMechanism
	err := s.tx.WithTx(ctx, func(q db.DBTX) error {
		region, err := s.regions.PhoneRegion(ctx, q)
		if err != nil {
			return err
		}
		if err := s.applyValue(ctx, actor, region, &m, req.Value); err != nil {
			return err
		}
		created, err = s.repo.Create(ctx, q, m)
		return err
	})
	if err != nil {
		return transport.ContactMechanismResponse{}, err
	}

	return mapContactResponse(created), nil
}

func (s *Service) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, req transport.UpdateContactMechanismRequest) (transport.ContactMechanismResponse, error) {
	var updated repository.ContactMechanism
	err := s.tx.WithTx(ctx, func(q db.DBTX) error {
		// Region first: a region change then either committed before the row
		// is read or waits for this write.
		region, err := s.regions.PhoneRegion(ctx, q)
		if err != nil {
			return err
		}
		current, err := s.repo.GetByIDForUpdate(ctx, q, id)
		if err != nil {
			return err
		}

		if req.PartyName != nil {
			current.PartyName = sanitize.Text(*req.PartyName)
		}
		if req.Comment != nil {
			current.Comment = sanitize.TextPtr(req.Comment)
		}
		if req.Active != nil {
			current.Active = *req.Active
		}
		if req.Type != nil {
			current.Type = phone.Kind(*req.Type)
		}

		switch {
		case req.Value != nil:
			if err := s.applyValue(ctx, actor, region, &current, *req.Value); err != nil {
				return err
			}
		case req.Type != nil:
			if err := s.applyKind(ctx, actor, region, &current); err != nil {
				return err
			}
		}

		current.UpdatedAt = time.Now()
		updated, err = s.repo.Update(ctx, q, current)
		return err
	})
	if err != nil {
		return transport.ContactMechanismResponse{}, err
	}

	return mapContactResponse(updated), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ContactMechanismResponse, error) {
	m, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return transport.ContactMechanismResponse{}, err
	}
	return mapContactResponse(m), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List returns a page of contact mechanisms. The search term is also
// matched in compact form so any spelling of a number finds it.
func (s *Service) List(ctx context.Context, req transport.ListContactMechanismsRequest) (transport.ContactMechanismListResponse, error) {
	params := repository.ListParams{
		Search:   strings.TrimSpace(req.Search),
		Type:     req.Type,
		Active:   req.Active,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.PartyID != "" {
		partyID, err := uuid.Parse(req.PartyID)
		if err != nil {
			return transport.ContactMechanismListResponse{}, apperr.BadRequest("invalid party id")
		}
		params.PartyID = &partyID
	}

	if params.Search != "" {
		region, err := s.regions.PhoneRegion(ctx, nil)
		if err != nil {
			return transport.ContactMechanismListResponse{}, err
		}
		if compact := phone.FormatCompact(params.Search, phone.KindPhone, region); compact != params.Search {
			params.SearchCompact = compact
		}
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.ContactMechanismListResponse{}, err
	}

	items := make([]transport.ContactMechanismResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, mapContactResponse(m))
	}

	return transport.ContactMechanismListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func mapContactResponse(m repository.ContactMechanism) transport.ContactMechanismResponse {
	return transport.ContactMechanismResponse{
		ID:           m.ID,
		PartyID:      m.PartyID,
		PartyName:    m.PartyName,
		Type:         string(m.Type),
		Value:        m.Value,
		ValueCompact: m.ValueCompact,
		Comment:      m.Comment,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
