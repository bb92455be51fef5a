package service

import (
	"context"

	"party_phonecountry/internal/contacts/repository"
	"party_phonecountry/internal/contacts/transport"
	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/phone"
	"party_phonecountry/platform/sanitize"

	"github.com/google/uuid"
)

// applyValue recomputes the display and compact values of m from raw and
// runs the phone checks. Invalid numbers block the write. Line type
// warnings block it until actor has acknowledged the warning key.
func (s *Service) applyValue(ctx context.Context, actor uuid.UUID, region string, m *repository.ContactMechanism, raw string) error {
	raw = sanitize.Value(raw)
	m.Value = s.normalizer.FormatDisplay(raw, m.Type, region)
	m.ValueCompact = s.normalizer.FormatCompact(raw, m.Type, region)
	return s.checkValue(ctx, actor, region, m)
}

// applyKind re-derives the stored values of m after its type changed
// without a new value. The compact value decides which number m holds.
func (s *Service) applyKind(ctx context.Context, actor uuid.UUID, region string, m *repository.ContactMechanism) error {
	m.Value, m.ValueCompact = s.normalizer.Rederive(phone.Record{
		ID:           m.ID,
		Kind:         m.Type,
		Value:        m.Value,
		ValueCompact: m.ValueCompact,
	}, region)
	return s.checkValue(ctx, actor, region, m)
}

func (s *Service) checkValue(ctx context.Context, actor uuid.UUID, region string, m *repository.ContactMechanism) error {
	if !m.Type.IsPhone() {
		return nil
	}

	outcome := s.normalizer.Validate(m.Value, m.Type, region)
	s.metrics.PhoneValidated(string(m.Type), outcome.Status.String(), string(outcome.Reason))
	if outcome.Valid() {
		return nil
	}

	s.log.WithContext(ctx).PhoneValidation(m.ID.String(), string(m.Type), outcome.Status.String(), string(outcome.Reason))

	if outcome.Status == phone.StatusInvalid {
		return apperr.Wrap(apperr.KindValidation, outcome.Message(m.PartyName), outcome.Err()).
			WithDetails(transport.InvalidPhoneDetails{Phone: outcome.Value, Party: m.PartyName})
	}

	key := outcome.WarningKey(m.ID.String())
	acknowledged, err := s.warnings.Consume(ctx, actor, key)
	if err != nil {
		return err
	}
	s.metrics.WarningRaised(acknowledged)
	if acknowledged {
		return nil
	}

	return apperr.Wrap(apperr.KindWarning, outcome.Message(m.PartyName), outcome.Err()).
		WithDetails(transport.PhoneWarningDetails{Key: key, ID: m.ID, Phone: outcome.Value})
}

// Preview formats and checks a value without storing anything.
func (s *Service) Preview(ctx context.Context, req transport.PreviewRequest) (transport.PreviewResponse, error) {
	region, err := s.regions.PhoneRegion(ctx, nil)
	if err != nil {
		return transport.PreviewResponse{}, err
	}

	kind := phone.Kind(req.Type)
	raw := sanitize.Value(req.Value)
	value := s.normalizer.FormatDisplay(raw, kind, region)
	outcome := s.normalizer.Validate(value, kind, region)

	resp := transport.PreviewResponse{
		Region:       region,
		Value:        value,
		ValueCompact: s.normalizer.FormatCompact(raw, kind, region),
		Status:       outcome.Status.String(),
		Reason:       string(outcome.Reason),
		Message:      outcome.Message(sanitize.Text(req.Party)),
	}
	return resp, nil
}
