package service

import (
	"context"

	"party_phonecountry/internal/contacts/transport"
	"party_phonecountry/internal/events"
	"party_phonecountry/platform/db"

	"github.com/google/uuid"
)

const defaultBatchSize = 500

// RenormalizeAll recomputes the stored display and compact values of every
// phone-kind record with the current default region. A parseable compact
// value keeps the number it names. Records are walked in id order, one
// transaction per batch. Values that fail to parse are left as they are.
func (s *Service) RenormalizeAll(ctx context.Context, requestedBy string, batchSize int) (transport.RenormalizeResponse, error) {
	if batchSize < 1 {
		batchSize = s.batchSize
	}

	var (
		result transport.RenormalizeResponse
		after  = uuid.Nil
	)
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var (
			scanned int
			last    uuid.UUID
		)
		err := s.tx.WithTx(ctx, func(q db.DBTX) error {
			region, err := s.regions.PhoneRegion(ctx, q)
			if err != nil {
				return err
			}
			result.Region = region

			records, err := s.repo.ListPhoneBatch(ctx, q, after, batchSize)
			if err != nil {
				return err
			}
			scanned = len(records)

			for _, rec := range records {
				last = rec.ID
				value, compact := s.normalizer.Rederive(rec, region)
				if value == rec.Value && compact == rec.ValueCompact {
					continue
				}
				if err := s.repo.UpdateValues(ctx, q, rec.ID, value, compact); err != nil {
					return err
				}
				result.Updated++
			}
			return nil
		})
		if err != nil {
			return result, err
		}

		result.Scanned += scanned
		if scanned < batchSize {
			break
		}
		after = last
	}

	s.metrics.Renormalized(result.Updated, result.Scanned-result.Updated)
	s.log.WithContext(ctx).Info("contacts renormalized",
		"region", result.Region,
		"scanned", result.Scanned,
		"updated", result.Updated,
		"requested_by", requestedBy,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.ContactsRenormalized{
			BaseEvent: events.NewBaseEvent(),
			Region:    result.Region,
			Scanned:   result.Scanned,
			Updated:   result.Updated,
			Requested: requestedBy,
		})
	}
	return result, nil
}
