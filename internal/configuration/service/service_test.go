package service

import (
	"context"
	"errors"
	"testing"

	"party_phonecountry/internal/configuration/repository"
	"party_phonecountry/internal/configuration/transport"
	"party_phonecountry/internal/events"
	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/db"
	"party_phonecountry/platform/logger"
	"party_phonecountry/platform/phone"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

const unexpectedErr = "unexpected error: %v"

type fakeTx struct{ failCommit error }

func (f fakeTx) WithTx(_ context.Context, fn func(q db.DBTX) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	return f.failCommit
}

type fakeStore struct {
	region string
	locks  []repository.LockMode
	writes int
}

func (s *fakeStore) Get(_ context.Context, _ db.DBTX, lock repository.LockMode) (repository.Configuration, error) {
	s.locks = append(s.locks, lock)
	return repository.Configuration{PhoneRegion: s.region}, nil
}

func (s *fakeStore) SetPhoneRegion(_ context.Context, _ db.DBTX, region string) (repository.Configuration, error) {
	s.writes++
	s.region = region
	return repository.Configuration{PhoneRegion: region}, nil
}

type fakeContacts struct {
	records []phone.Record
	applied []phone.Update
	listed  int
}

func (c *fakeContacts) PhoneRecords(context.Context, db.DBTX) ([]phone.Record, error) {
	c.listed++
	return c.records, nil
}

func (c *fakeContacts) ApplyDisplayValues(_ context.Context, _ db.DBTX, updates []phone.Update) (int, error) {
	c.applied = append(c.applied, updates...)
	return len(updates), nil
}

func display(t *testing.T, raw, region string, f phonenumbers.PhoneNumberFormat) string {
	t.Helper()
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return phonenumbers.Format(num, f)
}

func TestSetPhoneRegionReconcilesOldAndNewRegions(t *testing.T) {
	esID, frID, deID := uuid.New(), uuid.New(), uuid.New()
	contacts := &fakeContacts{records: []phone.Record{
		{ID: esID, Kind: phone.KindPhone, Value: display(t, "+34918041213", "ES", phonenumbers.NATIONAL), ValueCompact: "+34918041213"},
		{ID: frID, Kind: phone.KindPhone, Value: display(t, "+33142685300", "", phonenumbers.INTERNATIONAL), ValueCompact: "+33142685300"},
		{ID: deID, Kind: phone.KindPhone, Value: display(t, "+49301234567", "", phonenumbers.INTERNATIONAL), ValueCompact: "+49301234567"},
	}}
	store := &fakeStore{region: "ES"}
	bus := events.NewInMemoryBus(logger.Discard())
	var published events.PhoneRegionChanged
	bus.Subscribe(events.PhoneRegionChanged{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		published = e.(events.PhoneRegionChanged)
		return nil
	}))

	svc := New(store, fakeTx{}, contacts, bus, logger.Discard())
	resp, err := svc.SetPhoneRegion(context.Background(), uuid.New(), transport.SetPhoneRegionRequest{Region: " fr "})
	if err != nil {
		t.Fatalf(unexpectedErr, err)
	}
	bus.Wait()

	if resp.PreviousRegion != "ES" || resp.Region != "FR" || resp.UpdatedContacts != 2 {
		t.Fatalf("unexpected response %#v", resp)
	}
	if store.locks[0] != repository.LockUpdate {
		t.Fatalf("expected region change to take the update lock, got %v", store.locks)
	}

	want := map[uuid.UUID]string{
		esID: display(t, "+34918041213", "", phonenumbers.INTERNATIONAL),
		frID: display(t, "+33142685300", "", phonenumbers.NATIONAL),
	}
	for _, u := range contacts.applied {
		if u.ID == deID {
			t.Fatal("expected DE number to stay untouched")
		}
		if want[u.ID] != u.Value {
			t.Fatalf("expected %q for %s, got %q", want[u.ID], u.ID, u.Value)
		}
	}
	if published.Region != "FR" || published.UpdatedContacts != 2 {
		t.Fatalf("expected region change event, got %#v", published)
	}
}

func TestSetPhoneRegionSameRegionIsNoop(t *testing.T) {
	store := &fakeStore{region: "ES"}
	contacts := &fakeContacts{}
	svc := New(store, fakeTx{}, contacts, nil, nil)

	resp, err := svc.SetPhoneRegion(context.Background(), uuid.New(), transport.SetPhoneRegionRequest{Region: "es"})
	if err != nil {
		t.Fatalf(unexpectedErr, err)
	}
	if resp.UpdatedContacts != 0 || store.writes != 0 || contacts.listed != 0 {
		t.Fatalf("expected no writes, got %#v writes=%d listed=%d", resp, store.writes, contacts.listed)
	}
}

func TestSetPhoneRegionRejectsUnknownRegion(t *testing.T) {
	svc := New(&fakeStore{}, fakeTx{}, &fakeContacts{}, nil, nil)

	_, err := svc.SetPhoneRegion(context.Background(), uuid.New(), transport.SetPhoneRegionRequest{Region: "XX"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetPhoneRegionClearing(t *testing.T) {
	id := uuid.New()
	contacts := &fakeContacts{records: []phone.Record{
		{ID: id, Kind: phone.KindMobile, Value: display(t, "+34612345678", "ES", phonenumbers.NATIONAL), ValueCompact: "+34612345678"},
	}}
	svc := New(&fakeStore{region: "ES"}, fakeTx{}, contacts, nil, nil)

	resp, err := svc.SetPhoneRegion(context.Background(), uuid.New(), transport.SetPhoneRegionRequest{Region: ""})
	if err != nil {
		t.Fatalf(unexpectedErr, err)
	}
	if resp.Region != "" || resp.UpdatedContacts != 1 {
		t.Fatalf("unexpected response %#v", resp)
	}
	if want := display(t, "+34612345678", "", phonenumbers.INTERNATIONAL); contacts.applied[0].Value != want {
		t.Fatalf("expected %q, got %q", want, contacts.applied[0].Value)
	}
}

func TestSetPhoneRegionFailedCommitPublishesNothing(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	bus.Subscribe(events.PhoneRegionChanged{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		t.Error("unexpected event after failed commit")
		return nil
	}))
	commitErr := errors.New("commit failed")
	svc := New(&fakeStore{region: "ES"}, fakeTx{failCommit: commitErr}, &fakeContacts{}, bus, nil)

	_, err := svc.SetPhoneRegion(context.Background(), uuid.New(), transport.SetPhoneRegionRequest{Region: "FR"})
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
	bus.Wait()
}

func TestPhoneRegionOutsideTransactionTakesNoLock(t *testing.T) {
	store := &fakeStore{region: "ES"}
	svc := New(store, fakeTx{}, &fakeContacts{}, nil, nil)

	if _, err := svc.PhoneRegion(context.Background(), nil); err != nil {
		t.Fatalf(unexpectedErr, err)
	}
	if store.locks[0] != repository.LockNone {
		t.Fatalf("expected no lock outside a transaction, got %v", store.locks[0])
	}
}
