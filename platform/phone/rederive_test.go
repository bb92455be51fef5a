package phone

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

const caRaw = "416 555 0123"

func caRecord(t *testing.T) Record {
	t.Helper()
	return Record{
		ID:           uuid.New(),
		Kind:         KindPhone,
		Value:        FormatDisplay(caRaw, KindPhone, "CA"),
		ValueCompact: FormatCompact(caRaw, KindPhone, "CA"),
	}
}

func TestRederiveKeepsIdentityOfSecondaryRegionNumber(t *testing.T) {
	record := caRecord(t)
	if record.ValueCompact != "+14165550123" {
		t.Fatalf("expected CA compact value, got %q", record.ValueCompact)
	}

	// CA shares +1 with US, so a CA to FR change leaves the national text in place.
	if updates := Reconcile([]Record{record}, "CA", "FR"); len(updates) != 0 {
		t.Fatalf("expected no reconcile updates, got %v", updates)
	}

	value, compact := Rederive(record, "FR")
	if compact != record.ValueCompact {
		t.Fatalf("expected compact %q kept, got %q", record.ValueCompact, compact)
	}
	want := phonenumbers.Format(mustParse(t, record.ValueCompact, ""), phonenumbers.INTERNATIONAL)
	if value != want {
		t.Fatalf("expected international display %q, got %q", want, value)
	}
}

func TestRederiveKeepsExtensionOfSameNumber(t *testing.T) {
	record := Record{
		Kind:         KindPhone,
		Value:        "918041213 ext.412",
		ValueCompact: "+34918041213",
	}

	value, compact := Rederive(record, "ES")
	want := phonenumbers.Format(mustParse(t, "918041213 ext.412", "ES"), phonenumbers.NATIONAL)
	if value != want {
		t.Fatalf("expected display %q, got %q", want, value)
	}
	if compact != "+34918041213" {
		t.Fatalf("expected compact unchanged, got %q", compact)
	}
}

func TestRederiveFallsBackToDisplayWithoutCompactNumber(t *testing.T) {
	record := Record{Kind: KindPhone, Value: "918041213", ValueCompact: "918041213"}

	value, compact := Rederive(record, "ES")
	if value != FormatDisplay("918041213", KindPhone, "ES") {
		t.Fatalf("expected write-path display, got %q", value)
	}
	if compact != "+34918041213" {
		t.Fatalf("expected compact from display value, got %q", compact)
	}
}

func TestRederiveNonPhoneKind(t *testing.T) {
	value, compact := Rederive(Record{Kind: KindEmail, Value: "a@b.c", ValueCompact: "x"}, "ES")
	if value != "a@b.c" || compact != "a@b.c" {
		t.Fatalf("expected email passed through, got %q / %q", value, compact)
	}
}
