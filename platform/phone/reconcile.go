package phone

import (
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// Record is the snapshot of a stored contact mechanism needed to re-derive
// its display value.
type Record struct {
	ID           uuid.UUID
	Kind         Kind
	Value        string
	ValueCompact string
}

// Update is a new display value for the record with the given ID.
type Update struct {
	ID    uuid.UUID
	Value string
}

// Reconcile computes the display values that change when the default region
// moves from oldRegion to newRegion. Numbers of the old region switch to
// international format and numbers of the new region to national format;
// everything else, including unparseable compact values, is left alone.
// The caller applies the result in the same transaction as the region write.
func Reconcile(records []Record, oldRegion, newRegion string) []Update {
	oldRegion = NormalizeRegion(oldRegion)
	newRegion = NormalizeRegion(newRegion)
	if oldRegion == newRegion {
		return nil
	}

	var updates []Update
	for _, record := range records {
		if !record.Kind.IsPhone() {
			continue
		}

		natural, err := NaturalRegion(record.ValueCompact)
		if err != nil {
			continue
		}

		var value string
		var ok bool
		switch natural {
		case oldRegion:
			value, ok = render(record.Value, oldRegion, phonenumbers.INTERNATIONAL)
		case newRegion:
			// The display value keeps extensions; the compact value is the fallback.
			value, ok = render(record.Value, "", phonenumbers.NATIONAL)
			if !ok {
				value, ok = render(record.ValueCompact, "", phonenumbers.NATIONAL)
			}
		}

		if !ok || value == record.Value {
			continue
		}
		updates = append(updates, Update{ID: record.ID, Value: value})
	}

	return updates
}

func render(raw, region string, format phonenumbers.PhoneNumberFormat) (string, bool) {
	number, err := Parse(raw, region)
	if err != nil {
		return "", false
	}
	return phonenumbers.Format(number, format), true
}
