package phone

import "github.com/nyaruka/phonenumbers"

// Rederive recomputes the display and compact values of a stored record for
// region. When the compact value parses on its own it fixes which number the
// record holds: the display value then only contributes its extension, and
// only if it reads as that same number under region. Records without a
// parseable compact value are formatted from the display value as on a write.
func Rederive(record Record, region string) (value, compact string) {
	if !record.Kind.IsPhone() {
		return record.Value, record.Value
	}

	region = NormalizeRegion(region)
	stored, err := Parse(record.ValueCompact, "")
	if err != nil {
		return FormatDisplay(record.Value, record.Kind, region), FormatCompact(record.Value, record.Kind, region)
	}

	number := stored
	if shown, err := Parse(record.Value, region); err == nil && sameNumber(shown, stored) {
		number = shown
	}

	return display(number, region, record.Value), phonenumbers.Format(stored, phonenumbers.E164)
}

func sameNumber(a, b *phonenumbers.PhoneNumber) bool {
	return a.GetCountryCode() == b.GetCountryCode() &&
		a.GetNationalNumber() == b.GetNationalNumber() &&
		a.GetItalianLeadingZero() == b.GetItalianLeadingZero()
}
