// Package phone provides country-aware phone number normalization.
// This is part of the platform layer and contains no business logic:
// every function is pure and the default region is passed in explicitly.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	// ErrParseFailure means the raw text could not be read as a phone number.
	ErrParseFailure = errors.New("phone number cannot be parsed")
	// ErrInvalidNumber means the number parsed but is not possible or not valid.
	ErrInvalidNumber = errors.New("phone number is not valid")
	// ErrLineTypeMismatch means the line type disagrees with the registered kind.
	ErrLineTypeMismatch = errors.New("phone number line type does not match kind")
)

// Parse reads raw as a phone number, using region as the assumed country
// when raw carries no international prefix. An empty region means no hint.
func Parse(raw, region string) (*phonenumbers.PhoneNumber, error) {
	number, err := phonenumbers.Parse(raw, NormalizeRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return number, nil
}

// FormatDisplay returns the human readable form of raw. Numbers valid for
// region are rendered in national format, other valid numbers in
// international format. Non-phone kinds and unreadable or invalid input are
// returned unchanged.
func FormatDisplay(raw string, kind Kind, region string) string {
	if !kind.IsPhone() {
		return raw
	}

	region = NormalizeRegion(region)
	number, err := Parse(raw, region)
	if err != nil {
		return raw
	}

	return display(number, region, raw)
}

// display renders a parsed number for region, falling back to raw for
// numbers that are not possible or not valid.
func display(number *phonenumbers.PhoneNumber, region, raw string) string {
	if !isPossibleAndValid(number) {
		return raw
	}

	if region != "" && phonenumbers.IsValidNumberForRegion(number, region) {
		return phonenumbers.Format(number, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}

// FormatCompact returns the E.164 form of raw. Non-phone kinds and
// unreadable input are returned unchanged.
func FormatCompact(raw string, kind Kind, region string) string {
	if !kind.IsPhone() {
		return raw
	}

	number, err := Parse(raw, region)
	if err != nil {
		return raw
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// NaturalRegion returns the main region of the country calling code of an
// E.164 value, or an error when the value cannot be parsed.
func NaturalRegion(compact string) (string, error) {
	number, err := Parse(compact, "")
	if err != nil {
		return "", err
	}
	return phonenumbers.GetRegionCodeForCountryCode(int(number.GetCountryCode())), nil
}

// NormalizeRegion trims and upper-cases a two-letter region code.
func NormalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

// IsSupportedRegion reports whether region is empty (no default) or a
// region known to the numbering metadata.
func IsSupportedRegion(region string) bool {
	region = NormalizeRegion(region)
	if region == "" {
		return true
	}
	return phonenumbers.GetSupportedRegions()[region]
}

func isPossibleAndValid(number *phonenumbers.PhoneNumber) bool {
	return phonenumbers.IsPossibleNumber(number) && phonenumbers.IsValidNumber(number)
}
