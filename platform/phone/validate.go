package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// Status is the terminal result of validating a phone value.
type Status int

const (
	StatusValid Status = iota
	StatusWarning
	StatusInvalid
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusWarning:
		return "warning"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Reason explains a non-valid Outcome.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonUnparseable       Reason = "unparseable"
	ReasonNotValid          Reason = "not_valid"
	ReasonFixedLineAsMobile Reason = "fixed_line_as_mobile"
	ReasonMobileAsNonMobile Reason = "mobile_as_non_mobile"
)

// Outcome is the result of Validate. Value is the checked input, kept for
// message interpolation by the caller.
type Outcome struct {
	Status Status
	Reason Reason
	Value  string
}

// Validate classifies value for the given kind. Non-phone kinds always pass.
func Validate(value string, kind Kind, region string) Outcome {
	if !kind.IsPhone() {
		return Outcome{Status: StatusValid, Value: value}
	}

	number, err := Parse(value, region)
	if err != nil {
		return Outcome{Status: StatusInvalid, Reason: ReasonUnparseable, Value: value}
	}

	if !isPossibleAndValid(number) {
		return Outcome{Status: StatusInvalid, Reason: ReasonNotValid, Value: value}
	}

	switch phonenumbers.GetNumberType(number) {
	case phonenumbers.FIXED_LINE:
		if kind == KindMobile {
			return Outcome{Status: StatusWarning, Reason: ReasonFixedLineAsMobile, Value: value}
		}
	case phonenumbers.MOBILE:
		if kind != KindMobile {
			return Outcome{Status: StatusWarning, Reason: ReasonMobileAsNonMobile, Value: value}
		}
	}

	return Outcome{Status: StatusValid, Value: value}
}

// Valid reports whether the outcome neither blocks nor warns.
func (o Outcome) Valid() bool { return o.Status == StatusValid }

// Err returns the taxonomy error for the outcome, or nil when valid.
func (o Outcome) Err() error {
	switch o.Reason {
	case ReasonUnparseable:
		return fmt.Errorf("%w: %q", ErrParseFailure, o.Value)
	case ReasonNotValid:
		return fmt.Errorf("%w: %q", ErrInvalidNumber, o.Value)
	case ReasonFixedLineAsMobile, ReasonMobileAsNonMobile:
		return fmt.Errorf("%w: %q", ErrLineTypeMismatch, o.Value)
	default:
		return nil
	}
}

// Message returns the user-facing text for the outcome. party is the owning
// party's display name and is only used for invalid numbers.
func (o Outcome) Message(party string) string {
	switch o.Reason {
	case ReasonUnparseable, ReasonNotValid:
		return fmt.Sprintf("The phone number %q of party %q is not valid.", o.Value, party)
	case ReasonFixedLineAsMobile:
		return fmt.Sprintf("The phone number %q is a fixed line number.", o.Value)
	case ReasonMobileAsNonMobile:
		return fmt.Sprintf("The phone number %q is a mobile line number.", o.Value)
	default:
		return ""
	}
}

// WarningKey returns the acknowledgement key for a warning outcome on the
// record identified by id, or "" for outcomes that are not warnings.
func (o Outcome) WarningKey(id string) string {
	switch o.Reason {
	case ReasonFixedLineAsMobile:
		return "warn_fixed_line_phone." + id
	case ReasonMobileAsNonMobile:
		return "warn_mobile_line_phone." + id
	default:
		return ""
	}
}
