package phone

import (
	"errors"
	"testing"
)

func TestValidateOutcomeTable(t *testing.T) {
	cases := []struct {
		name       string
		value      string
		kind       Kind
		wantStatus Status
		wantReason Reason
	}{
		{"unparseable", "not a number", KindPhone, StatusInvalid, ReasonUnparseable},
		{"too short", "+34 123", KindPhone, StatusInvalid, ReasonNotValid},
		{"fixed line as mobile", "918041213", KindMobile, StatusWarning, ReasonFixedLineAsMobile},
		{"mobile as phone", "612345678", KindPhone, StatusWarning, ReasonMobileAsNonMobile},
		{"mobile as fax", "612345678", KindFax, StatusWarning, ReasonMobileAsNonMobile},
		{"fixed line as phone", "918041213", KindPhone, StatusValid, ReasonNone},
		{"fixed line as fax", "918 04 12 13", KindFax, StatusValid, ReasonNone},
		{"mobile as mobile", "612 34 56 78", KindMobile, StatusValid, ReasonNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := Validate(tc.value, tc.kind, "ES")
			if outcome.Status != tc.wantStatus {
				t.Fatalf("expected status %s, got %s", tc.wantStatus, outcome.Status)
			}
			if outcome.Reason != tc.wantReason {
				t.Fatalf("expected reason %q, got %q", tc.wantReason, outcome.Reason)
			}
			if outcome.Value != tc.value {
				t.Fatalf("expected outcome value %q, got %q", tc.value, outcome.Value)
			}
		})
	}
}

func TestValidateWithoutRegionRejectsNationalNumber(t *testing.T) {
	outcome := Validate("918041213", KindPhone, "")
	if outcome.Status != StatusInvalid || outcome.Reason != ReasonUnparseable {
		t.Fatalf("expected invalid/unparseable, got %s/%s", outcome.Status, outcome.Reason)
	}
}

func TestOutcomeErrWrapsTaxonomy(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    error
	}{
		{Outcome{Status: StatusInvalid, Reason: ReasonUnparseable, Value: "x"}, ErrParseFailure},
		{Outcome{Status: StatusInvalid, Reason: ReasonNotValid, Value: "+34 123"}, ErrInvalidNumber},
		{Outcome{Status: StatusWarning, Reason: ReasonFixedLineAsMobile, Value: "918041213"}, ErrLineTypeMismatch},
		{Outcome{Status: StatusWarning, Reason: ReasonMobileAsNonMobile, Value: "612345678"}, ErrLineTypeMismatch},
	}

	for _, tc := range cases {
		if err := tc.outcome.Err(); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v for reason %q, got %v", tc.want, tc.outcome.Reason, err)
		}
	}

	if err := (Outcome{Status: StatusValid}).Err(); err != nil {
		t.Fatalf("expected nil error for valid outcome, got %v", err)
	}
}

func TestOutcomeWarningKeyAndMessage(t *testing.T) {
	fixed := Outcome{Status: StatusWarning, Reason: ReasonFixedLineAsMobile, Value: "918041213"}
	if key := fixed.WarningKey("42"); key != "warn_fixed_line_phone.42" {
		t.Fatalf("unexpected key %q", key)
	}
	if msg := fixed.Message(""); msg != `The phone number "918041213" is a fixed line number.` {
		t.Fatalf("unexpected message %q", msg)
	}

	mobile := Outcome{Status: StatusWarning, Reason: ReasonMobileAsNonMobile, Value: "612345678"}
	if key := mobile.WarningKey("42"); key != "warn_mobile_line_phone.42" {
		t.Fatalf("unexpected key %q", key)
	}

	invalid := Outcome{Status: StatusInvalid, Reason: ReasonNotValid, Value: "123"}
	if key := invalid.WarningKey("42"); key != "" {
		t.Fatalf("expected no key for invalid outcome, got %q", key)
	}
	if msg := invalid.Message("Acme"); msg != `The phone number "123" of party "Acme" is not valid.` {
		t.Fatalf("unexpected message %q", msg)
	}
}
