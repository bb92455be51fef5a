package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersExposed(t *testing.T) {
	c := New()
	c.PhoneValidated("mobile", "warning", "fixed_line_as_mobile")
	c.PhoneValidated("mobile", "warning", "fixed_line_as_mobile")
	c.RegionChanged(3)
	c.Renormalized(2, 5)

	if got := testutil.ToFloat64(c.validations.WithLabelValues("mobile", "warning", "fixed_line_as_mobile")); got != 2 {
		t.Fatalf("expected 2 validations, got %v", got)
	}
	if got := testutil.ToFloat64(c.reconciled); got != 3 {
		t.Fatalf("expected 3 reconciled, got %v", got)
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "party_phonecountry_contacts_renormalized_total") {
		t.Fatalf("expected renormalized counter in exposition output")
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.PhoneValidated("phone", "valid", "")
	c.RegionChanged(1)
	c.Renormalized(1, 1)
	c.WarningRaised(true)
}
