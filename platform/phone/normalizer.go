package phone

// Normalizer exposes the package functions as an injectable dependency.
// It holds no state; the zero value is ready to use.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// FormatDisplay implements the display rendering. See FormatDisplay.
func (Normalizer) FormatDisplay(raw string, kind Kind, region string) string {
	return FormatDisplay(raw, kind, region)
}

// FormatCompact implements the E.164 rendering. See FormatCompact.
func (Normalizer) FormatCompact(raw string, kind Kind, region string) string {
	return FormatCompact(raw, kind, region)
}

// Validate classifies a value. See Validate.
func (Normalizer) Validate(value string, kind Kind, region string) Outcome {
	return Validate(value, kind, region)
}

// Reconcile computes display rewrites for a region change. See Reconcile.
func (Normalizer) Reconcile(records []Record, oldRegion, newRegion string) []Update {
	return Reconcile(records, oldRegion, newRegion)
}

// Rederive recomputes stored values for a region. See Rederive.
func (Normalizer) Rederive(record Record, region string) (string, string) {
	return Rederive(record, region)
}
