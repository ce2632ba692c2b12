package engine

// ============================================================================
// CERTSTAT ENGINE TYPES — Counts, ranked entries, reports
// ============================================================================
// The engine owns no I/O. Ingestion feeds Counters; ranking reads them.
// ============================================================================

// NoPercentage marks a percentage with no basis (feature total is zero).
const NoPercentage = -1.0

// ValueCount is one observed feature value and its certified count.
type ValueCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// RankedEntry is a ValueCount placed in a top-K report.
type RankedEntry struct {
	Value      string  `json:"value" yaml:"value"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Report is the ranked result for one feature.
type Report struct {
	Feature string        `json:"feature" yaml:"feature"`
	Total   int           `json:"totalCertifiedApplications" yaml:"total_certified_applications"`
	Entries []RankedEntry `json:"entries" yaml:"entries"`
}
