package engine

import (
	"fmt"

	"github.com/spektr-org/certstat/schema"
)

// ============================================================================
// RUN — Explicit per-run context
// ============================================================================
// Holds the feature registry and one Counter per counted feature. Built once,
// handed to ingestion, then read for reports. Nothing is package-global.
// ============================================================================

// Run is the state of one aggregation run.
type Run struct {
	registry schema.Registry
	counters map[string]*Counter
	cfg      *config
}

// NewRun validates the registry and creates empty counters.
func NewRun(reg schema.Registry, opts ...Option) (*Run, error) {
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feature registry: %w", err)
	}
	r := &Run{
		registry: reg,
		counters: make(map[string]*Counter),
		cfg:      applyOptions(opts),
	}
	for _, f := range reg.Counted() {
		r.counters[f.Name] = NewCounter(f.Name)
	}
	return r, nil
}

// Registry returns the features the run counts.
func (r *Run) Registry() schema.Registry { return r.registry }

// TopK returns the configured report length.
func (r *Run) TopK() int { return r.cfg.TopK }

// Counter returns the counter of a counted feature, or nil.
func (r *Run) Counter(feature string) *Counter { return r.counters[feature] }

// Reports ranks every counted feature in registry order.
func (r *Run) Reports() []Report {
	counted := r.registry.Counted()
	reports := make([]Report, 0, len(counted))
	for _, f := range counted {
		c := r.counters[f.Name]
		entries, total := c.snapshot()
		reports = append(reports, Report{
			Feature: f.Name,
			Total:   total,
			Entries: rankEntries(entries, total, r.cfg.TopK),
		})
	}
	return reports
}
