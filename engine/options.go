package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for NewRun()
// ============================================================================

// DefaultTopK is the report length when none is configured.
const DefaultTopK = 10

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopK int // entries per report
}

// WithTopK sets how many entries each report keeps. Negative values are
// treated as zero.
func WithTopK(k int) Option {
	return func(c *config) {
		if k < 0 {
			k = 0
		}
		c.TopK = k
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopK: DefaultTopK,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
