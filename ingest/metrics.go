package ingest

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts ingestion work. All methods are nil-safe.
type Metrics struct {
	files     prometheus.Counter
	certified prometheus.Counter
	skipped   prometheus.Counter
	values    *prometheus.CounterVec
}

// NewMetrics creates ingestion metrics and registers them when registerer
// is non-nil.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "certstat_rows_total",
		Help: "Data rows read, by outcome",
	}, []string{"outcome"})

	m := &Metrics{
		files: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "certstat_files_ingested_total",
			Help: "Input files fully ingested",
		}),
		certified: rows.WithLabelValues("certified"),
		skipped:   rows.WithLabelValues("skipped"),
		values: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "certstat_values_recorded_total",
			Help: "Non-empty feature values recorded",
		}, []string{"feature"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.files)
		registerer.MustRegister(rows)
		registerer.MustRegister(m.values)
	}
	return m
}

func (m *Metrics) observeFile(stats FileStats) {
	if m == nil {
		return
	}
	m.files.Inc()
	m.certified.Add(float64(stats.Certified))
	m.skipped.Add(float64(stats.Skipped))
	for feature, n := range stats.Recorded {
		m.values.WithLabelValues(feature).Add(float64(n))
	}
}
