package pipeline

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricDocumentsTotal     = "docrank_documents_total"
	MetricSectionsExtracted  = "docrank_sections_extracted_total"
	MetricExtractionDuration = "docrank_extraction_duration_seconds"
	MetricRunsTotal          = "docrank_runs_total"
	MetricRunDuration        = "docrank_run_duration_seconds"
)

// Document outcomes for labeling.
const (
	OutcomeRead       = "read"
	OutcomeUnreadable = "unreadable"
	OutcomeDuplicate  = "duplicate"
)

// Metrics holds the per-invocation Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	documents          *prometheus.CounterVec
	sections           prometheus.Counter
	extractionDuration prometheus.Histogram
	runs               *prometheus.CounterVec
	runDuration        prometheus.Histogram
}

// NewMetrics creates the collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricDocumentsTotal,
				Help: "Documents processed by outcome",
			},
			[]string{"outcome"},
		),
		sections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSectionsExtracted,
			Help: "Section candidates extracted across all documents",
		}),
		extractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricExtractionDuration,
			Help:    "Per-document parse and extraction time in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRunsTotal,
				Help: "Collection runs by final status",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRunDuration,
			Help:    "End-to-end collection run time in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.documents,
		m.sections,
		m.extractionDuration,
		m.runs,
		m.runDuration,
	}
}

func (m *Metrics) incDocuments(outcome string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) addSections(n int) {
	if m == nil {
		return
	}
	m.sections.Add(float64(n))
}

func (m *Metrics) observeExtraction(seconds float64) {
	if m == nil {
		return
	}
	m.extractionDuration.Observe(seconds)
}

func (m *Metrics) observeRun(status RunStatus, seconds float64) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(status)).Inc()
	m.runDuration.Observe(seconds)
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format, for a node-exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
