package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline's Prometheus collectors
type Metrics struct {
	Runs         prometheus.Counter
	FilesScanned prometheus.Counter
	FilesFailed  prometheus.Counter
	Entities     *prometheus.CounterVec
	Classes      prometheus.Gauge
	RunDuration  prometheus.Histogram
}

// NewMetrics creates the pipeline collectors
func NewMetrics() *Metrics {
	return &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "extdoc_runs_total",
			Help: "Total number of extraction runs",
		}),
		FilesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "extdoc_files_scanned_total",
			Help: "Total number of source files scanned",
		}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "extdoc_files_failed_total",
			Help: "Total number of source files that could not be read completely",
		}),
		Entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "extdoc_entities_extracted_total",
			Help: "Total number of entities extracted from comments",
		}, []string{"kind"}),
		Classes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "extdoc_classes",
			Help: "Number of documented classes in the last resolved model",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "extdoc_run_duration_seconds",
			Help:    "Duration of extraction runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Runs.Describe(ch)
	m.FilesScanned.Describe(ch)
	m.FilesFailed.Describe(ch)
	m.Entities.Describe(ch)
	m.Classes.Describe(ch)
	m.RunDuration.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Runs.Collect(ch)
	m.FilesScanned.Collect(ch)
	m.FilesFailed.Collect(ch)
	m.Entities.Collect(ch)
	m.Classes.Collect(ch)
	m.RunDuration.Collect(ch)
}

func (m *Metrics) observeFile(res fileResult) {
	if m == nil {
		return
	}
	m.FilesScanned.Inc()
	if res.err != nil {
		m.FilesFailed.Inc()
	}
	m.Entities.WithLabelValues("class").Add(float64(len(res.entities.Classes)))
	m.Entities.WithLabelValues("cfg").Add(float64(len(res.entities.Cfgs)))
	m.Entities.WithLabelValues("property").Add(float64(len(res.entities.Properties)))
	m.Entities.WithLabelValues("method").Add(float64(len(res.entities.Methods)))
	m.Entities.WithLabelValues("event").Add(float64(len(res.entities.Events)))
}
