// Package prometheus records enumeration metrics with
// github.com/prometheus/client_golang and writes them in the text
// exposition format, for node_exporter's textfile collector.
package prometheus

import (
	"time"

	"github.com/fwojciec/polcat"
	"github.com/fwojciec/polcat/crawl"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one enumeration run.
type Metrics struct {
	registry *prometheus.Registry

	partitions   *prometheus.CounterVec
	linksSkipped *prometheus.CounterVec
	documents    *prometheus.GaugeVec
	duration     prometheus.Gauge
	lastSuccess  prometheus.Gauge
}

// NewMetrics registers the collectors against a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		partitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "polcat_partitions_total",
			Help: "Index partitions queried, by scheme and result.",
		}, []string{"scheme", "result"}),
		linksSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "polcat_links_skipped_total",
			Help: "Candidate links skipped, by error code.",
		}, []string{"code"}),
		documents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "polcat_documents",
			Help: "Documents in the exported catalog, by type.",
		}, []string{"type"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "polcat_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "polcat_last_success_timestamp_seconds",
			Help: "Unix time the catalog was last exported.",
		}),
	}
	m.registry.MustRegister(m.partitions, m.linksSkipped, m.documents, m.duration, m.lastSuccess)
	return m
}

// Observe updates the counters from a progress event. It has the
// crawl.ProgressFunc signature.
func (m *Metrics) Observe(event crawl.ProgressEvent) {
	switch event.Type {
	case crawl.ProgressPartitionDone:
		m.partitions.WithLabelValues(string(event.Partition.Scheme), "ok").Inc()
	case crawl.ProgressPartitionFailed:
		m.partitions.WithLabelValues(string(event.Partition.Scheme), "failed").Inc()
	case crawl.ProgressLinkSkipped:
		m.linksSkipped.WithLabelValues(polcat.ErrorCode(event.Error)).Inc()
	}
}

// RecordExport sets the catalog gauges after a successful export.
func (m *Metrics) RecordExport(catalog *polcat.Catalog, duration time.Duration, now time.Time) {
	m.documents.Reset()
	for _, doc := range catalog.Documents() {
		m.documents.WithLabelValues(string(doc.Type)).Inc()
	}
	m.duration.Set(duration.Seconds())
	m.lastSuccess.Set(float64(now.Unix()))
}

// WriteTextfile atomically writes the metrics to path.
// Returns EIO if the file cannot be written.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return polcat.Errorf(polcat.EIO, "write metrics %s: %v", path, err)
	}
	return nil
}
