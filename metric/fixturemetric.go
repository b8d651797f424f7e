package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

type fixtureMetrics struct {
	written  *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newFixtureMetrics() *fixtureMetrics {
	return &fixtureMetrics{
		written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swig",
			Subsystem: "fixture",
			Name:      "written_total",
			Help:      "Fixtures written",
		}, []string{"fixture"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swig",
			Subsystem: "fixture",
			Name:      "bytes_total",
			Help:      "Fixture bytes written",
		}, []string{"fixture"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swig",
			Subsystem: "fixture",
			Name:      "failures_total",
			Help:      "Fixtures that failed to build or write",
		}, []string{"fixture"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "swig",
			Subsystem: "fixture",
			Name:      "duration_seconds",
			Help:      "Time to build and write one fixture",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"fixture"}),
	}
}

func (f *fixtureMetrics) Describe(ch chan<- *prometheus.Desc) {
	f.written.Describe(ch)
	f.bytes.Describe(ch)
	f.failures.Describe(ch)
	f.duration.Describe(ch)
}

func (f *fixtureMetrics) Collect(ch chan<- prometheus.Metric) {
	f.written.Collect(ch)
	f.bytes.Collect(ch)
	f.failures.Collect(ch)
	f.duration.Collect(ch)
}
