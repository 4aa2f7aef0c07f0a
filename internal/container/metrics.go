package container

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instrumentation for the container
// service.
type Metrics struct {
	compressTotal   prometheus.Counter
	decompressTotal prometheus.Counter
	errorsTotal     prometheus.Counter
	cacheHitsTotal  prometheus.Counter
	cacheMissTotal  prometheus.Counter

	compressedBytes prometheus.Histogram
	compressDuration   prometheus.Histogram
	decompressDuration prometheus.Histogram
}

// NewMetrics creates and registers container service metrics under the
// given namespace.
func NewMetrics(namespace string) *Metrics {
	const subsystem = "container"

	return &Metrics{
		compressTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "compress_total",
			Help:      "Total number of meshes compressed.",
		}),
		decompressTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decompress_total",
			Help:      "Total number of containers decompressed.",
		}),
		errorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total number of compress/decompress failures.",
		}),
		cacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_hits_total",
			Help:      "Total number of decode cache hits.",
		}),
		cacheMissTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_misses_total",
			Help:      "Total number of decode cache misses.",
		}),
		compressedBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "compressed_bytes",
			Help:      "Size of MG2 containers produced by compression.",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 16),
		}),
		compressDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "compress_duration_seconds",
			Help:      "Time taken to compress a mesh.",
			Buckets:   prometheus.DefBuckets,
		}),
		decompressDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decompress_duration_seconds",
			Help:      "Time taken to decompress a container.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) recordCompress(bytes int, seconds float64) {
	m.compressTotal.Inc()
	m.compressedBytes.Observe(float64(bytes))
	m.compressDuration.Observe(seconds)
}

func (m *Metrics) recordDecompress(seconds float64) {
	m.decompressTotal.Inc()
	m.decompressDuration.Observe(seconds)
}

func (m *Metrics) recordError() {
	m.errorsTotal.Inc()
}

func (m *Metrics) recordCacheHit() {
	m.cacheHitsTotal.Inc()
}

func (m *Metrics) recordCacheMiss() {
	m.cacheMissTotal.Inc()
}
