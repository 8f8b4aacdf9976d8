// Package metrics provides Prometheus instrumentation for bodyflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for bodyflow components.
type Registry struct {
	// Payload Stream Metrics
	PayloadBufferedBytes *prometheus.GaugeVec
	PayloadCapacityBytes *prometheus.GaugeVec
	ChunksFed            *prometheus.CounterVec
	BytesFed             *prometheus.CounterVec
	BackpressurePauses   *prometheus.CounterVec
	StreamsCompleted     *prometheus.CounterVec
	StreamsFailed        *prometheus.CounterVec
	StreamsDropped       *prometheus.CounterVec

	// Feeder Metrics
	FeederReads     *prometheus.CounterVec
	FeederBytesRead *prometheus.CounterVec
	FeederPauses    *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by bodyflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Payload Stream Metrics
		PayloadBufferedBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "buffered_bytes",
				Help:      "Number of bytes currently buffered in the stream",
			},
			[]string{"stream_name"},
		),

		PayloadCapacityBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "capacity_bytes",
				Help:      "Backpressure threshold of the stream in bytes",
			},
			[]string{"stream_name"},
		),

		ChunksFed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "chunks_fed_total",
				Help:      "Total number of chunks fed by the producer",
			},
			[]string{"stream_name"},
		),

		BytesFed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "bytes_fed_total",
				Help:      "Total number of bytes fed by the producer",
			},
			[]string{"stream_name"},
		),

		BackpressurePauses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "backpressure_pauses_total",
				Help:      "Total number of times the producer was asked to pause",
			},
			[]string{"stream_name"},
		),

		StreamsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "streams_completed_total",
				Help:      "Total number of streams that ended cleanly",
			},
			[]string{"stream_name"},
		),

		StreamsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "streams_failed_total",
				Help:      "Total number of streams terminated with a producer error",
			},
			[]string{"stream_name"},
		),

		StreamsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "payload",
				Name:      "streams_dropped_total",
				Help:      "Total number of streams cancelled by the consumer",
			},
			[]string{"stream_name"},
		),

		// Feeder Metrics
		FeederReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "feeder",
				Name:      "reads_total",
				Help:      "Total number of source reads performed by the feeder",
			},
			[]string{"feeder_name"},
		),

		FeederBytesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "feeder",
				Name:      "bytes_read_total",
				Help:      "Total number of bytes read from the source by the feeder",
			},
			[]string{"feeder_name"},
		),

		FeederPauses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bodyflow",
				Subsystem: "feeder",
				Name:      "pauses_total",
				Help:      "Total number of backpressure pauses observed by the feeder",
			},
			[]string{"feeder_name"},
		),
	}
}
