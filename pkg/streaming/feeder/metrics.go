package feeder

import (
	"io"

	"github.com/vnykmshr/bodyflow/pkg/common/validation"
	"github.com/vnykmshr/bodyflow/pkg/metrics"
	"github.com/vnykmshr/bodyflow/pkg/streaming/payload"
)

// NewWithMetrics creates a feeder with default configuration that records
// Prometheus metrics under the given feeder name.
func NewWithMetrics(src io.Reader, dst payload.Writer, name string, metricsConfig metrics.Config) (*Feeder, error) {
	return NewWithConfigAndMetrics(src, dst, DefaultConfig(), name, metricsConfig)
}

// NewWithConfigAndMetrics creates a feeder with custom config and metrics.
// The metrics hooks compose with any hooks already present in config.
func NewWithConfigAndMetrics(src io.Reader, dst payload.Writer, config Config, name string, metricsConfig metrics.Config) (*Feeder, error) {
	if err := validation.ValidateNotEmpty("feeder", "name", name); err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return NewWithConfig(src, dst, config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	reads := registry.FeederReads.WithLabelValues(name)
	bytesRead := registry.FeederBytesRead.WithLabelValues(name)
	pauses := registry.FeederPauses.WithLabelValues(name)

	prevFeed := config.OnFeed
	config.OnFeed = func(n int) {
		reads.Inc()
		bytesRead.Add(float64(n))
		if prevFeed != nil {
			prevFeed(n)
		}
	}

	prevPause := config.OnBackpressure
	config.OnBackpressure = func() {
		pauses.Inc()
		if prevPause != nil {
			prevPause()
		}
	}

	return NewWithConfig(src, dst, config)
}
