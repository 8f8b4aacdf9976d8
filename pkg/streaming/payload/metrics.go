package payload

import (
	"github.com/vnykmshr/bodyflow/pkg/common/validation"
	"github.com/vnykmshr/bodyflow/pkg/metrics"
)

// InstrumentedSender wraps a Sender with Prometheus metrics collection.
// It records fed chunks and bytes, buffer depth, backpressure pause
// transitions, and how the stream terminated.
type InstrumentedSender struct {
	sender   *Sender
	name     string
	registry *metrics.Registry

	paused    bool
	dropped   bool
	completed bool
	failed    bool
}

var _ Writer = (*InstrumentedSender)(nil)

// NewWithMetrics creates a payload stream with default configuration whose
// producer side records metrics under the given stream name.
func NewWithMetrics(name string, metricsConfig metrics.Config) (Writer, *Payload, error) {
	return NewWithConfigAndMetrics(DefaultConfig(), name, metricsConfig)
}

// NewWithConfigAndMetrics creates a payload stream with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Writer, *Payload, error) {
	if err := validation.ValidateNotEmpty("payload", "name", name); err != nil {
		return nil, nil, err
	}

	sender, p, err := NewWithConfig(config)
	if err != nil {
		return nil, nil, err
	}

	if !metricsConfig.Enabled {
		return sender, p, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	capacity := config.Capacity
	if capacity == 0 {
		capacity = DefaultBufferCapacity
	}

	is := &InstrumentedSender{
		sender:   sender,
		name:     name,
		registry: registry,
	}
	is.registry.PayloadCapacityBytes.WithLabelValues(name).Set(float64(capacity))
	is.registry.PayloadBufferedBytes.WithLabelValues(name).Set(0)

	return is, p, nil
}

// FeedData implements Writer.
func (is *InstrumentedSender) FeedData(data []byte) {
	is.sender.FeedData(data)

	is.registry.ChunksFed.WithLabelValues(is.name).Inc()
	is.registry.BytesFed.WithLabelValues(is.name).Add(float64(len(data)))
	is.updateBuffered()
}

// FeedEOF implements Writer.
func (is *InstrumentedSender) FeedEOF() {
	is.sender.FeedEOF()

	if !is.completed && !is.failed {
		is.completed = true
		is.registry.StreamsCompleted.WithLabelValues(is.name).Inc()
	}
}

// SetError implements Writer.
func (is *InstrumentedSender) SetError(err error) {
	is.sender.SetError(err)

	if !is.failed {
		is.failed = true
		is.registry.StreamsFailed.WithLabelValues(is.name).Inc()
	}
}

// NeedRead implements Writer. Pause transitions are counted on the
// Read-to-Pause edge, so repeated polls while paused record one event.
func (is *InstrumentedSender) NeedRead(wake Waker) Status {
	status := is.sender.NeedRead(wake)
	is.updateBuffered()

	switch status {
	case StatusRead:
		is.paused = false
	case StatusPause:
		if !is.paused {
			is.paused = true
			is.registry.BackpressurePauses.WithLabelValues(is.name).Inc()
		}
	case StatusDropped:
		if !is.dropped {
			is.dropped = true
			is.registry.StreamsDropped.WithLabelValues(is.name).Inc()
		}
	}
	return status
}

func (is *InstrumentedSender) updateBuffered() {
	is.registry.PayloadBufferedBytes.WithLabelValues(is.name).Set(float64(is.sender.Buffered()))
}
