package feeder

import (
	"context"
	"errors"
	"io"

	"golang.org/x/time/rate"

	bferrors "github.com/vnykmshr/bodyflow/pkg/common/errors"
	"github.com/vnykmshr/bodyflow/pkg/common/validation"
	"github.com/vnykmshr/bodyflow/pkg/streaming/payload"
)

// Config holds configuration options for a Feeder.
type Config struct {
	// ReadSize is the buffer size for each source read in bytes.
	// Default: 8KB
	ReadSize int

	// Limiter optionally throttles the read rate in bytes per second.
	// The limiter's burst must be at least ReadSize. Nil disables
	// throttling.
	Limiter *rate.Limiter

	// OnBackpressure is called each time the feeder pauses because the
	// consumer lags behind.
	OnBackpressure func()

	// OnFeed is called after each chunk is fed, with the chunk size.
	OnFeed func(n int)
}

// DefaultConfig returns a default feeder configuration.
func DefaultConfig() Config {
	return Config{
		ReadSize: 8 * 1024, // 8KB
	}
}

// Feeder pumps bytes from an io.Reader into a payload stream. It plays the
// transport-reading producer role: before every read it asks the stream
// whether the consumer keeps up, pausing on backpressure and stopping for
// good once every consumer handle is closed.
type Feeder struct {
	src    io.Reader
	dst    payload.Writer
	config Config
	wake   chan struct{}
}

// New creates a Feeder with default configuration.
func New(src io.Reader, dst payload.Writer) (*Feeder, error) {
	return NewWithConfig(src, dst, DefaultConfig())
}

// NewWithConfig creates a Feeder with the specified configuration.
func NewWithConfig(src io.Reader, dst payload.Writer, config Config) (*Feeder, error) {
	if src == nil {
		return nil, validation.ValidateNotNil("feeder", "source", nil)
	}
	if dst == nil {
		return nil, validation.ValidateNotNil("feeder", "destination", nil)
	}
	if config.ReadSize == 0 {
		config.ReadSize = DefaultConfig().ReadSize
	}
	if err := validation.ValidatePositive("feeder", "read_size", config.ReadSize); err != nil {
		return nil, err
	}
	if config.Limiter != nil && config.Limiter.Burst() < config.ReadSize {
		return nil, bferrors.NewValidationError("feeder", "limiter_burst", config.Limiter.Burst(), "must be at least read_size").
			WithHint("increase the limiter burst or lower ReadSize")
	}

	return &Feeder{
		src:    src,
		dst:    dst,
		config: config,
		wake:   make(chan struct{}, 1),
	}, nil
}

// waker signals the pause channel without blocking the consumer that fires it.
func (f *Feeder) waker() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Run drives the pump until the source ends, the source fails, the
// consumer drops the stream, or ctx is canceled.
//
// A clean source end feeds EOF and returns nil. A source error is recorded
// on the stream for the consumer and returned. A dropped consumer returns
// nil: it is a normal outcome, not a failure.
func (f *Feeder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch f.dst.NeedRead(f.waker) {
		case payload.StatusDropped:
			return nil
		case payload.StatusPause:
			if f.config.OnBackpressure != nil {
				f.config.OnBackpressure()
			}
			select {
			case <-f.wake:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		case payload.StatusRead:
		}

		if f.config.Limiter != nil {
			// Reserve allowance for a full read up front; short reads
			// simply under-use it.
			if err := f.config.Limiter.WaitN(ctx, f.config.ReadSize); err != nil {
				return err
			}
		}

		buf := make([]byte, f.config.ReadSize)
		n, err := f.src.Read(buf)
		if n > 0 {
			f.dst.FeedData(buf[:n])
			if f.config.OnFeed != nil {
				f.config.OnFeed(n)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				f.dst.FeedEOF()
				return nil
			}
			f.dst.SetError(err)
			return err
		}
	}
}
