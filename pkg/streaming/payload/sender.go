package payload

// Status is the producer's backpressure answer, queried before each read
// from the underlying source.
type Status int

const (
	// StatusRead means the consumer keeps up; continue reading and feeding.
	StatusRead Status = iota

	// StatusPause means the buffer is at or over capacity; suspend reading
	// until the registered waker fires.
	StatusPause

	// StatusDropped means every consumer handle was closed; stop reading
	// entirely, nothing fed from now on can be observed.
	StatusDropped
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusRead:
		return "read"
	case StatusPause:
		return "pause"
	case StatusDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Writer is the producer-facing contract of a payload stream. Sender is
// the canonical implementation; adapters that decorate or redirect a
// producer implement the same interface.
type Writer interface {
	// FeedData appends a chunk to the stream. The stream takes ownership
	// of the slice; the producer must not modify it afterwards.
	FeedData(data []byte)

	// FeedEOF marks the logical end of the byte source. Safe to call
	// multiple times.
	FeedEOF()

	// SetError records a terminal error, surfaced to the consumer after
	// all buffered chunks are drained.
	SetError(err error)

	// NeedRead reports whether the producer should keep reading. On
	// StatusPause the waker is registered (first registration wins) and
	// fires once the consumer drains the buffer below capacity.
	NeedRead(wake Waker) Status
}

// Sender is the producer handle of a payload stream. It holds a
// non-owning reference to the shared state: once every Payload handle is
// closed, feeds become no-ops and NeedRead reports StatusDropped.
type Sender struct {
	inner *inner
}

var _ Writer = (*Sender)(nil)

// FeedData implements Writer. Data fed after the consumer dropped the
// stream is silently discarded.
func (s *Sender) FeedData(data []byte) {
	s.inner.feedData(data)
}

// FeedEOF implements Writer.
func (s *Sender) FeedEOF() {
	s.inner.feedEOF()
}

// SetError implements Writer. The last error set before delivery wins.
func (s *Sender) SetError(err error) {
	s.inner.setError(err)
}

// NeedRead implements Writer.
func (s *Sender) NeedRead(wake Waker) Status {
	in := s.inner
	in.mu.Lock()

	if in.dropped {
		in.mu.Unlock()
		return StatusDropped
	}
	if in.needRead {
		in.mu.Unlock()
		return StatusRead
	}
	if in.ioTask == nil && wake != nil {
		in.ioTask = wake
	}
	in.mu.Unlock()
	return StatusPause
}

// Buffered returns the number of bytes currently queued, or 0 once the
// consumer dropped the stream. Producers and instrumentation use it to
// observe buffer depth without holding a consumer handle.
func (s *Sender) Buffered() int {
	in := s.inner
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buffered
}
