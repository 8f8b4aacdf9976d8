package payload

import (
	"sync"

	bferrors "github.com/vnykmshr/bodyflow/pkg/common/errors"
	"github.com/vnykmshr/bodyflow/pkg/common/validation"
)

// DefaultBufferCapacity is the default backpressure threshold, 32KB.
// Once the buffered byte count reaches this threshold the producer is asked
// to pause reading until the consumer drains below it.
const DefaultBufferCapacity = 32 * 1024

// Waker resumes a suspended logical task. Wakers are edge-triggered: a
// registered waker is taken and invoked at most once, and must be
// re-registered on each subsequent suspension. A waker may be invoked from
// a different goroutine than the one that registered it and must not block.
type Waker func()

// PollState reports the outcome of a PollNext call.
type PollState int

const (
	// PollData means a chunk was dequeued and returned.
	PollData PollState = iota

	// PollPending means no chunk is buffered yet; the waker was registered
	// and will fire when the producer feeds data, ends the stream, or
	// reports an error.
	PollPending

	// PollEnd means the stream is finished. A non-nil error accompanies
	// PollEnd exactly once when the producer reported a failure; all
	// later polls return PollEnd with a nil error.
	PollEnd
)

// String returns a human-readable name for the poll state.
func (s PollState) String() string {
	switch s {
	case PollData:
		return "data"
	case PollPending:
		return "pending"
	case PollEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Config holds configuration for a payload stream.
type Config struct {
	// Capacity is the backpressure threshold in bytes. While the buffered
	// byte count is below Capacity the producer is told to keep reading.
	// Zero selects DefaultBufferCapacity.
	Capacity int

	// EOF marks the stream as already complete at construction, for
	// messages that carry no body.
	EOF bool
}

// DefaultConfig returns a default payload configuration.
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultBufferCapacity,
	}
}

// inner is the shared stream state. Both handles operate on it; a single
// mutex guards every field. Wakers are taken under the lock and invoked
// after it is released.
type inner struct {
	mu       sync.Mutex
	items    [][]byte
	buffered int
	capacity int
	eof      bool
	err      error
	needRead bool
	task     Waker // consumer wake, armed by PollNext
	ioTask   Waker // producer wake, armed by NeedRead
	refs     int
	dropped  bool
}

func newInner(capacity int, eof bool) *inner {
	return &inner{
		capacity: capacity,
		eof:      eof,
		needRead: true,
		refs:     1,
	}
}

func (in *inner) feedData(data []byte) {
	in.mu.Lock()
	if in.dropped {
		// Consumer is gone; nobody can observe the data.
		in.mu.Unlock()
		return
	}
	in.buffered += len(data)
	in.items = append(in.items, data)
	in.needRead = in.buffered < in.capacity
	wake := in.task
	in.task = nil
	in.mu.Unlock()

	if wake != nil {
		wake()
	}
}

func (in *inner) feedEOF() {
	in.mu.Lock()
	if in.dropped {
		in.mu.Unlock()
		return
	}
	in.eof = true
	wake := in.task
	in.task = nil
	in.mu.Unlock()

	if wake != nil {
		wake()
	}
}

func (in *inner) setError(err error) {
	in.mu.Lock()
	if in.dropped {
		in.mu.Unlock()
		return
	}
	in.err = err
	wake := in.task
	in.task = nil
	in.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// Payload is the consumer handle of a payload stream. It drains buffered
// chunks through PollNext and keeps the shared state alive: the state is
// torn down when the last Payload handle (including clones) is closed.
//
// A Payload must be polled from a single logical consumer at a time.
type Payload struct {
	inner  *inner
	closed bool
}

// New creates a payload stream and returns its two handles: the Sender fed
// by the transport-reading producer and the Payload drained by the
// consumer. When eof is true the stream is complete from the start.
func New(eof bool) (*Sender, *Payload) {
	sender, p, err := NewWithConfig(Config{Capacity: DefaultBufferCapacity, EOF: eof})
	if err != nil {
		// Unreachable with the default capacity.
		panic(err)
	}
	return sender, p
}

// NewWithConfig creates a payload stream with the given configuration.
func NewWithConfig(config Config) (*Sender, *Payload, error) {
	if config.Capacity == 0 {
		config.Capacity = DefaultBufferCapacity
	}
	if err := validation.ValidatePositive("payload", "capacity", config.Capacity); err != nil {
		return nil, nil, err
	}

	in := newInner(config.Capacity, config.EOF)
	return &Sender{inner: in}, &Payload{inner: in}, nil
}

// Empty returns an already-complete payload with no producer attached,
// for messages that carry no body.
func Empty() *Payload {
	return &Payload{inner: newInner(DefaultBufferCapacity, true)}
}

// PollNext returns the next buffered chunk.
//
// Chunks come back in the exact order they were fed, except that chunks
// returned through Unread are delivered first. A producer error surfaces
// only after every chunk fed before it has been drained, and is delivered
// exactly once; afterwards the stream reads as ended.
//
// When nothing is available and the stream has not finished, PollNext
// registers wake (if non-nil) and returns PollPending; wake fires once
// when the state changes. A registered producer waker is nudged on this
// path so a paused producer resumes reading.
func (p *Payload) PollNext(wake Waker) ([]byte, PollState, error) {
	if p.closed {
		return nil, PollEnd, bferrors.ErrClosed
	}

	in := p.inner
	in.mu.Lock()

	if len(in.items) > 0 {
		data := in.items[0]
		in.items[0] = nil
		in.items = in.items[1:]
		in.buffered -= len(data)
		in.needRead = in.buffered < in.capacity

		if in.needRead && in.task == nil && !in.eof && wake != nil {
			in.task = wake
		}
		ioWake := in.ioTask
		in.ioTask = nil
		in.mu.Unlock()

		if ioWake != nil {
			ioWake()
		}
		return data, PollData, nil
	}

	if in.err != nil {
		err := in.err
		in.err = nil
		in.eof = true
		in.mu.Unlock()
		return nil, PollEnd, err
	}

	if in.eof {
		in.mu.Unlock()
		return nil, PollEnd, nil
	}

	in.needRead = true
	if in.task == nil && wake != nil {
		in.task = wake
	}
	ioWake := in.ioTask
	in.ioTask = nil
	in.mu.Unlock()

	if ioWake != nil {
		ioWake()
	}
	return nil, PollPending, nil
}

// Unread puts data back at the front of the buffer, for consumers that
// withdrew more than they needed. The next PollNext returns it before any
// chunk fed later. Unread does not fire wake notifications.
func (p *Payload) Unread(data []byte) {
	if p.closed || len(data) == 0 {
		return
	}

	in := p.inner
	in.mu.Lock()
	in.buffered += len(data)
	in.items = append([][]byte{data}, in.items...)
	in.needRead = in.buffered < in.capacity
	in.mu.Unlock()
}

// SetCapacity changes the backpressure threshold. It is intended to be
// called before any data has flowed.
func (p *Payload) SetCapacity(n int) error {
	if err := validation.ValidatePositive("payload", "capacity", n); err != nil {
		return err
	}
	if p.closed {
		return bferrors.ErrClosed
	}

	in := p.inner
	in.mu.Lock()
	in.capacity = n
	in.needRead = in.buffered < in.capacity
	in.mu.Unlock()
	return nil
}

// Len returns the number of buffered bytes.
func (p *Payload) Len() int {
	in := p.inner
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buffered
}

// IsEmpty returns true if no bytes are buffered.
func (p *Payload) IsEmpty() bool {
	return p.Len() == 0
}

// Clone returns a new handle sharing the same stream state. The state
// stays alive until every clone is closed.
func (p *Payload) Clone() *Payload {
	in := p.inner
	in.mu.Lock()
	if !p.closed {
		in.refs++
	}
	in.mu.Unlock()

	if p.closed {
		return &Payload{inner: p.inner, closed: true}
	}
	return &Payload{inner: p.inner}
}

// Close drops this handle. Closing the last handle cancels the stream:
// buffered chunks are released, further producer feeds become no-ops, the
// producer's backpressure query reports StatusDropped, and both wakers
// fire so suspended tasks observe the teardown promptly.
func (p *Payload) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	in := p.inner
	in.mu.Lock()
	in.refs--
	if in.refs > 0 {
		in.mu.Unlock()
		return nil
	}
	in.dropped = true
	in.items = nil
	in.buffered = 0
	wake := in.task
	in.task = nil
	ioWake := in.ioTask
	in.ioTask = nil
	in.mu.Unlock()

	if wake != nil {
		wake()
	}
	if ioWake != nil {
		ioWake()
	}
	return nil
}
