package payload

import (
	"context"
	"io"
)

// Reader adapts a Payload to io.ReadCloser for conventional consumers. It
// bridges the poll/wake protocol to goroutine blocking: when no chunk is
// buffered, Read parks on an internal channel that the registered waker
// signals.
//
// A Reader owns its Payload; Close closes it. Reader is not safe for
// concurrent use.
type Reader struct {
	payload *Payload
	chunk   []byte
	wake    chan struct{}
	err     error
	done    bool
}

var _ io.ReadCloser = (*Reader)(nil)

// NewReader wraps a payload in a blocking reader.
func NewReader(p *Payload) *Reader {
	return &Reader{
		payload: p,
		wake:    make(chan struct{}, 1),
	}
}

// waker signals the channel without blocking the producer that fires it.
func (r *Reader) waker() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Read implements io.Reader. It returns io.EOF once the stream ends, or
// the producer's error after all data fed before it has been consumed.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for {
		if len(r.chunk) > 0 {
			n := copy(p, r.chunk)
			r.chunk = r.chunk[n:]
			return n, nil
		}
		if r.done {
			return 0, r.endError()
		}

		chunk, state, err := r.payload.PollNext(r.waker)
		switch state {
		case PollData:
			r.chunk = chunk
		case PollEnd:
			r.done = true
			r.err = err
			return 0, r.endError()
		case PollPending:
			<-r.wake
		}
	}
}

// NextChunk returns the next whole chunk, honoring context cancellation
// while waiting. Any bytes left over from a previous partial Read are
// returned first.
func (r *Reader) NextChunk(ctx context.Context) ([]byte, error) {
	if len(r.chunk) > 0 {
		chunk := r.chunk
		r.chunk = nil
		return chunk, nil
	}
	if r.done {
		return nil, r.endError()
	}

	for {
		chunk, state, err := r.payload.PollNext(r.waker)
		switch state {
		case PollData:
			return chunk, nil
		case PollEnd:
			r.done = true
			r.err = err
			return nil, r.endError()
		case PollPending:
			select {
			case <-r.wake:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
}

// Unread returns unneeded bytes to the stream, ahead of anything still
// buffered. The next Read observes them first.
func (r *Reader) Unread(data []byte) {
	if r.done || len(data) == 0 {
		return
	}
	// Leftover chunk bytes logically precede the buffered queue, so they
	// go back first, then the caller's data in front of them.
	if len(r.chunk) > 0 {
		r.payload.Unread(r.chunk)
		r.chunk = nil
	}
	r.payload.Unread(data)
}

// Close closes the underlying payload handle, cancelling the stream if
// this was the last handle.
func (r *Reader) Close() error {
	r.done = true
	r.chunk = nil
	return r.payload.Close()
}

func (r *Reader) endError() error {
	if r.err != nil {
		return r.err
	}
	return io.EOF
}
