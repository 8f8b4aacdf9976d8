package testutil

import (
	"io"
	"sync"
)

// Waker records edge-triggered wake notifications for tests. It can be
// registered as both the consumer and producer wake callback and reports
// how many times it fired.
type Waker struct {
	mu    sync.Mutex
	fires int
	ch    chan struct{}
}

// NewWaker creates a Waker with a buffered notification channel so firing
// never blocks the side that invokes it.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 16)}
}

// Wake is the callback to register. Each invocation is counted and queued
// on the notification channel.
func (w *Waker) Wake() {
	w.mu.Lock()
	w.fires++
	w.mu.Unlock()

	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Fires returns the number of times Wake has been invoked.
func (w *Waker) Fires() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fires
}

// C exposes the notification channel for tests that block until woken.
func (w *Waker) C() <-chan struct{} {
	return w.ch
}

// ScriptedReader replays a fixed sequence of reads, then returns a final
// error (io.EOF by default). Each Read returns at most one scripted chunk,
// mirroring how a transport delivers data piecemeal.
type ScriptedReader struct {
	mu       sync.Mutex
	chunks   [][]byte
	finalErr error
}

// NewScriptedReader creates a reader that yields the given chunks in order
// and then io.EOF.
func NewScriptedReader(chunks ...[]byte) *ScriptedReader {
	return &ScriptedReader{chunks: chunks, finalErr: io.EOF}
}

// NewFailingReader creates a reader that yields the given chunks in order
// and then the supplied error.
func NewFailingReader(err error, chunks ...[]byte) *ScriptedReader {
	return &ScriptedReader{chunks: chunks, finalErr: err}
}

// Read implements io.Reader.
func (r *ScriptedReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.chunks) == 0 {
		return 0, r.finalErr
	}

	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

// Remaining returns the number of unread scripted chunks.
func (r *ScriptedReader) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chunks)
}

// Bytes builds a chunk of n repeated bytes, handy for filling a payload
// buffer to a capacity threshold.
func Bytes(b byte, n int) []byte {
	chunk := make([]byte, n)
	for i := range chunk {
		chunk[i] = b
	}
	return chunk
}
