/*
Package payload provides a backpressure-aware byte-chunk stream for moving
an HTTP message body between a transport-reading producer and a consuming
handler.

The stream decouples how fast bytes arrive from how fast they are
consumed: chunks are buffered in arrival order, the buffered byte count is
bounded by a capacity threshold, and the producer is told to pause reading
while the consumer lags behind.

Handles:

A stream is created as a pair of handles sharing one state:

	sender, body := payload.New(false)

Sender is the producer side. The producer queries backpressure before
every read from its source and feeds what it decoded:

	switch sender.NeedRead(wake) {
	case payload.StatusRead:
		sender.FeedData(chunk)
	case payload.StatusPause:
		// suspend until wake fires; the consumer drained the buffer
	case payload.StatusDropped:
		// every consumer handle was closed; stop reading
	}
	sender.FeedEOF()

Payload is the consumer side, a pull-based sequence of chunks:

	chunk, state, err := body.PollNext(wake)
	switch state {
	case payload.PollData:
		// process chunk
	case payload.PollPending:
		// suspend until wake fires; the producer fed data
	case payload.PollEnd:
		// err != nil exactly once if the producer failed, else clean end
	}

Ordering and errors:

Chunks are delivered in the exact order they were fed, except that chunks
returned through Unread come first. A producer error surfaces only after
all chunks fed before it have been drained, is delivered exactly once, and
afterwards the stream reads as ended.

Wake coordination:

Both sides suspend cooperatively instead of blocking: a Waker is an
edge-triggered callback registered at the suspension point and invoked
exactly once when the awaited condition holds. The shared state is guarded
by a single mutex and wakers are invoked outside it, so they may fire from
either side's goroutine.

Cancellation:

Closing the last Payload handle (clones share the state) tears the stream
down. Subsequent feeds are silently discarded and NeedRead reports
StatusDropped, a normal outcome the producer handles by ceasing reads.

Adapters:

NewReader wraps a Payload in a blocking io.ReadCloser for conventional
consumers. The feeder package pumps an io.Reader into any Writer while
honoring backpressure. NewWithMetrics adds Prometheus instrumentation to
the producer side.
*/
package payload
