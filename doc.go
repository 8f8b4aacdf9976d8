/*
Package bodyflow provides a backpressure-aware byte-chunk stream for moving
an HTTP message body between a transport-reading producer and a consuming
handler.

Payload Streaming (pkg/streaming):
  - payload: Bounded chunk buffer with poll/wake handles on both sides,
    plus a blocking io.ReadCloser adapter for conventional consumers
  - feeder: Pump from an io.Reader into a payload, with optional rate limiting

Observability (pkg/metrics):
  - Prometheus instrumentation for payload streams and feeders

Example usage:

	import "github.com/vnykmshr/bodyflow/pkg/streaming/payload"

	sender, body := payload.New(false)

	// Producer: feed decoded chunks while the consumer keeps up.
	if sender.NeedRead(wake) == payload.StatusRead {
		sender.FeedData(chunk)
	}
	sender.FeedEOF()

	// Consumer: drain chunks.
	chunk, state, err := body.PollNext(wake)
*/
package bodyflow
