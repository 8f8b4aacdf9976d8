// Package metrics provides Prometheus instrumentation for bodyflow components.
//
// This package enables monitoring and observability for bodyflow's payload
// streams and feeders through Prometheus metrics.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Payload stream with metrics
//	sender, body, _ := payload.NewWithMetrics("upload", metrics.DefaultConfig())
//
//	// Feeder with metrics
//	f, _ := feeder.NewWithMetrics(conn, sender, "upload", metrics.DefaultConfig())
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	sender, body, _ := payload.NewWithMetrics("upload", config)
//
// # Available Metrics
//
// ## Payload Stream Metrics
//
//   - bodyflow_payload_buffered_bytes: Number of bytes currently buffered
//   - bodyflow_payload_capacity_bytes: Backpressure threshold in bytes
//   - bodyflow_payload_chunks_fed_total: Total chunks fed by the producer
//   - bodyflow_payload_bytes_fed_total: Total bytes fed by the producer
//   - bodyflow_payload_backpressure_pauses_total: Times the producer was asked to pause
//   - bodyflow_payload_streams_completed_total: Streams that ended cleanly
//   - bodyflow_payload_streams_failed_total: Streams terminated with a producer error
//   - bodyflow_payload_streams_dropped_total: Streams cancelled by the consumer
//
// ## Feeder Metrics
//
//   - bodyflow_feeder_reads_total: Source reads performed by the feeder
//   - bodyflow_feeder_bytes_read_total: Bytes read from the source
//   - bodyflow_feeder_pauses_total: Backpressure pauses observed
//
// # Labels
//
// Metrics include a name label for filtering and aggregation:
//
//   - stream_name: User-provided name for the payload stream
//   - feeder_name: User-provided name for the feeder instance
//
// # Performance
//
// Metrics collection is designed for minimal overhead: instruments are
// updated only when operations occur, there are no background goroutines,
// and label values are pre-computed at construction.
package metrics
