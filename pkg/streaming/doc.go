// Package streaming groups bodyflow's streaming components.
//
// Subpackages:
//   - payload: Backpressure-aware byte-chunk stream with poll/wake handles
//   - feeder: Producer pump from an io.Reader into a payload stream
package streaming
