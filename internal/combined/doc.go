// Package combined holds benchmarks that drive the queue, clock and signal
// packages together.
//
// The phase publish path (toggle, send, broadcast, receive) is measured
// end to end, and the Handoff is compared against a buffered channel and
// a sharded lock-free ring under several producers.
package combined
