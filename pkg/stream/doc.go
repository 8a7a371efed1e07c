// Package stream is the server-sent-events transport for real-time
// notifications. Each connection gets a session that emits an initial
// snapshot, relays hub events as wire frames, heartbeats on an
// interval, and tears down idempotently when the client disconnects.
//
// Frame ids are monotonic per connection and not backed by history:
// a reconnecting client always receives a fresh snapshot rather than a
// replay, so its Last-Event-ID only seeds the new counter.
package stream
