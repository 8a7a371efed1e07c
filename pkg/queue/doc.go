// Package queue provides the in-memory priority queue that feeds the
// notification dispatcher. The Decision priority computed by the
// channel policy is the ordering hint: higher-priority booking events
// (a cancellation) drain before lower-priority ones (a generic status
// change) when a burst of domain activity enqueues many jobs at once.
package queue
