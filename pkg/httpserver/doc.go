// Package httpserver wraps net/http's server with graceful shutdown,
// signal handling, and environment-driven configuration suited to a
// service that holds long-lived streaming connections.
package httpserver
