package stream

import "time"

// Config holds the streaming transport configuration.
type Config struct {
	// HeartbeatInterval is how often an idle connection receives a ping
	// frame. Keeps intermediary proxies from closing the connection and
	// lets clients detect dead ones by missed heartbeats.
	HeartbeatInterval time.Duration `env:"NOTIFY_HEARTBEAT_INTERVAL" envDefault:"25s"`

	// SnapshotLimit is the page size fetched from the store for the
	// init frame and for bulk resyncs.
	SnapshotLimit int `env:"NOTIFY_SNAPSHOT_LIMIT" envDefault:"20"`

	// EventBuffer is the per-session queue depth between the hub and
	// the connection writer.
	EventBuffer int `env:"NOTIFY_STREAM_BUFFER" envDefault:"32"`
}

func (c Config) withDefaults() Config {
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = 25 * time.Second
	}
	if c.SnapshotLimit <= 0 {
		c.SnapshotLimit = 20
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = 32
	}
	return c
}
