package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into the provided configuration
// struct based on `env` field tags. The first call loads a .env file
// from the working directory if one exists; a missing file is not an
// error.
//
// Example:
//
//	type StreamConfig struct {
//		HeartbeatInterval time.Duration `env:"NOTIFY_HEARTBEAT_INTERVAL" envDefault:"25s"`
//		SnapshotLimit     int           `env:"NOTIFY_SNAPSHOT_LIMIT" envDefault:"20"`
//	}
//
//	var cfg StreamConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
