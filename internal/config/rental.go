package config

import (
	"fmt"
	"time"
)

// RentalConfig controls the company lifecycle and its persistence.
type RentalConfig struct {
	// DefaultCompanyName creates a company on startup when no snapshot exists.
	// Empty means the service waits for an explicit reset.
	DefaultCompanyName string        `yaml:"default_company_name"`
	SnapshotBackend    string        `yaml:"snapshot_backend"`
	SnapshotKey        string        `yaml:"snapshot_key"`
	AutosaveSpec       string        `yaml:"autosave_spec"`
	PersistTimeout     time.Duration `yaml:"persist_timeout"`
	StatisticsChannel  string        `yaml:"statistics_channel"`
}

const (
	SnapshotBackendBlob   = "blob"
	SnapshotBackendMongo  = "mongodb"
	SnapshotBackendRedis  = "redis"
	SnapshotBackendMemory = "memory"
)

func loadRentalConfig() *RentalConfig {
	return &RentalConfig{
		DefaultCompanyName: getEnv("RENTAL_DEFAULT_COMPANY", ""),
		SnapshotBackend:    getEnv("SNAPSHOT_BACKEND", SnapshotBackendBlob),
		SnapshotKey:        getEnv("SNAPSHOT_KEY", "persistence/state.data"),
		AutosaveSpec:       getEnv("SNAPSHOT_AUTOSAVE_SPEC", ""),
		PersistTimeout:     getEnvAsDuration("SNAPSHOT_PERSIST_TIMEOUT", 5*time.Second),
		StatisticsChannel:  getEnv("STATISTICS_REDIS_CHANNEL", ""),
	}
}

func (c *RentalConfig) validate() error {
	switch c.SnapshotBackend {
	case SnapshotBackendBlob, SnapshotBackendMongo, SnapshotBackendRedis, SnapshotBackendMemory:
	default:
		return fmt.Errorf("unsupported SNAPSHOT_BACKEND %q", c.SnapshotBackend)
	}
	if c.SnapshotKey == "" {
		return fmt.Errorf("SNAPSHOT_KEY must not be empty")
	}
	if c.PersistTimeout <= 0 {
		return fmt.Errorf("SNAPSHOT_PERSIST_TIMEOUT must be positive")
	}
	return nil
}
