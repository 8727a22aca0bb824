package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryConfig sizes the in-process cache backend.
type MemoryConfig struct {
	// Capacity is the maximum number of entries. Must be > 0.
	Capacity int
	// NumShards splits the cache for concurrent access. Must be > 0.
	NumShards int
	// TTL is how long entries live. Must be > 0.
	TTL time.Duration
	// EvictionPercentage is how much to evict when full, 1-100.
	EvictionPercentage int
}

// DefaultMemoryConfig returns sensible defaults for a single-process
// deployment.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		TTL:                DefaultTTL,
		EvictionPercentage: 10,
	}
}

// Validate checks the configuration values.
func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError reports an invalid cache configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}

// Memory is the process-local backend, a sturdyc client with a fixed TTL.
type Memory struct {
	client *sturdyc.Client[[]byte]
}

func NewMemory(cfg MemoryConfig) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage)
	return &Memory{client: client}, nil
}

var _ Cache = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	return m.client.Get(key)
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.client.Set(key, value)
	return nil
}
